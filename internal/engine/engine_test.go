package engine

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sonica-audio/engine/internal/engineerrors"
	"github.com/sonica-audio/engine/internal/metadatastore"
	"github.com/sonica-audio/engine/internal/vectorservice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSampleRate = 44100

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	cfg := DefaultConfig(testSampleRate)
	eng, err := New(cfg, metadatastore.NewMemoryStore(), vectorservice.NoopService{})
	require.NoError(t, err)
	return eng
}

func sineSignal(seconds, freq float64) []float64 {
	n := int(float64(testSampleRate) * seconds)
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Sin(2 * math.Pi * freq * float64(i) / float64(testSampleRate))
	}
	return out
}

func chirpSignal(seconds, startHz, endHz float64) []float64 {
	n := int(float64(testSampleRate) * seconds)
	out := make([]float64, n)
	for i := range out {
		t := float64(i) / float64(testSampleRate)
		freq := startHz + (endHz-startHz)*(t/seconds)
		out[i] = math.Sin(2 * math.Pi * freq * t)
	}
	return out
}

func TestRecognizeIdentityMatch(t *testing.T) {
	eng := newTestEngine(t)
	ctx := context.Background()

	signal := sineSignal(5.0, 440)
	trackID := uuid.New()
	require.NoError(t, eng.Enroll(ctx, trackID, signal, testSampleRate, metadatastore.TrackMetadata{Title: "Sine 440"}))

	result, err := eng.Recognize(ctx, signal, testSampleRate)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, trackID, result.Track.TrackID)
	assert.GreaterOrEqual(t, result.Score, 0.8)
	assert.InDelta(t, 0.0, result.AlignmentSecs, 0.5)
	assert.Greater(t, result.PerFeature.Hash, 0.0)
}

func TestRecognizeMatchesTimeShiftedQuery(t *testing.T) {
	eng := newTestEngine(t)
	ctx := context.Background()

	full := sineSignal(10.0, 523.25)
	trackID := uuid.New()
	require.NoError(t, eng.Enroll(ctx, trackID, full, testSampleRate, metadatastore.TrackMetadata{Title: "Full"}))

	offsetSeconds := 4.0
	start := int(offsetSeconds * testSampleRate)
	clip := full[start : start+int(4.0*testSampleRate)]

	result, err := eng.Recognize(ctx, clip, testSampleRate)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, trackID, result.Track.TrackID)
	assert.InDelta(t, offsetSeconds, result.AlignmentSecs, 0.5)
}

func TestRecognizeToleratesAdditiveNoise(t *testing.T) {
	eng := newTestEngine(t)
	ctx := context.Background()

	clean := sineSignal(5.0, 660)
	trackID := uuid.New()
	require.NoError(t, eng.Enroll(ctx, trackID, clean, testSampleRate, metadatastore.TrackMetadata{Title: "Clean"}))

	noisy := make([]float64, len(clean))
	seed := uint32(12345)
	for i, s := range clean {
		seed = seed*1664525 + 1013904223
		noise := (float64(seed)/4294967295.0 - 0.5) * 0.05
		noisy[i] = s + noise
	}

	result, err := eng.Recognize(ctx, noisy, testSampleRate)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, trackID, result.Track.TrackID)
}

func TestRecognizeNegativeQueryYieldsNoMatch(t *testing.T) {
	eng := newTestEngine(t)
	ctx := context.Background()

	up := chirpSignal(5.0, 200, 2000)
	trackID := uuid.New()
	require.NoError(t, eng.Enroll(ctx, trackID, up, testSampleRate, metadatastore.TrackMetadata{Title: "Chirp Up"}))

	down := chirpSignal(5.0, 2000, 200)
	result, err := eng.Recognize(ctx, down, testSampleRate)
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestRecognizeCachesRepeatedQuery(t *testing.T) {
	eng := newTestEngine(t)
	ctx := context.Background()

	signal := sineSignal(4.0, 330)
	trackID := uuid.New()
	require.NoError(t, eng.Enroll(ctx, trackID, signal, testSampleRate, metadatastore.TrackMetadata{Title: "Sine 330"}))

	first, err := eng.Recognize(ctx, signal, testSampleRate)
	require.NoError(t, err)
	require.NotNil(t, first)

	second, err := eng.Recognize(ctx, signal, testSampleRate)
	require.NoError(t, err)
	require.NotNil(t, second)
	assert.Equal(t, first.Track.TrackID, second.Track.TrackID)
}

func TestRecognizeRespectsExpiredDeadline(t *testing.T) {
	eng := newTestEngine(t)

	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Millisecond)
	defer cancel()
	time.Sleep(2 * time.Millisecond)

	signal := sineSignal(4.0, 440)
	_, err := eng.Recognize(ctx, signal, testSampleRate)
	require.Error(t, err)

	var engErr *engineerrors.EngineError
	require.ErrorAs(t, err, &engErr)
	assert.Equal(t, engineerrors.Deadline, engErr.Code)
}

func TestEnrollRejectsEmptyFingerprintSignal(t *testing.T) {
	eng := newTestEngine(t)
	ctx := context.Background()

	silence := make([]float64, int(4.0*testSampleRate))
	err := eng.Enroll(ctx, uuid.New(), silence, testSampleRate, metadatastore.TrackMetadata{Title: "Silence"})
	require.Error(t, err)

	var engErr *engineerrors.EngineError
	require.ErrorAs(t, err, &engErr)
	assert.Equal(t, engineerrors.InvalidAudioFormat, engErr.Code)
}
