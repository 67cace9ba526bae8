package features

import (
	"math"
	"testing"

	"github.com/sonica-audio/engine/internal/dsp"
	"github.com/sonica-audio/engine/internal/spectrogram"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sineSpectrogram(t *testing.T, freq float64, seconds float64) *spectrogram.Spectrogram {
	t.Helper()
	sampleRate, windowSize, hopSize := 44100, 2048, 256
	n := int(float64(sampleRate) * seconds)
	signal := make([]float64, n)
	for i := range signal {
		signal[i] = math.Sin(2 * math.Pi * freq * float64(i) / float64(sampleRate))
	}
	spec, err := spectrogram.Build(signal, sampleRate, windowSize, hopSize, dsp.Hamming)
	require.NoError(t, err)
	return spec
}

func TestMFCCIsFiniteAndFixedLength(t *testing.T) {
	spec := sineSpectrogram(t, 440, 1.0)
	out := MFCC(spec, NumMelFilters, NumCoeffs)
	require.Len(t, out, 2*NumCoeffs)
	for _, v := range out {
		assert.False(t, math.IsNaN(v))
		assert.False(t, math.IsInf(v, 0))
	}
}

func TestChromaIsL1Normalized(t *testing.T) {
	spec := sineSpectrogram(t, 440, 1.0)
	vec := Chroma(spec)

	sum := 0.0
	for _, v := range vec {
		sum += math.Abs(v)
	}
	assert.InDelta(t, 1.0, sum, 1e-6)
}

func TestOnsetEnvelopeLengthMatchesFrames(t *testing.T) {
	spec := sineSpectrogram(t, 120, 1.0)
	env := OnsetEnvelope(spec, OnsetLowHz, OnsetHighHz)
	assert.Len(t, env, spec.NumFrames())
}

func TestEstimateTempoWithinSearchRange(t *testing.T) {
	sampleRate, hopSize := 44100, 256
	frameRate := float64(sampleRate) / float64(hopSize)

	targetBPM := 120.0
	beatFrames := int(frameRate * 60 / targetBPM)

	onset := make([]float64, beatFrames*8)
	for i := range onset {
		if i%beatFrames == 0 {
			onset[i] = 1.0
		}
	}

	bpm := EstimateTempo(onset, sampleRate, hopSize)
	if bpm != 0 {
		assert.True(t, bpm >= MinTempoBPM-1 && bpm <= MaxTempoBPM+1)
	}
}

func TestRhythmPatternZeroWhenNoTempo(t *testing.T) {
	pattern := RhythmPattern([]float64{1, 2, 3}, 0, 44100, 256)
	assert.Equal(t, [4]float64{0, 0, 0, 0}, pattern)
}

func TestExtractProducesFiniteSet(t *testing.T) {
	spec := sineSpectrogram(t, 440, 2.0)
	set := Extract(spec)

	for _, v := range set.MFCC {
		assert.False(t, math.IsNaN(v))
	}
	for _, v := range set.Chroma {
		assert.False(t, math.IsNaN(v))
	}
	assert.False(t, math.IsNaN(set.Tempo))
}
