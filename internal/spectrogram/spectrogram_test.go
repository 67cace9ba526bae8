package spectrogram

import (
	"math"
	"testing"

	"github.com/sonica-audio/engine/internal/dsp"
	"github.com/sonica-audio/engine/internal/engineerrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sineSignal(n int, freq float64, sampleRate int) []float64 {
	signal := make([]float64, n)
	for i := range signal {
		signal[i] = math.Sin(2 * math.Pi * freq * float64(i) / float64(sampleRate))
	}
	return signal
}

func TestBuildFrameAndBinCounts(t *testing.T) {
	sampleRate, windowSize, hopSize := 44100, 4096, 2048
	signal := sineSignal(sampleRate*2, 440, sampleRate)

	spec, err := Build(signal, sampleRate, windowSize, hopSize, dsp.Hamming)
	require.NoError(t, err)

	expectedFrames := (len(signal)-windowSize)/hopSize + 1
	assert.Equal(t, expectedFrames, spec.NumFrames())
	assert.Equal(t, windowSize/2+1, spec.NumBins())
}

func TestBuildRejectsShortSignal(t *testing.T) {
	_, err := Build(make([]float64, 100), 44100, 4096, 2048, dsp.Hamming)
	require.Error(t, err)

	var engErr *engineerrors.EngineError
	require.ErrorAs(t, err, &engErr)
	assert.Equal(t, engineerrors.InputTooShort, engErr.Code)
}

func TestBinFrequencyAndFrameTime(t *testing.T) {
	spec := &Spectrogram{SampleRate: 44100, WindowSize: 4096, HopSize: 2048}
	assert.InDelta(t, 0, spec.BinFrequency(0), 1e-9)
	assert.InDelta(t, float64(44100)/4096, spec.BinFrequency(1), 1e-6)
	assert.InDelta(t, float64(2048)/44100, spec.FrameTime(1), 1e-9)
}
