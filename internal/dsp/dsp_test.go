package dsp

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFFTOfImpulseIsFlat(t *testing.T) {
	n := 64
	x := make([]complex128, n)
	x[0] = complex(1, 0)

	FFT(x)

	for i, v := range x {
		assert.InDelta(t, 1.0, cmplx.Abs(v), 1e-9, "bin %d", i)
	}
}

func TestFFTOfSineProducesExpectedPeakBin(t *testing.T) {
	n := 256
	freqBin := 10
	signal := make([]float64, n)
	for i := range signal {
		signal[i] = math.Sin(2 * math.Pi * float64(freqBin) * float64(i) / float64(n))
	}

	scratch := make([]complex128, n)
	out := make([]float64, n/2+1)
	Magnitude(signal, scratch, out)

	peakBin := 0
	for i, v := range out {
		if v > out[peakBin] {
			peakBin = i
		}
	}
	assert.Equal(t, freqBin, peakBin)
}

func TestIsPowerOfTwo(t *testing.T) {
	assert.True(t, IsPowerOfTwo(1))
	assert.True(t, IsPowerOfTwo(4096))
	assert.False(t, IsPowerOfTwo(0))
	assert.False(t, IsPowerOfTwo(100))
}

func TestWindowIsCachedAcrossCalls(t *testing.T) {
	w1 := Window(Hamming, 1024)
	w2 := Window(Hamming, 1024)
	require.Len(t, w1, 1024)
	assert.Same(t, &w1[0], &w2[0])
}

func TestWindowShapesDiffer(t *testing.T) {
	hamming := Window(Hamming, 512)
	hann := Window(Hann, 512)
	blackman := Window(Blackman, 512)

	assert.InDelta(t, 0.08, hamming[0], 1e-6)
	assert.InDelta(t, 0.0, hann[0], 1e-6)
	assert.InDelta(t, 0.0, blackman[0], 1e-6)
}

func TestMelFilterBankShape(t *testing.T) {
	bank := MelFilterBank(44100, 4096, 26)
	require.Len(t, bank, 26)
	for _, filter := range bank {
		assert.Len(t, filter, 4096/2+1)
	}
}

func TestMelHzRoundTrip(t *testing.T) {
	for _, hz := range []float64{100, 440, 1000, 8000} {
		mel := HzToMel(hz)
		assert.InDelta(t, hz, MelToHz(mel), 1e-6)
	}
}

func TestChromaBinClassesWithin0And11(t *testing.T) {
	classes := ChromaBinClasses(44100, 4096)
	require.Equal(t, 4096/2+1, len(classes))
	assert.Equal(t, -1, classes[0])
	for _, c := range classes[1:] {
		assert.True(t, c >= 0 && c < 12)
	}
}

func TestChromaVectorClassFor440HzIsClassZero(t *testing.T) {
	sampleRate, windowSize := 44100, 4096
	bin := int(math.Round(440 * float64(windowSize) / float64(sampleRate)))
	magnitudes := make([]float64, windowSize/2+1)
	magnitudes[bin] = 1.0

	vec := ChromaVector(sampleRate, windowSize, magnitudes)
	assert.Greater(t, vec[0], 0.0)
}

func TestDCT2Length(t *testing.T) {
	in := make([]float64, 26)
	for i := range in {
		in[i] = float64(i)
	}
	out := DCT2(in, 13)
	assert.Len(t, out, 13)
}

func TestLogMelFloorsZero(t *testing.T) {
	out := LogMel([]float64{0, 1})
	assert.False(t, math.IsInf(out[0], -1))
	assert.InDelta(t, 0.0, out[1], 1e-9)
}
