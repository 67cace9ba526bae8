package features

import (
	"math"

	"github.com/sonica-audio/engine/internal/dsp"
	"github.com/sonica-audio/engine/internal/spectrogram"
)

// MFCC computes log-mel-filter energies per frame, applies a DCT-II, and
// summarizes the per-coefficient distribution across frames as
// (mean, variance) pairs. This summary (rather than raw per-frame
// concatenation) keeps the vector a fixed length regardless of clip
// duration, which fusion's fixed-dimension cosine similarity requires.
func MFCC(spec *spectrogram.Spectrogram, numFilters, numCoeffs int) []float64 {
	out := make([]float64, 2*numCoeffs)

	numFrames := spec.NumFrames()
	if numFrames == 0 {
		return out
	}

	bank := dsp.MelFilterBank(spec.SampleRate, spec.WindowSize, numFilters)

	sums := make([]float64, numCoeffs)
	sumsSq := make([]float64, numCoeffs)

	for _, frame := range spec.Frames {
		melEnergies := dsp.ApplyFilterBank(bank, frame)
		logMel := dsp.LogMel(melEnergies)
		coeffs := dsp.DCT2(logMel, numCoeffs)
		for i, c := range coeffs {
			sums[i] += c
			sumsSq[i] += c * c
		}
	}

	n := float64(numFrames)
	for i := 0; i < numCoeffs; i++ {
		mean := sums[i] / n
		variance := sumsSq[i]/n - mean*mean
		if variance < 0 || math.IsNaN(variance) {
			variance = 0
		}
		if math.IsNaN(mean) || math.IsInf(mean, 0) {
			mean = 0
		}
		out[i] = mean
		out[numCoeffs+i] = variance
	}

	return out
}
