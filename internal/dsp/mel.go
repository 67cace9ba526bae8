package dsp

import (
	"math"
	"sync"
)

type melKey struct {
	sampleRate int
	windowSize int
	numFilters int
}

var (
	melMu    sync.Mutex
	melCache = map[melKey][][]float64{}
)

// HzToMel converts a frequency in Hz to the mel scale.
func HzToMel(hz float64) float64 {
	return 2595 * math.Log10(1+hz/700)
}

// MelToHz converts a mel value back to Hz.
func MelToHz(mel float64) float64 {
	return 700 * (math.Pow(10, mel/2595) - 1)
}

// MelFilterBank returns numFilters triangular filters over the mel scale,
// each a slice of length windowSize/2+1 of per-bin weights. The bank is
// cached by (sampleRate, windowSize, numFilters); callers share the
// returned slices and must not mutate them.
func MelFilterBank(sampleRate, windowSize, numFilters int) [][]float64 {
	key := melKey{sampleRate, windowSize, numFilters}

	melMu.Lock()
	defer melMu.Unlock()

	if bank, ok := melCache[key]; ok {
		return bank
	}

	bank := computeMelFilterBank(sampleRate, windowSize, numFilters)
	melCache[key] = bank
	return bank
}

func computeMelFilterBank(sampleRate, windowSize, numFilters int) [][]float64 {
	numBins := windowSize/2 + 1
	nyquist := float64(sampleRate) / 2

	melLow := HzToMel(0)
	melHigh := HzToMel(nyquist)

	// numFilters + 2 equally spaced points in mel space bound numFilters
	// triangular filters.
	melPoints := make([]float64, numFilters+2)
	for i := range melPoints {
		melPoints[i] = melLow + (melHigh-melLow)*float64(i)/float64(numFilters+1)
	}

	binPoints := make([]int, numFilters+2)
	for i, m := range melPoints {
		hz := MelToHz(m)
		binPoints[i] = int(math.Floor((float64(windowSize) + 1) * hz / float64(sampleRate)))
	}

	bank := make([][]float64, numFilters)
	for f := 0; f < numFilters; f++ {
		filter := make([]float64, numBins)
		left, center, right := binPoints[f], binPoints[f+1], binPoints[f+2]

		for bin := left; bin < center; bin++ {
			if bin < 0 || bin >= numBins || center == left {
				continue
			}
			filter[bin] = float64(bin-left) / float64(center-left)
		}
		for bin := center; bin < right; bin++ {
			if bin < 0 || bin >= numBins || right == center {
				continue
			}
			filter[bin] = float64(right-bin) / float64(right-center)
		}

		bank[f] = filter
	}

	return bank
}

// ApplyFilterBank projects a magnitude spectrum through the filter bank,
// producing one energy value per filter.
func ApplyFilterBank(bank [][]float64, magnitudes []float64) []float64 {
	out := make([]float64, len(bank))
	for f, filter := range bank {
		sum := 0.0
		n := len(filter)
		if len(magnitudes) < n {
			n = len(magnitudes)
		}
		for bin := 0; bin < n; bin++ {
			sum += filter[bin] * magnitudes[bin]
		}
		out[f] = sum
	}
	return out
}
