package dsp

import (
	"math"
	"sync"
)

type chromaKey struct {
	sampleRate int
	windowSize int
}

var (
	chromaMu    sync.Mutex
	chromaCache = map[chromaKey][]int{}
)

// ChromaBinClasses returns, for a window of the given size and sample rate, a
// slice of length windowSize/2+1 mapping each FFT bin to a pitch class in
// [0, 12), or -1 for the DC bin (frequency 0, which has no defined chroma
// class). Class assignment follows round(12 * log2(f / 440)) mod 12.
func ChromaBinClasses(sampleRate, windowSize int) []int {
	key := chromaKey{sampleRate, windowSize}

	chromaMu.Lock()
	defer chromaMu.Unlock()

	if classes, ok := chromaCache[key]; ok {
		return classes
	}

	classes := computeChromaBinClasses(sampleRate, windowSize)
	chromaCache[key] = classes
	return classes
}

func computeChromaBinClasses(sampleRate, windowSize int) []int {
	numBins := windowSize/2 + 1
	classes := make([]int, numBins)
	classes[0] = -1

	for bin := 1; bin < numBins; bin++ {
		freq := float64(bin) * float64(sampleRate) / float64(windowSize)
		if freq <= 0 {
			classes[bin] = -1
			continue
		}
		pitchClass := int(math.Round(12*math.Log2(freq/440))) % 12
		if pitchClass < 0 {
			pitchClass += 12
		}
		classes[bin] = pitchClass
	}

	return classes
}

// ChromaVector accumulates a magnitude spectrum into a 12-element chroma
// vector using the bin-to-class mapping for (sampleRate, len(magnitudes)
// implied windowSize).
func ChromaVector(sampleRate, windowSize int, magnitudes []float64) [12]float64 {
	classes := ChromaBinClasses(sampleRate, windowSize)

	var vec [12]float64
	n := len(classes)
	if len(magnitudes) < n {
		n = len(magnitudes)
	}
	for bin := 0; bin < n; bin++ {
		class := classes[bin]
		if class < 0 {
			continue
		}
		vec[class] += magnitudes[bin]
	}
	return vec
}
