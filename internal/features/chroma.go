package features

import (
	"math"

	"github.com/sonica-audio/engine/internal/dsp"
	"github.com/sonica-audio/engine/internal/spectrogram"
)

// Chroma computes the per-frame 12-vector chroma projection and returns its
// L1-normalized mean across frames.
func Chroma(spec *spectrogram.Spectrogram) [12]float64 {
	var sum [12]float64

	for _, frame := range spec.Frames {
		v := dsp.ChromaVector(spec.SampleRate, spec.WindowSize, frame)
		for i := 0; i < 12; i++ {
			sum[i] += v[i]
		}
	}

	l1 := 0.0
	for _, v := range sum {
		l1 += math.Abs(v)
	}
	if l1 > 0 {
		for i := range sum {
			sum[i] /= l1
		}
	}

	return sum
}
