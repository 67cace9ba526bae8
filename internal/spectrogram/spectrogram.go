// Package spectrogram frames a signal, applies a cached window, and
// produces the magnitude short-time Fourier transform consumed by the
// peak picker and auxiliary feature extractors.
package spectrogram

import (
	"github.com/sonica-audio/engine/internal/dsp"
	"github.com/sonica-audio/engine/internal/engineerrors"
)

// Spectrogram is a two-dimensional non-negative magnitude matrix indexed by
// (bin, frame). Frames[f][bin] is the magnitude at frame f, bin.
type Spectrogram struct {
	Frames     [][]float64
	SampleRate int
	WindowSize int
	HopSize    int
}

// NumBins returns the number of frequency bins per frame (W/2+1).
func (s *Spectrogram) NumBins() int {
	return s.WindowSize/2 + 1
}

// NumFrames returns the number of frames.
func (s *Spectrogram) NumFrames() int {
	return len(s.Frames)
}

// BinFrequency maps bin index k to frequency in Hz: k * SR / W.
func (s *Spectrogram) BinFrequency(bin int) float64 {
	return float64(bin) * float64(s.SampleRate) / float64(s.WindowSize)
}

// FrameTime maps frame index f to time in seconds: f * H / SR.
func (s *Spectrogram) FrameTime(frame int) float64 {
	return float64(frame*s.HopSize) / float64(s.SampleRate)
}

// Build computes F = floor((L-W)/H)+1 frames from signal, windowing each
// with the given shape and taking its magnitude spectrum. Tail samples
// beyond the last full frame are discarded; no padding is applied.
func Build(signal []float64, sampleRate, windowSize, hopSize int, shape dsp.Shape) (*Spectrogram, error) {
	if !dsp.IsPowerOfTwo(windowSize) {
		return nil, engineerrors.InvariantViolated("spectrogram window size must be a power of two")
	}

	l := len(signal)
	if l < windowSize {
		return nil, engineerrors.ShortSignal(l, windowSize)
	}

	numFrames := (l-windowSize)/hopSize + 1
	frames := make([][]float64, numFrames)

	windowed := make([]float64, windowSize)
	scratch := make([]complex128, windowSize)

	for f := 0; f < numFrames; f++ {
		start := f * hopSize
		segment := signal[start : start+windowSize]

		dsp.ApplyWindow(shape, segment, windowed)

		magnitudes := make([]float64, windowSize/2+1)
		dsp.Magnitude(windowed, scratch, magnitudes)

		frames[f] = magnitudes
	}

	return &Spectrogram{
		Frames:     frames,
		SampleRate: sampleRate,
		WindowSize: windowSize,
		HopSize:    hopSize,
	}, nil
}
