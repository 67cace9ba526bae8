package features

import "github.com/sonica-audio/engine/internal/spectrogram"

// OnsetEnvelope sums magnitude across the [lowHz, highHz] percussive band per
// frame, producing a one-dimensional onset-strength signal.
func OnsetEnvelope(spec *spectrogram.Spectrogram, lowHz, highHz float64) []float64 {
	lowBin := int(lowHz * float64(spec.WindowSize) / float64(spec.SampleRate))
	highBin := int(highHz * float64(spec.WindowSize) / float64(spec.SampleRate))
	if lowBin < 0 {
		lowBin = 0
	}

	env := make([]float64, spec.NumFrames())
	for f, frame := range spec.Frames {
		sum := 0.0
		for bin := lowBin; bin <= highBin && bin < len(frame); bin++ {
			sum += frame[bin]
		}
		env[f] = sum
	}

	return env
}
