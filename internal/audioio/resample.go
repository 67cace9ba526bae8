package audioio

// Resample performs linear-interpolation resampling from sourceRate to
// targetRate. Preprocess uses this to bring arbitrary input sample rates
// to the canonical rate before any DSP stage runs.
func Resample(signal []float64, sourceRate, targetRate int) []float64 {
	if sourceRate == targetRate || len(signal) == 0 {
		return signal
	}

	ratio := float64(targetRate) / float64(sourceRate)
	outLen := int(float64(len(signal)) * ratio)
	out := make([]float64, outLen)

	for i := range out {
		srcPos := float64(i) / ratio
		idx := int(srcPos)
		frac := srcPos - float64(idx)

		if idx+1 < len(signal) {
			out[i] = signal[idx]*(1-frac) + signal[idx+1]*frac
		} else if idx < len(signal) {
			out[i] = signal[idx]
		}
	}
	return out
}
