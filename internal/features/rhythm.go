package features

// RhythmPattern sums onset-envelope energy over each of the first 4
// beat-length windows at the estimated tempo. A non-positive tempo (no
// reliable periodicity found) yields the zero pattern.
func RhythmPattern(onset []float64, tempoBPM float64, sampleRate, hopSize int) [4]float64 {
	var pattern [4]float64
	if tempoBPM <= 0 {
		return pattern
	}

	frameRate := float64(sampleRate) / float64(hopSize)
	beatLengthFrames := int(frameRate * 60 / tempoBPM)
	if beatLengthFrames < 1 {
		beatLengthFrames = 1
	}

	for w := 0; w < 4; w++ {
		start := w * beatLengthFrames
		end := start + beatLengthFrames
		sum := 0.0
		for i := start; i < end && i < len(onset); i++ {
			sum += onset[i]
		}
		pattern[w] = sum
	}

	return pattern
}
