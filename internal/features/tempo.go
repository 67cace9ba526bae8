package features

import "math"

// EstimateTempo autocorrelates the onset envelope over lags corresponding to
// [MinTempoBPM, MaxTempoBPM], returning the best lag's BPM. The scan
// terminates early once correlation falls below EarlyTerminationRatio times
// the running maximum.
func EstimateTempo(onset []float64, sampleRate, hopSize int) float64 {
	n := len(onset)
	if n < 2 {
		return 0
	}

	frameRate := float64(sampleRate) / float64(hopSize)
	minLag := int(frameRate * 60 / MaxTempoBPM)
	maxLag := int(frameRate * 60 / MinTempoBPM)
	if minLag < 1 {
		minLag = 1
	}
	if maxLag >= n {
		maxLag = n - 1
	}
	if minLag > maxLag {
		return 0
	}

	mean := average(onset)
	centered := make([]float64, n)
	for i, v := range onset {
		centered[i] = v - mean
	}

	bestLag := minLag
	bestCorr := math.Inf(-1)
	runningMax := math.Inf(-1)

	for lag := minLag; lag <= maxLag; lag++ {
		corr := autocorrelate(centered, lag)
		if corr > runningMax {
			runningMax = corr
		}
		if corr > bestCorr {
			bestCorr = corr
			bestLag = lag
		}
		if runningMax > 0 && corr < EarlyTerminationRatio*runningMax {
			break
		}
	}

	if bestLag == 0 {
		return 0
	}
	return frameRate * 60 / float64(bestLag)
}

func autocorrelate(x []float64, lag int) float64 {
	sum := 0.0
	for i := 0; i+lag < len(x); i++ {
		sum += x[i] * x[i+lag]
	}
	return sum
}

func average(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range x {
		sum += v
	}
	return sum / float64(len(x))
}
