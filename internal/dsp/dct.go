package dsp

import "math"

// DCT2 computes the first numCoeffs coefficients of the Type-II discrete
// cosine transform of in, writing them to a freshly allocated slice.
// Used to turn log-mel-filter energies into MFCCs.
func DCT2(in []float64, numCoeffs int) []float64 {
	n := len(in)
	out := make([]float64, numCoeffs)

	for k := 0; k < numCoeffs; k++ {
		sum := 0.0
		for i := 0; i < n; i++ {
			sum += in[i] * math.Cos(math.Pi*float64(k)*(float64(i)+0.5)/float64(n))
		}
		out[k] = sum
	}

	return out
}

// LogMel applies a floor to avoid log(0) and takes the natural log of each
// mel-filter energy, the standard pre-DCT step in MFCC extraction.
func LogMel(melEnergies []float64) []float64 {
	const floor = 1e-10
	out := make([]float64, len(melEnergies))
	for i, e := range melEnergies {
		if e < floor {
			e = floor
		}
		out[i] = math.Log(e)
	}
	return out
}
