// Package features computes the auxiliary descriptors (MFCC, chroma,
// onset/tempo, rhythm) fused with hash-matching to produce a robust
// similarity score on degraded audio.
package features

// Set is the auxiliary feature vector bundle attached to a fingerprint.
// All vectors are finite and NaN-free; producers clamp or skip to
// guarantee that.
type Set struct {
	MFCC       []float64 // mean,variance per coefficient: length 2*numCoeffs
	Chroma     [12]float64
	Tempo      float64 // BPM
	Rhythm     [4]float64
	FrameCount int // number of spectrogram frames the vectors were computed from
}

// NumCoeffs is the default number of cepstral coefficients retained.
const NumCoeffs = 13

// NumMelFilters is the default number of mel filters in the bank.
const NumMelFilters = 26

// OnsetLowHz and OnsetHighHz bound the default percussive band used for the
// onset envelope.
const (
	OnsetLowHz  = 80.0
	OnsetHighHz = 200.0
)

// MinTempoBPM and MaxTempoBPM bound the autocorrelation lag search.
const (
	MinTempoBPM = 60.0
	MaxTempoBPM = 200.0
)

// EarlyTerminationRatio is the fraction of the running-max correlation below
// which the tempo search stops scanning further lags.
const EarlyTerminationRatio = 0.8
