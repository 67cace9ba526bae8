package fingerprint

import (
	"math"

	"github.com/sonica-audio/engine/internal/audioio"
	"github.com/sonica-audio/engine/internal/engineerrors"
)

// PreprocessLimits bounds the duration of signals accepted by Preprocess.
type PreprocessLimits struct {
	MinDurationSeconds float64
	MaxDurationSeconds float64
}

// DefaultPreprocessLimits matches config.rs's min_duration_s/max_duration_s
// defaults: 3s minimum (enough for a handful of anchor/target pairs), 30s
// maximum (bounds per-request hashing cost).
func DefaultPreprocessLimits() PreprocessLimits {
	return PreprocessLimits{MinDurationSeconds: 3.0, MaxDurationSeconds: 30.0}
}

// Preprocess validates raw mono PCM, resamples it to canonicalSampleRate
// if needed, and normalizes it to [-1, 1] peak amplitude. It rejects
// non-finite samples, silence, and out-of-bounds durations before any DSP
// work is attempted.
func Preprocess(pcm []float64, sampleRate, canonicalSampleRate int, limits PreprocessLimits) ([]float64, error) {
	if len(pcm) == 0 {
		return nil, engineerrors.BadFormat("signal is empty")
	}

	for _, s := range pcm {
		if math.IsNaN(s) || math.IsInf(s, 0) {
			return nil, engineerrors.BadFormat("signal contains non-finite samples")
		}
	}

	resampled := audioio.Resample(pcm, sampleRate, canonicalSampleRate)

	peak := 0.0
	for _, s := range resampled {
		if abs := math.Abs(s); abs > peak {
			peak = abs
		}
	}

	minSamples := int(limits.MinDurationSeconds * float64(canonicalSampleRate))
	maxSamples := int(limits.MaxDurationSeconds * float64(canonicalSampleRate))
	if len(resampled) < minSamples {
		return nil, engineerrors.ShortSignal(len(resampled), minSamples)
	}
	if len(resampled) > maxSamples {
		return nil, engineerrors.LongSignal(len(resampled), maxSamples)
	}

	if peak == 0 {
		return nil, engineerrors.BadFormat("signal is silent")
	}

	normalized := make([]float64, len(resampled))
	scale := 1.0 / peak
	for i, s := range resampled {
		normalized[i] = s * scale
	}
	return normalized, nil
}
