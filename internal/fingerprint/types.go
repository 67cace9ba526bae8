// Package fingerprint owns the Fingerprint data model, PCM preprocessing,
// and the orchestration of spectrogram -> peaks -> hashes for the hash path,
// plus the versioned binary serialized form exchanged with external stores.
package fingerprint

import (
	"github.com/sonica-audio/engine/internal/dsp"
	"github.com/sonica-audio/engine/internal/features"
	"github.com/sonica-audio/engine/internal/hashing"
	"github.com/sonica-audio/engine/internal/peaks"
)

// Metadata describes the parameters a fingerprint was produced under.
type Metadata struct {
	SampleRate      int
	DurationSeconds float64
	WindowSize      int
	HopSize         int
	NumBins         int
}

// Fingerprint is a value produced by the pipeline: the hash stream (insertion
// order preserved, duplicates permitted), the retained peak set, the
// auxiliary feature vectors, and the metadata/version needed to serialize
// and to detect quantization mismatches.
type Fingerprint struct {
	Hashes       []hashing.TimedHash
	Peaks        []peaks.Peak
	Metadata     Metadata
	Features     features.Set
	IndexVersion uint16
}

// PipelineConfig tunes both the hash path (coarse spectrogram) and the
// auxiliary feature path (fine spectrogram).
type PipelineConfig struct {
	SampleRate int

	WindowSize  int
	HopSize     int
	WindowShape dsp.Shape

	MFCCWindowSize int
	MFCCHopSize    int

	PeakConfig peaks.Config
	HashConfig hashing.Config
}

// DefaultPipelineConfig returns spec.md §4.2's defaults: W=4096,H=2048 for
// hash fingerprinting, W=2048,H=256 for the finer-grained auxiliary path.
func DefaultPipelineConfig(sampleRate int) PipelineConfig {
	return PipelineConfig{
		SampleRate:     sampleRate,
		WindowSize:     4096,
		HopSize:        2048,
		WindowShape:    dsp.Hamming,
		MFCCWindowSize: 2048,
		MFCCHopSize:    256,
		PeakConfig:     peaks.DefaultConfig(),
		HashConfig:     hashing.DefaultConfig(sampleRate, 2048),
	}
}
