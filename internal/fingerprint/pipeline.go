package fingerprint

import (
	"sync"

	"github.com/sonica-audio/engine/internal/engineerrors"
	"github.com/sonica-audio/engine/internal/features"
	"github.com/sonica-audio/engine/internal/hashing"
	"github.com/sonica-audio/engine/internal/peaks"
	"github.com/sonica-audio/engine/internal/spectrogram"
)

// Generate runs the full pipeline on a preprocessed, canonical-rate signal:
// the hash path (C2 coarse spectrogram -> C3 peaks -> C4 hashes) and the
// auxiliary feature path (C2 fine spectrogram -> C5 features) run
// concurrently and are joined before returning, per the concurrency model's
// "hash path and auxiliary feature path may run concurrently" requirement.
func Generate(signal []float64, cfg PipelineConfig) (*Fingerprint, error) {
	var (
		wg          sync.WaitGroup
		hashSpec    *spectrogram.Spectrogram
		hashErr     error
		featureSpec *spectrogram.Spectrogram
		featureErr  error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		hashSpec, hashErr = spectrogram.Build(signal, cfg.SampleRate, cfg.WindowSize, cfg.HopSize, cfg.WindowShape)
	}()
	go func() {
		defer wg.Done()
		featureSpec, featureErr = spectrogram.Build(signal, cfg.SampleRate, cfg.MFCCWindowSize, cfg.MFCCHopSize, cfg.WindowShape)
	}()
	wg.Wait()

	if hashErr != nil {
		return nil, hashErr
	}
	if featureErr != nil {
		return nil, featureErr
	}

	extractedPeaks := peaks.Extract(hashSpec, cfg.PeakConfig)
	hashes := hashing.BuildHashes(extractedPeaks, cfg.WindowSize, cfg.HashConfig)
	featureSet := features.Extract(featureSpec)

	return &Fingerprint{
		Hashes: hashes,
		Peaks:  extractedPeaks,
		Metadata: Metadata{
			SampleRate:      cfg.SampleRate,
			DurationSeconds: float64(len(signal)) / float64(cfg.SampleRate),
			WindowSize:      cfg.WindowSize,
			HopSize:         cfg.HopSize,
			NumBins:         cfg.WindowSize/2 + 1,
		},
		Features:     featureSet,
		IndexVersion: hashing.Version,
	}, nil
}

// Validate enforces the anchor-time invariant: every (hash, anchor_time)
// pair falls within [0, duration). It does not check the peak set.
func (fp *Fingerprint) Validate() error {
	for _, h := range fp.Hashes {
		if h.AnchorTime < 0 || h.AnchorTime >= fp.Metadata.DurationSeconds {
			return engineerrors.InvariantViolated("hash anchor time outside [0, duration)")
		}
	}
	return nil
}
