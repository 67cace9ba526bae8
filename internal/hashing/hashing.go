// Package hashing builds the combinatorial peak-pair hashes ("constellation"
// hashing) used to populate and query the inverted index.
package hashing

import (
	"math"
	"sort"

	"github.com/sonica-audio/engine/internal/peaks"
)

// Version identifies the quantization/bit-packing layout used to build
// hashes. Fingerprints store this alongside their hashes; the index rejects
// enrollments, and the engine's query path rejects query fingerprints,
// whose version does not match the index's.
const Version uint16 = 1

const (
	anchorBinBits   = 20
	binDeltaBits    = 20
	frameDeltaBits  = 20
	anchorBinMask   = (1 << anchorBinBits) - 1
	binDeltaMask    = (1 << binDeltaBits) - 1
	frameDeltaMask  = (1 << frameDeltaBits) - 1
	binDeltaBias    = 1 << (binDeltaBits - 1)
)

// Hash is a 64-bit packed (anchor_bin, bin_delta, frame_delta) triple.
type Hash uint64

// TimedHash pairs a hash with the anchor's frame time, in seconds.
type TimedHash struct {
	Hash       Hash
	AnchorTime float64
}

// Config tunes the anchor/target fan-out window.
type Config struct {
	SampleRate      int
	HopSize         int
	MaxTimeDeltaS   float64 // bound on physical time between anchor and target, default 10s
	MaxBinDelta     int     // bound on |b_B - b_A|, default covers the full spectrum
	FanOut          int     // max targets per anchor, default 10
}

// DefaultConfig returns fan-out of 10 targets per anchor, bounded to 10
// physical seconds and no frequency-delta bound.
func DefaultConfig(sampleRate, hopSize int) Config {
	return Config{
		SampleRate:    sampleRate,
		HopSize:       hopSize,
		MaxTimeDeltaS: 10.0,
		MaxBinDelta:   1 << 30,
		FanOut:        10,
	}
}

// QuantizeBin quantizes a frequency bin to the nearest 10 Hz equivalent.
func QuantizeBin(bin, sampleRate, windowSize int) int {
	freq := float64(bin) * float64(sampleRate) / float64(windowSize)
	return int(math.Round(freq / 10))
}

// QuantizeFrameDelta quantizes a frame delta to the nearest 10 ms.
func QuantizeFrameDelta(frameDelta, hopSize, sampleRate int) int {
	timeMs := float64(frameDelta) * float64(hopSize) / float64(sampleRate) * 1000
	return int(math.Round(timeMs / 10))
}

func pack(anchorBinQ, binDeltaQ, frameDeltaQ int) Hash {
	biasedDelta := binDeltaQ + binDeltaBias
	return Hash(
		(uint64(anchorBinQ&anchorBinMask) << (binDeltaBits + frameDeltaBits)) |
			(uint64(biasedDelta&binDeltaMask) << frameDeltaBits) |
			uint64(frameDeltaQ&frameDeltaMask),
	)
}

// BuildHashes computes the anchor/target fan-out and returns the emitted
// (hash, anchor_time_seconds) stream in emission order: anchors sorted by
// frame, then for each anchor its targets in increasing time then
// decreasing magnitude, windowSize is needed to quantize bin to Hz.
func BuildHashes(pks []peaks.Peak, windowSize int, cfg Config) []TimedHash {
	sorted := make([]peaks.Peak, len(pks))
	copy(sorted, pks)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Frame != sorted[j].Frame {
			return sorted[i].Frame < sorted[j].Frame
		}
		return sorted[i].Bin < sorted[j].Bin
	})

	maxFrameDelta := int(cfg.MaxTimeDeltaS * float64(cfg.SampleRate) / float64(cfg.HopSize))

	var out []TimedHash
	for i, anchor := range sorted {
		targets := candidateTargets(sorted, i, maxFrameDelta, cfg.MaxBinDelta)
		if len(targets) > cfg.FanOut {
			targets = targets[:cfg.FanOut]
		}

		anchorTime := float64(anchor.Frame*cfg.HopSize) / float64(cfg.SampleRate)
		anchorBinQ := QuantizeBin(anchor.Bin, cfg.SampleRate, windowSize)

		for _, target := range targets {
			frameDelta := target.Frame - anchor.Frame
			binDeltaQ := QuantizeBin(target.Bin, cfg.SampleRate, windowSize) - anchorBinQ
			frameDeltaQ := QuantizeFrameDelta(frameDelta, cfg.HopSize, cfg.SampleRate)

			h := pack(anchorBinQ, binDeltaQ, frameDeltaQ)
			out = append(out, TimedHash{Hash: h, AnchorTime: anchorTime})
		}
	}

	return out
}

func candidateTargets(sorted []peaks.Peak, anchorIdx, maxFrameDelta, maxBinDelta int) []peaks.Peak {
	anchor := sorted[anchorIdx]

	var candidates []peaks.Peak
	for j := anchorIdx + 1; j < len(sorted); j++ {
		target := sorted[j]
		frameDelta := target.Frame - anchor.Frame
		if frameDelta <= 0 {
			continue
		}
		if frameDelta > maxFrameDelta {
			break
		}
		binDelta := target.Bin - anchor.Bin
		if binDelta < 0 {
			binDelta = -binDelta
		}
		if binDelta > maxBinDelta {
			continue
		}
		candidates = append(candidates, target)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Frame != candidates[j].Frame {
			return candidates[i].Frame < candidates[j].Frame
		}
		return candidates[i].Magnitude > candidates[j].Magnitude
	})

	return candidates
}
