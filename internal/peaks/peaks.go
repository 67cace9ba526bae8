// Package peaks extracts local-maxima spectral peaks per frame using an
// adaptive, locally-computed magnitude threshold, then applies a global cap
// to bound the downstream hash budget.
package peaks

import (
	"math"
	"sort"

	"github.com/sonica-audio/engine/internal/spectrogram"
)

// Peak is a local maximum in the spectrogram: the triple (frequency_bin,
// frame_index, magnitude).
type Peak struct {
	Bin       int
	Frame     int
	Magnitude float64
}

// Config tunes the adaptive-threshold extraction.
type Config struct {
	NeighborhoodRadius int     // bins on each side used to compute local mean/stddev, default 5
	ThresholdFactor    float64 // multiplier on stddev above local mean, default 2.0
	GlobalCap          int     // max peaks retained across the whole spectrogram, default 1000
}

// DefaultConfig returns the spec defaults: ±5 bin neighborhood, mean+2*stddev
// threshold, global cap of 1000 peaks.
func DefaultConfig() Config {
	return Config{
		NeighborhoodRadius: 5,
		ThresholdFactor:    2.0,
		GlobalCap:          1000,
	}
}

// Extract scans every frame's interior bins for local maxima that also clear
// the adaptive threshold, then globally retains the top GlobalCap peaks by
// magnitude. Ties are broken by lower frame index then lower bin (stable).
func Extract(spec *spectrogram.Spectrogram, cfg Config) []Peak {
	var all []Peak

	for frame, magnitudes := range spec.Frames {
		all = append(all, extractFrame(magnitudes, frame, cfg)...)
	}

	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Magnitude != all[j].Magnitude {
			return all[i].Magnitude > all[j].Magnitude
		}
		if all[i].Frame != all[j].Frame {
			return all[i].Frame < all[j].Frame
		}
		return all[i].Bin < all[j].Bin
	})

	if len(all) > cfg.GlobalCap {
		all = all[:cfg.GlobalCap]
	}

	// Restore emission order: by frame, then bin, for reproducibility.
	sort.Slice(all, func(i, j int) bool {
		if all[i].Frame != all[j].Frame {
			return all[i].Frame < all[j].Frame
		}
		return all[i].Bin < all[j].Bin
	})

	return all
}

func extractFrame(magnitudes []float64, frame int, cfg Config) []Peak {
	n := len(magnitudes)
	if n == 0 {
		return nil
	}

	var peaks []Peak
	for bin := 1; bin < n-1; bin++ {
		mag := magnitudes[bin]
		if mag <= 0 {
			continue
		}
		if mag <= magnitudes[bin-1] || mag <= magnitudes[bin+1] {
			continue
		}

		threshold := adaptiveThreshold(magnitudes, bin, cfg.NeighborhoodRadius, cfg.ThresholdFactor)
		if mag > threshold {
			peaks = append(peaks, Peak{Bin: bin, Frame: frame, Magnitude: mag})
		}
	}

	return peaks
}

func adaptiveThreshold(magnitudes []float64, bin, radius int, factor float64) float64 {
	lo := bin - radius
	if lo < 0 {
		lo = 0
	}
	hi := bin + radius
	if hi >= len(magnitudes) {
		hi = len(magnitudes) - 1
	}

	sum, count := 0.0, 0
	for i := lo; i <= hi; i++ {
		sum += magnitudes[i]
		count++
	}
	mean := sum / float64(count)

	variance := 0.0
	for i := lo; i <= hi; i++ {
		d := magnitudes[i] - mean
		variance += d * d
	}
	variance /= float64(count)
	stddev := math.Sqrt(variance)

	return mean + factor*stddev
}
