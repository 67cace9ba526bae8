package index

import (
	"math"
	"sort"

	"github.com/google/uuid"
	"github.com/sonica-audio/engine/internal/engineerrors"
	"github.com/sonica-audio/engine/internal/hashing"
)

// MatchConfig tunes offset-histogram scoring.
type MatchConfig struct {
	BinWidthSeconds float64
	MinMatches      int
	DominanceRatio  float64
	TopK            int
}

// DefaultMatchConfig returns spec.md §4.6's defaults: 20ms histogram bins,
// a 5-match floor, a 2x dominance-ratio requirement, top 100 candidates.
func DefaultMatchConfig() MatchConfig {
	return MatchConfig{
		BinWidthSeconds: 0.020,
		MinMatches:      5,
		DominanceRatio:  2.0,
		TopK:            100,
	}
}

// Candidate is one track surviving the offset-histogram screen, carrying
// enough to drive fusion re-ranking (C7) without a second index pass.
type Candidate struct {
	TrackID        uuid.UUID
	ModeCount      int
	DominanceRatio float64
	OffsetSeconds  float64 // query-to-track time alignment at the histogram's mode bin
}

// Match builds per-candidate time-difference histograms from the query's
// hash stream and returns the top-K candidates sorted by mode count
// descending, ties broken by dominance ratio descending.
func Match(idx *Index, queryHashes []hashing.TimedHash, cfg MatchConfig) ([]Candidate, error) {
	if len(queryHashes) == 0 {
		return nil, engineerrors.EmptyQueryFingerprint()
	}

	histograms := make(map[uuid.UUID]map[int64]int)
	for _, qh := range queryHashes {
		for _, posting := range idx.Lookup(qh.Hash) {
			delta := posting.AnchorTime - qh.AnchorTime
			bin := int64(math.Round(delta / cfg.BinWidthSeconds))

			trackHist, ok := histograms[posting.TrackID]
			if !ok {
				trackHist = make(map[int64]int)
				histograms[posting.TrackID] = trackHist
			}
			trackHist[bin]++
		}
	}

	candidates := make([]Candidate, 0, len(histograms))
	for trackID, hist := range histograms {
		mode, modeBin, second := topTwoModes(hist)
		if mode < cfg.MinMatches {
			continue
		}
		ratio := math.Inf(1)
		if second > 0 {
			ratio = float64(mode) / float64(second)
		}
		if ratio < cfg.DominanceRatio {
			continue
		}
		candidates = append(candidates, Candidate{
			TrackID:        trackID,
			ModeCount:      mode,
			DominanceRatio: ratio,
			OffsetSeconds:  float64(modeBin) * cfg.BinWidthSeconds,
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].ModeCount != candidates[j].ModeCount {
			return candidates[i].ModeCount > candidates[j].ModeCount
		}
		return candidates[i].DominanceRatio > candidates[j].DominanceRatio
	})

	if len(candidates) > cfg.TopK {
		candidates = candidates[:cfg.TopK]
	}
	return candidates, nil
}

func topTwoModes(hist map[int64]int) (first int, firstBin int64, second int) {
	for bin, count := range hist {
		switch {
		case count > first:
			second = first
			first = count
			firstBin = bin
		case count > second:
			second = count
		}
	}
	return first, firstBin, second
}
