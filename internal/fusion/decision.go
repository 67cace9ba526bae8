package fusion

// Decision is the outcome of re-ranking the top-K candidates from the
// matcher: either the single best candidate accepted, or no match.
type Decision struct {
	Accepted   bool
	TrackIndex int
	Score      float64
	PerFeature PerFeatureScores
}

// PerFeatureScores exposes the individual similarity components behind a
// fused score, for diagnostics and for the S1 scenario's sim_hash check.
type PerFeatureScores struct {
	Hash   float64
	MFCC   float64
	Chroma float64
	Rhythm float64
}

// DefaultThreshold matches config.rs's recognition_threshold default.
const DefaultThreshold = 0.8

// Rank scores every candidate against the query and returns the decision
// for the single best-scoring one. candidates and their Inputs must be
// index-aligned (candidates[i] scored against candidateInputs[i]).
func Rank(query Input, candidateInputs []Input, w Weights, threshold float64) Decision {
	bestScore := -1.0
	bestIdx := -1
	var bestDetail PerFeatureScores

	for i, c := range candidateInputs {
		score, detail := ScoreWithDetail(query, c, w)
		if score > bestScore {
			bestScore = score
			bestIdx = i
			bestDetail = detail
		}
	}

	if bestIdx < 0 || bestScore < threshold {
		return Decision{Accepted: false}
	}

	return Decision{
		Accepted:   true,
		TrackIndex: bestIdx,
		Score:      bestScore,
		PerFeature: bestDetail,
	}
}
