package fusion

import (
	"testing"

	"github.com/sonica-audio/engine/internal/features"
	"github.com/stretchr/testify/assert"
)

func TestScoreIsOneForIdenticalInputs(t *testing.T) {
	f := features.Set{
		MFCC:       []float64{1, 2, 3, 4},
		Chroma:     [12]float64{1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
		Tempo:      120,
		Rhythm:     [4]float64{1, 2, 3, 4},
		FrameCount: MinMFCCFrames,
	}
	in := Input{ModeCount: 100, TargetHashes: 100, Features: f}

	score := Score(in, in, DefaultWeights())
	assert.InDelta(t, 1.0, score, 1e-9)
}

func TestScoreZeroNormVectorYieldsZeroSimilarity(t *testing.T) {
	query := Input{ModeCount: 10, TargetHashes: 10, Features: features.Set{MFCC: []float64{0, 0, 0}, FrameCount: MinMFCCFrames}}
	candidate := Input{ModeCount: 10, TargetHashes: 10, Features: features.Set{MFCC: []float64{1, 2, 3}, FrameCount: MinMFCCFrames}}

	score := Score(query, candidate, Weights{MFCC: 1.0})
	assert.Equal(t, 0.0, score)
}

func TestScoreWithinBounds(t *testing.T) {
	query := Input{
		ModeCount:    40,
		TargetHashes: 100,
		Features: features.Set{
			MFCC:       []float64{5, -3, 2},
			Chroma:     [12]float64{0.5, 0.5},
			Tempo:      90,
			Rhythm:     [4]float64{2, 2, 2, 2},
			FrameCount: MinMFCCFrames,
		},
	}
	candidate := Input{
		ModeCount:    60,
		TargetHashes: 100,
		Features: features.Set{
			MFCC:       []float64{-5, 3, -2},
			Chroma:     [12]float64{0.1, 0.9},
			Tempo:      91,
			Rhythm:     [4]float64{1, 3, 1, 3},
			FrameCount: MinMFCCFrames,
		},
	}

	score := Score(query, candidate, DefaultWeights())
	assert.GreaterOrEqual(t, score, 0.0)
	assert.LessOrEqual(t, score, 1.0)
}

func TestMFCCConfidenceZeroBelowMinFrames(t *testing.T) {
	query := Input{TargetHashes: 1, Features: features.Set{MFCC: []float64{1, 2}, FrameCount: 1}}
	candidate := Input{TargetHashes: 1, Features: features.Set{MFCC: []float64{1, 2}, FrameCount: 1}}

	score := Score(query, candidate, Weights{MFCC: 1.0})
	assert.Equal(t, 0.0, score)
}

func TestLegacyJaccardScore(t *testing.T) {
	assert.InDelta(t, 0.5, LegacyJaccardScore(50, 100, 80), 1e-9)
	assert.Equal(t, 0.0, LegacyJaccardScore(0, 0, 0))
}
