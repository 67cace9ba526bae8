package hashing

import (
	"testing"

	"github.com/sonica-audio/engine/internal/peaks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildHashesOnlyPairsLaterTargets(t *testing.T) {
	pks := []peaks.Peak{
		{Bin: 10, Frame: 0, Magnitude: 5},
		{Bin: 12, Frame: 2, Magnitude: 3},
		{Bin: 8, Frame: 5, Magnitude: 4},
	}
	cfg := DefaultConfig(44100, 2048)

	hashes := BuildHashes(pks, 4096, cfg)
	require.NotEmpty(t, hashes)

	for _, h := range hashes {
		assert.GreaterOrEqual(t, h.AnchorTime, 0.0)
	}
}

func TestBuildHashesRespectsFanOut(t *testing.T) {
	var pks []peaks.Peak
	pks = append(pks, peaks.Peak{Bin: 10, Frame: 0, Magnitude: 100})
	for f := 1; f <= 20; f++ {
		pks = append(pks, peaks.Peak{Bin: 10 + f, Frame: f, Magnitude: float64(f)})
	}

	cfg := DefaultConfig(44100, 2048)
	cfg.FanOut = 3

	hashes := BuildHashes(pks, 4096, cfg)
	// Every anchor pairs with at most FanOut later peaks: anchors at frames
	// 0..17 get 3 targets each, frames 18, 19 and 20 get 2, 1 and 0.
	assert.Equal(t, 3*18+2+1, len(hashes))
}

func TestQuantizeFrameDeltaZeroForSameFrame(t *testing.T) {
	assert.Equal(t, 0, QuantizeFrameDelta(0, 2048, 44100))
}

func TestPackIsDeterministic(t *testing.T) {
	h1 := pack(100, -5, 20)
	h2 := pack(100, -5, 20)
	assert.Equal(t, h1, h2)

	h3 := pack(100, 5, 20)
	assert.NotEqual(t, h1, h3)
}

func TestBuildHashesIdenticalInputsProduceIdenticalHashes(t *testing.T) {
	pks := []peaks.Peak{
		{Bin: 10, Frame: 0, Magnitude: 5},
		{Bin: 14, Frame: 3, Magnitude: 2},
	}
	cfg := DefaultConfig(44100, 2048)

	h1 := BuildHashes(pks, 4096, cfg)
	h2 := BuildHashes(pks, 4096, cfg)
	assert.Equal(t, h1, h2)
}
