package peaks

import (
	"testing"

	"github.com/sonica-audio/engine/internal/spectrogram"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flatSpectrogram(numFrames, numBins int) *spectrogram.Spectrogram {
	frames := make([][]float64, numFrames)
	for f := range frames {
		frames[f] = make([]float64, numBins)
	}
	return &spectrogram.Spectrogram{Frames: frames, SampleRate: 44100, WindowSize: (numBins - 1) * 2, HopSize: 2048}
}

func TestZeroEnergyFrameYieldsNoPeaks(t *testing.T) {
	spec := flatSpectrogram(4, 64)
	got := Extract(spec, DefaultConfig())
	assert.Empty(t, got)
}

func TestPeakStrictlyExceedsNeighbors(t *testing.T) {
	spec := flatSpectrogram(2, 32)
	spec.Frames[0][10] = 5.0
	spec.Frames[0][9] = 1.0
	spec.Frames[0][11] = 1.0

	got := Extract(spec, DefaultConfig())
	require.Len(t, got, 1)
	assert.Equal(t, 10, got[0].Bin)
	assert.Equal(t, 0, got[0].Frame)

	for _, p := range got {
		frame := spec.Frames[p.Frame]
		assert.Greater(t, frame[p.Bin], frame[p.Bin-1])
		assert.Greater(t, frame[p.Bin], frame[p.Bin+1])
	}
}

func TestGlobalCapBoundsPeakCount(t *testing.T) {
	spec := flatSpectrogram(10, 64)
	for f := 0; f < 10; f++ {
		for bin := 1; bin < 63; bin += 2 {
			spec.Frames[f][bin] = float64(bin + f)
		}
	}

	cfg := DefaultConfig()
	cfg.GlobalCap = 20
	got := Extract(spec, cfg)
	assert.LessOrEqual(t, len(got), 20)
}

func TestTiesBrokenByFrameThenBin(t *testing.T) {
	spec := flatSpectrogram(2, 16)
	spec.Frames[0][5] = 3.0
	spec.Frames[1][5] = 3.0

	cfg := DefaultConfig()
	cfg.GlobalCap = 1
	got := Extract(spec, cfg)
	require.Len(t, got, 1)
	assert.Equal(t, 0, got[0].Frame)
}
