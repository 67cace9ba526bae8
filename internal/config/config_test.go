package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	os.Clearenv()

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 44100, cfg.Audio.SampleRate)
	assert.Equal(t, 4096, cfg.Audio.WindowSize)
	assert.Equal(t, 2048, cfg.Audio.HopSize)
	assert.Equal(t, 3.0, cfg.Audio.MinDurationS)
	assert.Equal(t, 30.0, cfg.Audio.MaxDurationS)

	assert.Equal(t, 0.8, cfg.Recognition.Threshold)
	assert.Equal(t, 100, cfg.Recognition.MaxCandidates)
	assert.Equal(t, 10000, cfg.Recognition.CacheCapacity)

	assert.Equal(t, 1024, cfg.VectorDB.Dimensions)
}

func TestLoadOverridesFromEnv(t *testing.T) {
	os.Clearenv()
	os.Setenv("SONICA_SAMPLE_RATE", "22050")
	os.Setenv("SONICA_RECOGNITION_THRESHOLD", "0.9")
	defer os.Clearenv()

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 22050, cfg.Audio.SampleRate)
	assert.Equal(t, 0.9, cfg.Recognition.Threshold)
}
