package querycache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPutThenGetRoundTrips(t *testing.T) {
	c, err := New(4)
	require.NoError(t, err)

	key := Key([]float64{0.1, 0.2, 0.3}, 44100)
	c.Put(key, "result")

	v, ok := c.Get(key)
	require.True(t, ok)
	assert.Equal(t, "result", v)
}

func TestGetMissReturnsFalse(t *testing.T) {
	c, err := New(4)
	require.NoError(t, err)

	_, ok := c.Get(12345)
	assert.False(t, ok)
}

func TestEvictionBoundsCapacity(t *testing.T) {
	c, err := New(2)
	require.NoError(t, err)

	c.Put(1, "a")
	c.Put(2, "b")
	c.Put(3, "c")

	assert.LessOrEqual(t, c.Len(), 2)
}

func TestKeyIsDeterministicForSameBuffer(t *testing.T) {
	pcm := make([]float64, 200)
	for i := range pcm {
		pcm[i] = float64(i) * 0.01
	}

	k1 := Key(pcm, 44100)
	k2 := Key(pcm, 44100)
	assert.Equal(t, k1, k2)
}

func TestKeyDiffersAcrossSampleRate(t *testing.T) {
	pcm := []float64{0.1, 0.2, 0.3}
	assert.NotEqual(t, Key(pcm, 44100), Key(pcm, 22050))
}

func TestDefaultCapacityUsedWhenNonPositive(t *testing.T) {
	c, err := New(0)
	require.NoError(t, err)
	require.NotNil(t, c)
}
