// Package querycache memoizes recent query outcomes keyed by a content
// hash of the query PCM, short-circuiting duplicate queries at the engine
// facade boundary.
package querycache

import (
	"encoding/binary"
	"hash/fnv"

	lru "github.com/hashicorp/golang-lru"
	"github.com/sonica-audio/engine/internal/metrics"
)

// DefaultCapacity matches config.rs's cache_capacity default.
const DefaultCapacity = 10000

// Cache is a fixed-capacity LRU keyed by content hash. The key derivation
// is a memoization hint, not a content-addressed identifier: two distinct
// buffers that share their first and last samples collide. This matches
// the behavior being preserved from the source and is documented as
// not collision-resistant.
type Cache struct {
	inner *lru.Cache
}

// New returns a cache with the given capacity, falling back to
// DefaultCapacity when capacity <= 0.
func New(capacity int) (*Cache, error) {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	inner, err := lru.New(capacity)
	if err != nil {
		return nil, err
	}
	return &Cache{inner: inner}, nil
}

// Key hashes the first and last 50 samples of a PCM buffer. Not
// collision-resistant; callers must not rely on it for content addressing,
// only for duplicate-query memoization.
func Key(pcm []float64, sampleRate int) uint64 {
	h := fnv.New64a()

	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(sampleRate))
	h.Write(buf[:])

	window := 50
	writeSample := func(s float64) {
		binary.LittleEndian.PutUint64(buf[:], uint64(int64(s*1e9)))
		h.Write(buf[:])
	}

	n := len(pcm)
	for i := 0; i < window && i < n; i++ {
		writeSample(pcm[i])
	}
	for i := n - window; i < n; i++ {
		if i >= 0 {
			writeSample(pcm[i])
		}
	}
	return h.Sum64()
}

// Get returns a cached value and whether it was present.
func (c *Cache) Get(key uint64) (any, bool) {
	v, ok := c.inner.Get(key)
	if ok {
		metrics.Get().QueryCacheHitsTotal.WithLabelValues().Inc()
	} else {
		metrics.Get().QueryCacheMissesTotal.WithLabelValues().Inc()
	}
	return v, ok
}

// Put inserts or refreshes a cached value. If eviction occurs as a result,
// it is recorded as a metric.
func (c *Cache) Put(key uint64, value any) {
	evicted := c.inner.Add(key, value)
	if evicted {
		metrics.Get().QueryCacheEvictions.WithLabelValues().Inc()
	}
}

// Len reports the number of entries currently cached.
func (c *Cache) Len() int {
	return c.inner.Len()
}
