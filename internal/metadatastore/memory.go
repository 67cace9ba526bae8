package metadatastore

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore is an in-process Store, used in tests and in deployments
// without a configured Postgres backend.
type MemoryStore struct {
	mu     sync.RWMutex
	tracks map[uuid.UUID]TrackMetadata
	blobs  map[uuid.UUID][]byte
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tracks: make(map[uuid.UUID]TrackMetadata),
		blobs:  make(map[uuid.UUID][]byte),
	}
}

func (m *MemoryStore) GetTrack(_ context.Context, id uuid.UUID) (*TrackMetadata, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	meta, ok := m.tracks[id]
	if !ok {
		return nil, nil
	}
	return &meta, nil
}

func (m *MemoryStore) PutTrack(_ context.Context, meta TrackMetadata, fingerprintBlob []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.tracks[meta.TrackID] = meta
	m.blobs[meta.TrackID] = fingerprintBlob
	return nil
}

func (m *MemoryStore) SearchByText(_ context.Context, query string, limit int) ([]TrackMetadata, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	query = strings.ToLower(query)
	var out []TrackMetadata
	for _, meta := range m.tracks {
		if strings.Contains(strings.ToLower(meta.Title), query) || strings.Contains(strings.ToLower(meta.Artist), query) {
			out = append(out, meta)
			if len(out) >= limit {
				break
			}
		}
	}
	return out, nil
}
