// Package metadatastore is the consumed interface to the external track
// metadata collaborator: get_track, put_track, search_by_text.
package metadatastore

import (
	"context"

	"github.com/google/uuid"
)

// TrackMetadata is returned alongside a match: whatever descriptive
// information the store holds about a track, keyed by its opaque id.
type TrackMetadata struct {
	TrackID     uuid.UUID
	Title       string
	Artist      string
	Album       string
	DurationSec float64
	Tags        []string
}

// Store is the consumed interface. get_track/put_track are used directly
// by the engine facade; search_by_text is out of scope internally (not
// called from the recognition path) but is part of the provided surface.
type Store interface {
	GetTrack(ctx context.Context, id uuid.UUID) (*TrackMetadata, error)
	PutTrack(ctx context.Context, meta TrackMetadata, fingerprintBlob []byte) error
	SearchByText(ctx context.Context, query string, limit int) ([]TrackMetadata, error)
}
