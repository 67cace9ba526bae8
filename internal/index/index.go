// Package index owns the inverted hash index: enrollment appends
// (track_id, anchor_time) postings per hash, queries read posting lists to
// build per-candidate offset histograms.
package index

import (
	"sync"

	"github.com/google/uuid"
	"github.com/sonica-audio/engine/internal/engineerrors"
	"github.com/sonica-audio/engine/internal/hashing"
)

// Posting is one enrolled occurrence of a hash in a track.
type Posting struct {
	TrackID    uuid.UUID
	AnchorTime float64
}

// Index is a read-mostly-during-query, append-only-during-enrollment
// inverted index. A single mutex guards the whole map; postings lists are
// appended to but never mutated in place, so a reader holding a slice
// header from before a concurrent append observes a stable snapshot
// (monotonic: the query never loses writes already visible to it).
type Index struct {
	mu       sync.RWMutex
	postings map[hashing.Hash][]Posting
	version  uint16

	// enrollMu serializes enrollment per track id so that a track enrolled
	// twice never interleaves its own posting insertions.
	enrollMu sync.Map
}

// New returns an empty index tagged with the quantization version its
// postings were built under.
func New(version uint16) *Index {
	return &Index{
		postings: make(map[hashing.Hash][]Posting),
		version:  version,
	}
}

// Version reports the quantization version this index enforces.
func (idx *Index) Version() uint16 {
	return idx.version
}

// Enroll appends one posting per hash in the fingerprint's hash stream.
// Concurrent Enroll calls for the SAME track id are serialized; calls for
// distinct track ids may proceed in parallel.
func (idx *Index) Enroll(trackID uuid.UUID, hashes []hashing.TimedHash, fingerprintVersion uint16) error {
	if fingerprintVersion != idx.version {
		return engineerrors.VersionMismatch(idx.version, fingerprintVersion)
	}

	lockIface, _ := idx.enrollMu.LoadOrStore(trackID, &sync.Mutex{})
	lock := lockIface.(*sync.Mutex)
	lock.Lock()
	defer lock.Unlock()

	idx.mu.Lock()
	defer idx.mu.Unlock()
	for _, h := range hashes {
		idx.postings[h.Hash] = append(idx.postings[h.Hash], Posting{TrackID: trackID, AnchorTime: h.AnchorTime})
	}
	return nil
}

// Lookup returns the posting list for a single hash. The returned slice
// must not be mutated by the caller; appends by concurrent enrollment
// never touch previously returned slice headers (copy-on-grow semantics
// of Go's append are sufficient here since postings are never truncated).
func (idx *Index) Lookup(h hashing.Hash) []Posting {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.postings[h]
}

// TrackCount reports the number of distinct track ids with at least one
// posting. Useful for diagnostics; not on the query hot path.
func (idx *Index) TrackCount() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	seen := make(map[uuid.UUID]struct{})
	for _, list := range idx.postings {
		for _, p := range list {
			seen[p.TrackID] = struct{}{}
		}
	}
	return len(seen)
}
