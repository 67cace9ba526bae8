// Package vectorservice is the optional external vector service
// collaborator: the Service interface, a REST adapter, and NoopService,
// which satisfies the interface by doing nothing. The engine facade holds a
// Service but does not call it on the enroll or recognize path, so
// candidates are decided by the offset-histogram matcher alone.
package vectorservice

import "context"

// Match is one result from a similarity query.
type Match struct {
	ID       string
	Score    float64
	Metadata map[string]string
}

// Service is the consumed interface to an external vector database.
type Service interface {
	Upsert(ctx context.Context, id string, vector []float32, metadata map[string]string) error
	Query(ctx context.Context, vector []float32, topK int, filter map[string]string) ([]Match, error)
}

// NoopService is the null implementation: every call succeeds trivially
// and Query returns no results, so candidate narrowing is a no-op and the
// matcher alone decides candidates.
type NoopService struct{}

func (NoopService) Upsert(context.Context, string, []float32, map[string]string) error {
	return nil
}

func (NoopService) Query(context.Context, []float32, int, map[string]string) ([]Match, error) {
	return nil, nil
}
