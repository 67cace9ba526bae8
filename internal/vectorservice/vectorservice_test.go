package vectorservice

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoopServiceUpsertSucceeds(t *testing.T) {
	var svc Service = NoopService{}
	err := svc.Upsert(context.Background(), "track-1", []float32{0.1, 0.2}, nil)
	require.NoError(t, err)
}

func TestNoopServiceQueryReturnsNoMatches(t *testing.T) {
	var svc Service = NoopService{}
	matches, err := svc.Query(context.Background(), []float32{0.1, 0.2}, 10, nil)
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestRestClientRejectsWrongDimensionVector(t *testing.T) {
	client := NewRestClient("fake-key", "us-west1-gcp", "sonica-music", 1024)

	err := client.Upsert(context.Background(), "track-1", make([]float32, 16), nil)
	require.Error(t, err)

	_, err = client.Query(context.Background(), make([]float32, 16), 10, nil)
	require.Error(t, err)
}
