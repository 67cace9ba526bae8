package vectorservice

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sonica-audio/engine/internal/engineerrors"
	"github.com/sonica-audio/engine/internal/metrics"
)

// RestClient talks to a Pinecone-shaped vector database over its HTTP
// API: upsert/query by vector, with fixed-dimension vectors.
type RestClient struct {
	http       *resty.Client
	apiKey     string
	indexName  string
	dimensions int
}

// NewRestClient builds a client against a Pinecone-style index endpoint.
// Default per-call timeout is 5s, matching the external-call timeout
// default.
func NewRestClient(apiKey, environment, indexName string, dimensions int) *RestClient {
	baseURL := fmt.Sprintf("https://%s-%s.svc.pinecone.io", indexName, environment)
	http := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(5 * time.Second).
		SetHeader("Api-Key", apiKey).
		SetHeader("Content-Type", "application/json")

	return &RestClient{http: http, apiKey: apiKey, indexName: indexName, dimensions: dimensions}
}

type upsertVector struct {
	ID       string            `json:"id"`
	Values   []float32         `json:"values"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

type upsertRequest struct {
	Vectors []upsertVector `json:"vectors"`
}

func (c *RestClient) Upsert(ctx context.Context, id string, vector []float32, metadata map[string]string) error {
	if len(vector) != c.dimensions {
		return engineerrors.BadFormat(fmt.Sprintf("vector has %d dimensions, index expects %d", len(vector), c.dimensions))
	}

	start := time.Now()
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(upsertRequest{Vectors: []upsertVector{{ID: id, Values: vector, Metadata: metadata}}}).
		Post("/vectors/upsert")
	metrics.Get().VectorServiceDuration.WithLabelValues("upsert").Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.Get().VectorServiceErrors.WithLabelValues("upsert").Inc()
		return engineerrors.Unavailable("vector service", err)
	}
	if resp.IsError() {
		metrics.Get().VectorServiceErrors.WithLabelValues("upsert").Inc()
		return engineerrors.Unavailable("vector service", fmt.Errorf("upsert returned status %d", resp.StatusCode()))
	}
	return nil
}

type queryRequest struct {
	Vector          []float32         `json:"vector"`
	TopK            int               `json:"top_k"`
	IncludeMetadata bool              `json:"include_metadata"`
	Filter          map[string]string `json:"filter,omitempty"`
}

type queryMatch struct {
	ID       string            `json:"id"`
	Score    float64           `json:"score"`
	Metadata map[string]string `json:"metadata"`
}

type queryResponse struct {
	Matches []queryMatch `json:"matches"`
}

func (c *RestClient) Query(ctx context.Context, vector []float32, topK int, filter map[string]string) ([]Match, error) {
	if len(vector) != c.dimensions {
		return nil, engineerrors.BadFormat(fmt.Sprintf("vector has %d dimensions, index expects %d", len(vector), c.dimensions))
	}

	start := time.Now()
	var parsed queryResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(queryRequest{Vector: vector, TopK: topK, IncludeMetadata: true, Filter: filter}).
		SetResult(&parsed).
		Post("/query")
	metrics.Get().VectorServiceDuration.WithLabelValues("query").Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.Get().VectorServiceErrors.WithLabelValues("query").Inc()
		return nil, engineerrors.Unavailable("vector service", err)
	}
	if resp.IsError() {
		metrics.Get().VectorServiceErrors.WithLabelValues("query").Inc()
		return nil, engineerrors.Unavailable("vector service", fmt.Errorf("query returned status %d", resp.StatusCode()))
	}

	out := make([]Match, 0, len(parsed.Matches))
	for _, m := range parsed.Matches {
		out = append(out, Match{ID: m.ID, Score: m.Score, Metadata: m.Metadata})
	}
	return out, nil
}
