// Package metrics holds all Prometheus metrics for the fingerprint/match
// engine.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the engine.
type Metrics struct {
	// Pipeline stage metrics
	FingerprintDuration prometheus.HistogramVec
	FingerprintsTotal   prometheus.CounterVec
	HashesPerTrack      prometheus.HistogramVec
	PeaksPerTrack       prometheus.HistogramVec

	// Matcher metrics
	MatchDuration     prometheus.HistogramVec
	MatchesTotal      prometheus.CounterVec
	CandidatesPerQuery prometheus.HistogramVec

	// Fusion metrics
	FusionScore prometheus.HistogramVec

	// Query cache metrics
	QueryCacheHitsTotal   prometheus.CounterVec
	QueryCacheMissesTotal prometheus.CounterVec
	QueryCacheEvictions   prometheus.CounterVec

	// Index metrics
	IndexPostingsTotal prometheus.GaugeVec
	IndexTracksTotal   prometheus.GaugeVec

	// External collaborator metrics
	MetadataStoreDuration prometheus.HistogramVec
	MetadataStoreErrors   prometheus.CounterVec
	VectorServiceDuration prometheus.HistogramVec
	VectorServiceErrors   prometheus.CounterVec
	RedisOperationDuration prometheus.HistogramVec
	RedisOperationsTotal  prometheus.CounterVec

	// Error metrics
	ErrorsTotal prometheus.CounterVec
}

var (
	instance *Metrics
	once     sync.Once
)

// Initialize creates and registers all Prometheus metrics.
func Initialize() *Metrics {
	once.Do(func() {
		instance = &Metrics{
			FingerprintDuration: *promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "fingerprint_duration_seconds",
					Help:    "Time to generate a fingerprint from PCM",
					Buckets: []float64{.01, .05, .1, .25, .5, 1, 2.5, 5},
				},
				[]string{"stage"},
			),
			FingerprintsTotal: *promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "fingerprints_total",
					Help: "Total number of fingerprints generated",
				},
				[]string{"outcome"},
			),
			HashesPerTrack: *promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "hashes_per_track",
					Help:    "Number of hashes produced per fingerprint",
					Buckets: prometheus.ExponentialBuckets(10, 2, 12),
				},
				[]string{},
			),
			PeaksPerTrack: *promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "peaks_per_track",
					Help:    "Number of spectral peaks retained per fingerprint",
					Buckets: prometheus.ExponentialBuckets(10, 2, 12),
				},
				[]string{},
			),

			MatchDuration: *promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "match_duration_seconds",
					Help:    "Time to run the offset-histogram matcher",
					Buckets: []float64{.001, .005, .01, .05, .1, .5, 1},
				},
				[]string{},
			),
			MatchesTotal: *promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "matches_total",
					Help: "Total number of query outcomes by result",
				},
				[]string{"outcome"},
			),
			CandidatesPerQuery: *promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "candidates_per_query",
					Help:    "Number of candidates surviving the offset-histogram screen",
					Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100},
				},
				[]string{},
			),

			FusionScore: *promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "fusion_score",
					Help:    "Fused similarity score of the best candidate per query",
					Buckets: []float64{0, .1, .2, .3, .4, .5, .6, .7, .8, .9, 1},
				},
				[]string{},
			),

			QueryCacheHitsTotal: *promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "query_cache_hits_total",
					Help: "Total number of fingerprint query cache hits",
				},
				[]string{},
			),
			QueryCacheMissesTotal: *promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "query_cache_misses_total",
					Help: "Total number of fingerprint query cache misses",
				},
				[]string{},
			),
			QueryCacheEvictions: *promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "query_cache_evictions_total",
					Help: "Total number of fingerprint query cache evictions",
				},
				[]string{},
			),

			IndexPostingsTotal: *promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Name: "index_postings_total",
					Help: "Total number of postings currently held in the inverted index",
				},
				[]string{},
			),
			IndexTracksTotal: *promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Name: "index_tracks_total",
					Help: "Total number of distinct enrolled tracks",
				},
				[]string{},
			),

			MetadataStoreDuration: *promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "metadata_store_duration_seconds",
					Help:    "Metadata store operation latency in seconds",
					Buckets: []float64{.001, .005, .01, .05, .1, .5, 1},
				},
				[]string{"operation"},
			),
			MetadataStoreErrors: *promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "metadata_store_errors_total",
					Help: "Total number of metadata store errors",
				},
				[]string{"operation"},
			),
			VectorServiceDuration: *promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "vector_service_duration_seconds",
					Help:    "External vector service operation latency in seconds",
					Buckets: []float64{.001, .005, .01, .05, .1, .5, 1},
				},
				[]string{"operation"},
			),
			VectorServiceErrors: *promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "vector_service_errors_total",
					Help: "Total number of external vector service errors",
				},
				[]string{"operation"},
			),
			RedisOperationDuration: *promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "redis_operation_duration_seconds",
					Help:    "Redis operation latency in seconds",
					Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1},
				},
				[]string{"operation"},
			),
			RedisOperationsTotal: *promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "redis_operations_total",
					Help: "Total number of Redis operations",
				},
				[]string{"operation", "status"},
			),

			ErrorsTotal: *promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "errors_total",
					Help: "Total number of errors by code",
				},
				[]string{"code"},
			),
		}
	})
	return instance
}

// Get returns the global metrics instance, initializing it on first use.
func Get() *Metrics {
	if instance == nil {
		return Initialize()
	}
	return instance
}
