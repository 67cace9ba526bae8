// Package engine is the facade (C8): preprocess -> fingerprint -> match ->
// fuse -> metadata lookup, with a query cache short-circuiting duplicate
// requests.
package engine

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sonica-audio/engine/internal/engineerrors"
	"github.com/sonica-audio/engine/internal/features"
	"github.com/sonica-audio/engine/internal/fingerprint"
	"github.com/sonica-audio/engine/internal/fusion"
	"github.com/sonica-audio/engine/internal/hashing"
	"github.com/sonica-audio/engine/internal/index"
	"github.com/sonica-audio/engine/internal/logger"
	"github.com/sonica-audio/engine/internal/metadatastore"
	"github.com/sonica-audio/engine/internal/metrics"
	"github.com/sonica-audio/engine/internal/querycache"
	"github.com/sonica-audio/engine/internal/vectorservice"
	"go.uber.org/zap"
)

// Config bundles everything the facade needs, with all defaults applied.
type Config struct {
	PipelineConfig   fingerprint.PipelineConfig
	PreprocessLimits fingerprint.PreprocessLimits
	MatchConfig      index.MatchConfig
	FusionWeights    fusion.Weights
	Threshold        float64
	QueryCacheSize   int
}

// DefaultConfig returns every default named in the configuration surface.
func DefaultConfig(sampleRate int) Config {
	return Config{
		PipelineConfig:   fingerprint.DefaultPipelineConfig(sampleRate),
		PreprocessLimits: fingerprint.DefaultPreprocessLimits(),
		MatchConfig:      index.DefaultMatchConfig(),
		FusionWeights:    fusion.DefaultWeights(),
		Threshold:        fusion.DefaultThreshold,
		QueryCacheSize:   querycache.DefaultCapacity,
	}
}

// Engine wires together the index, metadata store, optional vector
// service, and query cache behind the recognize/enroll operations.
type Engine struct {
	cfg       Config
	idx       *index.Index
	store     metadatastore.Store
	vectors   vectorservice.Service
	cache     *querycache.Cache
	fpByTrack map[uuid.UUID]*fingerprint.Fingerprint
}

// New constructs an Engine. store and vectors may not be nil; pass
// vectorservice.NoopService{} when no external vector service is
// configured.
func New(cfg Config, store metadatastore.Store, vectors vectorservice.Service) (*Engine, error) {
	cache, err := querycache.New(cfg.QueryCacheSize)
	if err != nil {
		return nil, err
	}

	return &Engine{
		cfg:       cfg,
		idx:       index.New(hashing.Version),
		store:     store,
		vectors:   vectors,
		cache:     cache,
		fpByTrack: make(map[uuid.UUID]*fingerprint.Fingerprint),
	}, nil
}

// Result is what a successful query returns.
type Result struct {
	Track         metadatastore.TrackMetadata
	Score         float64
	PerFeature    fusion.PerFeatureScores
	AlignmentSecs float64
}

// Enroll preprocesses raw PCM, fingerprints it, and appends it to both the
// inverted index and the metadata store, serialized per track id by the
// index's own enrollment lock.
func (e *Engine) Enroll(ctx context.Context, trackID uuid.UUID, pcm []float64, sampleRate int, meta metadatastore.TrackMetadata) error {
	if err := checkDeadline(ctx, "enroll:preprocess"); err != nil {
		return err
	}

	signal, err := fingerprint.Preprocess(pcm, sampleRate, e.cfg.PipelineConfig.SampleRate, e.cfg.PreprocessLimits)
	if err != nil {
		return err
	}

	if err := checkDeadline(ctx, "enroll:fingerprint"); err != nil {
		return err
	}

	start := time.Now()
	fp, err := fingerprint.Generate(signal, e.cfg.PipelineConfig)
	metrics.Get().FingerprintDuration.WithLabelValues("enroll").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.Get().FingerprintsTotal.WithLabelValues("error").Inc()
		return err
	}
	if len(fp.Hashes) == 0 {
		metrics.Get().FingerprintsTotal.WithLabelValues("empty").Inc()
		return engineerrors.EmptyQueryFingerprint()
	}
	metrics.Get().FingerprintsTotal.WithLabelValues("ok").Inc()
	metrics.Get().HashesPerTrack.WithLabelValues().Observe(float64(len(fp.Hashes)))
	metrics.Get().PeaksPerTrack.WithLabelValues().Observe(float64(len(fp.Peaks)))

	if err := checkDeadline(ctx, "enroll:index"); err != nil {
		return err
	}
	if err := e.idx.Enroll(trackID, fp.Hashes, fp.IndexVersion); err != nil {
		return err
	}
	e.fpByTrack[trackID] = fp
	metrics.Get().IndexTracksTotal.WithLabelValues().Set(float64(e.idx.TrackCount()))

	blob, err := fp.Serialize()
	if err != nil {
		return err
	}

	if err := checkDeadline(ctx, "enroll:metadata"); err != nil {
		return err
	}
	meta.TrackID = trackID
	meta.DurationSec = fp.Metadata.DurationSeconds
	if err := e.store.PutTrack(ctx, meta, blob); err != nil {
		return engineerrors.Unavailable("metadata store", err)
	}

	return nil
}

// Recognize runs the full query path: preprocess -> fingerprint -> match ->
// fuse -> metadata lookup. Returns (nil, nil) on NoMatch (a normal
// outcome, not an error).
func (e *Engine) Recognize(ctx context.Context, pcm []float64, sampleRate int) (*Result, error) {
	if err := checkDeadline(ctx, "recognize:preprocess"); err != nil {
		return nil, err
	}

	cacheKey := querycache.Key(pcm, sampleRate)
	if cached, ok := e.cache.Get(cacheKey); ok {
		if result, ok := cached.(*Result); ok {
			return result, nil
		}
	}

	signal, err := fingerprint.Preprocess(pcm, sampleRate, e.cfg.PipelineConfig.SampleRate, e.cfg.PreprocessLimits)
	if err != nil {
		return nil, err
	}

	if err := checkDeadline(ctx, "recognize:fingerprint"); err != nil {
		return nil, err
	}

	start := time.Now()
	queryFP, err := fingerprint.Generate(signal, e.cfg.PipelineConfig)
	metrics.Get().FingerprintDuration.WithLabelValues("query").Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, err
	}
	if len(queryFP.Hashes) == 0 {
		return nil, engineerrors.EmptyQueryFingerprint()
	}
	if queryFP.IndexVersion != e.idx.Version() {
		return nil, engineerrors.VersionMismatch(e.idx.Version(), queryFP.IndexVersion)
	}

	if err := checkDeadline(ctx, "recognize:match"); err != nil {
		return nil, err
	}

	matchStart := time.Now()
	candidates, err := index.Match(e.idx, queryFP.Hashes, e.cfg.MatchConfig)
	metrics.Get().MatchDuration.WithLabelValues().Observe(time.Since(matchStart).Seconds())
	if err != nil {
		return nil, err
	}
	metrics.Get().CandidatesPerQuery.WithLabelValues().Observe(float64(len(candidates)))

	if len(candidates) == 0 {
		metrics.Get().MatchesTotal.WithLabelValues("no_match").Inc()
		return nil, nil
	}

	if err := checkDeadline(ctx, "recognize:fuse"); err != nil {
		return nil, err
	}

	queryInput := fusion.Input{
		ModeCount:    candidates[0].ModeCount,
		TargetHashes: len(queryFP.Hashes),
		Features:     queryFP.Features,
	}

	candidateInputs := make([]fusion.Input, len(candidates))
	for i, c := range candidates {
		enrolledFP := e.fpByTrack[c.TrackID]
		var feats features.Set
		if enrolledFP != nil {
			feats = enrolledFP.Features
		}
		candidateInputs[i] = fusion.Input{
			ModeCount:    c.ModeCount,
			TargetHashes: len(queryFP.Hashes),
			Features:     feats,
		}
	}

	decision := fusion.Rank(queryInput, candidateInputs, e.cfg.FusionWeights, e.cfg.Threshold)
	metrics.Get().FusionScore.WithLabelValues().Observe(decision.Score)

	if !decision.Accepted {
		metrics.Get().MatchesTotal.WithLabelValues("no_match").Inc()
		return nil, nil
	}

	winner := candidates[decision.TrackIndex]

	if err := checkDeadline(ctx, "recognize:metadata"); err != nil {
		return nil, err
	}

	meta, err := e.store.GetTrack(ctx, winner.TrackID)
	if err != nil {
		return nil, engineerrors.Unavailable("metadata store", err)
	}
	if meta == nil {
		metrics.Get().MatchesTotal.WithLabelValues("stale_index_entry").Inc()
		return nil, nil
	}

	result := &Result{
		Track:         *meta,
		Score:         decision.Score,
		PerFeature:    decision.PerFeature,
		AlignmentSecs: winner.OffsetSeconds,
	}
	e.cache.Put(cacheKey, result)
	metrics.Get().MatchesTotal.WithLabelValues("match").Inc()

	logger.InfoWithFields("query matched", zap.String("track_id", winner.TrackID.String()), zap.Float64("score", decision.Score))

	return result, nil
}

func checkDeadline(ctx context.Context, stage string) error {
	select {
	case <-ctx.Done():
		return engineerrors.DeadlineExceeded(stage)
	default:
		return nil
	}
}
