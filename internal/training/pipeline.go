// Package training runs the offline fit sequence that takes the pipeline
// from Untrained to Trained: extract features, fit the scaler and the
// k-means model, build the similarity corpus, derive archetype names, and
// persist everything as one atomic artifact bundle.
package training

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/okian/scout/internal/adapters/dataset"
	"github.com/okian/scout/internal/adapters/repository"
	"github.com/okian/scout/internal/domain/archetype"
	"github.com/okian/scout/internal/domain/cluster"
	"github.com/okian/scout/internal/domain/feature"
	"github.com/okian/scout/internal/domain/scale"
	"github.com/okian/scout/internal/domain/similarity"
	"github.com/okian/scout/internal/domain/vector"
	"github.com/okian/scout/pkg/logger"
)

// Default training configuration constants.
const (
	defaultK    = 6
	defaultSeed = 42
)

// Pipeline coordinates one training run.
type Pipeline struct {
	store repository.Store
	k     int
	seed  int64
	log   logger.Logger
}

// Option applies a configuration option to the Pipeline.
type Option func(*Pipeline)

// WithK sets the number of clusters to fit.
func WithK(k int) Option {
	return func(p *Pipeline) {
		if k > 0 {
			p.k = k
		}
	}
}

// WithSeed fixes the training seed so reruns reproduce the same centroids.
func WithSeed(seed int64) Option {
	return func(p *Pipeline) {
		p.seed = seed
	}
}

// WithLogger sets a custom logger for the pipeline.
func WithLogger(l logger.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.log = l
		}
	}
}

// New constructs a Pipeline persisting to the given store.
func New(store repository.Store, opts ...Option) *Pipeline {
	p := &Pipeline{
		store: store,
		k:     defaultK,
		seed:  defaultSeed,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run fits the full model over the dataset records and persists the
// artifacts atomically. Records that lack a required attribute are skipped
// and counted; a dataset where nothing survives extraction fails the run.
func (p *Pipeline) Run(ctx context.Context, records []dataset.Record) (*Report, error) {
	if p.log == nil {
		p.log = logger.Get()
	}

	start := time.Now()

	// Extract features for every usable record.
	var (
		ids     []string
		names   []string
		raw     []vector.Vector
		skipped int
	)
	for _, rec := range records {
		v, err := feature.Extract(rec.Attrs)
		if err != nil {
			skipped++
			continue
		}
		ids = append(ids, rec.ID)
		names = append(names, rec.Name)
		raw = append(raw, v)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("no usable records: all %d rows failed extraction", len(records))
	}
	p.log.Info(ctx, "extracted features",
		logger.Int("usable", len(raw)),
		logger.Int("skipped", skipped),
	)

	// Fit the scaler and normalize the corpus.
	params, err := scale.Fit(raw)
	if err != nil {
		return nil, fmt.Errorf("fit scaler: %w", err)
	}
	normalized, err := params.TransformAll(raw)
	if err != nil {
		return nil, fmt.Errorf("normalize corpus: %w", err)
	}

	// Fit the clustering model.
	model, err := cluster.Fit(ctx, normalized,
		cluster.WithK(p.k),
		cluster.WithSeed(p.seed),
	)
	if err != nil {
		return nil, fmt.Errorf("fit clusters: %w", err)
	}
	p.log.Info(ctx, "fitted clustering model",
		logger.Int("k", model.K()),
		logger.Float64("inertia", model.Inertia()),
	)

	// Build the similarity corpus in dataset order.
	corpus := make([]similarity.Player, len(normalized))
	for i := range normalized {
		corpus[i] = similarity.Player{ID: ids[i], Name: names[i], Vector: normalized[i]}
	}

	// Derive archetype names from the centroids.
	registry := archetype.Derive(model.Centroids())

	artifacts := repository.Artifacts{
		RunID:      uuid.NewString(),
		CreatedAt:  time.Now(),
		Seed:       p.seed,
		Dimensions: feature.Dimensions(),
		Scaler:     params,
		Centroids:  model.Centroids(),
		Archetypes: registry.All(),
		Corpus:     corpus,
	}
	if err := p.store.Save(ctx, artifacts); err != nil {
		return nil, fmt.Errorf("persist artifacts: %w", err)
	}

	report, err := buildReport(artifacts, model, raw, skipped, time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("summarize run: %w", err)
	}
	p.log.Info(ctx, "training run complete",
		logger.String("runID", artifacts.RunID),
		logger.Duration("elapsed", report.Elapsed),
	)
	return report, nil
}
