// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/scout/internal/adapters/repository"
	"github.com/okian/scout/internal/domain/archetype"
	"github.com/okian/scout/internal/domain/cluster"
	"github.com/okian/scout/internal/domain/feature"
	"github.com/okian/scout/internal/domain/scale"
	"github.com/okian/scout/internal/domain/similarity"
	"github.com/okian/scout/pkg/logger"
	"github.com/okian/scout/pkg/metrics"
)

// Snapshot is one immutable view of the trained artifacts. The service swaps
// whole snapshots atomically, so a request never observes a half-updated
// model.
type Snapshot struct {
	RunID      string
	TrainedAt  time.Time
	LoadedAt   time.Time
	Dimensions []string
	Scaler     scale.Params
	Model      *cluster.Model
	Registry   *archetype.Registry
	Index      *similarity.Index
}

// Classification is the result of classifying one set of raw attributes.
type Classification struct {
	ClusterID int                `json:"cluster_id"`
	Archetype archetype.Entry    `json:"archetype"`
	Similar   []similarity.Match `json:"similar_players,omitempty"`
}

// Profile describes one historical player from the corpus.
type Profile struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	ClusterID int                `json:"cluster_id"`
	Style     string             `json:"style"`
	Vector    map[string]float64 `json:"style_vector"`
}

// Service implements the API dependencies for the style classification
// system. All request-path state lives in the snapshot; the service itself
// only coordinates loading and swapping.
type Service struct {
	mu sync.Mutex

	store repository.Store
	snap  atomic.Pointer[Snapshot]

	// Configuration
	artifactsPath string
	defaultTopN   int
	maxTopN       int

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithArtifactsPath locates the trained model database.
func WithArtifactsPath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.artifactsPath = path
		}
	}
}

// WithStore injects a pre-built artifact store, overriding the path.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithDefaultTopN sets the similar-player count used when requests omit one.
func WithDefaultTopN(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.defaultTopN = n
		}
	}
}

// WithMaxTopN caps the similar-player count a request may ask for.
func WithMaxTopN(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxTopN = n
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		artifactsPath: "models/scout.db",
		defaultTopN:   5,
		maxTopN:       20,
		logger:        nil, // Will be replaced when service starts
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start loads the artifact snapshot. Load failure is fatal: the caller
// should exit rather than serve with missing or partial state.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.store == nil {
		s.store = repository.NewSQLiteStore(s.artifactsPath)
	}

	s.logger.Info(ctx, "loading model artifacts...")
	snap, err := s.load(ctx)
	if err != nil {
		return fmt.Errorf("load model artifacts: %w", err)
	}
	s.snap.Store(snap)

	s.started = true
	s.logger.Info(ctx, "style service started",
		logger.String("runID", snap.RunID),
		logger.Int("corpus", snap.Index.Len()),
		logger.Int("clusters", snap.Model.K()),
	)

	return nil
}

// Stop marks the service stopped. The snapshot is immutable and needs no
// teardown.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "style service stopped")
}

// Reload re-reads the artifacts and swaps in a fresh snapshot. Readers keep
// using the old snapshot until the swap completes.
func (s *Service) Reload(ctx context.Context) error {
	snap, err := s.load(ctx)
	if err != nil {
		return fmt.Errorf("reload model artifacts: %w", err)
	}
	s.snap.Store(snap)
	metrics.RecordSnapshotReload()
	s.logger.Info(ctx, "artifact snapshot reloaded", logger.String("runID", snap.RunID))
	return nil
}

// load builds a complete snapshot from the persisted artifacts.
func (s *Service) load(ctx context.Context) (*Snapshot, error) {
	a, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	idx, err := similarity.Build(a.Corpus)
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{
		RunID:      a.RunID,
		TrainedAt:  a.CreatedAt,
		LoadedAt:   time.Now(),
		Dimensions: a.Dimensions,
		Scaler:     a.Scaler,
		Model:      cluster.NewModel(a.Centroids),
		Registry:   archetype.New(a.Archetypes),
		Index:      idx,
	}

	metrics.UpdateCorpusSize(snap.Index.Len())
	metrics.UpdateClusterCount(snap.Model.K())
	metrics.UpdateSnapshotLoadedAt(snap.LoadedAt)
	return snap, nil
}

// snapshot returns the current snapshot, or an error before Start.
func (s *Service) snapshot() (*Snapshot, error) {
	snap := s.snap.Load()
	if snap == nil {
		return nil, errors.New("service not started")
	}
	return snap, nil
}

// Classify maps raw attributes to a cluster id and archetype, optionally
// attaching the topN closest historical players.
func (s *Service) Classify(ctx context.Context, attrs map[string]float64, topN int) (Classification, error) {
	snap, err := s.snapshot()
	if err != nil {
		return Classification{}, err
	}

	start := time.Now()
	raw, err := feature.Extract(attrs)
	if err != nil {
		return Classification{}, err
	}
	normalized, err := snap.Scaler.Transform(raw)
	if err != nil {
		return Classification{}, err
	}
	clusterID, err := snap.Model.Predict(normalized)
	if err != nil {
		return Classification{}, err
	}
	entry, err := snap.Registry.Describe(clusterID)
	if err != nil {
		return Classification{}, err
	}
	metrics.RecordPredictLatency(float64(time.Since(start).Microseconds()) / 1e3)
	metrics.RecordPrediction(entry.Name)

	out := Classification{ClusterID: clusterID, Archetype: entry}
	if topN > 0 {
		out.Similar, err = s.similarToVector(snap, normalized, topN)
		if err != nil {
			return Classification{}, err
		}
	}
	return out, nil
}

// Similar finds the n players closest to the named historical player,
// excluding the player itself.
func (s *Service) Similar(ctx context.Context, name string, n int) ([]similarity.Match, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	if n <= 0 {
		n = s.defaultTopN
	}
	if n > s.maxTopN {
		n = s.maxTopN
	}

	start := time.Now()
	matches, err := snap.Index.SimilarTo(name, n)
	if err != nil {
		if errors.Is(err, similarity.ErrPlayerNotFound) {
			metrics.RecordLookupMiss()
		}
		return nil, err
	}
	metrics.RecordSimilarityLatency(float64(time.Since(start).Microseconds()) / 1e3)
	metrics.RecordSimilarityQuery()
	return matches, nil
}

// similarToVector runs the corpus scan for an already-normalized query.
func (s *Service) similarToVector(snap *Snapshot, query []float64, n int) ([]similarity.Match, error) {
	if n > s.maxTopN {
		n = s.maxTopN
	}
	start := time.Now()
	matches, err := snap.Index.TopN(query, n)
	if err != nil {
		return nil, err
	}
	metrics.RecordSimilarityLatency(float64(time.Since(start).Microseconds()) / 1e3)
	metrics.RecordSimilarityQuery()
	return matches, nil
}

// Archetypes returns all archetype entries ordered by cluster id.
func (s *Service) Archetypes(ctx context.Context) ([]archetype.Entry, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	metrics.RecordArchetypeList()
	return snap.Registry.All(), nil
}

// Archetype returns one archetype entry by cluster id.
func (s *Service) Archetype(ctx context.Context, clusterID int) (archetype.Entry, error) {
	snap, err := s.snapshot()
	if err != nil {
		return archetype.Entry{}, err
	}
	entry, err := snap.Registry.Describe(clusterID)
	if err != nil {
		metrics.RecordLookupMiss()
		return archetype.Entry{}, err
	}
	return entry, nil
}

// PlayerProfile looks up one historical player and their cluster assignment,
// recovered by nearest-centroid lookup over the stored normalized vector.
func (s *Service) PlayerProfile(ctx context.Context, name string) (Profile, error) {
	snap, err := s.snapshot()
	if err != nil {
		return Profile{}, err
	}
	p, ok := snap.Index.Find(name)
	if !ok {
		metrics.RecordLookupMiss()
		return Profile{}, similarity.ErrPlayerNotFound
	}
	clusterID, err := snap.Model.Predict(p.Vector)
	if err != nil {
		return Profile{}, err
	}
	entry, err := snap.Registry.Describe(clusterID)
	if err != nil {
		return Profile{}, err
	}

	vec := make(map[string]float64, len(snap.Dimensions))
	for i, dim := range snap.Dimensions {
		vec[dim] = p.Vector[i]
	}
	return Profile{
		ID:        p.ID,
		Name:      p.Name,
		ClusterID: clusterID,
		Style:     entry.Name,
		Vector:    vec,
	}, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	stats := map[string]interface{}{
		"started": s.snap.Load() != nil,
	}
	if snap := s.snap.Load(); snap != nil {
		stats["runID"] = snap.RunID
		stats["trainedAt"] = snap.TrainedAt
		stats["loadedAt"] = snap.LoadedAt
		stats["dimensions"] = snap.Dimensions
		stats["clusters"] = snap.Model.K()
		stats["corpusSize"] = snap.Index.Len()

		metrics.UpdateCorpusSize(snap.Index.Len())
		metrics.UpdateClusterCount(snap.Model.K())
	}
	return stats
}
