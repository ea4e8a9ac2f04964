// Package repository persists and loads trained model artifacts. A single
// SQLite file holds one self-consistent training run: scaler parameters,
// centroids, archetype names, and the normalized similarity corpus.
package repository

import (
	"context"
	"time"

	"github.com/okian/scout/internal/domain/archetype"
	"github.com/okian/scout/internal/domain/scale"
	"github.com/okian/scout/internal/domain/similarity"
	"github.com/okian/scout/internal/domain/vector"
)

// Artifacts bundles everything one training run produces. All pieces share
// one dimensionality and one run id; Load refuses anything less.
type Artifacts struct {
	RunID      string
	CreatedAt  time.Time
	Seed       int64
	Dimensions []string
	Scaler     scale.Params
	Centroids  []vector.Vector
	Archetypes []archetype.Entry
	Corpus     []similarity.Player
}

// Store reads and writes artifact bundles.
type Store interface {
	// Save persists the artifacts atomically: the bundle is written to a
	// fresh database next to the target path, then renamed over it, so a
	// concurrent loader never observes a half-written model.
	Save(ctx context.Context, a Artifacts) error

	// Load reads the full bundle, validating cross-artifact consistency.
	// Returns ErrNoArtifacts when nothing has been trained yet.
	Load(ctx context.Context) (Artifacts, error)
}

// Validate checks that the bundle is internally consistent: one shared
// dimensionality and a one-to-one archetype/centroid mapping.
func (a Artifacts) Validate() error {
	dim := len(a.Dimensions)
	if dim == 0 {
		return ErrInconsistentArtifacts
	}
	if a.Scaler.Dim() != dim {
		return ErrInconsistentArtifacts
	}
	if len(a.Centroids) == 0 || len(a.Archetypes) != len(a.Centroids) {
		return ErrInconsistentArtifacts
	}
	for _, c := range a.Centroids {
		if len(c) != dim {
			return ErrInconsistentArtifacts
		}
	}
	for _, p := range a.Corpus {
		if len(p.Vector) != dim {
			return ErrInconsistentArtifacts
		}
	}
	return nil
}
