// Package cluster fits and evaluates the k-means model that partitions the
// style space into player archetypes.
package cluster

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"github.com/okian/scout/internal/domain/vector"
)

// Default training configuration constants.
const (
	defaultK         = 6
	defaultSeed      = 42
	defaultRestarts  = 10
	defaultMaxIters  = 300
	defaultTolerance = 1e-4
)

// Model is a trained k-means model: a fixed set of centroids in normalized
// style space. Immutable after Fit; owns no reference to individual players.
type Model struct {
	centroids []vector.Vector
	inertia   float64
}

// NewModel rebuilds a model from persisted centroids.
func NewModel(centroids []vector.Vector) *Model {
	return &Model{centroids: centroids}
}

// K returns the number of clusters.
func (m *Model) K() int {
	return len(m.centroids)
}

// Dim returns the centroid dimensionality.
func (m *Model) Dim() int {
	if len(m.centroids) == 0 {
		return 0
	}
	return len(m.centroids[0])
}

// Centroids returns copies of the model centroids, ordered by cluster id.
func (m *Model) Centroids() []vector.Vector {
	out := make([]vector.Vector, len(m.centroids))
	for i, c := range m.centroids {
		out[i] = c.Clone()
	}
	return out
}

// Inertia returns the sum of squared distances from each training point to
// its assigned centroid, as of the winning Fit run.
func (m *Model) Inertia() float64 {
	return m.inertia
}

// Predict returns the id of the nearest centroid by Euclidean distance.
// Ties break toward the lowest cluster id. O(k) per call.
func (m *Model) Predict(v vector.Vector) (int, error) {
	if err := v.CheckDim(m.Dim()); err != nil {
		return 0, err
	}
	best := 0
	bestDist := math.MaxFloat64
	for id, c := range m.centroids {
		if d := vector.SquaredDistance(v, c); d < bestDist {
			bestDist = d
			best = id
		}
	}
	return best, nil
}

// Fit trains a k-means model over normalized feature vectors. Runs several
// k-means++ seeded restarts and keeps the lowest-inertia result, so a fixed
// seed yields identical centroids run-to-run.
func Fit(ctx context.Context, vectors []vector.Vector, opts ...Option) (*Model, error) {
	cfg := config{
		k:         defaultK,
		seed:      defaultSeed,
		restarts:  defaultRestarts,
		maxIters:  defaultMaxIters,
		tolerance: defaultTolerance,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if distinct(vectors) < cfg.k {
		return nil, fmt.Errorf("%w: need at least %d distinct points, have %d",
			ErrInsufficientData, cfg.k, distinct(vectors))
	}
	dim := len(vectors[0])
	for _, v := range vectors {
		if err := v.CheckDim(dim); err != nil {
			return nil, err
		}
	}

	rng := rand.New(rand.NewSource(cfg.seed)) //nolint:gosec // deterministic seed for reproducible training

	var best *Model
	for run := 0; run < cfg.restarts; run++ {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("training cancelled: %w", ctx.Err())
		default:
		}
		m := lloyd(vectors, seedCentroids(vectors, cfg.k, rng), cfg.maxIters, cfg.tolerance)
		if best == nil || m.inertia < best.inertia {
			best = m
		}
	}
	return best, nil
}

// seedCentroids picks initial centroids with the k-means++ weighting: each
// next centroid is sampled proportionally to its squared distance from the
// nearest centroid chosen so far.
func seedCentroids(vectors []vector.Vector, k int, rng *rand.Rand) []vector.Vector {
	centroids := make([]vector.Vector, 0, k)
	centroids = append(centroids, vectors[rng.Intn(len(vectors))].Clone())

	dists := make([]float64, len(vectors))
	for len(centroids) < k {
		var total float64
		for i, v := range vectors {
			d := math.MaxFloat64
			for _, c := range centroids {
				if sq := vector.SquaredDistance(v, c); sq < d {
					d = sq
				}
			}
			dists[i] = d
			total += d
		}
		if total == 0 {
			// Remaining points coincide with chosen centroids; fall back to
			// uniform sampling to fill the set.
			centroids = append(centroids, vectors[rng.Intn(len(vectors))].Clone())
			continue
		}
		target := rng.Float64() * total
		var acc float64
		for i, d := range dists {
			acc += d
			if acc >= target {
				centroids = append(centroids, vectors[i].Clone())
				break
			}
		}
	}
	return centroids
}

// lloyd iterates assignment and update until centroid movement falls below
// tol or maxIters is reached.
func lloyd(vectors []vector.Vector, centroids []vector.Vector, maxIters int, tol float64) *Model {
	k := len(centroids)
	dim := len(centroids[0])
	assign := make([]int, len(vectors))

	for iter := 0; iter < maxIters; iter++ {
		// Assignment step: nearest centroid, ties to lowest id.
		for i, v := range vectors {
			best := 0
			bestDist := math.MaxFloat64
			for id, c := range centroids {
				if d := vector.SquaredDistance(v, c); d < bestDist {
					bestDist = d
					best = id
				}
			}
			assign[i] = best
		}

		// Update step: centroid = mean of assigned points. Empty clusters
		// keep their previous centroid.
		sums := make([]vector.Vector, k)
		counts := make([]int, k)
		for id := range sums {
			sums[id] = make(vector.Vector, dim)
		}
		for i, v := range vectors {
			id := assign[i]
			counts[id]++
			for j, x := range v {
				sums[id][j] += x
			}
		}
		var moved float64
		for id := range centroids {
			if counts[id] == 0 {
				continue
			}
			for j := range sums[id] {
				sums[id][j] /= float64(counts[id])
			}
			if d := vector.Distance(centroids[id], sums[id]); d > moved {
				moved = d
			}
			centroids[id] = sums[id]
		}
		if moved < tol {
			break
		}
	}

	var inertia float64
	for i, v := range vectors {
		inertia += vector.SquaredDistance(v, centroids[assign[i]])
	}
	return &Model{centroids: centroids, inertia: inertia}
}

// distinct counts unique vectors; cheap at this data scale.
func distinct(vectors []vector.Vector) int {
	seen := make(map[string]struct{}, len(vectors))
	for _, v := range vectors {
		key := fmt.Sprintf("%v", v)
		seen[key] = struct{}{}
	}
	return len(seen)
}
