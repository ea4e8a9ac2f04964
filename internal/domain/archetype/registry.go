// Package archetype names the trained clusters. Every cluster id maps to
// exactly one human-readable playing style, derived once at training time
// from centroid characteristics and persisted with the model.
package archetype

import (
	"fmt"
	"sort"

	"github.com/okian/scout/internal/domain/vector"
)

// Entry describes one archetype: a cluster id, its label, and the centroid
// it was derived from.
type Entry struct {
	ClusterID   int           `json:"cluster_id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Centroid    vector.Vector `json:"centroid"`
}

// Registry is the static cluster id -> archetype mapping. Immutable once
// built; the serving process loads it from persisted artifacts and never
// recomputes it per request.
type Registry struct {
	entries []Entry
}

// New builds a registry from persisted entries, ordered by cluster id.
func New(entries []Entry) *Registry {
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ClusterID < sorted[j].ClusterID })
	return &Registry{entries: sorted}
}

// Describe returns the archetype for a cluster id. Entries are matched on
// their stored cluster id rather than slice position, so a registry loaded
// from artifacts with gaps in its ids still resolves correctly.
func (r *Registry) Describe(clusterID int) (Entry, error) {
	n := sort.Search(len(r.entries), func(i int) bool { return r.entries[i].ClusterID >= clusterID })
	if n < len(r.entries) && r.entries[n].ClusterID == clusterID {
		return r.entries[n], nil
	}
	return Entry{}, ErrNotFound
}

// All returns every archetype entry, ordered by cluster id.
func (r *Registry) All() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Len returns the number of archetypes.
func (r *Registry) Len() int {
	return len(r.entries)
}

// profile is a canonical playing style with a signature weighting over the
// style dimensions in model order (pace, dribbling, creativity, finishing,
// defense, physicality).
type profile struct {
	name        string
	description string
	signature   vector.Vector
}

// The six canonical archetypes. Signatures live in normalized style space,
// so a positive weight rewards an above-average centroid value and a
// negative weight rewards a below-average one.
var profiles = []profile{
	{
		name:        "Creative Playmaker",
		description: "High creativity, vision, and passing. Masters of orchestrating attacks.",
		signature:   vector.Vector{0.1, 0.5, 1.0, 0.2, 0.0, -0.2},
	},
	{
		name:        "Ball Winning Midfielder",
		description: "Defensive specialists with high interceptions and tackling.",
		signature:   vector.Vector{0.0, 0.1, 0.3, -0.2, 0.9, 0.3},
	},
	{
		name:        "Explosive Winger",
		description: "Speed demons with exceptional pace and dribbling ability.",
		signature:   vector.Vector{1.0, 0.8, 0.2, 0.3, -0.5, -0.1},
	},
	{
		name:        "Target Man",
		description: "Physical strikers who dominate in the air and hold up play.",
		signature:   vector.Vector{0.1, -0.1, -0.1, 0.8, -0.3, 1.0},
	},
	{
		name:        "Defensive Center Back",
		description: "Defensive rocks with strength and positioning.",
		signature:   vector.Vector{-0.3, -0.4, -0.2, -0.4, 1.0, 0.7},
	},
	{
		name:        "Box-to-Box Midfielder",
		description: "Balanced all-rounders who excel in all areas.",
		signature:   vector.Vector{0.2, 0.3, 0.4, 0.3, 0.4, 0.4},
	},
}

// Derive assigns the canonical archetypes to centroids one-to-one. The
// pairing is greedy on the signature/centroid dot product, so the naming is
// a pure function of the centroids and cannot go stale when retraining
// renumbers clusters.
func Derive(centroids []vector.Vector) *Registry {
	type pairing struct {
		cluster int
		prof    int
		score   float64
	}
	var pairings []pairing
	for c, centroid := range centroids {
		for p, prof := range profiles {
			var score float64
			for i := range centroid {
				if i < len(prof.signature) {
					score += centroid[i] * prof.signature[i]
				}
			}
			pairings = append(pairings, pairing{cluster: c, prof: p, score: score})
		}
	}
	// Best score first; ties resolve by cluster id then profile order so the
	// assignment is fully deterministic.
	sort.Slice(pairings, func(i, j int) bool {
		a, b := pairings[i], pairings[j]
		if a.score != b.score {
			return a.score > b.score
		}
		if a.cluster != b.cluster {
			return a.cluster < b.cluster
		}
		return a.prof < b.prof
	})

	usedCluster := make(map[int]bool, len(centroids))
	usedProfile := make(map[int]bool, len(profiles))
	entries := make([]Entry, 0, len(centroids))
	for _, pr := range pairings {
		if usedCluster[pr.cluster] || usedProfile[pr.prof] {
			continue
		}
		usedCluster[pr.cluster] = true
		usedProfile[pr.prof] = true
		entries = append(entries, Entry{
			ClusterID:   pr.cluster,
			Name:        profiles[pr.prof].name,
			Description: profiles[pr.prof].description,
			Centroid:    centroids[pr.cluster].Clone(),
		})
		if len(entries) == len(centroids) {
			break
		}
	}
	// More clusters than canonical profiles: fall back to a generic label so
	// every id still resolves.
	for c, centroid := range centroids {
		if !usedCluster[c] {
			entries = append(entries, Entry{
				ClusterID:   c,
				Name:        fmt.Sprintf("Cluster %d", c),
				Description: "Unique playing style",
				Centroid:    centroid.Clone(),
			})
		}
	}
	return New(entries)
}
