// Package similarity provides Euclidean nearest-neighbor search over the
// normalized player corpus.
package similarity

import (
	"sort"
	"strings"

	"github.com/okian/scout/internal/domain/vector"
)

// Player is one corpus entry: a stable identifier, a display name, and the
// player's vector in normalized style space.
type Player struct {
	ID     string
	Name   string
	Vector vector.Vector
}

// Match is one similarity result.
type Match struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Distance float64 `json:"distance"`
}

// Index holds the full corpus in insertion order. Read-only after Build; a
// query never mutates it, so concurrent readers need no locking.
type Index struct {
	players []Player
	dim     int
}

// Build creates an index over the given corpus. All vectors must share one
// dimensionality.
func Build(players []Player) (*Index, error) {
	idx := &Index{players: players}
	if len(players) > 0 {
		idx.dim = len(players[0].Vector)
	}
	for _, p := range players {
		if err := p.Vector.CheckDim(idx.dim); err != nil {
			return nil, err
		}
	}
	return idx, nil
}

// Len returns the corpus size.
func (idx *Index) Len() int {
	return len(idx.players)
}

// Dim returns the vector dimensionality of the corpus.
func (idx *Index) Dim() int {
	return idx.dim
}

// Players returns the corpus entries in insertion order.
func (idx *Index) Players() []Player {
	return idx.players
}

// TopN returns the n corpus entries closest to query by Euclidean distance,
// ascending. A linear scan over the full corpus; no spatial index is needed
// at this data scale. n clamps to [0, corpus size] rather than erroring, and
// equal distances keep corpus insertion order.
func (idx *Index) TopN(query vector.Vector, n int) ([]Match, error) {
	if err := query.CheckDim(idx.dim); err != nil {
		return nil, err
	}
	if n < 0 {
		n = 0
	}
	if n > len(idx.players) {
		n = len(idx.players)
	}
	matches := make([]Match, len(idx.players))
	for i, p := range idx.players {
		matches[i] = Match{ID: p.ID, Name: p.Name, Distance: vector.Distance(query, p.Vector)}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Distance < matches[j].Distance
	})
	return matches[:n], nil
}

// SimilarTo runs TopN against the named player's own vector, excluding the
// player itself from the results.
func (idx *Index) SimilarTo(name string, n int) ([]Match, error) {
	p, ok := idx.Find(name)
	if !ok {
		return nil, ErrPlayerNotFound
	}
	if n < 0 {
		n = 0
	}
	// Fetch one extra so dropping the query player still fills n.
	matches, err := idx.TopN(p.Vector, n+1)
	if err != nil {
		return nil, err
	}
	out := make([]Match, 0, n)
	for _, m := range matches {
		if m.ID == p.ID {
			continue
		}
		out = append(out, m)
		if len(out) == n {
			break
		}
	}
	return out, nil
}

// Find locates the first corpus entry whose name contains the query,
// case-insensitively. Mirrors the lenient name lookup of the serving API.
func (idx *Index) Find(name string) (Player, bool) {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return Player{}, false
	}
	for _, p := range idx.players {
		if strings.Contains(strings.ToLower(p.Name), needle) {
			return p, true
		}
	}
	return Player{}, false
}
