// Package vector contains the numeric vector type shared by the style
// pipeline and the Euclidean math used for clustering and similarity.
package vector

import (
	"fmt"
	"math"
)

// Vector is an ordered sequence of style dimension values.
type Vector []float64

// Clone returns an independent copy of v.
func (v Vector) Clone() Vector {
	out := make(Vector, len(v))
	copy(out, v)
	return out
}

// DimensionError reports a mismatch between an expected and an actual
// vector length. It signals stale or corrupt artifacts rather than bad
// client input.
type DimensionError struct {
	Want int
	Got  int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("dimension mismatch: want %d, got %d", e.Want, e.Got)
}

// CheckDim returns a DimensionError unless v has exactly want elements.
func (v Vector) CheckDim(want int) error {
	if len(v) != want {
		return &DimensionError{Want: want, Got: len(v)}
	}
	return nil
}

// SquaredDistance computes the squared Euclidean distance between a and b.
// Lengths must match; callers validate via CheckDim.
func SquaredDistance(a, b Vector) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

// Distance computes the Euclidean distance between a and b.
func Distance(a, b Vector) float64 {
	return math.Sqrt(SquaredDistance(a, b))
}
