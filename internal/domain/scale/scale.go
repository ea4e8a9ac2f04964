// Package scale rescales feature vectors into the style space used for
// clustering and distance computation. Standard scaling per dimension:
// subtract the training mean, divide by the training standard deviation.
package scale

import (
	"errors"
	"math"

	"github.com/okian/scout/internal/domain/vector"
)

// ErrNoVectors is returned when Fit receives an empty corpus.
var ErrNoVectors = errors.New("no vectors to fit")

// Params holds the per-dimension mean and standard deviation computed once
// from the training corpus. Immutable after Fit.
type Params struct {
	Mean vector.Vector
	Std  vector.Vector
}

// Dim returns the number of dimensions the params were fitted on.
func (p Params) Dim() int {
	return len(p.Mean)
}

// Fit computes scaling parameters from the full training corpus. Dimensions
// with zero variance scale by 1 so constant columns pass through unchanged.
func Fit(vectors []vector.Vector) (Params, error) {
	if len(vectors) == 0 {
		return Params{}, ErrNoVectors
	}
	dim := len(vectors[0])
	mean := make(vector.Vector, dim)
	std := make(vector.Vector, dim)

	for _, v := range vectors {
		if err := v.CheckDim(dim); err != nil {
			return Params{}, err
		}
		for i, x := range v {
			mean[i] += x
		}
	}
	n := float64(len(vectors))
	for i := range mean {
		mean[i] /= n
	}
	for _, v := range vectors {
		for i, x := range v {
			d := x - mean[i]
			std[i] += d * d
		}
	}
	for i := range std {
		std[i] = math.Sqrt(std[i] / n)
		if std[i] == 0 {
			std[i] = 1
		}
	}
	return Params{Mean: mean, Std: std}, nil
}

// Transform applies the fitted scale elementwise. Pure and deterministic;
// values outside the training range extrapolate linearly, never clip.
func (p Params) Transform(v vector.Vector) (vector.Vector, error) {
	if err := v.CheckDim(p.Dim()); err != nil {
		return nil, err
	}
	out := make(vector.Vector, len(v))
	for i, x := range v {
		out[i] = (x - p.Mean[i]) / p.Std[i]
	}
	return out, nil
}

// TransformAll transforms a batch of vectors with the same params.
func (p Params) TransformAll(vectors []vector.Vector) ([]vector.Vector, error) {
	out := make([]vector.Vector, len(vectors))
	for i, v := range vectors {
		t, err := p.Transform(v)
		if err != nil {
			return nil, err
		}
		out[i] = t
	}
	return out, nil
}
