package cluster

import "errors"

// Sentinel kinds for training errors.
var (
	// ErrInsufficientData means the corpus holds fewer distinct points than
	// requested clusters. Fatal to the training run.
	ErrInsufficientData = errors.New("insufficient data for clustering")
)
