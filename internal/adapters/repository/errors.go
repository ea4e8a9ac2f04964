package repository

import "errors"

// Sentinel kinds for artifact store errors.
var (
	// ErrNoArtifacts means nothing has been trained yet (Untrained state).
	ErrNoArtifacts = errors.New("no model artifacts")

	// ErrInconsistentArtifacts means the persisted pieces disagree on
	// dimensionality or cluster count. Loading such a bundle is refused.
	ErrInconsistentArtifacts = errors.New("inconsistent model artifacts")
)
