package similarity

import "errors"

// Sentinel kinds for similarity lookups.
var (
	ErrPlayerNotFound = errors.New("player not found")
)
