package archetype

import "errors"

// Sentinel kinds for registry lookups.
var (
	ErrNotFound = errors.New("archetype not found")
)
