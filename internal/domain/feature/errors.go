package feature

import "fmt"

// ValidationError reports a malformed or missing input attribute. It is
// recoverable and surfaced to callers with field-level detail.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid attribute %q: %s", e.Field, e.Reason)
}
