package transit

import "errors"

var (
	// ErrValidation marks a malformed caller request. Rejected before any processing.
	ErrValidation = errors.New("validation error")

	// ErrNotFound is returned when a schedule or service lookup has no match.
	ErrNotFound = errors.New("not found")
)
