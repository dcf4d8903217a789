package mlmodel

import "errors"

var (
	// ErrArtifactInvalid means a persisted artifact exists but is structurally
	// unusable (wrong field set, malformed trees, empty vocabularies).
	ErrArtifactInvalid = errors.New("model artifact invalid")

	// ErrVersionMismatch means the model and encoder artifacts declare
	// different schema versions. Serving with mismatched encoders silently
	// corrupts every prediction, so this is fatal at startup.
	ErrVersionMismatch = errors.New("model and encoder schema versions do not match")
)
