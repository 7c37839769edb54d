package execctx

import "errors"

// Context validation errors.
var (
	// ErrMissingBuffer indicates the text buffer is required but not set.
	ErrMissingBuffer = errors.New("execution context: buffer is required")

	// ErrReadOnly indicates the buffer is read-only.
	ErrReadOnly = errors.New("execution context: buffer is read-only")
)
