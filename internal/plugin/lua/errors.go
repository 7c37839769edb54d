package lua

import "errors"

// Errors for Lua state operations.
var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrExecutionTimeout is returned when a call exceeds the execution timeout.
	ErrExecutionTimeout = errors.New("lua execution timeout")

	// ErrNotFunction is returned when the named global is missing or not a function.
	ErrNotFunction = errors.New("lua global is not a function")

	// ErrBadReturn is returned when a normalizer does not return a string.
	ErrBadReturn = errors.New("lua normalizer must return a string")
)
