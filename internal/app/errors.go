package app

import (
	"errors"
	"fmt"
)

// Toolbar errors.
var (
	// ErrUnknownControl indicates a click on a control id that isn't configured.
	ErrUnknownControl = errors.New("unknown control")

	// ErrUnknownPrompt indicates a submission for a prompt key that isn't configured.
	ErrUnknownPrompt = errors.New("unknown prompt")

	// ErrClosed indicates the toolbar has been closed.
	ErrClosed = errors.New("toolbar closed")

	// ErrNoConfigPath indicates live reload was requested without a config file.
	ErrNoConfigPath = errors.New("no config file to watch")
)

// OperationError represents an error that occurred during a specific operation.
type OperationError struct {
	Op      string // Operation name (e.g., "click", "submit", "load prompt")
	Target  string // Target of the operation (e.g., control id, prompt key)
	Context string // Additional context
	Err     error  // Underlying error
}

// NewOperationError creates a new OperationError.
func NewOperationError(op, target string, err error) *OperationError {
	return &OperationError{
		Op:     op,
		Target: target,
		Err:    err,
	}
}

// WithContext adds context to the error.
// Safe to call on nil receiver - returns nil.
func (e *OperationError) WithContext(ctx string) *OperationError {
	if e == nil {
		return nil
	}
	e.Context = ctx
	return e
}

func (e *OperationError) Error() string {
	if e == nil {
		return ""
	}

	msg := e.Op
	if e.Target != "" {
		msg = fmt.Sprintf("%s %q", e.Op, e.Target)
	}

	if e.Context != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Context)
	}

	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}

	return msg
}

func (e *OperationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
