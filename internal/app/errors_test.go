package app

import (
	"errors"
	"testing"
)

func TestOperationError(t *testing.T) {
	base := errors.New("boom")

	tests := []struct {
		name string
		err  *OperationError
		want string
	}{
		{"op only", NewOperationError("reload", "", nil), "reload"},
		{"with target", NewOperationError("click", "bold", ErrUnknownControl), `click "bold": unknown control`},
		{"with context", NewOperationError("load prompt", "kbd", base).WithContext("lua"), `load prompt "kbd" (lua): boom`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}

	err := error(NewOperationError("submit", "emoji", base))
	if !errors.Is(err, base) {
		t.Error("expected errors.Is to find the wrapped error")
	}
}

func TestOperationErrorNil(t *testing.T) {
	var e *OperationError
	if e.Error() != "" {
		t.Error("nil Error() should be empty")
	}
	if e.Unwrap() != nil {
		t.Error("nil Unwrap() should be nil")
	}
	if e.WithContext("x") != nil {
		t.Error("nil WithContext() should be nil")
	}
}
