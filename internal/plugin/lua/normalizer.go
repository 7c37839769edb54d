package lua

import (
	"context"
	"fmt"
	"os"

	lua "github.com/yuin/gopher-lua"
)

// Normalizer turns prompt input into token text by calling a Lua function.
// It implements command.Normalizer.
type Normalizer struct {
	state *State
	fn    string
}

// NewNormalizer loads script into a fresh sandbox and binds the global
// function fn.
func NewNormalizer(script, fn string, opts ...StateOption) (*Normalizer, error) {
	state := NewState(opts...)

	if err := state.DoString(script); err != nil {
		state.Close()
		return nil, fmt.Errorf("load normalizer script: %w", err)
	}
	if !state.HasFunction(fn) {
		state.Close()
		return nil, fmt.Errorf("%w: %q", ErrNotFunction, fn)
	}

	return &Normalizer{state: state, fn: fn}, nil
}

// LoadNormalizer reads a script file and binds the global function fn.
func LoadNormalizer(path, fn string, opts ...StateOption) (*Normalizer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read normalizer script: %w", err)
	}
	return NewNormalizer(string(data), fn, opts...)
}

// Normalize calls the bound function with value.
func (n *Normalizer) Normalize(value string) (string, error) {
	return n.NormalizeContext(context.Background(), value)
}

// NormalizeContext calls the bound function with value, stopping when ctx is
// done or the execution timeout passes.
func (n *Normalizer) NormalizeContext(ctx context.Context, value string) (string, error) {
	ret, err := n.state.Call(ctx, n.fn, lua.LString(value))
	if err != nil {
		return "", fmt.Errorf("normalizer %s: %w", n.fn, err)
	}

	s, ok := ret.(lua.LString)
	if !ok {
		return "", fmt.Errorf("%w: %s returned %s", ErrBadReturn, n.fn, ret.Type())
	}
	return string(s), nil
}

// Function returns the name of the bound Lua function.
func (n *Normalizer) Function() string {
	return n.fn
}

// Close releases the underlying Lua state.
func (n *Normalizer) Close() error {
	return n.state.Close()
}
