package lua

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	glua "github.com/yuin/gopher-lua"
)

func TestNewState(t *testing.T) {
	state := NewState()
	defer state.Close()

	if state.IsClosed() {
		t.Error("NewState() returned closed state")
	}
}

func TestStateCall(t *testing.T) {
	state := NewState()
	defer state.Close()

	if err := state.DoString(`function add(a, b) return a + b end`); err != nil {
		t.Fatalf("DoString() error = %v", err)
	}

	ret, err := state.Call(context.Background(), "add", glua.LNumber(2), glua.LNumber(3))
	if err != nil {
		t.Fatalf("Call() error = %v", err)
	}
	if num, ok := ret.(glua.LNumber); !ok || float64(num) != 5 {
		t.Errorf("add(2, 3) = %v, want 5", ret)
	}
}

func TestStateCallMissingFunction(t *testing.T) {
	state := NewState()
	defer state.Close()

	if err := state.DoString(`notfn = 1`); err != nil {
		t.Fatalf("DoString() error = %v", err)
	}

	for _, name := range []string{"missing", "notfn"} {
		if _, err := state.Call(context.Background(), name); !errors.Is(err, ErrNotFunction) {
			t.Errorf("Call(%q) error = %v, want ErrNotFunction", name, err)
		}
	}
}

func TestStateDoStringSyntaxError(t *testing.T) {
	state := NewState()
	defer state.Close()

	if err := state.DoString(`invalid lua code !!!`); err == nil {
		t.Error("DoString() should fail for invalid Lua code")
	}
}

func TestStateExecutionTimeout(t *testing.T) {
	state := NewState(WithExecutionTimeout(50 * time.Millisecond))
	defer state.Close()

	err := state.DoString(`while true do end`)
	if !errors.Is(err, ErrExecutionTimeout) {
		t.Errorf("DoString() error = %v, want ErrExecutionTimeout", err)
	}

	// The state stays usable after a timeout.
	if err := state.DoString(`x = 1`); err != nil {
		t.Errorf("DoString() after timeout error = %v", err)
	}
}

func TestStateClosed(t *testing.T) {
	state := NewState()
	if err := state.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := state.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}

	if err := state.DoString(`x = 1`); !errors.Is(err, ErrStateClosed) {
		t.Errorf("DoString() error = %v, want ErrStateClosed", err)
	}
	if _, err := state.Call(context.Background(), "f"); !errors.Is(err, ErrStateClosed) {
		t.Errorf("Call() error = %v, want ErrStateClosed", err)
	}
	if state.HasFunction("f") {
		t.Error("HasFunction() on closed state should be false")
	}
}

func TestSandboxRemovesUnsafeGlobals(t *testing.T) {
	state := NewState()
	defer state.Close()

	for _, name := range []string{
		"io", "os", "debug", "package",
		"dofile", "loadfile", "load", "loadstring", "require",
	} {
		code := fmt.Sprintf(`assert(%s == nil, "%s is reachable")`, name, name)
		if err := state.DoString(code); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}

	for _, name := range []string{"string", "table", "math", "pairs", "tostring"} {
		code := fmt.Sprintf(`assert(%s ~= nil, "%s is missing")`, name, name)
		if err := state.DoString(code); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}
}

func TestSandboxPrint(t *testing.T) {
	var lines []string
	state := NewState(WithPrintFunc(func(s string) {
		lines = append(lines, s)
	}))
	defer state.Close()

	if err := state.DoString(`print("value", 1, true)`); err != nil {
		t.Fatalf("DoString() error = %v", err)
	}

	if len(lines) != 1 || lines[0] != "value\t1\ttrue" {
		t.Errorf("print output = %q", lines)
	}

	// Without a sink print is silent.
	quiet := NewState()
	defer quiet.Close()
	if err := quiet.DoString(`print("ignored")`); err != nil {
		t.Errorf("DoString() error = %v", err)
	}
}
