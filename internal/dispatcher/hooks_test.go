package dispatcher_test

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/dshills/mdplus/internal/command"
	"github.com/dshills/mdplus/internal/dispatcher"
	"github.com/dshills/mdplus/internal/dispatcher/execctx"
	"github.com/dshills/mdplus/internal/dispatcher/handler"
)

func TestHookOrdering(t *testing.T) {
	d := dispatcher.NewWithDefaults()
	d.RegisterHandler("test", handler.NewHandlerFunc(ok))

	var order []string
	pre := func(name string, prio int) dispatcher.PreDispatchHook {
		return dispatcher.NewPreDispatchFunc(name, prio, func(command.Command, *execctx.ExecutionContext) bool {
			order = append(order, "pre:"+name)
			return true
		})
	}
	post := func(name string, prio int) dispatcher.PostDispatchHook {
		return dispatcher.NewPostDispatchFunc(name, prio, func(command.Command, *execctx.ExecutionContext, *handler.Result) {
			order = append(order, "post:"+name)
		})
	}

	d.RegisterPreHook(pre("user", dispatcher.PriorityUser))
	d.RegisterPreHook(pre("system", dispatcher.PrioritySystem))
	d.RegisterPreHook(pre("plugin", dispatcher.PriorityPlugin))
	d.RegisterPostHook(post("system", dispatcher.PrioritySystem))
	d.RegisterPostHook(post("user", dispatcher.PriorityUser))

	d.Dispatch(testCommand{name: "test"})

	want := []string{"pre:system", "pre:plugin", "pre:user", "post:user", "post:system"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("hook order = %v, want %v", order, want)
	}
}

func TestHookReplaceAndUnregister(t *testing.T) {
	d := dispatcher.NewWithDefaults()
	d.RegisterHandler("test", handler.NewHandlerFunc(ok))

	calls := 0
	count := func(command.Command, *execctx.ExecutionContext) bool {
		calls++
		return true
	}
	d.RegisterPreHook(dispatcher.NewPreDispatchFunc("counter", 0, count))
	d.RegisterPreHook(dispatcher.NewPreDispatchFunc("counter", 0, count))

	d.Dispatch(testCommand{name: "test"})
	if calls != 1 {
		t.Errorf("expected same-named hook to be replaced, got %d calls", calls)
	}

	if !d.UnregisterHook("counter") {
		t.Error("expected UnregisterHook to report removal")
	}
	if d.UnregisterHook("counter") {
		t.Error("expected second UnregisterHook to report nothing removed")
	}

	d.Dispatch(testCommand{name: "test"})
	if calls != 1 {
		t.Errorf("expected no calls after unregister, got %d", calls)
	}
}

func TestReadOnlyHook(t *testing.T) {
	h := dispatcher.NewReadOnlyHook()

	if !h.PreDispatch(testCommand{name: "x"}, execctx.New()) {
		t.Error("expected writable context to pass")
	}
	if h.PreDispatch(testCommand{name: "x"}, execctx.New().WithReadOnly(true)) {
		t.Error("expected read-only context to be rejected")
	}
}

func TestLoggingHook(t *testing.T) {
	var lines []string
	logHook := dispatcher.NewLoggingHook(func(format string, args ...interface{}) {
		lines = append(lines, fmt.Sprintf(format, args...))
	})

	d := dispatcher.NewWithDefaults()
	d.RegisterPreHook(logHook)
	d.RegisterPostHook(logHook)
	d.RegisterHandler("test.ok", handler.NewHandlerFunc(ok))
	d.RegisterHandler("test.fail", handler.NewHandlerFunc(func(command.Command, *execctx.ExecutionContext) handler.Result {
		return handler.Errorf("boom")
	}))

	d.Dispatch(testCommand{name: "test.ok"})
	d.Dispatch(testCommand{name: "test.fail"})

	if len(lines) != 4 {
		t.Fatalf("expected 4 log lines, got %d: %v", len(lines), lines)
	}
	if !strings.HasPrefix(lines[0], "dispatching test.ok") {
		t.Errorf("unexpected first line %q", lines[0])
	}
	if !strings.Contains(lines[1], "test.ok -> ok") {
		t.Errorf("unexpected second line %q", lines[1])
	}
	if !strings.Contains(lines[3], "test.fail -> error") || !strings.Contains(lines[3], "boom") {
		t.Errorf("unexpected error line %q", lines[3])
	}
}
