package dispatcher_test

import (
	"errors"
	"testing"

	"github.com/dshills/mdplus/internal/command"
	"github.com/dshills/mdplus/internal/dispatcher"
	"github.com/dshills/mdplus/internal/dispatcher/execctx"
	"github.com/dshills/mdplus/internal/dispatcher/handler"
	"github.com/dshills/mdplus/internal/engine/buffer"
	"github.com/dshills/mdplus/internal/engine/document"
)

func TestNewWithDefaults(t *testing.T) {
	d := dispatcher.NewWithDefaults()

	if d == nil {
		t.Fatal("expected non-nil dispatcher")
	}
	if d.Registry() == nil {
		t.Error("expected non-nil registry")
	}
	if d.Router() == nil {
		t.Error("expected non-nil router")
	}

	// Metrics should be nil by default
	if d.Metrics() != nil {
		t.Error("expected nil metrics by default")
	}
	if !d.Config().RecoverFromPanic {
		t.Error("expected panic recovery on by default")
	}
}

func TestNewWithMetrics(t *testing.T) {
	d := dispatcher.New(dispatcher.DefaultConfig().WithMetrics())

	if d.Metrics() == nil {
		t.Error("expected non-nil metrics when enabled")
	}
}

func TestDispatchNoHandler(t *testing.T) {
	d := dispatcher.NewWithDefaults()

	result := d.Dispatch(testCommand{name: "unknown.action"})

	if result.Status != handler.StatusError {
		t.Errorf("expected StatusError for unknown action, got %v", result.Status)
	}
	if !errors.Is(result.Error, dispatcher.ErrNoHandler) {
		t.Errorf("expected ErrNoHandler, got %v", result.Error)
	}
}

func TestDispatchInvalidCommand(t *testing.T) {
	d := dispatcher.NewWithDefaults()

	tests := []struct {
		name string
		cmd  command.Command
	}{
		{"nil", nil},
		{"empty action", testCommand{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := d.Dispatch(tt.cmd)
			if !errors.Is(result.Error, dispatcher.ErrInvalidCommand) {
				t.Errorf("expected ErrInvalidCommand, got %v", result.Error)
			}
		})
	}
}

func TestRegisterHandler(t *testing.T) {
	d := dispatcher.NewWithDefaults()

	called := false
	d.RegisterHandler("test.action", handler.NewHandlerFunc(func(cmd command.Command, ctx *execctx.ExecutionContext) handler.Result {
		called = true
		return handler.Success()
	}))

	result := d.Dispatch(testCommand{name: "test.action"})

	if !called {
		t.Error("expected handler to be called")
	}
	if result.Status != handler.StatusOK {
		t.Errorf("expected StatusOK, got %v", result.Status)
	}
}

func TestRegisterNamespace(t *testing.T) {
	d := dispatcher.NewWithDefaults()

	ns := newNamespaceStub("markdown")
	ns.register("markdown.heading", func(cmd command.Command, ctx *execctx.ExecutionContext) handler.Result {
		return handler.Success().WithMessage("heading")
	})
	d.RegisterNamespace("markdown", ns)

	result := d.Dispatch(testCommand{name: "markdown.heading"})

	if result.Status != handler.StatusOK {
		t.Errorf("expected StatusOK, got %v", result.Status)
	}
	if result.Message != "heading" {
		t.Errorf("expected message 'heading', got %q", result.Message)
	}
}

func TestUnregisterHandler(t *testing.T) {
	d := dispatcher.NewWithDefaults()
	d.RegisterHandler("test.action", handler.NewHandlerFunc(ok))

	if result := d.Dispatch(testCommand{name: "test.action"}); result.Status != handler.StatusOK {
		t.Error("expected handler to work before unregister")
	}

	if !d.UnregisterHandler("test.action") {
		t.Error("expected UnregisterHandler to report the removed handler")
	}

	if result := d.Dispatch(testCommand{name: "test.action"}); result.Status != handler.StatusError {
		t.Error("expected error after unregister")
	}
}

func TestDispatchCapturesBufferState(t *testing.T) {
	doc := document.New("hello world")
	doc.SetSelection(buffer.NewSelection(buffer.Position{Column: 11}, buffer.Position{Column: 6}))

	d := dispatcher.NewWithDefaults()
	d.SetBuffer(doc)

	var captured *execctx.ExecutionContext
	d.RegisterHandler("test.capture", handler.NewHandlerFunc(func(cmd command.Command, ctx *execctx.ExecutionContext) handler.Result {
		captured = ctx
		return handler.Success()
	}))

	d.Dispatch(testCommand{name: "test.capture"})

	if captured == nil {
		t.Fatal("expected handler to be called")
	}
	if captured.Buffer != doc {
		t.Error("expected context buffer to be the document")
	}
	if captured.Cursor != (buffer.Position{Column: 6}) {
		t.Errorf("expected cursor at head 0:6, got %s", captured.Cursor)
	}
	want := buffer.NewRange(buffer.Position{Column: 6}, buffer.Position{Column: 11})
	if captured.Selection != want {
		t.Errorf("expected selection %s, got %s", want, captured.Selection)
	}
	if got := captured.SelectedText(); got != "world" {
		t.Errorf("expected selected text 'world', got %q", got)
	}
}

func TestDispatchReadOnly(t *testing.T) {
	d := dispatcher.New(dispatcher.DefaultConfig().WithReadOnly(true))
	d.SetBuffer(document.New(""))
	d.RegisterPreHook(dispatcher.NewReadOnlyHook())

	handlerCalled := false
	d.RegisterHandler("test.edit", handler.NewHandlerFunc(func(cmd command.Command, ctx *execctx.ExecutionContext) handler.Result {
		handlerCalled = true
		return handler.Success()
	}))

	result := d.Dispatch(testCommand{name: "test.edit"})
	if handlerCalled {
		t.Error("expected handler NOT to be called in read-only mode")
	}
	if result.Status != handler.StatusCancelled {
		t.Errorf("expected StatusCancelled, got %v", result.Status)
	}

	d.SetReadOnly(false)
	if result := d.Dispatch(testCommand{name: "test.edit"}); result.Status != handler.StatusOK {
		t.Errorf("expected StatusOK after leaving read-only, got %v", result.Status)
	}
}

func TestPreDispatchHookCancel(t *testing.T) {
	d := dispatcher.NewWithDefaults()

	d.RegisterPreHook(dispatcher.NewPreDispatchFunc("veto", dispatcher.PriorityUser, func(cmd command.Command, ctx *execctx.ExecutionContext) bool {
		return false
	}))

	handlerCalled := false
	d.RegisterHandler("test", handler.NewHandlerFunc(func(cmd command.Command, ctx *execctx.ExecutionContext) handler.Result {
		handlerCalled = true
		return handler.Success()
	}))

	result := d.Dispatch(testCommand{name: "test"})

	if handlerCalled {
		t.Error("expected handler NOT to be called when hook cancels")
	}
	if result.Status != handler.StatusCancelled {
		t.Errorf("expected StatusCancelled, got %v", result.Status)
	}
	if result.Message != "cancelled by hook: veto" {
		t.Errorf("unexpected message %q", result.Message)
	}
}

func TestPostDispatchHook(t *testing.T) {
	d := dispatcher.NewWithDefaults()

	var captured handler.Result
	d.RegisterPostHook(dispatcher.NewPostDispatchFunc("capture", dispatcher.PriorityUser, func(cmd command.Command, ctx *execctx.ExecutionContext, result *handler.Result) {
		captured = *result
		result.Message = "rewritten"
	}))

	d.RegisterHandler("test", handler.NewHandlerFunc(func(cmd command.Command, ctx *execctx.ExecutionContext) handler.Result {
		return handler.Success().WithMessage("done")
	}))

	result := d.Dispatch(testCommand{name: "test"})

	if captured.Message != "done" {
		t.Errorf("expected captured message 'done', got %q", captured.Message)
	}
	if result.Message != "rewritten" {
		t.Errorf("expected post hook to modify result, got %q", result.Message)
	}
}

func TestPanicRecovery(t *testing.T) {
	d := dispatcher.New(dispatcher.DefaultConfig().WithPanicRecovery(true).WithMetrics())

	d.RegisterHandler("panic", handler.NewHandlerFunc(func(cmd command.Command, ctx *execctx.ExecutionContext) handler.Result {
		panic("test panic")
	}))

	result := d.Dispatch(testCommand{name: "panic"})

	if result.Status != handler.StatusError {
		t.Errorf("expected StatusError after panic, got %v", result.Status)
	}
	if !errors.Is(result.Error, dispatcher.ErrPanic) {
		t.Errorf("expected ErrPanic, got %v", result.Error)
	}
	if result.GetDataString("stack") == "" {
		t.Error("expected stack trace in result data")
	}
	if d.Metrics().TotalPanics() != 1 {
		t.Errorf("expected 1 recorded panic, got %d", d.Metrics().TotalPanics())
	}
}

func TestNoPanicRecovery(t *testing.T) {
	d := dispatcher.New(dispatcher.DefaultConfig().WithPanicRecovery(false))

	d.RegisterHandler("panic", handler.NewHandlerFunc(func(cmd command.Command, ctx *execctx.ExecutionContext) handler.Result {
		panic("test panic")
	}))

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic to propagate when recovery is disabled")
		}
	}()

	d.Dispatch(testCommand{name: "panic"})
}

func TestMetricsRecording(t *testing.T) {
	d := dispatcher.New(dispatcher.DefaultConfig().WithMetrics())
	d.RegisterHandler("test.action", handler.NewHandlerFunc(ok))
	d.RegisterHandler("test.noop", handler.NewHandlerFunc(func(cmd command.Command, ctx *execctx.ExecutionContext) handler.Result {
		return handler.NoOp()
	}))

	d.Dispatch(testCommand{name: "test.action"})
	d.Dispatch(testCommand{name: "test.action"})
	d.Dispatch(testCommand{name: "test.action"})
	d.Dispatch(testCommand{name: "test.noop"})

	metrics := d.Metrics()
	if metrics.TotalDispatches() != 4 {
		t.Errorf("expected 4 total dispatches, got %d", metrics.TotalDispatches())
	}

	stats := metrics.ActionStats("test.action")
	if stats == nil {
		t.Fatal("expected action stats for 'test.action'")
	}
	if stats.DispatchCount != 3 {
		t.Errorf("expected dispatch count 3, got %d", stats.DispatchCount)
	}
	if metrics.StatusCount(handler.StatusNoOp) != 1 {
		t.Errorf("expected 1 no-op, got %d", metrics.StatusCount(handler.StatusNoOp))
	}
}

func TestRouterPrecedence(t *testing.T) {
	d := dispatcher.NewWithDefaults()

	ns := newNamespaceStub("test")
	ns.register("test.action", func(cmd command.Command, ctx *execctx.ExecutionContext) handler.Result {
		return handler.Success().WithMessage("namespace")
	})
	d.RegisterNamespace("test", ns)

	d.RegisterHandler("test.action", handler.NewHandlerFunc(func(cmd command.Command, ctx *execctx.ExecutionContext) handler.Result {
		return handler.Success().WithMessage("exact")
	}))
	d.RegisterHandler("test.other", handler.NewHandlerFunc(func(cmd command.Command, ctx *execctx.ExecutionContext) handler.Result {
		return handler.Success().WithMessage("exact")
	}))

	if result := d.Dispatch(testCommand{name: "test.action"}); result.Message != "namespace" {
		t.Errorf("expected namespace handler to take precedence, got message %q", result.Message)
	}

	// The namespace handler declines test.other, so the registry answers.
	if result := d.Dispatch(testCommand{name: "test.other"}); result.Message != "exact" {
		t.Errorf("expected registry fallback, got message %q", result.Message)
	}
}
