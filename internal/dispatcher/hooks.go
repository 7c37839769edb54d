package dispatcher

import (
	"sort"
	"time"

	"github.com/dshills/mdplus/internal/command"
	"github.com/dshills/mdplus/internal/dispatcher/execctx"
	"github.com/dshills/mdplus/internal/dispatcher/handler"
)

// Standard hook priorities.
// Higher values run first for pre-hooks and last for post-hooks.
const (
	PrioritySystem = 1000
	PriorityPlugin = 100
	PriorityUser   = 0
)

// Hook is the base interface for all dispatch hooks.
type Hook interface {
	// Name returns a unique identifier for this hook.
	Name() string

	// Priority returns the hook priority.
	Priority() int
}

// PreDispatchHook is called before a command is dispatched.
type PreDispatchHook interface {
	Hook

	// PreDispatch is called before dispatch.
	// Returns false to cancel the dispatch.
	PreDispatch(cmd command.Command, ctx *execctx.ExecutionContext) bool
}

// PostDispatchHook is called after a command is dispatched.
type PostDispatchHook interface {
	Hook

	// PostDispatch is called after dispatch completes.
	// It may inspect or modify the result.
	PostDispatch(cmd command.Command, ctx *execctx.ExecutionContext, result *handler.Result)
}

// PreDispatchFunc wraps a function as a PreDispatchHook.
type PreDispatchFunc struct {
	name     string
	priority int
	fn       func(cmd command.Command, ctx *execctx.ExecutionContext) bool
}

// NewPreDispatchFunc creates a new PreDispatchFunc hook.
func NewPreDispatchFunc(name string, priority int, fn func(cmd command.Command, ctx *execctx.ExecutionContext) bool) *PreDispatchFunc {
	return &PreDispatchFunc{name: name, priority: priority, fn: fn}
}

// Name implements Hook.
func (f *PreDispatchFunc) Name() string { return f.name }

// Priority implements Hook.
func (f *PreDispatchFunc) Priority() int { return f.priority }

// PreDispatch implements PreDispatchHook.
func (f *PreDispatchFunc) PreDispatch(cmd command.Command, ctx *execctx.ExecutionContext) bool {
	if f.fn == nil {
		return true
	}
	return f.fn(cmd, ctx)
}

// PostDispatchFunc wraps a function as a PostDispatchHook.
type PostDispatchFunc struct {
	name     string
	priority int
	fn       func(cmd command.Command, ctx *execctx.ExecutionContext, result *handler.Result)
}

// NewPostDispatchFunc creates a new PostDispatchFunc hook.
func NewPostDispatchFunc(name string, priority int, fn func(cmd command.Command, ctx *execctx.ExecutionContext, result *handler.Result)) *PostDispatchFunc {
	return &PostDispatchFunc{name: name, priority: priority, fn: fn}
}

// Name implements Hook.
func (f *PostDispatchFunc) Name() string { return f.name }

// Priority implements Hook.
func (f *PostDispatchFunc) Priority() int { return f.priority }

// PostDispatch implements PostDispatchHook.
func (f *PostDispatchFunc) PostDispatch(cmd command.Command, ctx *execctx.ExecutionContext, result *handler.Result) {
	if f.fn != nil {
		f.fn(cmd, ctx, result)
	}
}

// ReadOnlyHook cancels every command dispatched against a read-only context.
type ReadOnlyHook struct{}

// NewReadOnlyHook creates a read-only guard.
func NewReadOnlyHook() *ReadOnlyHook {
	return &ReadOnlyHook{}
}

// Name implements Hook.
func (h *ReadOnlyHook) Name() string { return "readonly" }

// Priority implements Hook.
func (h *ReadOnlyHook) Priority() int { return PrioritySystem }

// PreDispatch implements PreDispatchHook.
func (h *ReadOnlyHook) PreDispatch(cmd command.Command, ctx *execctx.ExecutionContext) bool {
	return !ctx.ReadOnly
}

// LoggingHook logs every dispatch with its status and duration.
type LoggingHook struct {
	// LogFunc is called with log messages.
	LogFunc func(format string, args ...interface{})

	now   func() time.Time
	start time.Time
}

// NewLoggingHook creates a new logging hook.
func NewLoggingHook(logFunc func(format string, args ...interface{})) *LoggingHook {
	return &LoggingHook{LogFunc: logFunc, now: time.Now}
}

// Name implements Hook.
func (h *LoggingHook) Name() string { return "logging" }

// Priority implements Hook.
// Logging runs first before dispatch and last after it.
func (h *LoggingHook) Priority() int { return PrioritySystem + 1 }

// PreDispatch records the start time and logs the command.
func (h *LoggingHook) PreDispatch(cmd command.Command, ctx *execctx.ExecutionContext) bool {
	h.start = h.now()
	if h.LogFunc != nil {
		h.LogFunc("dispatching %s (cursor=%s, selection=%s)", cmd.Action(), ctx.Cursor, ctx.Selection)
	}
	return true
}

// PostDispatch logs the dispatch result.
func (h *LoggingHook) PostDispatch(cmd command.Command, ctx *execctx.ExecutionContext, result *handler.Result) {
	if h.LogFunc == nil {
		return
	}
	elapsed := h.now().Sub(h.start)
	if result.Error != nil {
		h.LogFunc("dispatch %s -> %s in %s: %v", cmd.Action(), result.Status, elapsed, result.Error)
		return
	}
	h.LogFunc("dispatch %s -> %s in %s", cmd.Action(), result.Status, elapsed)
}

func insertHook[H Hook](hooks []H, h H) []H {
	for i, existing := range hooks {
		if existing.Name() == h.Name() {
			hooks[i] = h
			return hooks
		}
	}
	return append(hooks, h)
}

func removeHook[H Hook](hooks []H, name string) ([]H, bool) {
	for i, h := range hooks {
		if h.Name() == name {
			return append(hooks[:i], hooks[i+1:]...), true
		}
	}
	return hooks, false
}

// sortPreHooks sorts pre-hooks by priority descending (higher first).
func sortPreHooks(hooks []PreDispatchHook) {
	sort.SliceStable(hooks, func(i, j int) bool {
		return hooks[i].Priority() > hooks[j].Priority()
	})
}

// sortPostHooks sorts post-hooks by priority ascending (higher last).
func sortPostHooks(hooks []PostDispatchHook) {
	sort.SliceStable(hooks, func(i, j int) bool {
		return hooks[i].Priority() < hooks[j].Priority()
	})
}
