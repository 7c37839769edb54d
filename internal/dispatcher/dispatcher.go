package dispatcher

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/dshills/mdplus/internal/command"
	"github.com/dshills/mdplus/internal/dispatcher/execctx"
	"github.com/dshills/mdplus/internal/dispatcher/handler"
)

// Dispatcher routes commands to handlers and coordinates execution.
type Dispatcher struct {
	mu sync.RWMutex

	// Core components
	registry *Registry
	router   *Router

	// Target buffer
	buffer execctx.TextBuffer

	// Configuration
	config Config

	// Metrics
	metrics *Metrics

	// Hooks, kept sorted by priority
	preHooks  []PreDispatchHook
	postHooks []PostDispatchHook
}

// New creates a new dispatcher with the given configuration.
func New(config Config) *Dispatcher {
	d := &Dispatcher{
		registry: NewRegistry(),
		router:   NewRouter(),
		config:   config,
	}

	if config.EnableMetrics {
		d.metrics = NewMetrics()
	}

	return d
}

// NewWithDefaults creates a new dispatcher with default configuration.
func NewWithDefaults() *Dispatcher {
	return New(DefaultConfig())
}

// SetBuffer sets the text buffer commands operate on.
func (d *Dispatcher) SetBuffer(buf execctx.TextBuffer) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.buffer = buf
}

// Buffer returns the text buffer.
func (d *Dispatcher) Buffer() execctx.TextBuffer {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.buffer
}

// SetReadOnly toggles read-only mode for subsequent dispatches.
func (d *Dispatcher) SetReadOnly(readOnly bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.config.ReadOnly = readOnly
}

// Dispatch executes a command synchronously against the current buffer.
func (d *Dispatcher) Dispatch(cmd command.Command) handler.Result {
	if cmd == nil || cmd.Action() == "" {
		return handler.Error(ErrInvalidCommand)
	}

	startTime := time.Now()
	name := cmd.Action()

	ctx := d.buildContext()

	if hookName, ok := d.runPreHooks(cmd, ctx); !ok {
		result := handler.CancelledWithMessage("cancelled by hook: " + hookName)
		if d.metrics != nil {
			d.metrics.RecordDispatch(name, time.Since(startTime), result.Status)
		}
		return result
	}

	// Namespace handlers first; the registry holds exact actions they decline.
	h := d.router.Route(name)
	if h == nil {
		h = d.registry.Get(name)
	}
	if h == nil {
		return handler.Error(fmt.Errorf("%w: %s", ErrNoHandler, name))
	}

	var result handler.Result
	if d.config.RecoverFromPanic {
		result = d.executeWithRecovery(h, cmd, ctx)
	} else {
		result = h.Handle(cmd, ctx)
	}

	d.runPostHooks(cmd, ctx, &result)

	if d.metrics != nil {
		d.metrics.RecordDispatch(name, time.Since(startTime), result.Status)
	}

	return result
}

// executeWithRecovery executes a handler with panic recovery.
func (d *Dispatcher) executeWithRecovery(h handler.Handler, cmd command.Command, ctx *execctx.ExecutionContext) (result handler.Result) {
	defer func() {
		if r := recover(); r != nil {
			stack := make([]byte, 4096)
			n := runtime.Stack(stack, false)

			result = handler.Error(fmt.Errorf("%w: %s: %v", ErrPanic, cmd.Action(), r)).
				WithData("stack", string(stack[:n]))

			if d.metrics != nil {
				d.metrics.RecordPanic(cmd.Action())
			}
		}
	}()

	return h.Handle(cmd, ctx)
}

// buildContext snapshots the buffer state into a fresh execution context.
func (d *Dispatcher) buildContext() *execctx.ExecutionContext {
	d.mu.RLock()
	defer d.mu.RUnlock()

	ctx := execctx.FromBuffer(d.buffer)
	ctx.ReadOnly = d.config.ReadOnly
	return ctx
}

// RegisterHandler installs h for an exact action name, replacing any
// handler already installed for it. Namespace handlers still take
// precedence for actions they accept.
func (d *Dispatcher) RegisterHandler(actionName string, h handler.Handler) {
	d.registry.Register(actionName, h)
}

// RegisterNamespace registers a namespace handler.
func (d *Dispatcher) RegisterNamespace(namespace string, h handler.NamespaceHandler) {
	d.router.RegisterNamespace(namespace, h)
}

// UnregisterHandler removes the handler for an exact action name and
// reports whether one was installed.
func (d *Dispatcher) UnregisterHandler(actionName string) bool {
	return d.registry.Unregister(actionName)
}

// RegisterPreHook registers a pre-dispatch hook.
// A hook with the same name replaces the existing one.
func (d *Dispatcher) RegisterPreHook(h PreDispatchHook) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.preHooks = insertHook(d.preHooks, h)
	sortPreHooks(d.preHooks)
}

// RegisterPostHook registers a post-dispatch hook.
// A hook with the same name replaces the existing one.
func (d *Dispatcher) RegisterPostHook(h PostDispatchHook) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.postHooks = insertHook(d.postHooks, h)
	sortPostHooks(d.postHooks)
}

// UnregisterHook removes a hook by name from both hook lists.
func (d *Dispatcher) UnregisterHook(name string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	var removed bool
	d.preHooks, removed = removeHook(d.preHooks, name)
	var removedPost bool
	d.postHooks, removedPost = removeHook(d.postHooks, name)
	return removed || removedPost
}

// runPreHooks runs all pre-dispatch hooks.
// Returns the name of the cancelling hook and false if any hook cancels.
func (d *Dispatcher) runPreHooks(cmd command.Command, ctx *execctx.ExecutionContext) (string, bool) {
	d.mu.RLock()
	hooks := make([]PreDispatchHook, len(d.preHooks))
	copy(hooks, d.preHooks)
	d.mu.RUnlock()

	for _, h := range hooks {
		if !h.PreDispatch(cmd, ctx) {
			return h.Name(), false
		}
	}
	return "", true
}

// runPostHooks runs all post-dispatch hooks.
func (d *Dispatcher) runPostHooks(cmd command.Command, ctx *execctx.ExecutionContext, result *handler.Result) {
	d.mu.RLock()
	hooks := make([]PostDispatchHook, len(d.postHooks))
	copy(hooks, d.postHooks)
	d.mu.RUnlock()

	for _, h := range hooks {
		h.PostDispatch(cmd, ctx, result)
	}
}

// Registry returns the handler registry.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Router returns the action router.
func (d *Dispatcher) Router() *Router {
	return d.router
}

// Metrics returns the metrics collector (may be nil if disabled).
func (d *Dispatcher) Metrics() *Metrics {
	return d.metrics
}

// Config returns the dispatcher configuration.
func (d *Dispatcher) Config() Config {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.config
}
