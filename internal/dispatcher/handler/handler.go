// Package handler provides the handler interface and types for command dispatch.
package handler

import (
	"github.com/dshills/mdplus/internal/command"
	"github.com/dshills/mdplus/internal/dispatcher/execctx"
)

// Handler processes a specific command or set of commands.
type Handler interface {
	// Handle executes the command and returns a result.
	Handle(cmd command.Command, ctx *execctx.ExecutionContext) Result

	// CanHandle returns true if this handler can process the action.
	CanHandle(actionName string) bool
}

// HandlerFunc is a function adapter for Handler interface.
// It allows using a simple function as a Handler.
type HandlerFunc struct {
	fn func(cmd command.Command, ctx *execctx.ExecutionContext) Result
}

// NewHandlerFunc creates a HandlerFunc from a function.
func NewHandlerFunc(fn func(cmd command.Command, ctx *execctx.ExecutionContext) Result) *HandlerFunc {
	return &HandlerFunc{fn: fn}
}

// Handle implements Handler.Handle.
func (f *HandlerFunc) Handle(cmd command.Command, ctx *execctx.ExecutionContext) Result {
	if f.fn == nil {
		return Errorf("handler function is nil")
	}
	return f.fn(cmd, ctx)
}

// CanHandle implements Handler.CanHandle.
// HandlerFunc always returns true; caller must ensure correct routing.
func (f *HandlerFunc) CanHandle(actionName string) bool {
	return true
}

// NamespaceHandler handles all commands within a namespace.
// A namespace is the prefix before the first dot (e.g., "markdown" in "markdown.heading").
type NamespaceHandler interface {
	// HandleAction handles a command within this namespace.
	HandleAction(cmd command.Command, ctx *execctx.ExecutionContext) Result

	// CanHandle returns true if this handler can process the action.
	CanHandle(actionName string) bool

	// Namespace returns the namespace prefix (e.g., "markdown").
	Namespace() string
}

// namespaceAdapter adapts NamespaceHandler to Handler interface.
type namespaceAdapter struct {
	h NamespaceHandler
}

// NewNamespaceAdapter creates a Handler from a NamespaceHandler.
func NewNamespaceAdapter(h NamespaceHandler) Handler {
	return &namespaceAdapter{h: h}
}

func (a *namespaceAdapter) Handle(cmd command.Command, ctx *execctx.ExecutionContext) Result {
	return a.h.HandleAction(cmd, ctx)
}

func (a *namespaceAdapter) CanHandle(actionName string) bool {
	return a.h.CanHandle(actionName)
}
