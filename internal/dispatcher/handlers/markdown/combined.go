package markdown

import (
	"github.com/dshills/mdplus/internal/command"
	"github.com/dshills/mdplus/internal/dispatcher/execctx"
	"github.com/dshills/mdplus/internal/dispatcher/handler"
)

// CombinedHandler handles the whole markdown namespace by delegating to the
// inline and block handlers. Their per-command methods (Heading, Wrap, Table,
// ...) are available directly on it.
type CombinedHandler struct {
	*InlineHandler
	*BlockHandler
}

// NewHandler creates a handler for every markdown command.
func NewHandler() *CombinedHandler {
	return &CombinedHandler{
		InlineHandler: NewInlineHandler(),
		BlockHandler:  NewBlockHandler(),
	}
}

// Namespace returns the markdown namespace.
func (h *CombinedHandler) Namespace() string {
	return command.Namespace
}

// CanHandle returns true if this handler can process the action.
func (h *CombinedHandler) CanHandle(actionName string) bool {
	return h.InlineHandler.CanHandle(actionName) ||
		h.BlockHandler.CanHandle(actionName)
}

// HandleAction processes a markdown command by delegating to the appropriate handler.
func (h *CombinedHandler) HandleAction(cmd command.Command, ctx *execctx.ExecutionContext) handler.Result {
	name := cmd.Action()
	if h.InlineHandler.CanHandle(name) {
		return h.InlineHandler.HandleAction(cmd, ctx)
	}
	if h.BlockHandler.CanHandle(name) {
		return h.BlockHandler.HandleAction(cmd, ctx)
	}

	return handler.Errorf("unknown markdown action: %s", name)
}
