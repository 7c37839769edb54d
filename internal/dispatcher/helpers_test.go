package dispatcher_test

import (
	"github.com/dshills/mdplus/internal/command"
	"github.com/dshills/mdplus/internal/dispatcher/execctx"
	"github.com/dshills/mdplus/internal/dispatcher/handler"
)

// testCommand is a minimal command for routing tests.
type testCommand struct {
	name string
}

func (c testCommand) Action() string  { return c.name }
func (c testCommand) Validate() error { return nil }

// namespaceStub handles the actions registered on it within one namespace.
type namespaceStub struct {
	namespace string
	handlers  map[string]func(command.Command, *execctx.ExecutionContext) handler.Result
}

func newNamespaceStub(namespace string) *namespaceStub {
	return &namespaceStub{
		namespace: namespace,
		handlers:  make(map[string]func(command.Command, *execctx.ExecutionContext) handler.Result),
	}
}

func (n *namespaceStub) register(action string, fn func(command.Command, *execctx.ExecutionContext) handler.Result) {
	n.handlers[action] = fn
}

func (n *namespaceStub) HandleAction(cmd command.Command, ctx *execctx.ExecutionContext) handler.Result {
	fn, ok := n.handlers[cmd.Action()]
	if !ok {
		return handler.Errorf("unknown action: %s", cmd.Action())
	}
	return fn(cmd, ctx)
}

func (n *namespaceStub) CanHandle(actionName string) bool {
	if _, ok := n.handlers[actionName]; ok {
		return true
	}
	return false
}

func (n *namespaceStub) Namespace() string { return n.namespace }

func ok(command.Command, *execctx.ExecutionContext) handler.Result {
	return handler.Success()
}
