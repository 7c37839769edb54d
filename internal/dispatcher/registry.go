package dispatcher

import (
	"sort"
	"strings"
	"sync"

	"github.com/dshills/mdplus/internal/dispatcher/handler"
)

// Registry maps exact action names to handlers. The dispatcher consults it
// for actions no namespace handler accepts, such as the per-prompt
// markdown.token.<key> actions.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]handler.Handler
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		handlers: make(map[string]handler.Handler),
	}
}

// Register installs h for actionName and returns the handler it replaced,
// or nil.
func (r *Registry) Register(actionName string, h handler.Handler) handler.Handler {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev := r.handlers[actionName]
	r.handlers[actionName] = h
	return prev
}

// Unregister removes the handler for actionName and reports whether one
// was installed.
func (r *Registry) Unregister(actionName string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.handlers[actionName]
	delete(r.handlers, actionName)
	return ok
}

// Get returns the handler for actionName, or nil.
func (r *Registry) Get(actionName string) handler.Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.handlers[actionName]
}

// Has returns true if a handler is installed for actionName.
func (r *Registry) Has(actionName string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.handlers[actionName]
	return ok
}

// List returns the sorted action names starting with prefix.
// An empty prefix lists every action.
func (r *Registry) List(prefix string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var names []string
	for name := range r.handlers {
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Count returns the number of registered actions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.handlers)
}
