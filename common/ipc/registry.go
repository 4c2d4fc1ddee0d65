package ipc

import (
	"sort"
	"sync"
)

// Registry maps command names to handlers.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]HandlerFunc
}

func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]HandlerFunc)}
}

// Register adds a handler for command, replacing any previous one.
// Thread-safe and intended for start-up wiring.
//
// Example:
//
//	reg.Register("get_config", getConfigHandler)
//
// Panics if command is empty or handler is nil.
func (r *Registry) Register(command string, handler HandlerFunc) {
	if command == "" {
		panic("command cannot be empty")
	}
	if handler == nil {
		panic("handler cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.handlers == nil {
		r.handlers = make(map[string]HandlerFunc)
	}
	r.handlers[command] = handler
}

// RegisterAll registers every entry of a handler group.
func (r *Registry) RegisterAll(group map[string]HandlerFunc) {
	for command, handler := range group {
		r.Register(command, handler)
	}
}

// Get retrieves a handler by command.
// Returns (nil, false) if not found.
func (r *Registry) Get(command string) (HandlerFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	handler, ok := r.handlers[command]
	return handler, ok
}

// Unregister removes a handler. Returns true if it was registered.
func (r *Registry) Unregister(command string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.handlers[command]; !exists {
		return false
	}
	delete(r.handlers, command)
	return true
}

// List returns the registered command names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	commands := make([]string, 0, len(r.handlers))
	for command := range r.handlers {
		commands = append(commands, command)
	}
	sort.Strings(commands)
	return commands
}
