package socketmock

import "sync"

// Handler handles an event delivered to an endpoint. The return value is
// passed back to the emitter on the server side and ignored on the client.
type Handler func(payload interface{}) interface{}

// GeneralHandler observes every room-targeted broadcast of one event
type GeneralHandler func(payload interface{}, room string)

// AckHandler receives the result of an emit
type AckHandler func(result interface{})

// registry maps an event name to exactly one handler; registering again replaces it
type registry[H any] struct {
	handlers map[string]H
	mu       sync.RWMutex
}

func newRegistry[H any]() *registry[H] {
	return &registry[H]{handlers: make(map[string]H)}
}

func (r *registry[H]) set(event string, handler H) {
	r.mu.Lock()
	r.handlers[event] = handler
	r.mu.Unlock()
}

func (r *registry[H]) delete(event string) {
	r.mu.Lock()
	delete(r.handlers, event)
	r.mu.Unlock()
}

func (r *registry[H]) get(event string) (H, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	handler, ok := r.handlers[event]
	return handler, ok
}
