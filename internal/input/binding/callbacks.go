package binding

import "github.com/dshills/tickbind/internal/event"

// Handler is anything that can receive a dispatched event.
type Handler interface {
	HandleEvent(ev event.Event)
}

// HandlerFunc adapts an ordinary function to Handler.
type HandlerFunc func(ev event.Event)

// HandleEvent calls f(ev).
func (f HandlerFunc) HandleEvent(ev event.Event) {
	f(ev)
}

// CallbackTable maps identity keys to handlers. Changes take effect
// immediately.
type CallbackTable struct {
	handlers map[Key]Handler
}

// NewCallbackTable creates an empty table.
func NewCallbackTable() *CallbackTable {
	return &CallbackTable{handlers: make(map[Key]Handler)}
}

// Add registers h under k.
func (t *CallbackTable) Add(k Key, h Handler) error {
	if h == nil {
		return ErrNilHandler
	}
	if _, exists := t.handlers[k]; exists {
		return ErrDuplicateCallback
	}
	t.handlers[k] = h
	return nil
}

// Remove deletes the handler under k.
func (t *CallbackTable) Remove(k Key) bool {
	if _, exists := t.handlers[k]; !exists {
		return false
	}
	delete(t.handlers, k)
	return true
}

// Get returns the handler under k.
func (t *CallbackTable) Get(k Key) (Handler, bool) {
	h, ok := t.handlers[k]
	return h, ok
}

// Len returns the number of registered handlers.
func (t *CallbackTable) Len() int {
	return len(t.handlers)
}

// Clear removes all handlers.
func (t *CallbackTable) Clear() {
	t.handlers = make(map[Key]Handler)
}
