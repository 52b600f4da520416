package events

import (
	"sync"

	"github.com/standardbeagle/doctree/internal/model"
)

// Event names emitted during conversion.
const (
	EventBegin             = "begin"
	EventEnd               = "end"
	EventCreateProject     = "createProject"
	EventCreateDeclaration = "createDeclaration"
	EventCreateSignature   = "createSignature"
)

// Payload is what listeners receive. Context carries the conversion context
// that was current when the event fired; it is typed loosely here so the bus
// does not depend on the converter package.
type Payload struct {
	Context   any
	Node      model.Reflection
	Secondary model.Reflection
}

// Listener handles one event occurrence.
type Listener func(payload Payload)

// Bus is a named-event dispatcher. Dispatch is synchronous and runs
// listeners in subscription order; conversion is single-threaded, but the
// mutex keeps subscription safe from tests that set up concurrently.
type Bus struct {
	mu        sync.RWMutex
	listeners map[string][]Listener
}

// NewBus creates an empty event bus.
func NewBus() *Bus {
	return &Bus{
		listeners: make(map[string][]Listener),
	}
}

// On registers a listener for an event name.
func (b *Bus) On(event string, fn Listener) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners[event] = append(b.listeners[event], fn)
}

// Emit fires an event, invoking every listener registered for it.
func (b *Bus) Emit(event string, payload Payload) {
	b.mu.RLock()
	listeners := b.listeners[event]
	b.mu.RUnlock()

	for _, fn := range listeners {
		fn(payload)
	}
}

// ListenerCount reports how many listeners an event has, for tests.
func (b *Bus) ListenerCount(event string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.listeners[event])
}
