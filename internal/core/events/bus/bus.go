package bus

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event is an immutable message fanned out by the Bus. Type is the routing
// key; Data is an opaque payload for consumers.
type Event struct {
	Type      string
	Source    string
	Timestamp time.Time
	Data      any
}

// NewEvent stamps an event with the current time.
func NewEvent(typ, source string, data any) Event {
	return Event{Type: typ, Source: source, Timestamp: time.Now(), Data: data}
}

// Handler is a callback invoked per delivered event. Delivery is synchronous
// in the publisher's goroutine; handlers should be quick.
type Handler func(Event)

// Subscription is the handle returned by Subscribe. Cancel is idempotent.
type Subscription struct {
	id        string
	eventType string
	bus       *Bus
}

func (s *Subscription) Cancel() {
	if s == nil || s.bus == nil {
		return
	}
	s.bus.unsubscribe(s)
	s.bus = nil
}

// Bus is a thread-safe in-process pub/sub with type-based fan-out. The engine
// publishes from a single goroutine, but subscribers may attach from others,
// so registration is still guarded.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string]map[string]Handler
}

func New() *Bus {
	return &Bus{handlers: make(map[string]map[string]Handler)}
}

// Subscribe registers a handler for one event type.
func (b *Bus) Subscribe(eventType string, h Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	byID := b.handlers[eventType]
	if byID == nil {
		byID = make(map[string]Handler)
		b.handlers[eventType] = byID
	}
	id := uuid.NewString()
	byID[id] = h
	return &Subscription{id: id, eventType: eventType, bus: b}
}

// Publish delivers the event to every active subscriber of event.Type.
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	byID := b.handlers[event.Type]
	hs := make([]Handler, 0, len(byID))
	for _, h := range byID {
		hs = append(hs, h)
	}
	b.mu.RUnlock()

	for _, h := range hs {
		h(event)
	}
}

func (b *Bus) unsubscribe(s *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if byID := b.handlers[s.eventType]; byID != nil {
		delete(byID, s.id)
	}
}
