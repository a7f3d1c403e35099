// pkg/event/event.go
package event

import (
	"sync"
)

// Type represents the type of event
type Type string

// Arena event types
const (
	Collision  Type = "collision"
	Recharge   Type = "recharge"
	Keypress   Type = "keypress"
	GameWon    Type = "game_won"
	GameLost   Type = "game_lost"
	ArenaReset Type = "arena_reset"
)

// Event is the base interface for all events
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Source    interface{}
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// Handler is a function that handles events
type Handler func(Event)

// Bus fans events out to observers. Publishing is synchronous: every handler
// has returned before Publish does.
type Bus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]Handler),
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// SubscribeAll registers one handler for several event types.
func (b *Bus) SubscribeAll(handler Handler, types ...Type) {
	for _, t := range types {
		b.Subscribe(t, handler)
	}
}

// Publish sends an event to all subscribed handlers. A nil bus drops the
// event, so components can publish without checking for observers.
func (b *Bus) Publish(event Event) {
	if b == nil {
		return
	}
	b.mu.RLock()
	handlers := b.handlers[event.GetType()]
	b.mu.RUnlock()

	for _, handler := range handlers {
		handler(event)
	}
}
