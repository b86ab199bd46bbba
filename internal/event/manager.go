// internal/event/manager.go
package event

import (
	"sync"

	"github.com/bethropolis/tidemark/internal/logger"
)

// Handler is an event subscriber. It returns true if it consumed the event,
// which stops delivery to later subscribers.
type Handler func(e Event) bool

// SubscriptionID identifies a subscription for Unsubscribe.
type SubscriptionID uint64

type subscription struct {
	id      SubscriptionID
	handler Handler
}

// Manager handles event subscriptions and dispatching.
type Manager struct {
	mu       sync.RWMutex
	nextID   SubscriptionID
	handlers map[Type][]subscription
}

// NewManager creates a new event manager.
func NewManager() *Manager {
	return &Manager{
		handlers: make(map[Type][]subscription),
	}
}

// Subscribe adds a handler for an event type.
func (m *Manager) Subscribe(eventType Type, handler Handler) SubscriptionID {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	id := m.nextID
	m.handlers[eventType] = append(m.handlers[eventType], subscription{id: id, handler: handler})
	logger.DebugTagf("event", "Event Manager: handler %d subscribed to %v", id, eventType)
	return id
}

// Unsubscribe removes a handler. It reports whether the ID was found.
func (m *Manager) Unsubscribe(id SubscriptionID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	for t, subs := range m.handlers {
		for i, s := range subs {
			if s.id != id {
				continue
			}
			rest := make([]subscription, 0, len(subs)-1)
			rest = append(rest, subs[:i]...)
			rest = append(rest, subs[i+1:]...)
			m.handlers[t] = rest
			logger.DebugTagf("event", "Event Manager: handler %d unsubscribed from %v", id, t)
			return true
		}
	}
	return false
}

// Dispatch sends an event to the handlers for its type, synchronously and in
// subscription order. It reports whether a handler consumed the event.
func (m *Manager) Dispatch(eventType Type, data interface{}) bool {
	event := Event{
		Type: eventType,
		Data: data,
	}

	m.mu.RLock()
	subs := m.handlers[eventType]
	m.mu.RUnlock()

	if len(subs) == 0 {
		return false
	}

	logger.DebugTagf("event", "Event Manager: dispatching %v to %d handler(s)", eventType, len(subs))

	// Subscribe and Unsubscribe replace the slice, so handlers may change
	// subscriptions while this one is being walked.
	for _, s := range subs {
		if s.handler(event) {
			return true
		}
	}
	return false
}
