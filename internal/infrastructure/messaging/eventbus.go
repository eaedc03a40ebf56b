// Package messaging implements the in-memory event bus for Teacher Journal Hub.
// The journal is single-process and event-driven: dispatch is synchronous so
// that a commit's history append, ledger update and notification keep their
// fixed order from the caller's perspective.
package messaging

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/journal-hub/teacher-journal-hub/internal/domain/shared"
)

// ErrEventBusClosed is returned when publishing or subscribing on a closed bus.
var ErrEventBusClosed = errors.New("event bus is closed")

// InMemoryEventBus is a synchronous in-memory event bus.
// Suitable for the single-instance journal and for testing.
type InMemoryEventBus struct {
	mu          sync.RWMutex
	handlers    map[shared.EventType][]shared.EventHandler
	allHandlers []shared.EventHandler
	logger      *slog.Logger
	metrics     *EventBusMetrics
	closed      bool
}

// InMemoryEventBusConfig contains configuration for InMemoryEventBus.
type InMemoryEventBusConfig struct {
	// Logger for structured logging.
	Logger *slog.Logger

	// EnableMetrics enables per-event-type counters.
	EnableMetrics bool
}

// NewInMemoryEventBus creates a new in-memory event bus.
func NewInMemoryEventBus(config InMemoryEventBusConfig) *InMemoryEventBus {
	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	bus := &InMemoryEventBus{
		handlers:    make(map[shared.EventType][]shared.EventHandler),
		allHandlers: make([]shared.EventHandler, 0),
		logger:      config.Logger,
	}
	if config.EnableMetrics {
		bus.metrics = NewEventBusMetrics()
	}
	return bus
}

// Subscribe registers a handler for a specific event type.
func (b *InMemoryEventBus) Subscribe(eventType shared.EventType, handler shared.EventHandler) error {
	if handler == nil {
		return errors.New("handler cannot be nil")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrEventBusClosed
	}

	b.handlers[eventType] = append(b.handlers[eventType], handler)
	b.logger.Debug("subscribed handler", "event_type", eventType)
	return nil
}

// SubscribeAll registers a handler for all events.
func (b *InMemoryEventBus) SubscribeAll(handler shared.EventHandler) error {
	if handler == nil {
		return errors.New("handler cannot be nil")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrEventBusClosed
	}

	b.allHandlers = append(b.allHandlers, handler)
	return nil
}

// Publish sends an event to all subscribed handlers, synchronously and in
// subscription order. Handler errors are logged, never propagated: the
// publishing operation has already happened.
func (b *InMemoryEventBus) Publish(event shared.Event) error {
	if event == nil {
		return errors.New("event cannot be nil")
	}

	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return ErrEventBusClosed
	}
	handlers := make([]shared.EventHandler, 0, len(b.handlers[event.EventType()])+len(b.allHandlers))
	handlers = append(handlers, b.handlers[event.EventType()]...)
	handlers = append(handlers, b.allHandlers...)
	b.mu.RUnlock()

	if b.metrics != nil {
		b.metrics.RecordPublish(event.EventType())
	}

	if len(handlers) == 0 {
		b.logger.Debug("no handlers for event", "event_type", event.EventType())
		return nil
	}

	for _, handler := range handlers {
		if err := handler(event); err != nil {
			if b.metrics != nil {
				b.metrics.RecordError(event.EventType())
			}
			b.logger.Error("handler error", "event_type", event.EventType(), "error", err)
		}
	}
	return nil
}

// Close shuts the bus down; further publishes and subscribes fail.
func (b *InMemoryEventBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.closed = true
	return nil
}

// Metrics returns the bus metrics (nil when disabled).
func (b *InMemoryEventBus) Metrics() *EventBusMetrics {
	return b.metrics
}

// EventBusMetrics collects per-event-type counters.
type EventBusMetrics struct {
	mu        sync.Mutex
	published map[shared.EventType]int64
	errors    map[shared.EventType]int64
}

// NewEventBusMetrics creates empty metrics.
func NewEventBusMetrics() *EventBusMetrics {
	return &EventBusMetrics{
		published: make(map[shared.EventType]int64),
		errors:    make(map[shared.EventType]int64),
	}
}

// RecordPublish increments the publish counter for the event type.
func (m *EventBusMetrics) RecordPublish(t shared.EventType) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.published[t]++
}

// RecordError increments the handler-error counter for the event type.
func (m *EventBusMetrics) RecordError(t shared.EventType) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[t]++
}

// Published returns the publish counter for the event type.
func (m *EventBusMetrics) Published(t shared.EventType) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.published[t]
}

// Errors returns the handler-error counter for the event type.
func (m *EventBusMetrics) Errors(t shared.EventType) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.errors[t]
}
