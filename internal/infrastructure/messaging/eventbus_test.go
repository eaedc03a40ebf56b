package messaging

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/journal-hub/teacher-journal-hub/internal/domain/shared"
)

func TestEventBusPublishOrder(t *testing.T) {
	bus := NewInMemoryEventBus(InMemoryEventBusConfig{})

	var got []string
	assert.NoError(t, bus.Subscribe(shared.EventGradeUpdated, func(e shared.Event) error {
		got = append(got, "first")
		return nil
	}))
	assert.NoError(t, bus.Subscribe(shared.EventGradeUpdated, func(e shared.Event) error {
		got = append(got, "second")
		return nil
	}))
	assert.NoError(t, bus.SubscribeAll(func(e shared.Event) error {
		got = append(got, "all")
		return nil
	}))

	event := shared.NewGradeUpdatedEvent(1, 2, false, nil, "", false)
	assert.NoError(t, bus.Publish(event))

	// Synchronous dispatch in subscription order, catch-all handlers last.
	assert.Equal(t, []string{"first", "second", "all"}, got)
}

func TestEventBusHandlerErrorsDoNotPropagate(t *testing.T) {
	bus := NewInMemoryEventBus(InMemoryEventBusConfig{EnableMetrics: true})

	assert.NoError(t, bus.Subscribe(shared.EventNoteAdded, func(e shared.Event) error {
		return errors.New("handler failure")
	}))

	err := bus.Publish(shared.NewNoteAddedEvent(1, 100, "Преподаватель"))
	assert.NoError(t, err)

	assert.Equal(t, int64(1), bus.Metrics().Published(shared.EventNoteAdded))
	assert.Equal(t, int64(1), bus.Metrics().Errors(shared.EventNoteAdded))
}

func TestEventBusClosed(t *testing.T) {
	bus := NewInMemoryEventBus(InMemoryEventBusConfig{})
	assert.NoError(t, bus.Close())

	err := bus.Publish(shared.NewPlanToggledEvent(1, true))
	assert.ErrorIs(t, err, ErrEventBusClosed)

	err = bus.Subscribe(shared.EventPlanToggled, func(e shared.Event) error { return nil })
	assert.ErrorIs(t, err, ErrEventBusClosed)
}
