package event_bus

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventBus(t *testing.T) {
	const eventType EventType = "test.event"

	t.Run("delivers to subscribers of the published type", func(t *testing.T) {
		// given
		bus := NewEventBus()
		var received []Event
		bus.Subscribe(eventType, func(e Event) error {
			received = append(received, e)
			return nil
		})
		var other int
		bus.Subscribe("other.event", func(e Event) error {
			other++
			return nil
		})

		// when
		bus.Publish(NewEvent(context.Background(), eventType, "payload"))

		// then
		assert.Len(t, received, 1)
		assert.Equal(t, eventType, received[0].Type)
		assert.Equal(t, "payload", received[0].Data)
		assert.Zero(t, other)
	})

	t.Run("unsubscribe stops delivery", func(t *testing.T) {
		// given
		bus := NewEventBus()
		var count int
		unsubscribe := bus.Subscribe(eventType, func(e Event) error {
			count++
			return nil
		})
		bus.Publish(NewEvent(context.Background(), eventType, nil))
		assert.Equal(t, 1, count)

		// when
		unsubscribe()
		bus.Publish(NewEvent(context.Background(), eventType, nil))

		// then
		assert.Equal(t, 1, count)
	})

	t.Run("handler error does not interrupt other handlers", func(t *testing.T) {
		// given
		bus := NewEventBus()
		bus.Subscribe(eventType, func(e Event) error {
			return errors.New("boom")
		})
		var delivered bool
		bus.Subscribe(eventType, func(e Event) error {
			delivered = true
			return nil
		})

		// when
		bus.Publish(NewEvent(context.Background(), eventType, nil))

		// then
		assert.True(t, delivered)
	})

	t.Run("event keeps the publishing context", func(t *testing.T) {
		// given
		type ctxKey string
		ctx := context.WithValue(context.Background(), ctxKey("requestId"), "abc-123")
		bus := NewEventBus()
		var seen context.Context
		bus.Subscribe(eventType, func(e Event) error {
			seen = e.Context()
			return nil
		})

		// when
		bus.Publish(NewEvent(ctx, eventType, nil))

		// then
		assert.Equal(t, "abc-123", seen.Value(ctxKey("requestId")))
	})
}
