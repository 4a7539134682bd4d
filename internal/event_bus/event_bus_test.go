package event_bus

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventBus_PublishReachesSubscribers(t *testing.T) {
	bus := NewEventBus()

	var received []Event
	bus.Subscribe(ChekiEntryUpdated, func(e Event) error {
		received = append(received, e)
		return nil
	})

	err := bus.Publish(NewEvent(context.Background(), ChekiEntryUpdated, ChekiEntryChange{
		Date:   "2024-01-01",
		Member: "Alice",
		Count:  3,
	}))

	assert.NoError(t, err)
	assert.Len(t, received, 1)
	assert.Equal(t, ChekiEntryChange{Date: "2024-01-01", Member: "Alice", Count: 3}, received[0].Data)
}

func TestEventBus_UnsubscribeStopsDelivery(t *testing.T) {
	bus := NewEventBus()

	calls := 0
	unsubscribe := bus.Subscribe(ScheduleEventSaved, func(e Event) error {
		calls++
		return nil
	})

	assert.NoError(t, bus.Publish(NewEvent(context.Background(), ScheduleEventSaved, nil)))
	unsubscribe()
	assert.NoError(t, bus.Publish(NewEvent(context.Background(), ScheduleEventSaved, nil)))

	assert.Equal(t, 1, calls)
}

func TestEventBus_HandlerErrorsAreCollected(t *testing.T) {
	bus := NewEventBus()

	bus.Subscribe(ScheduleEventDeleted, func(e Event) error {
		return errors.New("boom")
	})
	reached := false
	bus.Subscribe(ScheduleEventDeleted, func(e Event) error {
		reached = true
		return nil
	})

	err := bus.Publish(NewEvent(context.Background(), ScheduleEventDeleted, nil))

	assert.Error(t, err)
	assert.True(t, reached)
}
