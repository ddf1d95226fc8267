package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcherDeliversToSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()

	var received []Event
	d.Subscribe(EventTicketCreated, func(_ context.Context, event Event) error {
		received = append(received, event)
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventTicketCreated, TicketID: 1})
	require.NoError(t, err)
	require.Len(t, received, 1)
	assert.Equal(t, int64(1), received[0].TicketID)

	// other event types are not delivered
	err = d.Publish(context.Background(), Event{Type: EventTicketRated, TicketID: 2})
	require.NoError(t, err)
	assert.Len(t, received, 1)
}

func TestDispatcherSwallowsHandlerErrors(t *testing.T) {
	d := NewInMemoryDispatcher()

	calls := 0
	d.Subscribe(EventTicketCreated, func(_ context.Context, _ Event) error {
		calls++
		return errors.New("handler failed")
	})
	d.Subscribe(EventTicketCreated, func(_ context.Context, _ Event) error {
		calls++
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventTicketCreated})
	require.NoError(t, err)
	assert.Equal(t, 2, calls, "a failing handler must not stop the rest")
}
