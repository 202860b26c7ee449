package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublishInvokesSubscribersInOrder(t *testing.T) {
	d := NewInMemoryDispatcher()
	var got []string

	d.Subscribe(EventTicketCreated, func(_ context.Context, _ Event) error {
		got = append(got, "first")
		return nil
	})
	d.Subscribe(EventTicketCreated, func(_ context.Context, _ Event) error {
		got = append(got, "second")
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventTicketCreated})
	assert.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, got)
}

func TestPublishContinuesPastFailingHandler(t *testing.T) {
	d := NewInMemoryDispatcher()
	var called bool

	d.Subscribe(EventUserRegistered, func(_ context.Context, _ Event) error {
		return errors.New("boom")
	})
	d.Subscribe(EventUserRegistered, func(_ context.Context, _ Event) error {
		called = true
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventUserRegistered})
	assert.NoError(t, err)
	assert.True(t, called)
}

func TestPublishWithoutSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()
	assert.NoError(t, d.Publish(context.Background(), Event{Type: EventTicketCreated}))
}
