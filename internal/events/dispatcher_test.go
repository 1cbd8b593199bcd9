package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishInvokesSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher(nil)
	ctx := context.Background()

	var got []Event
	d.Subscribe(EventMessageCreated, func(ctx context.Context, e Event) error {
		got = append(got, e)
		return nil
	})

	require.NoError(t, d.Publish(ctx, Event{Type: EventMessageCreated, UserID: "user_abc123", MessageID: "msg_1"}))
	require.NoError(t, d.Publish(ctx, Event{Type: EventUserCreated, UserID: "user_abc123"}))

	require.Len(t, got, 1, "only the subscribed event type is delivered")
	assert.Equal(t, "msg_1", got[0].MessageID)
}

func TestPublishContinuesPastFailingHandler(t *testing.T) {
	d := NewInMemoryDispatcher(nil)
	ctx := context.Background()

	invoked := false
	d.Subscribe(EventMessageDeleted, func(ctx context.Context, e Event) error {
		return errors.New("boom")
	})
	d.Subscribe(EventMessageDeleted, func(ctx context.Context, e Event) error {
		invoked = true
		return nil
	})

	require.NoError(t, d.Publish(ctx, Event{Type: EventMessageDeleted, UserID: "user_abc123", MessageID: "msg_1"}))
	assert.True(t, invoked, "a failing handler must not stop later handlers")
}
