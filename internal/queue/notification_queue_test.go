package queue_test

import (
	"context"
	"testing"
	"time"

	"artist-booking/internal/model"
	"artist-booking/internal/queue"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationQueue_PublishSubscribe(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	q := queue.NewNotificationQueue(4)
	require.NoError(t, q.Publish(ctx, &model.Notification{ID: "n-1", ArtistID: 7, RequestID: 3}))

	deliveries, err := q.Subscribe(ctx)
	require.NoError(t, err)

	select {
	case d := <-deliveries:
		require.NotNil(t, d.Data)
		assert.Equal(t, "n-1", d.Data.ID)
		assert.Equal(t, 7, d.Data.ArtistID)
		d.Ack()
	case <-ctx.Done():
		t.Fatal("timeout waiting for delivery")
	}
}

func TestNotificationQueue_FullBufferDoesNotBlock(t *testing.T) {
	ctx := context.Background()
	q := queue.NewNotificationQueue(1)

	require.NoError(t, q.Publish(ctx, &model.Notification{ID: "first"}))
	err := q.Publish(ctx, &model.Notification{ID: "second"})

	assert.ErrorIs(t, err, queue.ErrQueueFull)
}

func TestNotificationQueue_NackRequeue(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	q := queue.NewNotificationQueue(2)
	require.NoError(t, q.Publish(ctx, &model.Notification{ID: "retry-me"}))

	deliveries, err := q.Subscribe(ctx)
	require.NoError(t, err)

	first := <-deliveries
	first.Nack(true)

	select {
	case again := <-deliveries:
		assert.Equal(t, "retry-me", again.Data.ID)
	case <-ctx.Done():
		t.Fatal("requeued notification was not redelivered")
	}
}

func TestNotificationQueue_SubscribeClosesOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	q := queue.NewNotificationQueue(1)

	deliveries, err := q.Subscribe(ctx)
	require.NoError(t, err)
	cancel()

	select {
	case _, ok := <-deliveries:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("channel not closed after cancel")
	}
}
