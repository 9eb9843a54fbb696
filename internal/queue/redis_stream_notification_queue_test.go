package queue_test

import (
	"context"
	"os"
	"testing"
	"time"

	"artist-booking/internal/model"
	"artist-booking/internal/queue"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// redisForTest connects to REDIS_TEST_ADDR or skips.
func redisForTest(t *testing.T) *redis.Client {
	t.Helper()
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr, DB: 1})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		t.Skipf("redis not reachable: %v", err)
	}
	t.Cleanup(func() {
		_ = rdb.Del(context.Background(), queue.StreamKey).Err()
		_ = rdb.Close()
	})
	_ = rdb.Del(context.Background(), queue.StreamKey).Err()
	return rdb
}

func TestRedisStreamNotificationQueue_Deliver(t *testing.T) {
	rdb := redisForTest(t)
	ctx := context.Background()

	q, err := queue.NewRedisStreamNotificationQueue(ctx, rdb, "deliver-test", nil)
	require.NoError(t, err)

	sent := &model.Notification{ID: "n-1", Kind: model.NotificationRequestCreated, ArtistID: 4, RequestID: 9, Message: "hello"}
	require.NoError(t, q.Publish(ctx, sent))

	subCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	deliveries, err := q.Subscribe(subCtx)
	require.NoError(t, err)

	select {
	case d, ok := <-deliveries:
		require.True(t, ok)
		assert.Equal(t, sent.ID, d.Data.ID)
		assert.Equal(t, sent.Kind, d.Data.Kind)
		assert.Equal(t, sent.ArtistID, d.Data.ArtistID)
		assert.Equal(t, sent.Message, d.Data.Message)
		d.Ack()
	case <-subCtx.Done():
		t.Fatal("timeout waiting for delivery")
	}
}

func TestRedisStreamNotificationQueue_NackRequeueRedelivers(t *testing.T) {
	rdb := redisForTest(t)
	ctx := context.Background()

	cfg := &queue.RedisStreamConfig{
		ClaimMinIdleTime:   200 * time.Millisecond,
		ReadGroupBlockTime: 500 * time.Millisecond,
	}
	q, err := queue.NewRedisStreamNotificationQueue(ctx, rdb, "requeue-test", cfg)
	require.NoError(t, err)
	require.NoError(t, q.Publish(ctx, &model.Notification{ID: "again"}))

	subCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	deliveries, err := q.Subscribe(subCtx)
	require.NoError(t, err)

	first := <-deliveries
	require.NotNil(t, first.Data)
	first.Nack(true)

	select {
	case d := <-deliveries:
		assert.Equal(t, "again", d.Data.ID)
		d.Ack()
	case <-subCtx.Done():
		t.Fatal("nacked notification was not redelivered")
	}
}
