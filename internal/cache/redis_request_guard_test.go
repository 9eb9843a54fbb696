package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func redisForTest(t *testing.T) *redis.Client {
	t.Helper()
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr, DB: 1})
	if err := rdb.FlushDB(context.Background()).Err(); err != nil {
		t.Skipf("redis not reachable: %v", err)
	}
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func TestRedisRequestGuard_Allow(t *testing.T) {
	rdb := redisForTest(t)
	ctx := context.Background()
	g := NewRedisRequestGuard(rdb, 2, time.Minute)

	ok, err := g.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, _ = g.Allow(ctx, "10.0.0.1")
	assert.True(t, ok)
	ok, _ = g.Allow(ctx, "10.0.0.1")
	assert.False(t, ok)

	ttl, err := rdb.PTTL(ctx, "guard:rate:10.0.0.1").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
}

func TestRedisRequestGuard_Payloads(t *testing.T) {
	rdb := redisForTest(t)
	ctx := context.Background()
	g := NewRedisRequestGuard(rdb, 2, time.Minute)

	_, ok, err := g.Get(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, g.Put(ctx, "abc", []byte("stored"), time.Minute))
	payload, ok, err := g.Get(ctx, "abc")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "stored", string(payload))
}
