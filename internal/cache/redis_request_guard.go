package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// fixed-window counter; the window starts on the first hit
const allowScript = `
	local current = redis.call("INCR", KEYS[1])
	if current == 1 then
		redis.call("PEXPIRE", KEYS[1], ARGV[1])
	end
	if current > tonumber(ARGV[2]) then
		return 0
	end
	return 1
`

type RedisRequestGuardImpl struct {
	client *redis.Client
	limit  int
	window time.Duration
}

func NewRedisRequestGuard(client *redis.Client, limit int, window time.Duration) RequestGuard {
	return &RedisRequestGuardImpl{
		client: client,
		limit:  limit,
		window: window,
	}
}

func (g *RedisRequestGuardImpl) rateKey(key string) string {
	return fmt.Sprintf("guard:rate:%s", key)
}

func (g *RedisRequestGuardImpl) idempotencyKey(key string) string {
	return fmt.Sprintf("guard:idem:%s", key)
}

func (g *RedisRequestGuardImpl) Allow(ctx context.Context, key string) (bool, error) {
	result, err := g.client.Eval(ctx, allowScript, []string{g.rateKey(key)}, g.window.Milliseconds(), g.limit).Int()
	if err != nil {
		return false, fmt.Errorf("rate limit script: %w", err)
	}
	return result == 1, nil
}

func (g *RedisRequestGuardImpl) Get(ctx context.Context, key string) ([]byte, bool, error) {
	payload, err := g.client.Get(ctx, g.idempotencyKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return payload, true, nil
}

func (g *RedisRequestGuardImpl) Put(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	return g.client.Set(ctx, g.idempotencyKey(key), payload, ttl).Err()
}
