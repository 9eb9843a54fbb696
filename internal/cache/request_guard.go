package cache

import (
	"context"
	"time"
)

// RequestGuard throttles public request intake and stores responses for
// idempotent replay.
type RequestGuard interface {
	// Allow consumes one unit of the key's budget and reports whether the call may proceed.
	Allow(ctx context.Context, key string) (bool, error)
	// Get returns a stored payload; ok is false when absent or expired.
	Get(ctx context.Context, key string) (payload []byte, ok bool, err error)
	Put(ctx context.Context, key string, payload []byte, ttl time.Duration) error
}
