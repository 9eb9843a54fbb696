package cache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const clientIdleTTL = 10 * time.Minute

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type payloadEntry struct {
	payload   []byte
	expiresAt time.Time
}

// MemoryRequestGuardImpl keeps one token bucket per key in process memory.
type MemoryRequestGuardImpl struct {
	mu       sync.Mutex
	limit    rate.Limit
	burst    int
	clients  map[string]*limiterEntry
	payloads map[string]payloadEntry
	now      func() time.Time
}

// NewMemoryRequestGuard allows perMinute requests per key with the given burst.
func NewMemoryRequestGuard(perMinute int, burst int) *MemoryRequestGuardImpl {
	if burst < 1 {
		burst = 1
	}
	return &MemoryRequestGuardImpl{
		limit:    rate.Limit(float64(perMinute) / 60),
		burst:    burst,
		clients:  make(map[string]*limiterEntry),
		payloads: make(map[string]payloadEntry),
		now:      time.Now,
	}
}

func (g *MemoryRequestGuardImpl) Allow(ctx context.Context, key string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	entry, ok := g.clients[key]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(g.limit, g.burst)}
		g.clients[key] = entry
	}
	entry.lastSeen = now

	return entry.limiter.AllowN(now, 1), nil
}

func (g *MemoryRequestGuardImpl) Get(ctx context.Context, key string) ([]byte, bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	entry, ok := g.payloads[key]
	if !ok {
		return nil, false, nil
	}
	if !g.now().Before(entry.expiresAt) {
		delete(g.payloads, key)
		return nil, false, nil
	}
	return entry.payload, true, nil
}

func (g *MemoryRequestGuardImpl) Put(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	stored := make([]byte, len(payload))
	copy(stored, payload)
	g.payloads[key] = payloadEntry{payload: stored, expiresAt: g.now().Add(ttl)}
	return nil
}

// Sweep drops idle limiters and expired payloads.
func (g *MemoryRequestGuardImpl) Sweep() {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	for key, entry := range g.clients {
		if now.Sub(entry.lastSeen) > clientIdleTTL {
			delete(g.clients, key)
		}
	}
	for key, entry := range g.payloads {
		if !now.Before(entry.expiresAt) {
			delete(g.payloads, key)
		}
	}
}

// RunSweeper calls Sweep every interval until ctx is done.
func (g *MemoryRequestGuardImpl) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			g.Sweep()
		}
	}
}
