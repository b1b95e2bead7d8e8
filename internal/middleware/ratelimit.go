// Package middleware provides rate limiting and request logging middleware.
package middleware

import (
	"context"
	"fmt"
	"sync"
	"time"

	"masterblog/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// Limit is one request ceiling over a fixed window, e.g. 200 per day.
type Limit struct {
	Name   string
	Max    int
	Window time.Duration
}

// Limiter enforces per-client request ceilings. With a Redis client the
// count is a shared fixed window (INCR + EXPIRE); without one it degrades to
// a per-process token bucket per (limit, client) pair.
type Limiter struct {
	rdb *redis.Client

	mu      sync.Mutex
	buckets map[string]*bucketEntry
}

type bucketEntry struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// bucketIdleTTL controls when idle fallback buckets are dropped.
const bucketIdleTTL = 15 * time.Minute

// NewLimiter creates a Limiter. rdb may be nil, in which case limits are
// tracked in process memory only.
func NewLimiter(rdb *redis.Client) *Limiter {
	return &Limiter{
		rdb:     rdb,
		buckets: make(map[string]*bucketEntry),
	}
}

// Allow reports whether one more request from id is within the given limit.
// Redis errors fail open: a broken counter backend must not take the API down.
func (l *Limiter) Allow(ctx context.Context, id string, limit Limit) bool {
	if l.rdb == nil {
		return l.allowLocal(id, limit)
	}

	key := fmt.Sprintf("rl:%s:%s", limit.Name, id)
	cnt, err := l.rdb.Incr(ctx, key).Result()
	if err != nil {
		return true
	}
	if cnt == 1 {
		l.rdb.Expire(ctx, key, limit.Window)
	}
	return cnt <= int64(limit.Max)
}

// allowLocal approximates the fixed window with a token bucket refilling at
// Max/Window and holding at most Max tokens.
func (l *Limiter) allowLocal(id string, limit Limit) bool {
	key := fmt.Sprintf("%s:%s", limit.Name, id)
	now := time.Now()

	l.mu.Lock()
	ent, ok := l.buckets[key]
	if !ok {
		rps := float64(limit.Max) / limit.Window.Seconds()
		ent = &bucketEntry{lim: rate.NewLimiter(rate.Limit(rps), limit.Max)}
		l.buckets[key] = ent
	}
	ent.lastSeen = now
	l.mu.Unlock()

	return ent.lim.Allow()
}

// Cleanup drops fallback buckets that have been idle longer than the TTL.
func (l *Limiter) Cleanup() {
	cutoff := time.Now().Add(-bucketIdleTTL)

	l.mu.Lock()
	defer l.mu.Unlock()

	for k, ent := range l.buckets {
		if ent.lastSeen.Before(cutoff) {
			delete(l.buckets, k)
		}
	}
}

// StartJanitor periodically cleans idle fallback buckets until ctx is done.
func (l *Limiter) StartJanitor(ctx context.Context, every time.Duration) {
	t := time.NewTicker(every)
	go func() {
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				l.Cleanup()
			}
		}
	}()
}

// RateLimit returns a Fiber middleware that rejects the request with 429 when
// the client IP exceeds any of the given limits. Every limit is counted on
// every request, so a rejected request still consumes quota in the wider
// windows, the same way chained limiter decorators behave.
func RateLimit(l *Limiter, limits ...Limit) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.Context()
		id := "ip:" + c.IP()

		allowed := true
		for _, limit := range limits {
			if !l.Allow(ctx, id, limit) {
				allowed = false
			}
		}
		if !allowed {
			return models.RespondWithError(c, fiber.StatusTooManyRequests,
				models.NewRateLimitedError("Rate limit exceeded, please try again later"))
		}
		return c.Next()
	}
}
