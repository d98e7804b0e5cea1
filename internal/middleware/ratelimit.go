// ratelimit.go implements per-client rate limiting using a token bucket.
//
// How token bucket works:
// - Each client IP gets a bucket holding up to `burst` tokens
// - Each request consumes 1 token
// - Tokens refill at a steady rate (perMinute tokens per minute)
// - If the bucket is empty, the request is rejected with 429 Too Many Requests
//
// The bucket itself is golang.org/x/time/rate.Limiter; this file only keeps
// one limiter per client and forgets idle ones.
package middleware

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/Shimizu-Technology/yt-transcript-api/internal/models"
)

const (
	cleanupInterval = 10 * time.Minute
	idleTimeout     = time.Hour
)

// RateLimiter tracks request rates per client IP.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*client

	limit rate.Limit
	burst int
	now   func() time.Time
}

// client is the limiter state for one IP.
type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// allowResult contains the result of a rate limit check,
// including header information for the response.
type allowResult struct {
	allowed   bool
	remaining int
}

// NewRateLimiter creates a limiter allowing perMinute requests per client
// per minute with bursts of up to burst. The cleanup goroutine stops when
// ctx is done.
func NewRateLimiter(ctx context.Context, perMinute, burst int) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	rl := &RateLimiter{
		clients: make(map[string]*client),
		limit:   rate.Limit(float64(perMinute) / 60.0),
		burst:   burst,
		now:     time.Now,
	}

	go rl.cleanup(ctx)

	return rl
}

// RateLimit returns Gin middleware that enforces the per-client limit.
func (rl *RateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		result := rl.allow(c.ClientIP())

		// Add headers even for rejected requests so clients know their limits
		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.burst))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(result.remaining))

		if !result.allowed {
			c.Header("Retry-After", strconv.Itoa(rl.retryAfter()))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, models.ErrorResponse{
				Error:   "rate_limit_exceeded",
				Message: "Rate limit exceeded. Try again later.",
			})
			return
		}

		c.Next()
	}
}

// allow consumes a token for key if one is available.
func (rl *RateLimiter) allow(key string) allowResult {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	cl, ok := rl.clients[key]
	if !ok {
		cl = &client{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.clients[key] = cl
	}
	cl.lastSeen = now

	allowed := cl.limiter.AllowN(now, 1)
	remaining := int(cl.limiter.TokensAt(now))
	if remaining < 0 {
		remaining = 0
	}
	return allowResult{allowed: allowed, remaining: remaining}
}

// retryAfter is the whole number of seconds until one token refills.
func (rl *RateLimiter) retryAfter() int {
	if rl.limit <= 0 {
		return 60
	}
	return max(1, int(math.Ceil(1/float64(rl.limit))))
}

// cleanup periodically removes idle clients to prevent memory leaks.
func (rl *RateLimiter) cleanup(ctx context.Context) {
	// Go Pattern: time.Ticker sends values at regular intervals.
	// Always defer ticker.Stop() to release resources.
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.evictIdle()
		}
	}
}

func (rl *RateLimiter) evictIdle() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for key, cl := range rl.clients {
		if now.Sub(cl.lastSeen) > idleTimeout {
			delete(rl.clients, key)
		}
	}
}

// clientCount is the number of tracked clients.
func (rl *RateLimiter) clientCount() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.clients)
}
