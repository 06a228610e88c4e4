package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// staleAfter is how long an idle client's bucket survives before a sweep
// reclaims it.
const staleAfter = 10 * time.Minute

type bucket struct {
	tokens float64
	seenAt time.Time
}

// RateLimiter is a per-IP token bucket. Buckets refill continuously and
// stale ones are swept opportunistically on take, so there is no background
// goroutine to manage.
type RateLimiter struct {
	mu        sync.Mutex
	buckets   map[string]*bucket
	burst     float64
	perSecond float64
	sweptAt   time.Time
}

// NewRateLimiter allows maxRequests per perDuration for each client, with
// bursts up to maxRequests.
func NewRateLimiter(maxRequests int, perDuration time.Duration) *RateLimiter {
	return &RateLimiter{
		buckets:   make(map[string]*bucket),
		burst:     float64(maxRequests),
		perSecond: float64(maxRequests) / perDuration.Seconds(),
		sweptAt:   time.Now(),
	}
}

func (rl *RateLimiter) sweepLocked(now time.Time) {
	if now.Sub(rl.sweptAt) < staleAfter {
		return
	}
	for ip, b := range rl.buckets {
		if now.Sub(b.seenAt) > staleAfter {
			delete(rl.buckets, ip)
		}
	}
	rl.sweptAt = now
}

// take spends one token for the client, reporting whether one was available.
func (rl *RateLimiter) take(clientIP string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	rl.sweepLocked(now)

	b, ok := rl.buckets[clientIP]
	if !ok {
		rl.buckets[clientIP] = &bucket{tokens: rl.burst - 1, seenAt: now}
		return true
	}

	b.tokens += now.Sub(b.seenAt).Seconds() * rl.perSecond
	if b.tokens > rl.burst {
		b.tokens = rl.burst
	}
	b.seenAt = now

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

// Middleware rejects requests from clients that have exhausted their bucket.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.take(c.ClientIP()) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests. Please try again later."})
			c.Abort()
			return
		}
		c.Next()
	}
}
