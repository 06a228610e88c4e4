package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestRateLimiterAllowsBurst(t *testing.T) {
	rl := NewRateLimiter(5, time.Minute)

	for i := 0; i < 5; i++ {
		if !rl.take("10.0.0.1") {
			t.Fatalf("request %d should have been allowed", i+1)
		}
	}
	if rl.take("10.0.0.1") {
		t.Errorf("request beyond burst should have been denied")
	}
}

func TestRateLimiterPerClient(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)

	rl.take("10.0.0.1")
	rl.take("10.0.0.1")
	if rl.take("10.0.0.1") {
		t.Errorf("first client should be exhausted")
	}
	// A different client has its own bucket
	if !rl.take("10.0.0.2") {
		t.Errorf("second client should be allowed")
	}
}

func TestRateLimiterRefills(t *testing.T) {
	// 10 tokens per second so the wait stays short
	rl := NewRateLimiter(10, time.Second)

	for i := 0; i < 10; i++ {
		rl.take("10.0.0.1")
	}
	if rl.take("10.0.0.1") {
		t.Fatalf("bucket should be empty")
	}

	time.Sleep(250 * time.Millisecond)

	if !rl.take("10.0.0.1") {
		t.Errorf("expected bucket to refill over time")
	}
}

func TestRateLimiterSweepsStaleBuckets(t *testing.T) {
	rl := NewRateLimiter(5, time.Minute)
	rl.take("10.0.0.1")
	rl.take("10.0.0.2")

	// Age both buckets and the last sweep beyond the stale window
	rl.mu.Lock()
	old := time.Now().Add(-2 * staleAfter)
	for _, b := range rl.buckets {
		b.seenAt = old
	}
	rl.sweptAt = old
	rl.mu.Unlock()

	rl.take("10.0.0.3")

	rl.mu.Lock()
	defer rl.mu.Unlock()
	if len(rl.buckets) != 1 {
		t.Errorf("expected stale buckets swept, got %d", len(rl.buckets))
	}
	if _, ok := rl.buckets["10.0.0.3"]; !ok {
		t.Errorf("expected the active client to survive the sweep")
	}
}

func TestRateLimiterMiddleware(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)

	r := gin.New()
	r.POST("/login", rl.Middleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	var last int
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest("POST", "/login", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		last = w.Code
	}

	if last != http.StatusTooManyRequests {
		t.Errorf("expected 429 after burst, got %d", last)
	}
}
