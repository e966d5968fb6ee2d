package middleware

import (
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// Fixed-window per-IP rate limiter. Import uploads can be heavy, so the
// window is deliberately generous; tune with RATE_LIMIT_PER_MINUTE.
type rateLimiter struct {
	mu      sync.Mutex
	windows map[string]*window
	limit   int
	period  time.Duration
}

type window struct {
	count   int
	resetAt time.Time
}

func newRateLimiter() *rateLimiter {
	limit := 120
	if v := os.Getenv("RATE_LIMIT_PER_MINUTE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	rl := &rateLimiter{
		windows: make(map[string]*window),
		limit:   limit,
		period:  time.Minute,
	}

	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			rl.evictExpired()
		}
	}()

	return rl
}

func (rl *rateLimiter) allow(ip string) (bool, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	w, ok := rl.windows[ip]
	if !ok || now.After(w.resetAt) {
		rl.windows[ip] = &window{count: 1, resetAt: now.Add(rl.period)}
		return true, 0
	}

	if w.count >= rl.limit {
		return false, w.resetAt.Sub(now)
	}

	w.count++
	return true, 0
}

func (rl *rateLimiter) evictExpired() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	for ip, w := range rl.windows {
		if now.After(w.resetAt) {
			delete(rl.windows, ip)
		}
	}
}

var limiter = newRateLimiter()

func RateLimiter() gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, retryAfter := limiter.allow(c.ClientIP())
		if !ok {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "Rate limit exceeded",
				"retry_after": retryAfter.Seconds(),
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
