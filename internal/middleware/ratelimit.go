package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/forgo/goals/api/internal/model"
)

// RateLimitConfig holds rate limiter configuration
type RateLimitConfig struct {
	Rate    int           // Requests refilled per window (default 100)
	Window  time.Duration // Refill window (default 1 minute)
	Burst   int           // Extra tokens above Rate (default 20)
	Cleanup time.Duration // Idle bucket sweep interval (default 5 minutes)
}

// RateLimiter is a per-client token bucket limiter
type RateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	cfg     RateLimitConfig
	now     func() time.Time
	stop    chan struct{}
	once    sync.Once
}

type bucket struct {
	tokens   float64
	lastSeen time.Time
}

// Decision is the outcome of a single Allow call
type Decision struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
}

// NewRateLimiter creates a rate limiter and starts its sweep goroutine
func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	if cfg.Rate <= 0 {
		cfg.Rate = 100
	}
	if cfg.Window <= 0 {
		cfg.Window = time.Minute
	}
	if cfg.Burst < 0 {
		cfg.Burst = 0
	}
	if cfg.Cleanup <= 0 {
		cfg.Cleanup = 5 * time.Minute
	}

	rl := &RateLimiter{
		buckets: make(map[string]*bucket),
		cfg:     cfg,
		now:     time.Now,
		stop:    make(chan struct{}),
	}
	go rl.sweepLoop()
	return rl
}

// Stop ends the sweep goroutine. Safe to call more than once.
func (rl *RateLimiter) Stop() {
	rl.once.Do(func() { close(rl.stop) })
}

// Limit returns the configured per-window rate
func (rl *RateLimiter) Limit() int {
	return rl.cfg.Rate
}

func (rl *RateLimiter) capacity() float64 {
	return float64(rl.cfg.Rate + rl.cfg.Burst)
}

func (rl *RateLimiter) sweepLoop() {
	ticker := time.NewTicker(rl.cfg.Cleanup)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.sweep()
		case <-rl.stop:
			return
		}
	}
}

// sweep drops buckets idle long enough to have fully refilled
func (rl *RateLimiter) sweep() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := rl.now().Add(-2 * rl.cfg.Window)
	for key, b := range rl.buckets {
		if b.lastSeen.Before(cutoff) {
			delete(rl.buckets, key)
		}
	}
}

// Allow consumes one token for key if one is available
func (rl *RateLimiter) Allow(key string) Decision {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	b, ok := rl.buckets[key]
	if !ok {
		b = &bucket{tokens: rl.capacity(), lastSeen: now}
		rl.buckets[key] = b
	} else {
		elapsed := now.Sub(b.lastSeen)
		b.tokens += float64(rl.cfg.Rate) * elapsed.Seconds() / rl.cfg.Window.Seconds()
		if b.tokens > rl.capacity() {
			b.tokens = rl.capacity()
		}
		b.lastSeen = now
	}

	resetAt := now.Add(rl.cfg.Window)
	if b.tokens < 1 {
		return Decision{Allowed: false, Remaining: 0, ResetAt: resetAt}
	}
	b.tokens--
	return Decision{Allowed: true, Remaining: int(b.tokens), ResetAt: resetAt}
}

// RateLimit returns a middleware that rejects callers over their budget with 429
func RateLimit(limiter *RateLimiter) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			d := limiter.Allow(clientKey(r))

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limiter.Limit()))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(d.ResetAt.Unix(), 10))

			if !d.Allowed {
				retryAfter := int(time.Until(d.ResetAt).Seconds())
				if retryAfter < 1 {
					retryAfter = 1
				}
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				model.NewRateLimitError().WriteJSON(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
