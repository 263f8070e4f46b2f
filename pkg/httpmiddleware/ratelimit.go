package httpmiddleware

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-faster/jx"
)

// RateLimitConfig configures the fixed window rate limiter.
type RateLimitConfig struct {
	// Max is the number of requests allowed per window.
	Max int
	// Window is the window duration.
	Window time.Duration
	// KeyFunc derives the limiter key from a request; defaults to client IP.
	KeyFunc func(*http.Request) string
}

type window struct {
	count int
	start time.Time
}

type rateLimiter struct {
	cfg     RateLimitConfig
	mu      sync.Mutex
	windows map[string]*window
}

// allow counts the request against key's current window. It reports whether
// the request fits, how many requests remain, and when the window resets.
func (rl *rateLimiter) allow(key string, now time.Time) (remaining int, resetAt time.Time, ok bool) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	w := rl.windows[key]
	if w == nil || now.Sub(w.start) >= rl.cfg.Window {
		w = &window{start: now}
		rl.windows[key] = w
	}
	resetAt = w.start.Add(rl.cfg.Window)

	if w.count >= rl.cfg.Max {
		return 0, resetAt, false
	}
	w.count++
	return rl.cfg.Max - w.count, resetAt, true
}

func (rl *rateLimiter) evictStale(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for key, w := range rl.windows {
		if now.Sub(w.start) >= rl.cfg.Window {
			delete(rl.windows, key)
		}
	}
}

// RateLimit returns a middleware that enforces a per-client fixed window rate
// limit. Rejected requests get 429 with a JSON body and a Retry-After header;
// every response carries X-RateLimit-Limit, -Remaining, and -Reset.
//
// This variant never frees per-client state; use RateLimitWithCleanup for
// long-running servers.
func RateLimit(cfg RateLimitConfig) Middleware {
	return rateLimitMiddleware(newRateLimiter(cfg))
}

// RateLimitWithCleanup is RateLimit plus a background goroutine that evicts
// expired client windows until ctx is cancelled.
func RateLimitWithCleanup(ctx context.Context, cfg RateLimitConfig) Middleware {
	rl := newRateLimiter(cfg)
	go func() {
		ticker := time.NewTicker(rl.cfg.Window)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				rl.evictStale(now)
			}
		}
	}()
	return rateLimitMiddleware(rl)
}

func newRateLimiter(cfg RateLimitConfig) *rateLimiter {
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = clientIP
	}
	return &rateLimiter{cfg: cfg, windows: make(map[string]*window)}
}

func rateLimitMiddleware(rl *rateLimiter) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			now := time.Now()
			remaining, resetAt, ok := rl.allow(rl.cfg.KeyFunc(r), now)

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rl.cfg.Max))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(resetAt.Unix(), 10))

			if !ok {
				retryAfter := int(resetAt.Sub(now).Seconds()) + 1
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)

				var e jx.Encoder
				e.ObjStart()
				e.FieldStart("code")
				e.Int(http.StatusTooManyRequests)
				e.FieldStart("message")
				e.Str("rate limit exceeded")
				e.ObjEnd()
				_, _ = w.Write(e.Bytes())
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP resolves the client address from proxy headers, falling back to
// the connection's remote address.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if i := strings.IndexByte(xff, ','); i > 0 {
			return strings.TrimSpace(xff[:i])
		}
		return strings.TrimSpace(xff)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
