package middleware

import (
	"encoding/json"
	"net"
	"net/http"
	"sync"
	"time"
)

// RateLimiter is a fixed-window request counter keyed by client IP.
// Windows are not sliding: the count resets when the window elapses.
type RateLimiter struct {
	mu      sync.Mutex
	window  time.Duration
	max     int
	counts  map[string]int
	resetAt time.Time
	now     func() time.Time
}

func NewRateLimiter(window time.Duration, max int) *RateLimiter {
	now := func() time.Time { return time.Now() }
	return &RateLimiter{
		window:  window,
		max:     max,
		counts:  map[string]int{},
		resetAt: now().Add(window),
		now:     now,
	}
}

// Allow counts a request from key and reports whether it is under the limit.
func (l *RateLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if now := l.now(); !now.Before(l.resetAt) {
		l.counts = map[string]int{}
		l.resetAt = now.Add(l.window)
	}
	l.counts[key]++
	return l.counts[key] <= l.max
}

// Handler rejects over-limit requests with 429 and the original's message.
func (l *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.Allow(clientIP(r)) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"success": false,
				"error":   "Rate limit exceeded. Please try again later.",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
