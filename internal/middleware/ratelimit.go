package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Limiter decides whether a request identified by key may proceed.
// Implementations must be safe for concurrent use.
type Limiter interface {
	// Allow consumes one slot for key. When the limit is exhausted it
	// returns false and how long the caller should wait before retrying.
	Allow(key string, limit int, window time.Duration) (bool, time.Duration)
}

type fixedWindow struct {
	count   int
	resetAt time.Time
}

// FixedWindowLimiter counts requests per key in fixed windows. The first
// request for a key opens its window; when the window elapses the count
// resets lazily on the next request. A burst straddling the boundary can
// therefore see up to 2x the limit, which is acceptable for abuse throttling.
type FixedWindowLimiter struct {
	mu      sync.Mutex
	windows map[string]*fixedWindow
	now     func() time.Time
}

func NewFixedWindowLimiter() *FixedWindowLimiter {
	l := &FixedWindowLimiter{
		windows: make(map[string]*fixedWindow),
		now:     time.Now,
	}

	// Expired windows are otherwise only touched when their key returns.
	go l.cleanupLoop()

	return l
}

func (l *FixedWindowLimiter) Allow(key string, limit int, window time.Duration) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	w, ok := l.windows[key]
	if !ok || !w.resetAt.After(now) {
		l.windows[key] = &fixedWindow{count: 1, resetAt: now.Add(window)}
		return true, 0
	}

	if w.count >= limit {
		return false, w.resetAt.Sub(now)
	}

	w.count++
	return true, 0
}

func (l *FixedWindowLimiter) cleanupLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		l.cleanup()
	}
}

func (l *FixedWindowLimiter) cleanup() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for key, w := range l.windows {
		if !w.resetAt.After(now) {
			delete(l.windows, key)
		}
	}
}

// RateLimit throttles an endpoint per client IP. Keys are "<route>:<ip>" so
// a client blocked on login can still submit the seller form. Rejections get
// a 429 with a Retry-After header.
func RateLimit(limiter Limiter, route string, limit int, window time.Duration) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			ip := getClientIP(r)
			key := route + ":" + ip

			ok, retryAfter := limiter.Allow(key, limit, window)
			if !ok {
				seconds := int(retryAfter.Seconds())
				if seconds < 1 {
					seconds = 1
				}

				slog.Warn("rate limit exceeded", "route", route, "ip", ip, "retry_after_s", seconds)

				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Retry-After", fmt.Sprintf("%d", seconds))
				w.WriteHeader(http.StatusTooManyRequests)
				fmt.Fprintf(w, `{"error":"Too many requests. Please try again in %d seconds."}`, seconds)
				return
			}

			next(w, r)
		}
	}
}

// getClientIP extracts real client IP from request
func getClientIP(r *http.Request) string {
	// Check X-Forwarded-For header (proxy/load balancer)
	xff := r.Header.Get("X-Forwarded-For")
	if xff != "" {
		// Take first IP in list
		ips := strings.Split(xff, ",")
		if len(ips) > 0 {
			return strings.TrimSpace(ips[0])
		}
	}

	// Check X-Real-IP header
	xri := r.Header.Get("X-Real-IP")
	if xri != "" {
		return strings.TrimSpace(xri)
	}

	// Fallback to RemoteAddr
	ip := r.RemoteAddr
	// Remove port if present
	if idx := strings.LastIndex(ip, ":"); idx != -1 {
		ip = ip[:idx]
	}

	return ip
}
