package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(start time.Time) (*FixedWindowLimiter, *time.Time) {
	clock := start
	l := &FixedWindowLimiter{
		windows: make(map[string]*fixedWindow),
		now:     func() time.Time { return clock },
	}
	return l, &clock
}

func TestFixedWindowLimiter(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("sixth call within window fails", func(t *testing.T) {
		l, _ := newTestLimiter(start)

		for i := 0; i < 5; i++ {
			ok, _ := l.Allow("login:1.2.3.4", 5, time.Minute)
			require.True(t, ok, "call %d should pass", i+1)
		}

		ok, retryAfter := l.Allow("login:1.2.3.4", 5, time.Minute)
		assert.False(t, ok)
		assert.LessOrEqual(t, retryAfter, time.Minute)
		assert.Greater(t, retryAfter, time.Duration(0))
	})

	t.Run("window elapse resets the counter", func(t *testing.T) {
		l, clock := newTestLimiter(start)

		for i := 0; i < 5; i++ {
			l.Allow("login:1.2.3.4", 5, time.Minute)
		}
		ok, _ := l.Allow("login:1.2.3.4", 5, time.Minute)
		require.False(t, ok)

		*clock = start.Add(61 * time.Second)
		ok, _ = l.Allow("login:1.2.3.4", 5, time.Minute)
		assert.True(t, ok)
	})

	t.Run("keys are independent", func(t *testing.T) {
		l, _ := newTestLimiter(start)

		for i := 0; i < 5; i++ {
			l.Allow("login:1.2.3.4", 5, time.Minute)
		}
		ok, _ := l.Allow("login:1.2.3.4", 5, time.Minute)
		require.False(t, ok)

		ok, _ = l.Allow("seller-form:1.2.3.4", 5, time.Minute)
		assert.True(t, ok, "same IP, different route")

		ok, _ = l.Allow("login:5.6.7.8", 5, time.Minute)
		assert.True(t, ok, "same route, different IP")
	})

	t.Run("cleanup drops expired windows", func(t *testing.T) {
		l, clock := newTestLimiter(start)

		l.Allow("login:1.2.3.4", 5, time.Minute)
		require.Len(t, l.windows, 1)

		*clock = start.Add(2 * time.Minute)
		l.cleanup()
		assert.Empty(t, l.windows)
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	l, _ := newTestLimiter(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	handler := RateLimit(l, "login", 2, time.Minute)(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	do := func(ip string) *httptest.ResponseRecorder {
		r := httptest.NewRequest(http.MethodPost, "/investor/login", nil)
		r.RemoteAddr = ip + ":54321"
		w := httptest.NewRecorder()
		handler(w, r)
		return w
	}

	assert.Equal(t, http.StatusOK, do("1.2.3.4").Code)
	assert.Equal(t, http.StatusOK, do("1.2.3.4").Code)

	blocked := do("1.2.3.4")
	assert.Equal(t, http.StatusTooManyRequests, blocked.Code)
	assert.NotEmpty(t, blocked.Header().Get("Retry-After"))
	assert.Contains(t, blocked.Body.String(), "Too many requests")

	// A different client is untouched.
	assert.Equal(t, http.StatusOK, do("9.9.9.9").Code)
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		xff        string
		xri        string
		want       string
	}{
		{"remote addr only", "10.0.0.1:443", "", "", "10.0.0.1"},
		{"x-forwarded-for wins", "10.0.0.1:443", "203.0.113.7, 10.0.0.2", "", "203.0.113.7"},
		{"x-real-ip fallback", "10.0.0.1:443", "", "203.0.113.9", "203.0.113.9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remoteAddr
			if tt.xff != "" {
				r.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.xri != "" {
				r.Header.Set("X-Real-IP", tt.xri)
			}

			assert.Equal(t, tt.want, getClientIP(r))
		})
	}
}
