package middleware

import (
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

type windowEntry struct {
	count   int
	resetAt time.Time
}

// WindowLimiter is a fixed-window counter keyed by client identifier. Signup
// and OTP verification use it so a single address cannot farm verification
// codes: at most max requests per window, then 429 until the window resets.
type WindowLimiter struct {
	mu      sync.Mutex
	entries map[string]*windowEntry
	max     int
	window  time.Duration
	prefix  string
}

// NewWindowLimiter creates a limiter allowing max requests per window.
// The prefix keeps counters for different endpoints independent.
func NewWindowLimiter(max int, window time.Duration, prefix string) *WindowLimiter {
	return &WindowLimiter{
		entries: make(map[string]*windowEntry),
		max:     max,
		window:  window,
		prefix:  prefix,
	}
}

// ClientIdentifier derives the rate-limit key for a request. Behind a proxy
// the first X-Forwarded-For address is the client; X-Real-IP is the fallback.
func ClientIdentifier(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if i := strings.Index(xff, ","); i >= 0 {
			return strings.TrimSpace(xff[:i])
		}
		return strings.TrimSpace(xff)
	}
	if rip := r.Header.Get("X-Real-IP"); rip != "" {
		return rip
	}
	if r.RemoteAddr != "" {
		return r.RemoteAddr
	}
	return "unknown"
}

// allow records one request for key and reports whether it fits in the
// current window, along with the remaining quota and reset time.
func (wl *WindowLimiter) allow(key string) (ok bool, remaining int, resetAt time.Time) {
	now := time.Now()
	wl.mu.Lock()
	defer wl.mu.Unlock()

	// Opportunistic sweep on roughly 10% of calls keeps the map bounded
	// without a background goroutine.
	if rand.Intn(10) == 0 {
		for k, e := range wl.entries {
			if now.After(e.resetAt) {
				delete(wl.entries, k)
			}
		}
	}

	e, exists := wl.entries[key]
	if !exists || now.After(e.resetAt) {
		e = &windowEntry{count: 0, resetAt: now.Add(wl.window)}
		wl.entries[key] = e
	}
	if e.count >= wl.max {
		return false, 0, e.resetAt
	}
	e.count++
	return true, wl.max - e.count, e.resetAt
}

// Limit is the middleware handler enforcing the fixed-window quota.
func (wl *WindowLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := wl.prefix + ClientIdentifier(r)
		ok, remaining, resetAt := wl.allow(key)
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(resetAt.Unix(), 10))
		if !ok {
			writeJSONError(w, http.StatusTooManyRequests, "too many requests, please try again later")
			return
		}
		next.ServeHTTP(w, r)
	})
}
