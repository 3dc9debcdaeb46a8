// Package middleware provides the HTTP middleware used by the API kernel.
package middleware

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/themirzaalibaig/server-ecommerce/config"
	"github.com/themirzaalibaig/server-ecommerce/pkg/metrics"
	"github.com/themirzaalibaig/server-ecommerce/pkg/response"
)

// Policy is a fixed-window rate limit for one route class.
type Policy struct {
	Name    string
	Max     int
	Window  time.Duration
	Message string
}

// The six route-class policies. Counters are process-local; a horizontally
// scaled deployment needs a shared store behind this interface.
var (
	GeneralPolicy       = Policy{"general", 100, 15 * time.Minute, "Too many requests, please try again later"}
	AuthPolicy          = Policy{"auth", 5, 15 * time.Minute, "Too many authentication attempts, please try again later"}
	PasswordResetPolicy = Policy{"password_reset", 3, time.Hour, "Too many password reset attempts, please try again later"}
	CreatePolicy        = Policy{"create", 10, time.Minute, "Too many create requests, please slow down"}
	UploadPolicy        = Policy{"upload", 20, time.Hour, "Upload limit reached, please try again later"}
	AdminPolicy         = Policy{"admin", 30, time.Minute, "Too many admin requests, please slow down"}
)

// bucket tracks a fixed-window request count for one policy/IP pair.
type bucket struct {
	mu      sync.Mutex
	count   int
	resetAt time.Time
}

func (b *bucket) allow(max int, window time.Duration) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	if now.After(b.resetAt) {
		b.count = 0
		b.resetAt = now.Add(window)
	}

	b.count++
	return b.count <= max
}

var (
	bucketsMu sync.Mutex
	buckets   = map[string]*bucket{}
)

func init() {
	// Background goroutine: evict buckets whose window has expired.
	// Runs every minute; prevents unbounded memory growth on long-running servers.
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			now := time.Now()
			bucketsMu.Lock()
			for key, b := range buckets {
				b.mu.Lock()
				expired := now.After(b.resetAt)
				b.mu.Unlock()
				if expired {
					delete(buckets, key)
				}
			}
			bucketsMu.Unlock()
		}
	}()
}

func getBucket(key string, window time.Duration) *bucket {
	bucketsMu.Lock()
	defer bucketsMu.Unlock()

	if b, ok := buckets[key]; ok {
		return b
	}

	b := &bucket{resetAt: time.Now().Add(window)}
	buckets[key] = b
	return b
}

// ResetBuckets clears all rate-limit state. Exposed for tests.
func ResetBuckets() {
	bucketsMu.Lock()
	buckets = map[string]*bucket{}
	bucketsMu.Unlock()
}

// ClientIP returns the real client address, respecting proxy headers.
func ClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return strings.TrimSpace(strings.SplitN(fwd, ",", 2)[0])
	}
	if real := r.Header.Get("X-Real-Ip"); real != "" {
		return real
	}
	ip := r.RemoteAddr
	if idx := strings.LastIndex(ip, ":"); idx != -1 {
		ip = ip[:idx]
	}
	return ip
}

// RateLimit limits each client address to p.Max requests per p.Window.
// Each policy keeps its own independent window per address.
func RateLimit(p Policy) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if config.RateLimitDisabled() {
				next.ServeHTTP(w, r)
				return
			}

			key := p.Name + "|" + ClientIP(r)
			if !getBucket(key, p.Window).allow(p.Max, p.Window) {
				metrics.RateLimited.WithLabelValues(p.Name).Inc()
				response.TooManyRequests(w, p.Message)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
