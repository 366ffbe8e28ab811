package api

import (
	"log/slog"
	"net"
	"net/http"
	"strings"

	"github.com/foodgram/foodgram-server/internal/http/response"
	"github.com/foodgram/foodgram-server/internal/metrics"
	"github.com/foodgram/foodgram-server/internal/ratelimit"
)

// RateLimiter limits requests per client IP.
type RateLimiter = ratelimit.KeyedRateLimiter

// NewRateLimiter creates a limiter allowing rps requests per second per IP
// with bursts of up to burst.
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	return ratelimit.New(rps, burst)
}

// RateLimitMiddleware rate limits requests selected by match, keyed by client IP.
// Returns 429 Too Many Requests when the limit is exceeded.
func RateLimitMiddleware(limiter *RateLimiter, match func(*http.Request) bool, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !match(r) {
				next.ServeHTTP(w, r)
				return
			}

			key := getClientIP(r)
			if !limiter.Allow(key) {
				logger.Warn("Rate limit exceeded",
					"ip", key,
					"path", r.URL.Path,
				)
				metrics.RecordRateLimitHit(r.URL.Path)
				response.TooManyRequests(w, "Too many requests. Please try again later.", logger)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// postTo matches POST requests to any of paths.
func postTo(paths ...string) func(*http.Request) bool {
	return func(r *http.Request) bool {
		if r.Method != http.MethodPost {
			return false
		}
		path := strings.TrimSuffix(r.URL.Path, "/")
		for _, p := range paths {
			if path == p {
				return true
			}
		}
		return false
	}
}

// getClientIP keys on the connection address. Forwarding headers are honored
// only through middleware.RealIP, which is mounted when a trusted proxy is
// configured.
func getClientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
