package middleware

import (
	"log/slog"
	"net/http"
	"strconv"

	"wallfeed/pkg/ratelimit"
)

// Allower is the limiter contract the middleware needs.
// *ratelimit.KeyedLimiter satisfies it.
type Allower interface {
	Allow(key string) ratelimit.Decision
}

// RateLimiter implements IP-based rate limiting middleware on top of the
// keyed token bucket in pkg/ratelimit. It uses the IPExtractor interface
// to extract client IP addresses, allowing flexible extraction strategies
// (RemoteAddr or trusted proxy headers).
type RateLimiter struct {
	limiter     Allower
	ipExtractor IPExtractor
	enabled     bool
}

// NewRateLimiter creates a new RateLimiter middleware.
//
// Example:
//
//	// Default secure configuration (no proxy trust)
//	keyed := ratelimit.New(config.LoadIPLimiterConfig())
//	limiter := NewRateLimiter(keyed, &RemoteAddrExtractor{}, true)
//
//	// With trusted proxy configuration
//	proxyConfig, _ := LoadTrustedProxyConfig()
//	limiter := NewRateLimiter(keyed, NewTrustedProxyExtractor(*proxyConfig), true)
func NewRateLimiter(limiter Allower, ipExtractor IPExtractor, enabled bool) *RateLimiter {
	return &RateLimiter{
		limiter:     limiter,
		ipExtractor: ipExtractor,
		enabled:     enabled,
	}
}

// Middleware returns an HTTP middleware handler that enforces rate limiting.
//
// Response headers on every request:
//   - X-RateLimit-Limit: bucket capacity
//   - X-RateLimit-Remaining: whole tokens left
//
// When the limit is exceeded, the middleware returns 429 Too Many Requests
// with a Retry-After header.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.enabled {
			next.ServeHTTP(w, r)
			return
		}

		ip, err := rl.ipExtractor.ExtractIP(r)
		if err != nil {
			// 抽出に失敗した場合は RemoteAddr にフォールバック
			slog.Warn("rate limiter: IP extraction failed, using RemoteAddr fallback",
				slog.String("error", err.Error()),
				slog.String("remote_addr", r.RemoteAddr),
			)
			ip, err = hostOnly(r.RemoteAddr)
			if err != nil {
				slog.Error("rate limiter: RemoteAddr extraction failed",
					slog.String("error", err.Error()),
					slog.String("remote_addr", r.RemoteAddr),
				)
				http.Error(w, "unable to identify client", http.StatusBadRequest)
				return
			}
		}

		d := rl.limiter.Allow(ip)
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(d.Burst))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))

		if !d.Allowed {
			w.Header().Set("Retry-After", strconv.FormatInt(d.RetryAfterSeconds(), 10))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(d.ResetAt.Unix(), 10))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":"rate limit exceeded"}`))
			return
		}

		next.ServeHTTP(w, r)
	})
}
