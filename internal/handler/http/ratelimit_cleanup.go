package http

import (
	"context"
	"log/slog"
	"time"
)

// Cleaner sweeps idle limiter keys and reports how many were removed.
// *ratelimit.KeyedLimiter satisfies it.
type Cleaner interface {
	Cleanup() int
	Len() int
}

// StartRateLimitCleanup periodically evicts idle keys from limiter so
// one-off clients do not grow its map forever. Blocks until ctx is
// cancelled; the caller runs it as a goroutine next to the server.
// limiterType names the limiter ("download", "ip") in logs.
func StartRateLimitCleanup(
	ctx context.Context,
	limiter Cleaner,
	interval time.Duration,
	limiterType string,
) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	slog.Info("rate limit cleanup started",
		slog.String("limiter_type", limiterType),
		slog.Duration("interval", interval))

	for {
		select {
		case <-ctx.Done():
			slog.Info("rate limit cleanup stopped",
				slog.String("limiter_type", limiterType))
			return

		case <-ticker.C:
			removed := limiter.Cleanup()
			slog.Debug("rate limit cleanup completed",
				slog.String("limiter_type", limiterType),
				slog.Int("keys_removed", removed),
				slog.Int("active_keys", limiter.Len()))
		}
	}
}
