package config

import (
	"fmt"
	"net"
	"time"

	"golang.org/x/time/rate"

	"wallfeed/pkg/ratelimit"
)

// RateLimitEnabled reports whether rate limiting is enabled at all
// (RATELIMIT_ENABLED, default true). When disabled, handlers skip the
// allowance checks entirely.
func RateLimitEnabled() bool {
	return GetEnvBool("RATELIMIT_ENABLED", true)
}

// LoadIPLimiterConfig loads the per-IP request limiter configuration from
// environment variables. This limiter fronts the whole API and is sized
// for burst page loads, not downloads.
//
// Environment variables:
//   - RATELIMIT_IP_PER_MINUTE: Sustained requests per minute per IP (default: 120)
//   - RATELIMIT_IP_BURST: Burst capacity (default: 40)
//   - RATELIMIT_MAX_KEYS: Maximum tracked keys (default: 10000)
//   - RATELIMIT_IDLE_TTL: Idle key retention (default: 10m)
func LoadIPLimiterConfig() ratelimit.Config {
	perMinute := GetEnvInt("RATELIMIT_IP_PER_MINUTE", 120)
	if perMinute <= 0 {
		perMinute = 120
	}
	burst := GetEnvInt("RATELIMIT_IP_BURST", 40)
	if burst <= 0 {
		burst = 40
	}

	return ratelimit.Config{
		Name:    "ip",
		Rate:    rate.Limit(float64(perMinute) / 60.0),
		Burst:   burst,
		MaxKeys: GetEnvInt("RATELIMIT_MAX_KEYS", 10000),
		IdleTTL: GetEnvDuration("RATELIMIT_IDLE_TTL", 10*time.Minute),
	}
}

// DownloadLimiterConfig converts a download allowance (per hour plus
// burst) into a limiter configuration. The caller supplies the values
// from the download policy.
func DownloadLimiterConfig(perHour, burst, maxKeys int, idleTTL time.Duration) ratelimit.Config {
	return ratelimit.Config{
		Name:    "download",
		Rate:    rate.Limit(float64(perHour) / 3600.0),
		Burst:   burst,
		MaxKeys: maxKeys,
		IdleTTL: idleTTL,
	}
}

// CleanupInterval returns how often idle limiter keys are swept
// (RATELIMIT_CLEANUP_INTERVAL, default 5m).
func CleanupInterval() time.Duration {
	d := GetEnvDuration("RATELIMIT_CLEANUP_INTERVAL", 5*time.Minute)
	if d <= 0 {
		d = 5 * time.Minute
	}
	return d
}

// ValidateTrustedProxies validates a list of CIDR ranges for trusted proxies.
//
// Each entry must be in valid CIDR notation (e.g., "10.0.0.0/8").
func ValidateTrustedProxies(cidrs []string) error {
	for _, cidr := range cidrs {
		if cidr == "" {
			return fmt.Errorf("CIDR cannot be empty")
		}
		if _, _, err := net.ParseCIDR(cidr); err != nil {
			return fmt.Errorf("invalid CIDR %q: %w", cidr, err)
		}
	}
	return nil
}
