// Package config carries the env loading and validation helpers shared
// by the worker configuration and the download policy. Every loader is
// fail-open: an unset variable silently uses the default, and a malformed
// or out-of-range value falls back to the default with a warning the
// caller is expected to log and count.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Loaded is the outcome of reading one environment variable. Value is
// always usable; when the raw value was rejected, FallbackApplied is set
// and Warning says what was ignored and why.
type Loaded[T any] struct {
	Value           T
	Warning         string
	FallbackApplied bool
}

func accepted[T any](v T) Loaded[T] {
	return Loaded[T]{Value: v}
}

func rejected[T any](key, raw string, reason error, def T) Loaded[T] {
	return Loaded[T]{
		Value:           def,
		Warning:         fmt.Sprintf("invalid %s=%q: %v; using default %v", key, raw, reason, def),
		FallbackApplied: true,
	}
}

// LoadEnvString reads a plain string variable. Unset or empty means the
// default. No validation; use LoadEnvWithFallback when a check is needed.
func LoadEnvString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// LoadEnvWithFallback reads a string variable and runs it through
// validate (nil skips the check). A rejected value is replaced by the
// default rather than reported as an error.
//
//	tz := LoadEnvWithFallback("WORKER_TIMEZONE", "UTC", ValidateTimezone)
func LoadEnvWithFallback(key, def string, validate func(string) error) Loaded[string] {
	raw := os.Getenv(key)
	if raw == "" {
		return accepted(def)
	}
	if validate != nil {
		if err := validate(raw); err != nil {
			return rejected(key, raw, err, def)
		}
	}
	return accepted(raw)
}

// LoadEnvDuration reads a variable in time.ParseDuration format
// ("45s", "10m", "1h30m"). Parse failures and validation failures both
// fall back to the default.
func LoadEnvDuration(key string, def time.Duration, validate func(time.Duration) error) Loaded[time.Duration] {
	raw := os.Getenv(key)
	if raw == "" {
		return accepted(def)
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return rejected(key, raw, err, def)
	}
	if validate != nil {
		if err := validate(d); err != nil {
			return rejected(key, raw, err, def)
		}
	}
	return accepted(d)
}

// LoadEnvInt reads an integer variable. Parse failures and validation
// failures both fall back to the default.
func LoadEnvInt(key string, def int, validate func(int) error) Loaded[int] {
	raw := os.Getenv(key)
	if raw == "" {
		return accepted(def)
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return rejected(key, raw, fmt.Errorf("not an integer"), def)
	}
	if validate != nil {
		if err := validate(n); err != nil {
			return rejected(key, raw, err, def)
		}
	}
	return accepted(n)
}
