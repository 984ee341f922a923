package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// GetEnvString returns the variable's value, or def when unset. No
// validation, no warning.
func GetEnvString(key, def string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return def
}

// GetEnvInt parses the variable as an integer. Unparsable values are
// logged and replaced with def rather than failing startup.
func GetEnvInt(key string, def int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		warnBadEnv(key, raw, strconv.Itoa(def), err)
		return def
	}
	return value
}

// GetEnvFloat parses the variable as a float64, falling back to def with
// a warning. Used for tuning knobs like TRENDING_HALF_LIFE_DAYS.
func GetEnvFloat(key string, def float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		warnBadEnv(key, raw, strconv.FormatFloat(def, 'g', -1, 64), err)
		return def
	}
	return value
}

// GetEnvBool parses the variable with strconv.ParseBool semantics
// (1/t/true and 0/f/false in any common casing), falling back to def
// with a warning on anything else.
func GetEnvBool(key string, def bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		warnBadEnv(key, raw, strconv.FormatBool(def), err)
		return def
	}
	return value
}

// GetEnvDuration parses the variable with time.ParseDuration ("30s",
// "1h30m"), falling back to def with a warning.
func GetEnvDuration(key string, def time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		warnBadEnv(key, raw, def.String(), err)
		return def
	}
	return value
}

// GetEnvStringList splits the variable on commas, trimming whitespace
// and dropping empty entries. An unset variable, or one that trims down
// to nothing, yields def.
func GetEnvStringList(key string, def []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	if len(result) == 0 {
		return def
	}
	return result
}

func warnBadEnv(key, raw, def string, err error) {
	slog.Warn("invalid environment variable value, using default",
		slog.String("key", key),
		slog.String("value", raw),
		slog.String("default", def),
		slog.String("error", err.Error()))
}
