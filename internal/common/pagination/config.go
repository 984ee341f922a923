// Package pagination implements the offset paging shared by the feed
// and category endpoints, with room for cursor strategies later.
package pagination

import (
	"os"
	"strconv"
)

// Config bounds what a client may request per page.
type Config struct {
	DefaultPage  int
	DefaultLimit int
	MaxLimit     int
}

// DefaultConfig returns page=1, limit=24, max=100. A 24-item page keeps
// wallpaper grids even at 2, 3, and 4 columns.
func DefaultConfig() Config {
	return Config{
		DefaultPage:  1,
		DefaultLimit: 24,
		MaxLimit:     100,
	}
}

// LoadFromEnv reads PAGINATION_DEFAULT_PAGE, PAGINATION_DEFAULT_LIMIT,
// and PAGINATION_MAX_LIMIT, keeping the defaults for anything unset or
// unparsable.
func LoadFromEnv() Config {
	def := DefaultConfig()
	return Config{
		DefaultPage:  envInt("PAGINATION_DEFAULT_PAGE", def.DefaultPage),
		DefaultLimit: envInt("PAGINATION_DEFAULT_LIMIT", def.DefaultLimit),
		MaxLimit:     envInt("PAGINATION_MAX_LIMIT", def.MaxLimit),
	}
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return val
}
