package pagination_test

import (
	"testing"

	"wallfeed/internal/common/pagination"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	config := pagination.DefaultConfig()

	if config.DefaultPage != 1 {
		t.Errorf("DefaultPage = %d, want 1", config.DefaultPage)
	}
	if config.DefaultLimit != 24 {
		t.Errorf("DefaultLimit = %d, want 24", config.DefaultLimit)
	}
	if config.MaxLimit != 100 {
		t.Errorf("MaxLimit = %d, want 100", config.MaxLimit)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Run("from environment", func(t *testing.T) {
		t.Setenv("PAGINATION_DEFAULT_PAGE", "2")
		t.Setenv("PAGINATION_DEFAULT_LIMIT", "48")
		t.Setenv("PAGINATION_MAX_LIMIT", "200")

		config := pagination.LoadFromEnv()

		if config.DefaultPage != 2 {
			t.Errorf("DefaultPage = %d, want 2", config.DefaultPage)
		}
		if config.DefaultLimit != 48 {
			t.Errorf("DefaultLimit = %d, want 48", config.DefaultLimit)
		}
		if config.MaxLimit != 200 {
			t.Errorf("MaxLimit = %d, want 200", config.MaxLimit)
		}
	})

	t.Run("invalid values fall back to defaults", func(t *testing.T) {
		t.Setenv("PAGINATION_DEFAULT_PAGE", "not-a-number")
		t.Setenv("PAGINATION_DEFAULT_LIMIT", "")
		t.Setenv("PAGINATION_MAX_LIMIT", "12.5")

		config := pagination.LoadFromEnv()

		if config.DefaultPage != 1 {
			t.Errorf("DefaultPage = %d, want 1", config.DefaultPage)
		}
		if config.DefaultLimit != 24 {
			t.Errorf("DefaultLimit = %d, want 24", config.DefaultLimit)
		}
		if config.MaxLimit != 100 {
			t.Errorf("MaxLimit = %d, want 100", config.MaxLimit)
		}
	})
}
