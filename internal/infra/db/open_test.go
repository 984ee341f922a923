package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConnectionConfig(t *testing.T) {
	cfg := DefaultConnectionConfig()

	assert.Equal(t, 25, cfg.MaxOpenConns)
	assert.Equal(t, 10, cfg.MaxIdleConns)
	assert.Equal(t, 1*time.Hour, cfg.ConnMaxLifetime)
	assert.Equal(t, 30*time.Minute, cfg.ConnMaxIdleTime)
}

func TestDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	assert.Equal(t, "pgx", Driver())

	t.Setenv("DB_DRIVER", "sqlite")
	assert.Equal(t, "sqlite", Driver())

	// 未知の値は本番ドライバへフォールバック
	t.Setenv("DB_DRIVER", "mysql")
	assert.Equal(t, "pgx", Driver())
}

func TestGetConnectionConfigFromEnv(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want ConnectionConfig
	}{
		{
			name: "defaults when unset",
			env:  map[string]string{},
			want: DefaultConnectionConfig(),
		},
		{
			name: "overrides applied",
			env: map[string]string{
				"DB_MAX_OPEN_CONNS":    "50",
				"DB_MAX_IDLE_CONNS":    "20",
				"DB_CONN_MAX_LIFETIME": "2h",
			},
			want: ConnectionConfig{
				MaxOpenConns:    50,
				MaxIdleConns:    20,
				ConnMaxLifetime: 2 * time.Hour,
				ConnMaxIdleTime: 30 * time.Minute,
			},
		},
		{
			name: "invalid values fall back",
			env: map[string]string{
				"DB_MAX_OPEN_CONNS":    "not-a-number",
				"DB_MAX_IDLE_CONNS":    "-3",
				"DB_CONN_MAX_LIFETIME": "yesterday",
			},
			want: DefaultConnectionConfig(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range []string{"DB_MAX_OPEN_CONNS", "DB_MAX_IDLE_CONNS", "DB_CONN_MAX_LIFETIME", "DB_CONN_MAX_IDLE_TIME"} {
				t.Setenv(key, "")
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			assert.Equal(t, tt.want, getConnectionConfigFromEnv())
		})
	}
}
