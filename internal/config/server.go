// Package config holds the application-level configuration: the HTTP
// server settings from the environment and the download policy from YAML.
package config

import (
	"fmt"
	"time"

	pkgconfig "wallfeed/pkg/config"
)

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	// Port the API listens on.
	Port int

	// ReadTimeout bounds reading the request including the body.
	ReadTimeout time.Duration

	// WriteTimeout bounds writing the response.
	WriteTimeout time.Duration

	// IdleTimeout bounds keep-alive connections between requests.
	IdleTimeout time.Duration

	// RequestTimeout is the per-request deadline applied by middleware.
	RequestTimeout time.Duration

	// ShutdownTimeout is how long graceful shutdown waits for in-flight
	// requests before forcing the listener closed.
	ShutdownTimeout time.Duration

	// CORSAllowedOrigins lists the origins the frontend is served from.
	CORSAllowedOrigins []string

	// TrustedProxies lists CIDR ranges whose X-Forwarded-For is honored
	// when extracting the client IP.
	TrustedProxies []string
}

// LoadServerConfig loads the server configuration from environment
// variables, applying defaults for anything unset.
//
// Environment variables:
//   - PORT: Listen port (default: 8080)
//   - HTTP_READ_TIMEOUT: Request read timeout (default: 10s)
//   - HTTP_WRITE_TIMEOUT: Response write timeout (default: 30s)
//   - HTTP_IDLE_TIMEOUT: Keep-alive idle timeout (default: 120s)
//   - HTTP_REQUEST_TIMEOUT: Per-request deadline (default: 15s)
//   - SHUTDOWN_TIMEOUT: Graceful shutdown grace period (default: 15s)
//   - CORS_ALLOWED_ORIGINS: Comma-separated origins (default: http://localhost:3000)
//   - TRUSTED_PROXIES: Comma-separated CIDR ranges (default: none)
func LoadServerConfig() (*ServerConfig, error) {
	cfg := &ServerConfig{
		Port:               pkgconfig.GetEnvInt("PORT", 8080),
		ReadTimeout:        pkgconfig.GetEnvDuration("HTTP_READ_TIMEOUT", 10*time.Second),
		WriteTimeout:       pkgconfig.GetEnvDuration("HTTP_WRITE_TIMEOUT", 30*time.Second),
		IdleTimeout:        pkgconfig.GetEnvDuration("HTTP_IDLE_TIMEOUT", 120*time.Second),
		RequestTimeout:     pkgconfig.GetEnvDuration("HTTP_REQUEST_TIMEOUT", 15*time.Second),
		ShutdownTimeout:    pkgconfig.GetEnvDuration("SHUTDOWN_TIMEOUT", 15*time.Second),
		CORSAllowedOrigins: pkgconfig.GetEnvStringList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		TrustedProxies:     pkgconfig.GetEnvStringList("TRUSTED_PROXIES", nil),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid server configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks configuration correctness.
func (c *ServerConfig) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port)
	}
	for _, d := range []struct {
		name  string
		value time.Duration
	}{
		{"HTTP_READ_TIMEOUT", c.ReadTimeout},
		{"HTTP_WRITE_TIMEOUT", c.WriteTimeout},
		{"HTTP_IDLE_TIMEOUT", c.IdleTimeout},
		{"HTTP_REQUEST_TIMEOUT", c.RequestTimeout},
		{"SHUTDOWN_TIMEOUT", c.ShutdownTimeout},
	} {
		if err := pkgconfig.ValidatePositiveDuration(d.value); err != nil {
			return fmt.Errorf("%s: %w", d.name, err)
		}
	}
	if err := pkgconfig.ValidateTrustedProxies(c.TrustedProxies); err != nil {
		return fmt.Errorf("TRUSTED_PROXIES: %w", err)
	}
	return nil
}

// Addr returns the listen address in ":port" form.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
