package middleware

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
)

// CORS policy environment variables:
//
//	CORS_ALLOWED_ORIGINS  comma-separated origin whitelist (required)
//	CORS_ALLOWED_METHODS  comma-separated methods (default GET,POST,PUT,DELETE,PATCH,OPTIONS)
//	CORS_ALLOWED_HEADERS  comma-separated headers (default Content-Type,Authorization,X-Request-ID,X-Trace-ID)
//	CORS_MAX_AGE          preflight cache seconds (default 86400)

var defaultAllowedMethods = []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"}

var defaultAllowedHeaders = []string{"Content-Type", "Authorization", "X-Request-ID", "X-Trace-ID"}

// LoadCORSConfig builds the CORS policy from the environment. The origin
// whitelist is fail-closed: with no valid origin configured the API
// refuses to start rather than serving browsers an open policy. The
// Logger field is left nil for the caller to inject.
func LoadCORSConfig() (*CORSConfig, error) {
	origins, err := loadOrigins()
	if err != nil {
		return nil, fmt.Errorf("failed to load allowed origins: %w", err)
	}

	methods, err := loadMethods()
	if err != nil {
		return nil, fmt.Errorf("failed to load allowed methods: %w", err)
	}

	maxAge, err := loadMaxAge()
	if err != nil {
		return nil, fmt.Errorf("failed to load max age: %w", err)
	}

	return &CORSConfig{
		AllowedMethods: methods,
		AllowedHeaders: loadHeaders(),
		MaxAge:         maxAge,
		Validator:      NewWhitelistValidator(origins),
	}, nil
}

// loadOrigins parses CORS_ALLOWED_ORIGINS. Each entry must be a bare
// http(s) origin: scheme and host only, no path, query, fragment or
// trailing slash.
func loadOrigins() ([]string, error) {
	raw := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS"))
	if raw == "" {
		return nil, fmt.Errorf("CORS_ALLOWED_ORIGINS environment variable is required")
	}

	var origins []string
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		u, err := url.Parse(entry)
		if err != nil {
			return nil, fmt.Errorf("invalid origin URL '%s': %w", entry, err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return nil, fmt.Errorf("origin must use http or https scheme: %s", entry)
		}
		if strings.HasSuffix(entry, "/") {
			return nil, fmt.Errorf("origin must not have trailing slash: %s", entry)
		}
		if u.Path != "" {
			return nil, fmt.Errorf("origin must not include path: %s", entry)
		}
		if u.RawQuery != "" {
			return nil, fmt.Errorf("origin must not include query string: %s", entry)
		}
		if u.Fragment != "" {
			return nil, fmt.Errorf("origin must not include fragment: %s", entry)
		}

		origins = append(origins, entry)
	}

	if len(origins) == 0 {
		return nil, fmt.Errorf("at least one valid origin must be configured in CORS_ALLOWED_ORIGINS")
	}
	return origins, nil
}

// loadMethods parses CORS_ALLOWED_METHODS. Only methods the API routes
// actually use are accepted.
func loadMethods() ([]string, error) {
	raw := strings.TrimSpace(os.Getenv("CORS_ALLOWED_METHODS"))
	if raw == "" {
		return defaultAllowedMethods, nil
	}

	valid := map[string]bool{
		"GET": true, "POST": true, "PUT": true,
		"DELETE": true, "PATCH": true, "OPTIONS": true,
	}

	var methods []string
	for _, m := range strings.Split(raw, ",") {
		m = strings.ToUpper(strings.TrimSpace(m))
		if m == "" {
			continue
		}
		if !valid[m] {
			return nil, fmt.Errorf("invalid HTTP method '%s': must be one of GET, POST, PUT, DELETE, PATCH, OPTIONS", m)
		}
		methods = append(methods, m)
	}

	if len(methods) == 0 {
		return nil, fmt.Errorf("at least one valid HTTP method must be configured in CORS_ALLOWED_METHODS")
	}
	return methods, nil
}

// loadHeaders parses CORS_ALLOWED_HEADERS. Header names are free-form;
// an unset or empty variable means the defaults.
func loadHeaders() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ALLOWED_HEADERS"))
	if raw == "" {
		return defaultAllowedHeaders
	}

	var headers []string
	for _, h := range strings.Split(raw, ",") {
		h = strings.TrimSpace(h)
		if h == "" {
			continue
		}
		headers = append(headers, h)
	}

	if len(headers) == 0 {
		return defaultAllowedHeaders
	}
	return headers
}

// loadMaxAge parses CORS_MAX_AGE as a non-negative second count.
func loadMaxAge() (int, error) {
	raw := strings.TrimSpace(os.Getenv("CORS_MAX_AGE"))
	if raw == "" {
		return 86400, nil
	}

	maxAge, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid CORS_MAX_AGE '%s': must be a valid integer", raw)
	}
	if maxAge < 0 {
		return 0, fmt.Errorf("CORS_MAX_AGE must be non-negative, got: %d", maxAge)
	}
	return maxAge, nil
}
