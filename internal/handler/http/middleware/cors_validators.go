package middleware

import "strings"

// OriginValidator decides whether a browser origin may access the API.
type OriginValidator interface {
	// IsAllowed reports whether the Origin header value is permitted.
	IsAllowed(origin string) bool

	// GetAllowedOrigins returns the configured origins for startup
	// logging. Implementations return a copy, not internal state.
	GetAllowedOrigins() []string
}

// WhitelistValidator allows exactly the configured origins. Comparison
// is case-insensitive and ignores a trailing slash, so
// "https://wallfeed.app/" in the environment still matches the
// "https://wallfeed.app" browsers send.
type WhitelistValidator struct {
	allowedOrigins []string
}

// NewWhitelistValidator normalizes the given origins (lowercase, no
// trailing slash, empties dropped) into a whitelist.
func NewWhitelistValidator(origins []string) *WhitelistValidator {
	normalized := make([]string, 0, len(origins))
	for _, origin := range origins {
		origin = strings.TrimSpace(origin)
		if origin == "" {
			continue
		}
		origin = strings.TrimSuffix(strings.ToLower(origin), "/")
		normalized = append(normalized, origin)
	}
	return &WhitelistValidator{allowedOrigins: normalized}
}

// IsAllowed reports whether origin is in the whitelist.
func (v *WhitelistValidator) IsAllowed(origin string) bool {
	if origin == "" {
		return false
	}
	origin = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(origin)), "/")
	for _, allowed := range v.allowedOrigins {
		if origin == allowed {
			return true
		}
	}
	return false
}

// GetAllowedOrigins returns a copy of the normalized whitelist.
func (v *WhitelistValidator) GetAllowedOrigins() []string {
	out := make([]string, len(v.allowedOrigins))
	copy(out, v.allowedOrigins)
	return out
}
