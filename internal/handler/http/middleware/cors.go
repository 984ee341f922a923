package middleware

import (
	"net/http"
	"strconv"
	"strings"
)

// CORSConfig is the CORS policy applied to browser traffic from the
// wallpaper frontend.
type CORSConfig struct {
	// AllowedMethods lists the HTTP methods advertised on preflight.
	AllowedMethods []string

	// AllowedHeaders lists the request headers advertised on preflight.
	AllowedHeaders []string

	// MaxAge is how long, in seconds, browsers may cache a preflight
	// result.
	MaxAge int

	// Validator decides which origins are allowed.
	Validator OriginValidator

	// Logger receives policy violations and preflight traces. Nil
	// disables CORS logging.
	Logger CORSLogger
}

// CORS validates the Origin header against the configured policy and
// sets the response headers browsers need for cross-origin access.
//
// Same-origin requests (no Origin header) pass through untouched. A
// disallowed origin is logged and forwarded without CORS headers, which
// makes the browser block the response while curl and server-to-server
// callers keep working. Allowed preflights are answered directly with
// 204 and never reach the handler chain.
func CORS(config CORSConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			if !config.Validator.IsAllowed(origin) {
				config.warn("CORS: origin not allowed", map[string]interface{}{
					"origin":      origin,
					"path":        r.URL.Path,
					"method":      r.Method,
					"remote_addr": r.RemoteAddr,
				})
				next.ServeHTTP(w, r)
				return
			}

			// Echo the origin rather than "*": credentialed requests
			// are rejected by browsers when the wildcard is used.
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")

			if r.Method == http.MethodOptions {
				config.answerPreflight(w, r, origin)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (c *CORSConfig) answerPreflight(w http.ResponseWriter, r *http.Request, origin string) {
	h := w.Header()
	h.Set("Access-Control-Allow-Methods", strings.Join(c.AllowedMethods, ", "))
	h.Set("Access-Control-Allow-Headers", strings.Join(c.AllowedHeaders, ", "))
	h.Set("Access-Control-Max-Age", strconv.Itoa(c.MaxAge))

	c.debug("CORS: preflight request", map[string]interface{}{
		"origin":            origin,
		"requested_method":  r.Header.Get("Access-Control-Request-Method"),
		"requested_headers": r.Header.Get("Access-Control-Request-Headers"),
	})

	w.WriteHeader(http.StatusNoContent)
}

func (c *CORSConfig) warn(msg string, fields map[string]interface{}) {
	if c.Logger != nil {
		c.Logger.Warn(msg, fields)
	}
}

func (c *CORSConfig) debug(msg string, fields map[string]interface{}) {
	if c.Logger != nil {
		c.Logger.Debug(msg, fields)
	}
}
