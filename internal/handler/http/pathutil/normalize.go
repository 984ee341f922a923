// Package pathutil rewrites request paths into the templates used as
// metric labels.
package pathutil

import (
	"regexp"
	"strings"
)

type rewriteRule struct {
	pattern  *regexp.Regexp
	template string
}

// Ordered most specific first. Compiled once at init.
var pathPatterns = []rewriteRule{
	{regexp.MustCompile(`^/wallpapers/\d+/download$`), "/wallpapers/:id/download"},
	{regexp.MustCompile(`^/wallpapers/\d+$`), "/wallpapers/:id"},
	{regexp.MustCompile(`^/categories/[a-z0-9-]+$`), "/categories/:slug"},
}

// NormalizePath collapses ID-bearing paths into their templates so every
// wallpaper does not become its own Prometheus label:
//
//	/wallpapers/123           -> /wallpapers/:id
//	/wallpapers/123/download  -> /wallpapers/:id/download
//	/categories/nature        -> /categories/:slug
//
// Query strings and trailing slashes are dropped first. Static paths
// (/feed, /health, /metrics) and anything unrecognized pass through
// unchanged.
func NormalizePath(path string) string {
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	for _, rule := range pathPatterns {
		if rule.pattern.MatchString(path) {
			return rule.template
		}
	}
	return path
}

// GetExpectedCardinality estimates the unique path labels after
// normalization, for alert threshold sizing.
func GetExpectedCardinality() int {
	// Templates plus the static endpoints (/feed, /categories, /vitals,
	// /health, /ready, /live, /metrics, /).
	return len(pathPatterns) + 8
}
