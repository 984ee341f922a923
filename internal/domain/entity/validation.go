package entity

import (
	"fmt"
	"net"
	"net/url"
	"regexp"
)

const (
	maxURLLength  = 2048 // caps pasted manifest URLs
	maxSlugLength = 120
)

// slugPattern matches lowercase URL-safe slugs: letters, digits and
// single hyphens between segments.
var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// ValidateSlug checks a category slug: non-empty, at most maxSlugLength
// characters, and matching slugPattern.
func ValidateSlug(slug string) error {
	if slug == "" {
		return &ValidationError{Field: "slug", Message: "slug is required"}
	}
	if len(slug) > maxSlugLength {
		return &ValidationError{
			Field:   "slug",
			Message: fmt.Sprintf("slug must not exceed %d characters", maxSlugLength),
		}
	}
	if !slugPattern.MatchString(slug) {
		return &ValidationError{
			Field:   "slug",
			Message: "slug must contain only lowercase letters, digits and hyphens",
		}
	}
	return nil
}

// ValidateMediaURL checks an image, thumbnail or video URL before the
// importer stores it and later probes it: well-formed, http(s), with a
// host that does not resolve to a private address.
func ValidateMediaURL(rawURL string) error {
	if rawURL == "" {
		return &ValidationError{Field: "url", Message: "URL is required"}
	}
	if len(rawURL) > maxURLLength {
		return &ValidationError{
			Field:   "url",
			Message: fmt.Sprintf("url must not exceed %d characters", maxURLLength),
		}
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("parse URL: %w", err)
	}

	// HTTPまたはHTTPSスキームのみ許可
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return &ValidationError{Field: "url", Message: "URL must use http or https scheme"}
	}
	if parsed.Host == "" {
		return &ValidationError{Field: "url", Message: "URL must have a valid host"}
	}

	// SSRF対策: プライベートIPアドレスをブロック
	ips, err := net.LookupIP(parsed.Hostname())
	if err != nil {
		// Unresolvable hosts are left for the probe to reject.
		return nil
	}
	for _, ip := range ips {
		if isPrivateIP(ip) {
			return &ValidationError{
				Field:   "url",
				Message: "url cannot point to private network",
			}
		}
	}
	return nil
}

// isPrivateIP reports whether ip belongs to a range the importer must
// never fetch from: loopback, link-local (which covers the
// 169.254.169.254 cloud metadata endpoint) and RFC 1918 / ULA space.
func isPrivateIP(ip net.IP) bool {
	return ip.IsLoopback() || ip.IsLinkLocalUnicast() || ip.IsPrivate()
}
