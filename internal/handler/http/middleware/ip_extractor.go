package middleware

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/netip"
	"os"
	"strings"
)

// IPExtractor resolves the client IP a rate-limit bucket is keyed on.
// The default implementation reads the TCP peer address; the trusted
// proxy variant honors forwarding headers, but only from proxies the
// operator has explicitly listed.
type IPExtractor interface {
	ExtractIP(r *http.Request) (string, error)
}

// RemoteAddrExtractor keys on the TCP peer address. The peer address
// cannot be spoofed by the client, so this is the safe choice whenever
// the API is reached directly rather than through a reverse proxy.
type RemoteAddrExtractor struct{}

// ExtractIP strips the port from r.RemoteAddr. IPv6 literals in
// brackets ("[2001:db8::1]:443") are handled.
func (e *RemoteAddrExtractor) ExtractIP(r *http.Request) (string, error) {
	return hostOnly(r.RemoteAddr)
}

// TrustedProxyConfig lists the reverse proxies whose forwarding headers
// may be believed.
type TrustedProxyConfig struct {
	// Enabled gates all header-based extraction. When false the
	// forwarding headers are ignored entirely.
	Enabled bool

	// AllowedCIDRs holds the trusted proxy ranges. Single addresses
	// from the environment are stored as /32 or /128 prefixes.
	AllowedCIDRs []netip.Prefix
}

// IsTrusted reports whether remoteAddr ("IP:port") belongs to one of
// the trusted ranges. Unparseable addresses are never trusted.
func (c *TrustedProxyConfig) IsTrusted(remoteAddr string) bool {
	host, err := hostOnly(remoteAddr)
	if err != nil {
		return false
	}
	addr, err := netip.ParseAddr(host)
	if err != nil {
		return false
	}
	for _, prefix := range c.AllowedCIDRs {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

// LoadTrustedProxyConfig reads the proxy trust settings:
//
//	RATE_LIMIT_TRUST_PROXY      "true" enables header-based extraction
//	RATE_LIMIT_TRUSTED_PROXIES  comma-separated IPs or CIDR ranges
//
// The configuration is fail-closed: enabling trust without naming any
// valid proxy, or naming a malformed one, is a startup error. Download
// rate limiting would otherwise be trivially bypassed by spoofed
// X-Forwarded-For headers.
func LoadTrustedProxyConfig() (*TrustedProxyConfig, error) {
	config := &TrustedProxyConfig{
		Enabled:      os.Getenv("RATE_LIMIT_TRUST_PROXY") == "true",
		AllowedCIDRs: []netip.Prefix{},
	}
	if !config.Enabled {
		return config, nil
	}

	raw := strings.TrimSpace(os.Getenv("RATE_LIMIT_TRUSTED_PROXIES"))
	if raw == "" {
		return nil, fmt.Errorf("RATE_LIMIT_TRUST_PROXY is enabled but RATE_LIMIT_TRUSTED_PROXIES is empty")
	}

	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		prefix, err := netip.ParsePrefix(entry)
		if err != nil {
			// Not a CIDR; accept a bare address as a single-host range.
			addr, addrErr := netip.ParseAddr(entry)
			if addrErr != nil {
				return nil, fmt.Errorf("invalid IP or CIDR format '%s': must be valid IP address or CIDR notation (e.g., '192.168.1.1' or '10.0.0.0/8')", entry)
			}
			prefix = netip.PrefixFrom(addr, addr.BitLen())
		}
		config.AllowedCIDRs = append(config.AllowedCIDRs, prefix)
	}

	if len(config.AllowedCIDRs) == 0 {
		return nil, fmt.Errorf("RATE_LIMIT_TRUST_PROXY is enabled but no valid proxies found in RATE_LIMIT_TRUSTED_PROXIES")
	}
	return config, nil
}

// TrustedProxyExtractor believes X-Forwarded-For and X-Real-IP, but
// only when the direct peer is a listed proxy. Header order of
// preference: first X-Forwarded-For entry, then X-Real-IP, then the
// peer address.
type TrustedProxyExtractor struct {
	config TrustedProxyConfig
}

// NewTrustedProxyExtractor wraps the given trust configuration.
func NewTrustedProxyExtractor(config TrustedProxyConfig) *TrustedProxyExtractor {
	return &TrustedProxyExtractor{config: config}
}

// ExtractIP resolves the client IP. Forwarding headers from an
// unlisted peer are logged and ignored, since a client sending its own
// X-Forwarded-For is exactly the rate-limit bypass this guards against.
func (e *TrustedProxyExtractor) ExtractIP(r *http.Request) (string, error) {
	if !e.config.Enabled {
		return hostOnly(r.RemoteAddr)
	}

	if !e.config.IsTrusted(r.RemoteAddr) {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			slog.Warn("untrusted proxy attempting to set X-Forwarded-For",
				slog.String("remote_addr", r.RemoteAddr),
				slog.String("x_forwarded_for", xff),
			)
		}
		if xri := r.Header.Get("X-Real-IP"); xri != "" {
			slog.Warn("untrusted proxy attempting to set X-Real-IP",
				slog.String("remote_addr", r.RemoteAddr),
				slog.String("x_real_ip", xri),
			)
		}
		return hostOnly(r.RemoteAddr)
	}

	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if ip := firstForwardedIP(xff); ip != "" {
			return ip, nil
		}
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		if addr, err := netip.ParseAddr(strings.TrimSpace(xri)); err == nil {
			return addr.String(), nil
		}
	}

	return hostOnly(r.RemoteAddr)
}

// hostOnly strips the port from an "IP:port" address. A bare IP is
// returned as-is; anything else is an error.
func hostOnly(addr string) (string, error) {
	host, _, err := net.SplitHostPort(addr)
	if err == nil {
		return host, nil
	}
	if ip, parseErr := netip.ParseAddr(addr); parseErr == nil {
		return ip.String(), nil
	}
	return "", fmt.Errorf("invalid address format: %s", addr)
}

// firstForwardedIP takes the leftmost entry of an X-Forwarded-For list
// ("client, proxy1, proxy2"), which is the address the first proxy saw.
// Returns "" when that entry is not a valid IP.
func firstForwardedIP(s string) string {
	first, _, _ := strings.Cut(s, ",")
	addr, err := netip.ParseAddr(strings.TrimSpace(first))
	if err != nil {
		return ""
	}
	return addr.String()
}
