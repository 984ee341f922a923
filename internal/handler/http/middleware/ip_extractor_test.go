package middleware

import (
	"net/http/httptest"
	"net/netip"
	"testing"
)

func TestRemoteAddrExtractor(t *testing.T) {
	t.Parallel()

	extractor := &RemoteAddrExtractor{}

	cases := []struct {
		name       string
		remoteAddr string
		want       string
		wantErr    bool
	}{
		{"IPv4 with port", "203.0.113.7:54321", "203.0.113.7", false},
		{"IPv4 localhost", "127.0.0.1:8080", "127.0.0.1", false},
		{"IPv6 with port", "[2001:db8::1]:443", "2001:db8::1", false},
		{"IPv4 without port", "203.0.113.7", "203.0.113.7", false},
		{"IPv6 without port", "::1", "::1", false},
		{"garbage", "not-an-address", "", true},
		{"empty", "", "", true},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest("POST", "/wallpapers/42/download", nil)
			req.RemoteAddr = tc.remoteAddr

			ip, err := extractor.ExtractIP(req)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("ExtractIP(%q) = %q, want error", tc.remoteAddr, ip)
				}
				return
			}
			if err != nil {
				t.Fatalf("ExtractIP(%q): %v", tc.remoteAddr, err)
			}
			if ip != tc.want {
				t.Errorf("ExtractIP(%q) = %q, want %q", tc.remoteAddr, ip, tc.want)
			}
		})
	}
}

func TestTrustedProxyConfig_IsTrusted(t *testing.T) {
	t.Parallel()

	config := TrustedProxyConfig{
		Enabled: true,
		AllowedCIDRs: []netip.Prefix{
			netip.MustParsePrefix("10.0.0.0/8"),
			netip.MustParsePrefix("203.0.113.7/32"),
			netip.MustParsePrefix("2001:db8::/32"),
		},
	}

	cases := []struct {
		name       string
		remoteAddr string
		want       bool
	}{
		{"inside private range", "10.1.2.3:443", true},
		{"exact single host", "203.0.113.7:80", true},
		{"IPv6 inside range", "[2001:db8::9]:443", true},
		{"outside all ranges", "198.51.100.1:443", false},
		{"adjacent to single host", "203.0.113.8:80", false},
		{"unparseable", "nonsense", false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := config.IsTrusted(tc.remoteAddr); got != tc.want {
				t.Errorf("IsTrusted(%q) = %v, want %v", tc.remoteAddr, got, tc.want)
			}
		})
	}
}

func TestTrustedProxyExtractor_DisabledIgnoresHeaders(t *testing.T) {
	t.Parallel()

	extractor := NewTrustedProxyExtractor(TrustedProxyConfig{Enabled: false})

	req := httptest.NewRequest("POST", "/wallpapers/42/download", nil)
	req.RemoteAddr = "203.0.113.7:54321"
	req.Header.Set("X-Forwarded-For", "198.51.100.99")

	ip, err := extractor.ExtractIP(req)
	if err != nil {
		t.Fatalf("ExtractIP: %v", err)
	}
	if ip != "203.0.113.7" {
		t.Errorf("ip = %q, want the peer address when trust is disabled", ip)
	}
}

func TestTrustedProxyExtractor_TrustedPeer(t *testing.T) {
	t.Parallel()

	config := TrustedProxyConfig{
		Enabled:      true,
		AllowedCIDRs: []netip.Prefix{netip.MustParsePrefix("10.0.0.0/8")},
	}
	extractor := NewTrustedProxyExtractor(config)

	t.Run("first forwarded entry wins", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/wallpapers/42/download", nil)
		req.RemoteAddr = "10.0.0.5:44000"
		req.Header.Set("X-Forwarded-For", "198.51.100.99, 10.0.0.5")

		ip, err := extractor.ExtractIP(req)
		if err != nil {
			t.Fatalf("ExtractIP: %v", err)
		}
		if ip != "198.51.100.99" {
			t.Errorf("ip = %q, want first X-Forwarded-For entry", ip)
		}
	})

	t.Run("falls back to X-Real-IP", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/wallpapers/42/download", nil)
		req.RemoteAddr = "10.0.0.5:44000"
		req.Header.Set("X-Real-IP", "198.51.100.42")

		ip, err := extractor.ExtractIP(req)
		if err != nil {
			t.Fatalf("ExtractIP: %v", err)
		}
		if ip != "198.51.100.42" {
			t.Errorf("ip = %q, want X-Real-IP value", ip)
		}
	})

	t.Run("no headers falls back to peer", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/wallpapers/42/download", nil)
		req.RemoteAddr = "10.0.0.5:44000"

		ip, err := extractor.ExtractIP(req)
		if err != nil {
			t.Fatalf("ExtractIP: %v", err)
		}
		if ip != "10.0.0.5" {
			t.Errorf("ip = %q, want peer address", ip)
		}
	})

	t.Run("garbage forwarded entry falls through", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/wallpapers/42/download", nil)
		req.RemoteAddr = "10.0.0.5:44000"
		req.Header.Set("X-Forwarded-For", "not-an-ip, 198.51.100.99")
		req.Header.Set("X-Real-IP", "198.51.100.42")

		ip, err := extractor.ExtractIP(req)
		if err != nil {
			t.Fatalf("ExtractIP: %v", err)
		}
		if ip != "198.51.100.42" {
			t.Errorf("ip = %q, want X-Real-IP after invalid X-Forwarded-For", ip)
		}
	})
}

func TestTrustedProxyExtractor_UntrustedPeerSpoofIgnored(t *testing.T) {
	t.Parallel()

	config := TrustedProxyConfig{
		Enabled:      true,
		AllowedCIDRs: []netip.Prefix{netip.MustParsePrefix("10.0.0.0/8")},
	}
	extractor := NewTrustedProxyExtractor(config)

	// A client outside the proxy range sends its own forwarding headers
	// to rotate its apparent IP past the download limit.
	req := httptest.NewRequest("POST", "/wallpapers/42/download", nil)
	req.RemoteAddr = "198.51.100.77:33000"
	req.Header.Set("X-Forwarded-For", "203.0.113.1")
	req.Header.Set("X-Real-IP", "203.0.113.2")

	ip, err := extractor.ExtractIP(req)
	if err != nil {
		t.Fatalf("ExtractIP: %v", err)
	}
	if ip != "198.51.100.77" {
		t.Errorf("ip = %q, want the real peer address, not the spoofed headers", ip)
	}
}

func TestHostOnly(t *testing.T) {
	t.Parallel()

	cases := []struct {
		addr    string
		want    string
		wantErr bool
	}{
		{"203.0.113.7:8080", "203.0.113.7", false},
		{"[2001:db8::1]:8080", "2001:db8::1", false},
		{"127.0.0.1", "127.0.0.1", false},
		{"::1", "::1", false},
		{"", "", true},
		{"not an ip", "", true},
	}

	for _, tc := range cases {
		got, err := hostOnly(tc.addr)
		if tc.wantErr {
			if err == nil {
				t.Errorf("hostOnly(%q) = %q, want error", tc.addr, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("hostOnly(%q): %v", tc.addr, err)
			continue
		}
		if got != tc.want {
			t.Errorf("hostOnly(%q) = %q, want %q", tc.addr, got, tc.want)
		}
	}
}

func TestFirstForwardedIP(t *testing.T) {
	t.Parallel()

	cases := []struct {
		input string
		want  string
	}{
		{"198.51.100.99", "198.51.100.99"},
		{"198.51.100.99, 10.0.0.1", "198.51.100.99"},
		{" 198.51.100.99 , 10.0.0.1", "198.51.100.99"},
		{"2001:db8::1, 10.0.0.1", "2001:db8::1"},
		{"invalid, 10.0.0.1", ""},
		{"", ""},
	}

	for _, tc := range cases {
		if got := firstForwardedIP(tc.input); got != tc.want {
			t.Errorf("firstForwardedIP(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}
