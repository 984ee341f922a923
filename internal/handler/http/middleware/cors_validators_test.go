package middleware

import (
	"testing"
)

func TestWhitelistValidator_IsAllowed(t *testing.T) {
	t.Parallel()

	validator := NewWhitelistValidator([]string{
		"https://wallfeed.app",
		"http://localhost:3000",
	})

	cases := []struct {
		name   string
		origin string
		want   bool
	}{
		{"production frontend", "https://wallfeed.app", true},
		{"local frontend", "http://localhost:3000", true},
		{"uppercase variant", "HTTPS://WALLFEED.APP", true},
		{"trailing slash variant", "https://wallfeed.app/", true},
		{"surrounding whitespace", "  https://wallfeed.app  ", true},
		{"unknown origin", "https://wallpaper-scraper.example", false},
		{"scheme mismatch", "http://wallfeed.app", false},
		{"subdomain is a different origin", "https://cdn.wallfeed.app", false},
		{"port is a different origin", "http://localhost:3001", false},
		{"prefix is not a match", "https://wallfeed.app.evil.example", false},
		{"empty origin", "", false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := validator.IsAllowed(tc.origin); got != tc.want {
				t.Errorf("IsAllowed(%q) = %v, want %v", tc.origin, got, tc.want)
			}
		})
	}
}

func TestNewWhitelistValidator_NormalizesConfiguredOrigins(t *testing.T) {
	t.Parallel()

	validator := NewWhitelistValidator([]string{
		" HTTPS://Wallfeed.App/ ",
		"",
		"http://localhost:3000",
	})

	origins := validator.GetAllowedOrigins()
	if len(origins) != 2 {
		t.Fatalf("origins = %v, want empties dropped", origins)
	}
	if origins[0] != "https://wallfeed.app" {
		t.Errorf("origins[0] = %q, want lowercased without trailing slash", origins[0])
	}
	if !validator.IsAllowed("https://wallfeed.app") {
		t.Error("normalized origin not allowed")
	}
}

func TestWhitelistValidator_GetAllowedOriginsReturnsCopy(t *testing.T) {
	t.Parallel()

	validator := NewWhitelistValidator([]string{"https://wallfeed.app"})

	origins := validator.GetAllowedOrigins()
	origins[0] = "https://tampered.example"

	if !validator.IsAllowed("https://wallfeed.app") {
		t.Error("mutating the returned slice changed validator state")
	}
	if validator.IsAllowed("https://tampered.example") {
		t.Error("tampered origin allowed")
	}
}

func TestWhitelistValidator_EmptyWhitelistAllowsNothing(t *testing.T) {
	t.Parallel()

	validator := NewWhitelistValidator(nil)

	if validator.IsAllowed("https://wallfeed.app") {
		t.Error("empty whitelist allowed an origin")
	}
	if got := len(validator.GetAllowedOrigins()); got != 0 {
		t.Errorf("origins count = %d, want 0", got)
	}
}
