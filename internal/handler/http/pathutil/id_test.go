package pathutil

import (
	"errors"
	"testing"
)

func TestExtractID(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		prefix  string
		want    int64
		wantErr bool
	}{
		{
			name:   "valid wallpaper ID",
			path:   "/wallpapers/123",
			prefix: "/wallpapers/",
			want:   123,
		},
		{
			name:   "large ID",
			path:   "/wallpapers/9223372036854775807",
			prefix: "/wallpapers/",
			want:   9223372036854775807,
		},
		{
			name:    "non-numeric ID",
			path:    "/wallpapers/abc",
			prefix:  "/wallpapers/",
			wantErr: true,
		},
		{
			name:    "zero ID",
			path:    "/wallpapers/0",
			prefix:  "/wallpapers/",
			wantErr: true,
		},
		{
			name:    "negative ID",
			path:    "/wallpapers/-1",
			prefix:  "/wallpapers/",
			wantErr: true,
		},
		{
			name:    "empty ID",
			path:    "/wallpapers/",
			prefix:  "/wallpapers/",
			wantErr: true,
		},
		{
			name:    "ID with trailing segment",
			path:    "/wallpapers/12/download",
			prefix:  "/wallpapers/",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractID(tt.path, tt.prefix)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidID) {
					t.Errorf("ExtractID(%q) err = %v, want ErrInvalidID", tt.path, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ExtractID(%q) error: %v", tt.path, err)
			}
			if got != tt.want {
				t.Errorf("ExtractID(%q) = %d, want %d", tt.path, got, tt.want)
			}
		})
	}
}
