package entity

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validWallpaper() Wallpaper {
	return Wallpaper{
		ID:          1,
		CategoryID:  2,
		Title:       "Neon City Night",
		Slug:        "neon-city-night",
		ImageURL:    "https://cdn.example.com/walls/neon-city-night.jpg",
		ThumbURL:    "https://cdn.example.com/thumbs/neon-city-night.jpg",
		Tags:        []string{"city", "neon", "night"},
		Width:       3840,
		Height:      2160,
		PublishedAt: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestWallpaper_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(w *Wallpaper)
		wantErr bool
	}{
		{
			name:    "valid wallpaper",
			mutate:  func(w *Wallpaper) {},
			wantErr: false,
		},
		{
			name: "valid live wallpaper",
			mutate: func(w *Wallpaper) {
				w.VideoURL = "https://cdn.example.com/walls/neon-city-night.mp4"
			},
			wantErr: false,
		},
		{
			name: "missing title",
			mutate: func(w *Wallpaper) {
				w.Title = ""
			},
			wantErr: true,
		},
		{
			name: "whitespace title",
			mutate: func(w *Wallpaper) {
				w.Title = "   "
			},
			wantErr: true,
		},
		{
			name: "title too long",
			mutate: func(w *Wallpaper) {
				w.Title = strings.Repeat("x", maxTitleLength+1)
			},
			wantErr: true,
		},
		{
			name: "invalid slug",
			mutate: func(w *Wallpaper) {
				w.Slug = "Neon City"
			},
			wantErr: true,
		},
		{
			name: "missing image URL",
			mutate: func(w *Wallpaper) {
				w.ImageURL = ""
			},
			wantErr: true,
		},
		{
			name: "non-http image URL",
			mutate: func(w *Wallpaper) {
				w.ImageURL = "ftp://cdn.example.com/wall.jpg"
			},
			wantErr: true,
		},
		{
			name: "invalid thumb URL",
			mutate: func(w *Wallpaper) {
				w.ThumbURL = "not-a-url"
			},
			wantErr: true,
		},
		{
			name: "missing thumb URL is allowed",
			mutate: func(w *Wallpaper) {
				w.ThumbURL = ""
			},
			wantErr: false,
		},
		{
			name: "invalid video URL",
			mutate: func(w *Wallpaper) {
				w.VideoURL = "file:///tmp/wall.mp4"
			},
			wantErr: true,
		},
		{
			name: "zero width",
			mutate: func(w *Wallpaper) {
				w.Width = 0
			},
			wantErr: true,
		},
		{
			name: "negative height",
			mutate: func(w *Wallpaper) {
				w.Height = -1
			},
			wantErr: true,
		},
		{
			name: "too many tags",
			mutate: func(w *Wallpaper) {
				w.Tags = make([]string, maxTags+1)
				for i := range w.Tags {
					w.Tags[i] = "tag"
				}
			},
			wantErr: true,
		},
		{
			name: "empty tag",
			mutate: func(w *Wallpaper) {
				w.Tags = []string{"city", ""}
			},
			wantErr: true,
		},
		{
			name: "tag too long",
			mutate: func(w *Wallpaper) {
				w.Tags = []string{strings.Repeat("t", maxTagLength+1)}
			},
			wantErr: true,
		},
		{
			name: "no tags is allowed",
			mutate: func(w *Wallpaper) {
				w.Tags = nil
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := validWallpaper()
			tt.mutate(&w)

			err := w.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestWallpaper_IsVideo(t *testing.T) {
	w := validWallpaper()
	assert.False(t, w.IsVideo())

	w.VideoURL = "https://cdn.example.com/walls/neon-city-night.mp4"
	assert.True(t, w.IsVideo())
}

func TestWallpaper_ZeroValue(t *testing.T) {
	var w Wallpaper

	assert.Equal(t, int64(0), w.ID)
	assert.Equal(t, "", w.Title)
	assert.Nil(t, w.Tags)
	assert.False(t, w.IsPremium)
	assert.False(t, w.IsVideo())
	assert.True(t, w.PublishedAt.IsZero())
}

func TestWallpaperWithCategory(t *testing.T) {
	wc := WallpaperWithCategory{
		Wallpaper:    validWallpaper(),
		CategoryName: "Cityscapes",
		CategorySlug: "cityscapes",
	}

	// The embedded wallpaper fields stay reachable directly.
	assert.Equal(t, "Neon City Night", wc.Title)
	assert.Equal(t, "Cityscapes", wc.CategoryName)
	assert.Equal(t, "cityscapes", wc.CategorySlug)
}
