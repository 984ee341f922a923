package importer

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"wallfeed/internal/domain/entity"
)

// Manifest is the JSON document describing wallpapers to import.
type Manifest struct {
	Version    int             `json:"version"`
	Wallpapers []ManifestEntry `json:"wallpapers"`
}

// ManifestEntry describes one wallpaper in a manifest. Category is the
// category slug; CategoryName is the display name used when the category
// does not exist yet and has to be created.
type ManifestEntry struct {
	Title        string    `json:"title"`
	Slug         string    `json:"slug"`
	Category     string    `json:"category"`
	CategoryName string    `json:"categoryName,omitempty"`
	ImageURL     string    `json:"imageUrl"`
	ThumbURL     string    `json:"thumbUrl,omitempty"`
	VideoURL     string    `json:"videoUrl,omitempty"`
	Tags         []string  `json:"tags,omitempty"`
	IsPremium    bool      `json:"isPremium,omitempty"`
	Width        int       `json:"width"`
	Height       int       `json:"height"`
	PublishedAt  time.Time `json:"publishedAt"`
}

// parseManifest decodes and structurally checks a manifest document.
// Per-entry validation happens later so one bad entry does not sink the run.
func parseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	if len(m.Wallpapers) == 0 {
		return nil, fmt.Errorf("manifest contains no wallpapers")
	}
	return &m, nil
}

// toWallpaper converts the entry into a domain wallpaper bound to the
// resolved category. Entries without a publication date default to now.
func (e ManifestEntry) toWallpaper(categoryID int64) *entity.Wallpaper {
	publishedAt := e.PublishedAt
	if publishedAt.IsZero() {
		publishedAt = time.Now()
	}
	return &entity.Wallpaper{
		CategoryID:  categoryID,
		Title:       e.Title,
		Slug:        e.Slug,
		ImageURL:    e.ImageURL,
		ThumbURL:    e.ThumbURL,
		VideoURL:    e.VideoURL,
		Tags:        e.Tags,
		IsPremium:   e.IsPremium,
		Width:       e.Width,
		Height:      e.Height,
		PublishedAt: publishedAt,
	}
}

// displayName returns the category display name for the entry: the explicit
// CategoryName, or the slug with dashes spaced out ("northern-lights" →
// "Northern lights").
func (e ManifestEntry) displayName() string {
	if e.CategoryName != "" {
		return e.CategoryName
	}
	name := strings.ReplaceAll(e.Category, "-", " ")
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}
