// Package fixtures provides reusable test data generators for integration
// tests. This package eliminates test data duplication and ensures
// consistent test content across different test suites.
package fixtures

import (
	"encoding/json"
	"fmt"
	"time"
)

// ManifestOptions configures the generated wallpaper manifest.
type ManifestOptions struct {
	// Count is the number of wallpaper entries to generate.
	Count int

	// Categories are the category slugs entries are spread across.
	// Defaults to a small built-in set.
	Categories []string

	// PremiumEvery marks every Nth entry premium. Zero disables premium
	// entries entirely.
	PremiumEvery int

	// VideoEvery gives every Nth entry a video URL. Zero disables video
	// entries entirely.
	VideoEvery int
}

var defaultCategories = []string{"nature", "abstract", "minimal", "space"}

// GenerateManifest generates a wallpaper manifest document as JSON, in the
// format accepted by the importer. Entries are deterministic: the same
// options always produce the same manifest.
//
// Example:
//
//	data := GenerateManifest(ManifestOptions{Count: 50, PremiumEvery: 5})
func GenerateManifest(opts ManifestOptions) []byte {
	categories := opts.Categories
	if len(categories) == 0 {
		categories = defaultCategories
	}

	entries := make([]map[string]any, 0, opts.Count)
	for i := 0; i < opts.Count; i++ {
		entries = append(entries, generateEntry(i, categories, opts))
	}

	doc := map[string]any{
		"version":    1,
		"wallpapers": entries,
	}
	data, err := json.Marshal(doc)
	if err != nil {
		// map[string]any of strings and numbers cannot fail to marshal
		panic(fmt.Sprintf("fixtures: marshal manifest: %v", err))
	}
	return data
}

// GenerateSmallManifest generates a manifest with 10 mixed entries.
func GenerateSmallManifest() []byte {
	return GenerateManifest(ManifestOptions{Count: 10, PremiumEvery: 4, VideoEvery: 5})
}

// GenerateLargeManifest generates a manifest with 200 mixed entries. This is
// useful for exercising parallel validation and batched upserts.
func GenerateLargeManifest() []byte {
	return GenerateManifest(ManifestOptions{Count: 200, PremiumEvery: 7, VideoEvery: 9})
}

// dimensions cycles through common wallpaper resolutions.
var dimensions = []struct{ w, h int }{
	{3840, 2160},
	{2560, 1440},
	{1920, 1080},
	{1170, 2532},
}

func generateEntry(i int, categories []string, opts ManifestOptions) map[string]any {
	slug := fmt.Sprintf("wallpaper-%04d", i)
	dim := dimensions[i%len(dimensions)]
	category := categories[i%len(categories)]
	publishedAt := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(i) * time.Hour)

	entry := map[string]any{
		"title":       fmt.Sprintf("Wallpaper %04d", i),
		"slug":        slug,
		"category":    category,
		"imageUrl":    fmt.Sprintf("https://cdn.example.com/walls/%s.jpg", slug),
		"thumbUrl":    fmt.Sprintf("https://cdn.example.com/walls/%s_thumb.jpg", slug),
		"tags":        []string{category, fmt.Sprintf("tag-%d", i%3)},
		"width":       dim.w,
		"height":      dim.h,
		"publishedAt": publishedAt.Format(time.RFC3339),
	}
	if opts.PremiumEvery > 0 && i%opts.PremiumEvery == 0 {
		entry["isPremium"] = true
	}
	if opts.VideoEvery > 0 && i%opts.VideoEvery == 0 {
		entry["videoUrl"] = fmt.Sprintf("https://cdn.example.com/walls/%s.mp4", slug)
	}
	return entry
}
