package postgres

import (
	"strings"
	"testing"

	"wallfeed/internal/repository"
)

func TestFeedQueryBuilder_BuildSelect_Sorts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		sort repository.FeedSort
		want string
	}{
		{"newest is the default", repository.SortNewest, "w.published_at DESC"},
		{"popular orders by downloads", repository.SortPopular, "w.downloads DESC"},
		{"trending orders by score", repository.SortTrending, "w.trending_score DESC"},
		{"random shuffles", repository.SortRandom, "RANDOM()"},
		{"unknown falls back to newest", repository.FeedSort("bogus"), "w.published_at DESC"},
	}

	qb := NewFeedQueryBuilder()
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			query, _ := qb.BuildSelect(repository.FeedFilter{Sort: tt.sort}, 0, 24)
			if !strings.Contains(query, tt.want) {
				t.Errorf("query %q does not contain %q", query, tt.want)
			}
		})
	}
}

func TestFeedQueryBuilder_BuildSelect_Filters(t *testing.T) {
	t.Parallel()

	qb := NewFeedQueryBuilder()
	filter := repository.FeedFilter{
		Keywords:     []string{"ocean", "sunset"},
		CategorySlug: "nature",
		PremiumOnly:  true,
		VideoOnly:    true,
		Sort:         repository.SortNewest,
	}

	query, args := qb.BuildSelect(filter, 48, 24)

	for _, want := range []string{"ILIKE", "c.slug", "w.is_premium", "w.video_url", "LIMIT", "OFFSET"} {
		if !strings.Contains(query, want) {
			t.Errorf("query %q does not contain %q", query, want)
		}
	}
	// Each keyword binds once for title and once for tags.
	counts := map[interface{}]int{}
	for _, arg := range args {
		counts[arg]++
	}
	if counts["%ocean%"] != 2 || counts["%sunset%"] != 2 || counts["nature"] != 1 {
		t.Fatalf("filter args wrong: %v", args)
	}
}

func TestFeedQueryBuilder_BuildCount_SharesConditions(t *testing.T) {
	t.Parallel()

	qb := NewFeedQueryBuilder()
	filter := repository.FeedFilter{Keywords: []string{"ocean"}, CategorySlug: "nature"}

	query, args := qb.BuildCount(filter)

	if !strings.Contains(query, "COUNT(*)") {
		t.Fatalf("query %q is not a count", query)
	}
	if strings.Contains(query, "LIMIT") || strings.Contains(query, "ORDER BY") {
		t.Fatalf("count query must not paginate or sort: %q", query)
	}
	// keyword (title, tags) + category, nothing for pagination
	if len(args) != 3 {
		t.Fatalf("args=%d, want 3: %v", len(args), args)
	}
}

func TestEscapeLike(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"ocean", "ocean"},
		{"100%", `100\%`},
		{"snake_case", `snake\_case`},
		{`back\slash`, `back\\slash`},
	}
	for _, tt := range tests {
		if got := escapeLike(tt.in); got != tt.want {
			t.Errorf("escapeLike(%q)=%q, want %q", tt.in, got, tt.want)
		}
	}
}
