package sqlite

import (
	"strings"
	"testing"

	"wallfeed/internal/repository"
)

func TestFeedQueryBuilder_Placeholders(t *testing.T) {
	t.Parallel()

	qb := NewFeedQueryBuilder()
	query, _ := qb.BuildSelect(repository.FeedFilter{
		Keywords:     []string{"ocean"},
		CategorySlug: "nature",
	}, 0, 24)

	if strings.Contains(query, "$1") {
		t.Fatalf("SQLite flavor must use ? placeholders: %q", query)
	}
	if !strings.Contains(query, "ESCAPE") {
		t.Fatalf("keyword LIKE needs an ESCAPE clause: %q", query)
	}
}

func TestFeedQueryBuilder_VideoOnly(t *testing.T) {
	t.Parallel()

	qb := NewFeedQueryBuilder()
	query, _ := qb.BuildCount(repository.FeedFilter{VideoOnly: true})

	if !strings.Contains(query, "video_url") {
		t.Fatalf("missing video filter: %q", query)
	}
	if strings.Contains(query, "ORDER BY") {
		t.Fatalf("count query must not sort: %q", query)
	}
}
