// Package postgres provides PostgreSQL implementations of repository interfaces.
package postgres

import (
	"strings"

	sqlbuilder "github.com/huandu/go-sqlbuilder"

	"wallfeed/internal/repository"
)

// feedColumns are the columns selected for feed and detail rows, in scan order.
var feedColumns = []string{
	"w.id", "w.category_id", "w.title", "w.slug",
	"w.image_url", "w.thumb_url", "w.video_url", "w.tags",
	"w.is_premium", "w.width", "w.height",
	"w.downloads", "w.views", "w.published_at", "w.created_at",
	"c.name", "c.slug",
}

// FeedQueryBuilder builds the dynamic feed SELECT and COUNT statements.
// The same filter conditions are shared between both so the page and its
// reported total can never disagree.
// PostgreSQL-specific: ILIKE for case-insensitive search, $N placeholders.
type FeedQueryBuilder struct{}

// NewFeedQueryBuilder creates a new query builder instance.
func NewFeedQueryBuilder() *FeedQueryBuilder {
	return &FeedQueryBuilder{}
}

// BuildSelect builds the feed page query for the filter with LIMIT/OFFSET.
func (qb *FeedQueryBuilder) BuildSelect(filter repository.FeedFilter, offset, limit int) (string, []interface{}) {
	sb := sqlbuilder.NewSelectBuilder()
	sb.Select(feedColumns...).
		From("wallpapers w").
		Join("categories c", "w.category_id = c.id")

	qb.applyFilter(sb, filter)
	applySort(sb, filter.Sort)
	sb.Limit(limit).Offset(offset)

	return sb.BuildWithFlavor(sqlbuilder.PostgreSQL)
}

// BuildCount builds the matching-row count query for the same filter.
func (qb *FeedQueryBuilder) BuildCount(filter repository.FeedFilter) (string, []interface{}) {
	sb := sqlbuilder.NewSelectBuilder()
	sb.Select("COUNT(*)").
		From("wallpapers w").
		Join("categories c", "w.category_id = c.id")

	qb.applyFilter(sb, filter)

	return sb.BuildWithFlavor(sqlbuilder.PostgreSQL)
}

// applyFilter adds the WHERE conditions shared by SELECT and COUNT.
// Keywords are AND-combined; each keyword matches title or tags.
func (qb *FeedQueryBuilder) applyFilter(sb *sqlbuilder.SelectBuilder, filter repository.FeedFilter) {
	for _, keyword := range filter.Keywords {
		pattern := "%" + escapeLike(keyword) + "%"
		sb.Where(sb.Or(
			sb.ILike("w.title", pattern),
			sb.ILike("w.tags", pattern),
		))
	}
	if filter.CategorySlug != "" {
		sb.Where(sb.Equal("c.slug", filter.CategorySlug))
	}
	if filter.PremiumOnly {
		sb.Where("w.is_premium")
	}
	if filter.VideoOnly {
		sb.Where(sb.NotEqual("w.video_url", ""))
	}
}

// applySort maps the feed sort to an ORDER BY clause. Every ordering has a
// deterministic tie-breaker on id so LIMIT/OFFSET pages never interleave,
// except random, which reshuffles per request on purpose.
func applySort(sb *sqlbuilder.SelectBuilder, sort repository.FeedSort) {
	switch sort {
	case repository.SortPopular:
		sb.OrderBy("w.downloads DESC", "w.id DESC")
	case repository.SortTrending:
		sb.OrderBy("w.trending_score DESC", "w.id DESC")
	case repository.SortRandom:
		sb.OrderBy("RANDOM()")
	default: // SortNewest
		sb.OrderBy("w.published_at DESC", "w.id DESC")
	}
}

// escapeLike escapes the LIKE/ILIKE metacharacters in user input so a
// keyword like "100%" matches literally.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
