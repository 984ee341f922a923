// Package sqlite provides SQLite implementations of repository interfaces.
// It mirrors the PostgreSQL adapter for local development and tests.
package sqlite

import (
	"strings"

	sqlbuilder "github.com/huandu/go-sqlbuilder"

	"wallfeed/internal/repository"
)

var feedColumns = []string{
	"w.id", "w.category_id", "w.title", "w.slug",
	"w.image_url", "w.thumb_url", "w.video_url", "w.tags",
	"w.is_premium", "w.width", "w.height",
	"w.downloads", "w.views", "w.published_at", "w.created_at",
	"c.name", "c.slug",
}

// FeedQueryBuilder builds the dynamic feed SELECT and COUNT statements.
// SQLite-specific: LIKE is case-insensitive for ASCII, ? placeholders.
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

	return sb.BuildWithFlavor(sqlbuilder.SQLite)
}

// BuildCount builds the matching-row count query for the same filter.
func (qb *FeedQueryBuilder) BuildCount(filter repository.FeedFilter) (string, []interface{}) {
	sb := sqlbuilder.NewSelectBuilder()
	sb.Select("COUNT(*)").
		From("wallpapers w").
		Join("categories c", "w.category_id = c.id")

	qb.applyFilter(sb, filter)

	return sb.BuildWithFlavor(sqlbuilder.SQLite)
}

func (qb *FeedQueryBuilder) applyFilter(sb *sqlbuilder.SelectBuilder, filter repository.FeedFilter) {
	for _, keyword := range filter.Keywords {
		// SQLite の LIKE は ESCAPE 指定がないとバックスラッシュを解釈しない
		pattern := "%" + escapeLike(keyword) + "%"
		sb.Where(sb.Or(
			"w.title LIKE "+sb.Var(pattern)+` ESCAPE '\'`,
			"w.tags LIKE "+sb.Var(pattern)+` ESCAPE '\'`,
		))
	}
	if filter.CategorySlug != "" {
		sb.Where(sb.Equal("c.slug", filter.CategorySlug))
	}
	if filter.PremiumOnly {
		sb.Where(sb.Equal("w.is_premium", 1))
	}
	if filter.VideoOnly {
		sb.Where(sb.NotEqual("w.video_url", ""))
	}
}

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

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
