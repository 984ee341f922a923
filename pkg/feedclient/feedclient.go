// Package feedclient implements the client-side coordination of a paginated
// wallpaper feed: one query session at a time, sequential page fetches,
// ID-based de-duplication, and safe handling of superseded requests.
//
// A Controller does not render anything. It owns the accumulated item list
// and exposes immutable snapshots; a presentation layer (TUI, bridge to a
// UI toolkit, etc.) subscribes through Config.OnChange and pulls state with
// Snapshot.
package feedclient

import "context"

// Query describes one feed query session. Changing any field starts a new
// session: the controller clears its items and seen IDs and restarts from
// page 1.
type Query struct {
	// Search is a free-text search term. Empty means no search filter.
	Search string
	// Category restricts the feed to a single category slug.
	Category string
	// PremiumOnly restricts the feed to premium wallpapers.
	PremiumOnly bool
	// VideoOnly restricts the feed to live (video) wallpapers.
	VideoOnly bool
	// Sort selects the server-side ordering ("newest", "popular",
	// "trending", "random"). The server validates the value.
	Sort string
	// Limit is the page size. Zero takes the controller default.
	Limit int
}

// normalized clamps the page size into the configured bounds.
func (q Query) normalized(defaultLimit, maxLimit int) Query {
	if q.Limit <= 0 {
		q.Limit = defaultLimit
	}
	if q.Limit > maxLimit {
		q.Limit = maxLimit
	}
	return q
}

// Page is one fetched page of feed items together with the counts the
// server reports for the whole result set.
type Page[T any] struct {
	Items      []T
	TotalCount int64
	TotalPages int
}

// Source fetches pages of feed items. Implementations must honor context
// cancellation; the controller cancels the context of superseded fetches.
type Source[T any] interface {
	// FetchPage retrieves the given 1-based page for the query.
	// The page size to use is q.Limit, which the controller has already
	// normalized.
	FetchPage(ctx context.Context, q Query, page int) (Page[T], error)
}

// SourceFunc is a function adapter that implements the Source interface.
type SourceFunc[T any] func(ctx context.Context, q Query, page int) (Page[T], error)

// FetchPage implements the Source interface for SourceFunc.
func (f SourceFunc[T]) FetchPage(ctx context.Context, q Query, page int) (Page[T], error) {
	return f(ctx, q, page)
}
