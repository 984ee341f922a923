package pagination

// Strategy abstracts how paging turns into a query and back into
// response metadata, so a cursor strategy can slot in behind the feed
// handler without touching it.
type Strategy interface {
	CalculateQuery(params Params) QueryParams

	// BuildMeta turns a query result into response metadata. hasMore is
	// for cursor strategies with no total count; offset ignores it.
	BuildMeta(params Params, total int64, hasMore bool) Meta
}

// QueryParams is what a strategy tells the repository to fetch.
type QueryParams struct {
	Offset int
	Limit  int
	Cursor *string // unused by the offset strategy
}

// OffsetStrategy is plain OFFSET/LIMIT paging, used by the feed.
type OffsetStrategy struct{}

func (s OffsetStrategy) CalculateQuery(params Params) QueryParams {
	return QueryParams{
		Offset: CalculateOffset(params.Page, params.Limit),
		Limit:  params.Limit,
	}
}

func (s OffsetStrategy) BuildMeta(params Params, total int64, _ bool) Meta {
	return NewMeta(params, total)
}
