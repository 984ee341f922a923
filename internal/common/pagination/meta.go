package pagination

// Meta carries the counts computed for one paginated query.
// It travels between the repository, service and handler layers;
// the HTTP shape is built from it via NewEnvelope.
type Meta struct {
	Total      int64 // Total number of items across all pages
	Page       int   // Current page number (1-based)
	Limit      int   // Items per page
	TotalPages int   // Calculated total number of pages
}

// NewMeta builds Meta for the given params and total item count.
func NewMeta(params Params, total int64) Meta {
	return Meta{
		Total:      total,
		Page:       params.Page,
		Limit:      params.Limit,
		TotalPages: CalculateTotalPages(total, params.Limit),
	}
}
