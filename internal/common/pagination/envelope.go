package pagination

// Group is the payload of a paginated feed response: one page of items plus
// the counts clients need to decide whether more pages exist.
// Field names are part of the public API contract.
type Group[T any] struct {
	Items      []T   `json:"items"`
	TotalCount int64 `json:"totalCount"`
	TotalPages int   `json:"totalPages"`
}

// Envelope is the generic wrapper for paginated feed responses.
// T is the type of data items (e.g., WallpaperDTO).
//
// Serialized shape:
//
//	{"data": {"items": [...], "totalCount": 123, "totalPages": 6}}
type Envelope[T any] struct {
	Data Group[T] `json:"data"`
}

// NewEnvelope creates a response envelope from items and metadata.
// A nil items slice is normalized to an empty one so the JSON always
// contains an array, never null.
func NewEnvelope[T any](items []T, meta Meta) Envelope[T] {
	if items == nil {
		items = []T{}
	}
	return Envelope[T]{
		Data: Group[T]{
			Items:      items,
			TotalCount: meta.Total,
			TotalPages: meta.TotalPages,
		},
	}
}
