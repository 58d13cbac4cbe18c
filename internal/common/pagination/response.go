package pagination

// Meta carries the collection-level numbers of a paginated response.
type Meta struct {
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// NewMeta builds Meta for total items split into pages of limit.
func NewMeta(total int64, limit int) Meta {
	return Meta{Total: total, Pages: CalculateTotalPages(total, limit)}
}

// Response is the list envelope: {"items": [...], "meta": {"total": n, "pages": n}}.
type Response[T any] struct {
	Items []T  `json:"items"`
	Meta  Meta `json:"meta"`
}

// NewResponse creates a paginated response. A nil slice is encoded as [].
func NewResponse[T any](items []T, meta Meta) Response[T] {
	if items == nil {
		items = []T{}
	}
	return Response[T]{
		Items: items,
		Meta:  meta,
	}
}
