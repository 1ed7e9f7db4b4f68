package pagination

const (
	DefaultRows = 10
	MaxRows     = 100
)

// PageRequest is an offset page request: 1-based page number plus rows
// per page.
type PageRequest struct {
	Page int
	Rows int
}

// Normalize clamps the request to sane bounds: page >= 1, rows in
// [1, MaxRows] with DefaultRows when unset.
func (r PageRequest) Normalize() PageRequest {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Rows <= 0 {
		r.Rows = DefaultRows
	}
	if r.Rows > MaxRows {
		r.Rows = MaxRows
	}
	return r
}

// Offset returns the number of items to skip for the request.
func (r PageRequest) Offset() int {
	return (r.Page - 1) * r.Rows
}

type Page[T any] struct {
	Items []T
	Page  int
	Rows  int
	Pages int
	Total int
}

// PagesFor returns ceil(total/rows). A total of zero yields zero pages.
func PagesFor(total, rows int) int {
	if rows <= 0 || total <= 0 {
		return 0
	}
	return (total + rows - 1) / rows
}
