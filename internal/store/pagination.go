package store

// Page selects one page of a list. Number is 1-based.
type Page struct {
	Number int
	Limit  int
}

// MaxLimit caps the page size a caller may request.
const MaxLimit = 100

// Normalize clamps the page into range, using defaultLimit when Limit is unset.
func (p Page) Normalize(defaultLimit int) Page {
	if p.Number < 1 {
		p.Number = 1
	}
	if p.Limit < 1 {
		p.Limit = defaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

// Offset is the number of rows to skip.
func (p Page) Offset() int {
	if p.Number < 1 {
		return 0
	}
	return (p.Number - 1) * p.Limit
}

// PaginatedResult is one page of items plus the total match count.
type PaginatedResult[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// HasMore reports whether later pages exist.
func (r *PaginatedResult[T]) HasMore() bool {
	return r.Page*r.Limit < r.Total
}
