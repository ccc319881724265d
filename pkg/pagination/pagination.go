package pagination

import (
	"net/http"
	"strconv"
)

const (
	// DefaultPerPage matches the catalog grid size.
	DefaultPerPage = 12
	// MaxPerPage caps page size to keep queries bounded.
	MaxPerPage = 100
	// MaxPage bounds the offset so page*perPage cannot overflow.
	MaxPage = 10000
)

// Params holds 1-based pagination parameters.
type Params struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
}

// DefaultParams returns page 1 with the default page size.
func DefaultParams() Params {
	return Params{Page: 1, PerPage: DefaultPerPage}
}

// New builds Params, replacing out-of-range values with defaults. Pages past
// MaxPage are clamped to it.
func New(page, perPage int) Params {
	p := DefaultParams()
	if page > 0 {
		p.Page = min(page, MaxPage)
	}
	if perPage > 0 {
		p.PerPage = perPage
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
	return p
}

// FromRequest extracts page and per_page from the query string.
func FromRequest(r *http.Request) Params {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	perPage, _ := strconv.Atoi(q.Get("per_page"))
	return New(page, perPage)
}

// Range returns the inclusive zero-based row range [from, to] covered by the page.
func (p Params) Range() (from, to int) {
	from = (p.Page - 1) * p.PerPage
	to = p.Page*p.PerPage - 1
	return from, to
}

// Offset is the number of rows skipped before the page starts.
func (p Params) Offset() int {
	from, _ := p.Range()
	return from
}

// Limit is the number of rows in a full page.
func (p Params) Limit() int {
	from, to := p.Range()
	return to - from + 1
}

// Result wraps a page of items with its totals.
type Result[T any] struct {
	Items      []T  `json:"items"`
	TotalCount int  `json:"total_count"`
	Page       int  `json:"page"`
	PerPage    int  `json:"per_page"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// TotalPages is ceil(total/perPage).
func TotalPages(total, perPage int) int {
	if perPage <= 0 {
		return 0
	}
	pages := total / perPage
	if total%perPage > 0 {
		pages++
	}
	return pages
}

// NewResult creates a paginated result. A nil slice is reported as empty.
func NewResult[T any](items []T, totalCount int, params Params) Result[T] {
	if items == nil {
		items = []T{}
	}
	totalPages := TotalPages(totalCount, params.PerPage)

	return Result[T]{
		Items:      items,
		TotalCount: totalCount,
		Page:       params.Page,
		PerPage:    params.PerPage,
		TotalPages: totalPages,
		HasNext:    params.Page < totalPages,
		HasPrev:    params.Page > 1,
	}
}
