// Package pagination provides the limit/offset paging contract shared by
// list operations.
package pagination

import "gorm.io/gorm"

const (
	defaultLimit = 10
	maxLimit     = 100
)

// Page holds the limit/offset parameters of a list request.
type Page struct {
	Limit  int
	Offset int
}

// Defaults normalizes missing or out-of-range values.
func (p *Page) Defaults() {
	if p.Limit <= 0 {
		p.Limit = defaultLimit
	}
	if p.Limit > maxLimit {
		p.Limit = maxLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// PageResponse wraps a page of items together with the total number of rows
// matching the predicate, independent of limit/offset.
type PageResponse[T any] struct {
	Items      []T   `json:"items"`
	TotalCount int64 `json:"totalCount"`
}

// NewPageResponse creates a PageResponse, normalizing a nil slice to empty.
func NewPageResponse[T any](items []T, totalCount int64) PageResponse[T] {
	if items == nil {
		items = []T{}
	}
	return PageResponse[T]{Items: items, TotalCount: totalCount}
}

// Paginate returns a GORM scope that applies OFFSET and LIMIT for the page.
func Paginate(p Page) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(p.Offset).Limit(p.Limit)
	}
}
