package shared

import (
	"bytes"
	"encoding/json"
	"math"
)

// DefaultPageSize is used when a caller does not request a page size.
const DefaultPageSize = 25

// Pagination contains metadata for paginated listings.
type Pagination struct {
	Page       int
	PerPage    int
	Total      int
	TotalPages int
}

// NewPagination computes pagination metadata.
func NewPagination(page, perPage, total int) Pagination {
	if perPage <= 0 {
		perPage = DefaultPageSize
	}
	if page <= 0 {
		page = 1
	}
	totalPages := int(math.Ceil(float64(total) / float64(perPage)))
	return Pagination{Page: page, PerPage: perPage, Total: total, TotalPages: totalPages}
}

// Page is the canonical list shape used everywhere downstream of a fetch.
type Page[T any] struct {
	Items      []T `json:"data"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalPages int `json:"total_pages"`
}

// NewPage wraps items with pagination metadata computed from total.
func NewPage[T any](items []T, page, pageSize, total int) Page[T] {
	p := NewPagination(page, pageSize, total)
	if items == nil {
		items = []T{}
	}
	return Page[T]{Items: items, Total: p.Total, Page: p.Page, PageSize: p.PerPage, TotalPages: p.TotalPages}
}

// PageOf treats a bare slice as a single complete page.
func PageOf[T any](items []T) Page[T] {
	size := len(items)
	if size == 0 {
		size = DefaultPageSize
	}
	return NewPage(items, 1, size, len(items))
}

// Pagination returns the metadata portion of the page.
func (p Page[T]) Pagination() Pagination {
	return Pagination{Page: p.Page, PerPage: p.PageSize, Total: p.Total, TotalPages: p.TotalPages}
}

// wirePage accepts both spellings of the list envelope.
type wirePage[T any] struct {
	Data          []T  `json:"data"`
	Total         *int `json:"total"`
	Page          int  `json:"page"`
	Limit         int  `json:"limit"`
	PageSize      int  `json:"page_size"`
	TotalPagesCam int  `json:"totalPages"`
	TotalPages    int  `json:"total_pages"`
}

// DecodePage normalizes a list payload that is either a bare JSON array or a
// pagination object using limit/page_size and totalPages/total_pages.
func DecodePage[T any](raw []byte) (Page[T], error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return PageOf[T](nil), nil
	}
	if raw[0] == '[' {
		var items []T
		if err := json.Unmarshal(raw, &items); err != nil {
			return Page[T]{}, err
		}
		return PageOf(items), nil
	}
	var w wirePage[T]
	if err := json.Unmarshal(raw, &w); err != nil {
		return Page[T]{}, err
	}
	size := w.PageSize
	if size <= 0 {
		size = w.Limit
	}
	total := len(w.Data)
	if w.Total != nil {
		total = *w.Total
	}
	if size <= 0 {
		size = len(w.Data)
	}
	page := NewPage(w.Data, w.Page, size, total)
	switch {
	case w.TotalPages > 0:
		page.TotalPages = w.TotalPages
	case w.TotalPagesCam > 0:
		page.TotalPages = w.TotalPagesCam
	}
	return page, nil
}
