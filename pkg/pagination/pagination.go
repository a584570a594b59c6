// Package pagination slices an already-ordered result set into fixed-size,
// 1-indexed pages. It performs no I/O; callers fetch the ordered sequence
// first and paginate in memory.
package pagination

import (
	"errors"
	"fmt"
)

// ErrInvalidPage is returned when the requested page number is not positive.
var ErrInvalidPage = errors.New("page number must be positive")

// Page is one bounded slice of an ordered result set together with the
// total number of pages the full set spans.
type Page[T any] struct {
	Items      []T `json:"items"`
	PageNumber int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalPages int `json:"total_pages"`
	TotalItems int `json:"total_items"`
}

// Paginate returns page pageNumber of items with pageSize entries per page.
// Requesting a page beyond the last valid one yields an empty item slice
// together with the correct total, not an error; identical inputs always
// yield identical output.
func Paginate[T any](items []T, pageNumber, pageSize int) (Page[T], error) {
	if pageNumber < 1 {
		return Page[T]{}, fmt.Errorf("page %d: %w", pageNumber, ErrInvalidPage)
	}
	if pageSize < 1 {
		return Page[T]{}, fmt.Errorf("page size must be positive, got %d", pageSize)
	}

	total := len(items)
	totalPages := (total + pageSize - 1) / pageSize

	start := (pageNumber - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	page := Page[T]{
		Items:      make([]T, end-start),
		PageNumber: pageNumber,
		PageSize:   pageSize,
		TotalPages: totalPages,
		TotalItems: total,
	}
	copy(page.Items, items[start:end])
	return page, nil
}
