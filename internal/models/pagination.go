package models

import "math"

// PagedResult is one page of a listing plus the page math every paged
// endpoint shares. An out-of-range page yields empty Items with the
// true TotalCount; callers reject page/pageSize < 1 before querying.
type PagedResult[T any] struct {
	Items       []T   `json:"items"`
	TotalCount  int64 `json:"total_count"`
	Page        int   `json:"page"`
	PageSize    int   `json:"page_size"`
	TotalPages  int   `json:"total_pages"`
	HasNext     bool  `json:"has_next"`
	HasPrevious bool  `json:"has_previous"`
}

// NewPagedResult assembles a page from already-fetched items and the
// total row count.
func NewPagedResult[T any](items []T, totalCount int64, page, pageSize int) *PagedResult[T] {
	if items == nil {
		items = []T{}
	}
	totalPages := int(math.Ceil(float64(totalCount) / float64(pageSize)))
	return &PagedResult[T]{
		Items:       items,
		TotalCount:  totalCount,
		Page:        page,
		PageSize:    pageSize,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrevious: page > 1,
	}
}

// Offset converts 1-based page math to a row offset.
func Offset(page, pageSize int) int {
	return (page - 1) * pageSize
}
