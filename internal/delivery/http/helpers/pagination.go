package helpers

import (
	"net/http"
	"strconv"

	"weddinginvites/internal/domain"
)

// Pagination defaults for the wishing wall and other list endpoints.
const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ParsePagination reads page and page_size from the query string. Missing or
// malformed values fall back to defaults; page_size is capped at MaxPageSize
// so a guest cannot pull the whole wall in one request.
func ParsePagination(r *http.Request) domain.PaginationParams {
	page := queryInt(r, "page", DefaultPage)
	pageSize := queryInt(r, "page_size", DefaultPageSize)
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return domain.PaginationParams{Page: page, PageSize: pageSize}
}

func queryInt(r *http.Request, key string, fallback int) int {
	s := r.URL.Query().Get(key)
	if s == "" {
		return fallback
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 1 {
		return fallback
	}
	return v
}

// PaginationMeta is the pagination metadata included in paginated list responses.
// swagger:model PaginationMeta
type PaginationMeta struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewPaginationMeta builds PaginationMeta for the given page and total count.
// TotalPages rounds up; a zero pageSize yields zero TotalPages.
func NewPaginationMeta(page, pageSize, total int) PaginationMeta {
	totalPages := 0
	if pageSize > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}
	return PaginationMeta{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}
