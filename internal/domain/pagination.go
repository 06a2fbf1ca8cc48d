package domain

// PaginationParams holds page-based pagination for list queries. The wishing
// wall is the only guest-facing list large enough to need it.
type PaginationParams struct {
	Page     int
	PageSize int
}

// Offset converts the 1-based page number to a row offset.
func (p PaginationParams) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}
