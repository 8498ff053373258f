package valueobject

import (
	"math"
	"strings"

	domainerror "github.com/finance-tracker/budget-api/internal/domain/error"
)

// SortDirection orders a paged query.
type SortDirection string

const (
	SortAsc  SortDirection = "ASC"
	SortDesc SortDirection = "DESC"
)

// Paging defaults and bounds.
const (
	DefaultPage          = 0
	DefaultPageSize      = 25
	MaxPageSize          = 100
	DefaultSortField     = "budgetId"
	DefaultSortDirection = SortDesc
)

// ParseSortDirection accepts "asc"/"desc" in any case.
func ParseSortDirection(raw string) (SortDirection, error) {
	switch SortDirection(strings.ToUpper(strings.TrimSpace(raw))) {
	case SortAsc:
		return SortAsc, nil
	case SortDesc:
		return SortDesc, nil
	default:
		return "", domainerror.ErrInvalidSortDirection
	}
}

// PageRequest is a zero-based page query.
type PageRequest struct {
	Page      int
	Size      int
	SortBy    string
	Direction SortDirection
}

// DefaultPageRequest returns page 0 of 25 sorted by budgetId descending.
func DefaultPageRequest() PageRequest {
	return PageRequest{
		Page:      DefaultPage,
		Size:      DefaultPageSize,
		SortBy:    DefaultSortField,
		Direction: DefaultSortDirection,
	}
}

// Validate checks the paging bounds. The sort field is checked by whoever
// knows the sortable attributes.
func (p PageRequest) Validate() error {
	if p.Page < 0 {
		return domainerror.ErrInvalidPageIndex
	}
	if p.Size < 1 || p.Size > MaxPageSize {
		return domainerror.ErrInvalidPageSize
	}
	if p.Direction != SortAsc && p.Direction != SortDesc {
		return domainerror.ErrInvalidSortDirection
	}
	return nil
}

// Offset returns the number of rows to skip. It saturates at math.MaxInt
// instead of wrapping, so an absurd page still lies past the last row.
func (p PageRequest) Offset() int {
	if p.Size > 0 && p.Page > math.MaxInt/p.Size {
		return math.MaxInt
	}
	return p.Page * p.Size
}

// TotalPages returns how many pages of p.Size hold total rows.
func (p PageRequest) TotalPages(total int64) int {
	if p.Size <= 0 || total <= 0 {
		return 0
	}
	size := int64(p.Size)
	return int((total + size - 1) / size)
}
