// Package pagination computes page windows and navigation metadata over an
// ordered result set. It is pure: repositories run the windowed query, this
// package validates the request and derives the response envelope.
package pagination

import (
	"errors"
	"strings"
)

var (
	// ErrInvalidLimit is returned for non-positive page sizes.
	ErrInvalidLimit = errors.New("pagination: limit must be at least 1")
	// ErrInvalidPage is returned for non-positive page numbers.
	ErrInvalidPage = errors.New("pagination: page must be at least 1")
)

// Order is a sort direction.
type Order string

const (
	Asc  Order = "ASC"
	Desc Order = "DESC"
)

// ParseOrder normalizes a user-supplied direction; anything that is not a
// descending spelling counts as ascending.
func ParseOrder(s string) Order {
	if strings.EqualFold(s, string(Desc)) {
		return Desc
	}
	return Asc
}

// Request describes one page of an ordered listing. Page is 1-based.
type Request struct {
	Page   int
	Limit  int
	SortBy string
	Order  Order
}

// Validate rejects degenerate windows before any query runs.
func (r Request) Validate() error {
	if r.Limit <= 0 {
		return ErrInvalidLimit
	}
	if r.Page <= 0 {
		return ErrInvalidPage
	}
	return nil
}

// Offset returns the window start for the requested page.
func (r Request) Offset() int {
	return (r.Page - 1) * r.Limit
}

// Result is the windowed record set plus navigation metadata. Field names
// mirror the public listing response shape.
type Result[T any] struct {
	Items         []T    `json:"items"`
	SortedBy      string `json:"sortedBy"`
	Ordered       Order  `json:"ordered"`
	TotalElements int64  `json:"totalElements"`
	Page          int    `json:"page"`
	Limit         int    `json:"limit"`
	TotalPages    int    `json:"totalPages"`
	HasPrevPage   bool   `json:"hasPrevPage"`
	HasNextPage   bool   `json:"hasNextPage"`
	PrevPage      *int   `json:"prevPage"`
	NextPage      *int   `json:"nextPage"`
}

// NewResult derives the navigation metadata for one page. The request must
// have been validated; a zero limit would divide by zero here.
func NewResult[T any](items []T, total int64, req Request) Result[T] {
	totalPages := int((total + int64(req.Limit) - 1) / int64(req.Limit))

	res := Result[T]{
		Items:         items,
		SortedBy:      req.SortBy,
		Ordered:       req.Order,
		TotalElements: total,
		Page:          req.Page,
		Limit:         req.Limit,
		TotalPages:    totalPages,
		HasPrevPage:   req.Page > 1,
		HasNextPage:   req.Page < totalPages,
	}
	if res.HasPrevPage {
		prev := req.Page - 1
		res.PrevPage = &prev
	}
	if res.HasNextPage {
		next := req.Page + 1
		res.NextPage = &next
	}
	return res
}
