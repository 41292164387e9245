package pagination

import (
	"math"
	"strings"
)

const (
	defaultPerPage = 20
	maxPerPage     = 100
)

// Pagination is the page metadata returned with list responses
type Pagination struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"total_pages"`
	HasNext     bool  `json:"has_next"`
	HasPrev     bool  `json:"has_prev"`
}

// Params are the list query parameters accepted by every collection endpoint
type Params struct {
	Page    int    `form:"page" json:"page"`
	PerPage int    `form:"per_page" json:"per_page"`
	Search  string `form:"search" json:"search"`
	SortBy  string `form:"sort_by" json:"sort_by"`
	Order   string `form:"order" json:"order"`
}

// Default returns the first page with the default page size
func Default() *Params {
	return &Params{Page: 1, PerPage: defaultPerPage}
}

// Normalize clamps page values into range and lowercases the order
func (p *Params) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage < 1 {
		p.PerPage = defaultPerPage
	}
	if p.PerPage > maxPerPage {
		p.PerPage = maxPerPage
	}
	p.Search = strings.TrimSpace(p.Search)
	p.Order = strings.ToLower(p.Order)
	if p.Order != "asc" {
		p.Order = "desc"
	}
}

// Offset calculates the offset for SQL queries
func (p *Params) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// OrderClause returns "<column> <order>" for SortBy when it is one of the
// allowed columns, and fallback otherwise.
func (p *Params) OrderClause(allowed map[string]string, fallback string) string {
	if col, ok := allowed[p.SortBy]; ok {
		return col + " " + p.Order
	}
	return fallback
}

// New builds page metadata
func New(page, perPage int, total int64) *Pagination {
	totalPages := 0
	if perPage > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(perPage)))
	}
	return &Pagination{
		CurrentPage: page,
		PerPage:     perPage,
		Total:       total,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrev:     page > 1,
	}
}

// Result is a page of items with its metadata
type Result[T any] struct {
	Items      []T         `json:"items"`
	Pagination *Pagination `json:"pagination"`
}

// NewResult creates a page result; a nil slice is returned as empty
func NewResult[T any](items []T, params *Params, total int64) *Result[T] {
	if items == nil {
		items = []T{}
	}
	return &Result[T]{
		Items:      items,
		Pagination: New(params.Page, params.PerPage, total),
	}
}
