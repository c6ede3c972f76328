package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// Allowed sortBy values per resource, as the API names them.
var (
	ProductSortKeys  = []string{"name", "price", "createdAt"}
	CategorySortKeys = []string{"name", "createdAt"}
	OptionSortKeys   = []string{"name", "type", "createdAt"}
	BlogSortKeys     = []string{"title", "publishedAt", "createdAt"}
	ContactSortKeys  = []string{"name", "createdAt"}
	CustomerSortKeys = []string{"name", "createdAt", "totalSpent"}
)

type ListParams struct {
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}

// Normalized fills defaults and clamps the page window.
func (p ListParams) Normalized() ListParams {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	if p.SortBy == "" {
		p.SortBy = "createdAt"
	}
	if p.SortOrder != SortAsc {
		p.SortOrder = SortDesc
	}
	return p
}

func (p ListParams) Offset() int { return (p.Page - 1) * p.Limit }

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

func NewPagination(p ListParams, total int64) Pagination {
	p = p.Normalized()
	pages := int((total + int64(p.Limit) - 1) / int64(p.Limit))
	return Pagination{Page: p.Page, Limit: p.Limit, Total: total, TotalPages: pages}
}

type ProductFilter struct {
	Search    string
	Category  string
	Colors    []string
	Thickness []string
	MinPrice  *decimal.Decimal
	MaxPrice  *decimal.Decimal
	IsActive  *bool
	ListParams
}

type CategoryFilter struct {
	Search   string
	IsActive *bool
	ListParams
}

type OptionFilter struct {
	Search   string
	Type     OptionType
	IsActive *bool
	ListParams
}

type BlogFilter struct {
	Search      string
	Category    string
	IsPublished *bool
	ListParams
}

type ContactFilter struct {
	Search string
	Status ContactStatus
	ListParams
}

type CustomerFilter struct {
	Search       string
	Status       CustomerStatus
	CustomerType CustomerType
	Source       CustomerSource
	ListParams
}

// ValidUUID reports whether s parses as a UUID.
func ValidUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil && len(s) == 36
}
