package domain

import (
	"math"

	"github.com/google/uuid"
)

// SortDirection orders a sort field
type SortDirection int

const (
	SortAsc  SortDirection = 1
	SortDesc SortDirection = -1
)

// Logical sort fields understood by repositories
const (
	SortFieldCreatedAt     = "createdAt"
	SortFieldUpdatedAt     = "updatedAt"
	SortFieldDeletedAt     = "deletedAt"
	SortFieldName          = "name"
	SortFieldPriceFinal    = "priceFinal"
	SortFieldTotalQuantity = "totalQuantity"
	SortFieldRating        = "rating"
	SortFieldNumReviews    = "numReviews"
	SortFieldStockStatus   = "stockStatus"
	SortFieldType          = "type"
)

// SortField is one key of a sort specification
type SortField struct {
	Field     string        `json:"field"`
	Direction SortDirection `json:"direction"`
}

// SortSpec is an ordered list of sort keys
type SortSpec []SortField

// Page selects a 1-based page of Limit items
type Page struct {
	Number int `json:"number"`
	Limit  int `json:"limit"`
}

// Offset returns the number of items skipped before the page. Offsets
// beyond math.MaxInt saturate.
func (p Page) Offset() int {
	if p.Number <= 1 || p.Limit <= 0 {
		return 0
	}
	if p.Number-1 > math.MaxInt/p.Limit {
		return math.MaxInt
	}
	return (p.Number - 1) * p.Limit
}

// TotalPages returns how many pages of p.Limit hold total items
func (p Page) TotalPages(total int) int {
	if p.Limit <= 0 || total <= 0 {
		return 0
	}
	return (total + p.Limit - 1) / p.Limit
}

// ProductFilter holds product-level predicates. Nil/empty fields do not filter.
type ProductFilter struct {
	Name        string
	CategoryID  *uuid.UUID
	BrandID     *uuid.UUID
	StockStatus StockStatus
	IsActive    *bool
	MinRating   *float64
	ExcludeID   *uuid.UUID

	// IDs restricts the result to this set when non-nil
	IDs []uuid.UUID
}

// VariantFilter holds variant-level predicates resolved before the product query
type VariantFilter struct {
	ColorIDs []uuid.UUID
	SizeIDs  []uuid.UUID
	Gender   Gender
	MinPrice *float64
	MaxPrice *float64

	// AnyState also matches inactive and soft-deleted variants
	AnyState bool
}

// IsEmpty reports whether the filter has no predicate
func (f VariantFilter) IsEmpty() bool {
	return len(f.ColorIDs) == 0 &&
		len(f.SizeIDs) == 0 &&
		f.Gender == "" &&
		f.MinPrice == nil &&
		f.MaxPrice == nil
}

// FilterSpec is the full candidate-set description of a product listing
type FilterSpec struct {
	Product ProductFilter
	Variant VariantFilter
}

// PageResult is one page of a listing
type PageResult[T any] struct {
	Items []T  `json:"items"`
	Total int  `json:"total"`
	Page  Page `json:"page"`
}

// EmptyPage is a page of a listing without matches
func EmptyPage[T any](page Page) *PageResult[T] {
	return &PageResult[T]{Items: []T{}, Total: 0, Page: page}
}
