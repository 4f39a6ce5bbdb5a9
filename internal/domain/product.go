package domain

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// StockStatus is the aggregated stock level of a product
type StockStatus string

const (
	StockInStock    StockStatus = "in_stock"
	StockLowStock   StockStatus = "low_stock"
	StockOutOfStock StockStatus = "out_of_stock"
)

// Valid reports whether s is one of the known stock states
func (s StockStatus) Valid() bool {
	switch s {
	case StockInStock, StockLowStock, StockOutOfStock:
		return true
	}
	return false
}

// StockStatusFor derives the stock status from a total quantity
func StockStatusFor(totalQuantity, lowStockThreshold int) StockStatus {
	switch {
	case totalQuantity <= 0:
		return StockOutOfStock
	case totalQuantity <= lowStockThreshold:
		return StockLowStock
	default:
		return StockInStock
	}
}

// Image is a stored product or variant picture
type Image struct {
	URL          string `json:"url" validate:"required,url"`
	PublicID     string `json:"publicId,omitempty"`
	IsMain       bool   `json:"isMain"`
	DisplayOrder int    `json:"displayOrder"`
}

// Images is persisted as a JSONB column
type Images []Image

// Value implements driver.Valuer
func (i Images) Value() (driver.Value, error) {
	if i == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(i)
}

// Scan implements sql.Scanner
func (i *Images) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*i = Images{}
		return nil
	case []byte:
		return json.Unmarshal(v, i)
	case string:
		return json.Unmarshal([]byte(v), i)
	default:
		return errors.New("images: unsupported column type")
	}
}

// CategoryRef is the display data of a product category
type CategoryRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// BrandRef is the display data of a product brand
type BrandRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Logo string    `json:"logo,omitempty"`
}

// Product is a catalog item; its sellable units are Variants
type Product struct {
	ID            uuid.UUID   `json:"id" db:"id"`
	Name          string      `json:"name" db:"name"`
	Slug          string      `json:"slug" db:"slug"`
	Description   string      `json:"description" db:"description"`
	CategoryID    *uuid.UUID  `json:"categoryId,omitempty" db:"category_id"`
	BrandID       *uuid.UUID  `json:"brandId,omitempty" db:"brand_id"`
	Images        Images      `json:"images" db:"images"`
	TotalQuantity int         `json:"totalQuantity" db:"total_quantity"`
	StockStatus   StockStatus `json:"stockStatus" db:"stock_status"`
	Rating        float64     `json:"rating" db:"rating"`
	NumReviews    int         `json:"numReviews" db:"num_reviews"`
	IsActive      bool        `json:"isActive" db:"is_active"`
	CreatedAt     time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time   `json:"updatedAt" db:"updated_at"`
	DeletedAt     *time.Time  `json:"deletedAt" db:"deleted_at"`
	DeletedBy     *uuid.UUID  `json:"deletedBy" db:"deleted_by"`

	Category *CategoryRef `json:"category,omitempty" db:"-"`
	Brand    *BrandRef    `json:"brand,omitempty" db:"-"`
	Variants []*Variant   `json:"variants,omitempty" db:"-"`
}

// IsDeleted reports whether the product is soft-deleted
func (p *Product) IsDeleted() bool {
	return p.DeletedAt != nil
}

// StockInfo is the result of a stock recalculation
type StockInfo struct {
	TotalQuantity int         `json:"totalQuantity" db:"total_quantity"`
	StockStatus   StockStatus `json:"stockStatus" db:"stock_status"`
}

// ProductRepository defines the interface for product data access.
// Methods without a suffix use the active view (deleted_at IS NULL); the
// All suffix includes soft-deleted rows and Deleted restricts to them.
type ProductRepository interface {
	// Create inserts a new product
	Create(ctx context.Context, product *Product) error

	// GetByID retrieves a non-deleted product with category and brand resolved
	GetByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// GetByIDAll retrieves a product including soft-deleted ones
	GetByIDAll(ctx context.Context, id uuid.UUID) (*Product, error)

	// GetBySlug retrieves a non-deleted product by slug
	GetBySlug(ctx context.Context, slug string) (*Product, error)

	// SlugTaken reports whether a non-deleted product other than excludeID uses slug
	SlugTaken(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error)

	// List retrieves a page of non-deleted products
	List(ctx context.Context, filter ProductFilter, sort SortSpec, page Page) ([]*Product, int, error)

	// ListDeleted retrieves a page of soft-deleted products
	ListDeleted(ctx context.Context, filter ProductFilter, sort SortSpec, page Page) ([]*Product, int, error)

	// Update writes the editable fields of a non-deleted product
	Update(ctx context.Context, product *Product) error

	// SetActive flips is_active on a non-deleted product
	SetActive(ctx context.Context, id uuid.UUID, active bool) error

	// SoftDelete stamps deleted_at/deleted_by and deactivates the product
	SoftDelete(ctx context.Context, id uuid.UUID, actorID *uuid.UUID) error

	// Restore clears the soft-delete stamps, stores slug and activates the product
	Restore(ctx context.Context, id uuid.UUID, slug string) error

	// RefreshStock recalculates total quantity and stock status from active variants
	RefreshStock(ctx context.Context, id uuid.UUID, lowStockThreshold int) (*StockInfo, error)
}
