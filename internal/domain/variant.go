package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Gender is the audience tag of a variant
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderUnisex Gender = "unisex"
)

// Valid reports whether g is a known gender tag
func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderUnisex:
		return true
	}
	return false
}

// SizeRef is the display data of a size
type SizeRef struct {
	ID          uuid.UUID `json:"id"`
	Value       string    `json:"value"`
	Description string    `json:"description,omitempty"`
}

// VariantSize is the stock of one size of a variant
type VariantSize struct {
	SizeID   uuid.UUID `json:"sizeId" db:"size_id" validate:"required"`
	Quantity int       `json:"quantity" db:"quantity" validate:"gte=0"`
	SKU      string    `json:"sku" db:"sku" validate:"max=100"`

	Size *SizeRef `json:"size,omitempty" db:"-"`
}

// Variant is a color/gender option of a product with per-size stock.
// PriceFinal is derived from Price and PercentDiscount on every write.
type Variant struct {
	ID              uuid.UUID  `json:"id" db:"id"`
	ProductID       uuid.UUID  `json:"productId" db:"product_id"`
	Position        int        `json:"position" db:"position"`
	ColorID         uuid.UUID  `json:"colorId" db:"color_id"`
	Gender          Gender     `json:"gender" db:"gender"`
	Price           float64    `json:"price" db:"price"`
	PercentDiscount float64    `json:"percentDiscount" db:"percent_discount"`
	PriceFinal      float64    `json:"priceFinal" db:"price_final"`
	Images          Images     `json:"images" db:"images"`
	IsActive        bool       `json:"isActive" db:"is_active"`
	CreatedAt       time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time  `json:"updatedAt" db:"updated_at"`
	DeletedAt       *time.Time `json:"deletedAt" db:"deleted_at"`
	DeletedBy       *uuid.UUID `json:"deletedBy" db:"deleted_by"`

	Color *Color        `json:"color,omitempty" db:"-"`
	Sizes []VariantSize `json:"sizes" db:"-"`
}

// IsDeleted reports whether the variant is soft-deleted
func (v *Variant) IsDeleted() bool {
	return v.DeletedAt != nil
}

// VariantRepository defines the interface for variant data access.
// Reads resolve Color and Size display data.
type VariantRepository interface {
	// Create inserts a variant and its sizes at the end of the product's variant list
	Create(ctx context.Context, variant *Variant) error

	// GetByID retrieves a non-deleted variant
	GetByID(ctx context.Context, id uuid.UUID) (*Variant, error)

	// GetByIDAll retrieves a variant including soft-deleted ones
	GetByIDAll(ctx context.Context, id uuid.UUID) (*Variant, error)

	// Update writes the editable fields of a non-deleted variant and replaces its sizes
	Update(ctx context.Context, variant *Variant) error

	// ListByProduct retrieves the non-deleted variants of a product in position order
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]*Variant, error)

	// ListByProductAll retrieves every variant of a product, soft-deleted included
	ListByProductAll(ctx context.Context, productID uuid.UUID) ([]*Variant, error)

	// ListDeletedByProduct retrieves the soft-deleted variants of a product in position order
	ListDeletedByProduct(ctx context.Context, productID uuid.UUID) ([]*Variant, error)

	// ListByProducts retrieves non-deleted variants of several products;
	// activeOnly further restricts to is_active variants
	ListByProducts(ctx context.Context, productIDs []uuid.UUID, activeOnly bool) ([]*Variant, error)

	// ColorTaken reports whether a non-deleted variant of productID other than
	// excludeID uses colorID
	ColorTaken(ctx context.Context, productID, colorID, excludeID uuid.UUID) (bool, error)

	// SetActiveByProduct sets is_active on the non-deleted variants of a product
	// whose value differs and returns the number of rows changed
	SetActiveByProduct(ctx context.Context, productID uuid.UUID, active bool) (int, error)

	// SetActive flips is_active on a non-deleted variant
	SetActive(ctx context.Context, id uuid.UUID, active bool) error

	// SoftDelete stamps deleted_at/deleted_by and deactivates the variant
	SoftDelete(ctx context.Context, id uuid.UUID, actorID *uuid.UUID) error

	// Restore clears the soft-delete stamps and activates the variant
	Restore(ctx context.Context, id uuid.UUID) error

	// ProductIDsMatching returns the distinct product ids owning at least one
	// active, non-deleted variant that satisfies filter
	ProductIDsMatching(ctx context.Context, filter VariantFilter) ([]uuid.UUID, error)

	// CountByColor counts the non-deleted variants using a color
	CountByColor(ctx context.Context, colorID uuid.UUID) (int, error)
}
