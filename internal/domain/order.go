package domain

import (
	"context"

	"github.com/google/uuid"
)

// ProductSales is the quantity of a product sold through completed orders
type ProductSales struct {
	ProductID uuid.UUID `db:"product_id"`
	TotalSold int       `db:"total_sold"`
}

// OrderReader gives read-only access to orders owned by the order service
type OrderReader interface {
	// ProductHasOrders reports whether any order item references the product
	ProductHasOrders(ctx context.Context, productID uuid.UUID) (bool, error)

	// VariantHasOrders reports whether any order item references the variant
	VariantHasOrders(ctx context.Context, variantID uuid.UUID) (bool, error)

	// TopSelling ranks products by quantity sold in delivered or confirmed orders
	TopSelling(ctx context.Context, limit int) ([]ProductSales, error)
}

// ReferenceReader checks the catalog reference data owned by other services
type ReferenceReader interface {
	CategoryExists(ctx context.Context, id uuid.UUID) (bool, error)
	BrandExists(ctx context.Context, id uuid.UUID) (bool, error)

	// MissingSizes returns the ids in ids that do not exist
	MissingSizes(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error)
}
