package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Pesokrava/storefront_catalog/internal/domain"
)

// OrderRepository reads the order tables owned by the order service
type OrderRepository struct {
	db *sqlx.DB
}

// NewOrderRepository creates a new PostgreSQL order reader
func NewOrderRepository(db *sqlx.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// ProductHasOrders reports whether any order item references the product
func (r *OrderRepository) ProductHasOrders(ctx context.Context, productID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM order_items WHERE product_id = $1)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, productID); err != nil {
		return false, err
	}
	return exists, nil
}

// VariantHasOrders reports whether any order item references the variant
func (r *OrderRepository) VariantHasOrders(ctx context.Context, variantID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM order_items WHERE variant_id = $1)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, variantID); err != nil {
		return false, err
	}
	return exists, nil
}

// TopSelling ranks products by quantity sold in confirmed or delivered orders
func (r *OrderRepository) TopSelling(ctx context.Context, limit int) ([]domain.ProductSales, error) {
	query := `
		SELECT oi.product_id, SUM(oi.quantity) AS total_sold
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE o.status IN ('delivered', 'confirmed') AND o.deleted_at IS NULL
		GROUP BY oi.product_id
		ORDER BY total_sold DESC, oi.product_id
		LIMIT $1
	`

	sales := []domain.ProductSales{}
	if err := r.db.SelectContext(ctx, &sales, query, limit); err != nil {
		return nil, err
	}
	return sales, nil
}
