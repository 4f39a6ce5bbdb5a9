package worker

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Pesokrava/storefront_catalog/internal/domain"
	"github.com/Pesokrava/storefront_catalog/internal/pkg/logger"
)

// StockRefresher recomputes the stock aggregates of a product and drops its
// cached public payloads
type StockRefresher struct {
	products          domain.ProductRepository
	cache             domain.CatalogCache
	lowStockThreshold int
	logger            *logger.Logger
}

// NewStockRefresher creates a new stock refresher. cache may be nil.
func NewStockRefresher(products domain.ProductRepository, cache domain.CatalogCache, lowStockThreshold int, logger *logger.Logger) *StockRefresher {
	return &StockRefresher{
		products:          products,
		cache:             cache,
		lowStockThreshold: lowStockThreshold,
		logger:            logger,
	}
}

// Refresh recalculates total quantity and stock status of a product from its
// active variants. A product that is gone or soft-deleted is skipped.
func (r *StockRefresher) Refresh(ctx context.Context, productID uuid.UUID) error {
	info, err := r.products.RefreshStock(ctx, productID, r.lowStockThreshold)
	if errors.Is(err, domain.ErrNotFound) {
		r.logger.WithFields(map[string]any{
			"product_id": productID.String(),
		}).Info("Product not found or deleted, skipping stock refresh")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to refresh product stock: %w", err)
	}

	if r.cache != nil {
		if err := r.cache.InvalidateProduct(ctx, productID); err != nil {
			r.logger.Warnf("Failed to invalidate cache for product %s: %v", productID, err)
		}
	}

	r.logger.WithFields(map[string]any{
		"product_id":     productID.String(),
		"total_quantity": info.TotalQuantity,
		"stock_status":   info.StockStatus,
	}).Info("Successfully refreshed product stock")

	return nil
}
