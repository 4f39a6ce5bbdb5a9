package domain

import (
	"context"

	"github.com/google/uuid"
)

// CatalogCache caches public product payloads. Get methods return
// ErrNotFound on a miss.
type CatalogCache interface {
	GetProduct(ctx context.Context, key string, dst interface{}) error
	SetProduct(ctx context.Context, productID uuid.UUID, key string, value interface{}) error
	GetList(ctx context.Context, key string, dst interface{}) error
	SetList(ctx context.Context, key string, value interface{}) error

	// InvalidateProduct drops every cached entry of a product and all list pages
	InvalidateProduct(ctx context.Context, productID uuid.UUID) error

	// InvalidateLists drops every cached list page
	InvalidateLists(ctx context.Context) error
}
