// Package mocks provides testify mocks of the domain interfaces for usecase
// and handler tests.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/Pesokrava/storefront_catalog/internal/domain"
)

// ProductRepository is a mock implementation of domain.ProductRepository
type ProductRepository struct {
	mock.Mock
}

func (m *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *ProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *ProductRepository) GetByIDAll(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *ProductRepository) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *ProductRepository) SlugTaken(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, slug, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *ProductRepository) List(ctx context.Context, filter domain.ProductFilter, sort domain.SortSpec, page domain.Page) ([]*domain.Product, int, error) {
	args := m.Called(ctx, filter, sort, page)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*domain.Product), args.Int(1), args.Error(2)
}

func (m *ProductRepository) ListDeleted(ctx context.Context, filter domain.ProductFilter, sort domain.SortSpec, page domain.Page) ([]*domain.Product, int, error) {
	args := m.Called(ctx, filter, sort, page)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*domain.Product), args.Int(1), args.Error(2)
}

func (m *ProductRepository) Update(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *ProductRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	args := m.Called(ctx, id, active)
	return args.Error(0)
}

func (m *ProductRepository) SoftDelete(ctx context.Context, id uuid.UUID, actorID *uuid.UUID) error {
	args := m.Called(ctx, id, actorID)
	return args.Error(0)
}

func (m *ProductRepository) Restore(ctx context.Context, id uuid.UUID, slug string) error {
	args := m.Called(ctx, id, slug)
	return args.Error(0)
}

func (m *ProductRepository) RefreshStock(ctx context.Context, id uuid.UUID, lowStockThreshold int) (*domain.StockInfo, error) {
	args := m.Called(ctx, id, lowStockThreshold)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StockInfo), args.Error(1)
}

// VariantRepository is a mock implementation of domain.VariantRepository
type VariantRepository struct {
	mock.Mock
}

func (m *VariantRepository) variant(args mock.Arguments) (*domain.Variant, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Variant), args.Error(1)
}

func (m *VariantRepository) variants(args mock.Arguments) ([]*domain.Variant, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Variant), args.Error(1)
}

func (m *VariantRepository) Create(ctx context.Context, variant *domain.Variant) error {
	args := m.Called(ctx, variant)
	return args.Error(0)
}

func (m *VariantRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Variant, error) {
	return m.variant(m.Called(ctx, id))
}

func (m *VariantRepository) GetByIDAll(ctx context.Context, id uuid.UUID) (*domain.Variant, error) {
	return m.variant(m.Called(ctx, id))
}

func (m *VariantRepository) Update(ctx context.Context, variant *domain.Variant) error {
	args := m.Called(ctx, variant)
	return args.Error(0)
}

func (m *VariantRepository) ListByProduct(ctx context.Context, productID uuid.UUID) ([]*domain.Variant, error) {
	return m.variants(m.Called(ctx, productID))
}

func (m *VariantRepository) ListByProductAll(ctx context.Context, productID uuid.UUID) ([]*domain.Variant, error) {
	return m.variants(m.Called(ctx, productID))
}

func (m *VariantRepository) ListDeletedByProduct(ctx context.Context, productID uuid.UUID) ([]*domain.Variant, error) {
	return m.variants(m.Called(ctx, productID))
}

func (m *VariantRepository) ListByProducts(ctx context.Context, productIDs []uuid.UUID, activeOnly bool) ([]*domain.Variant, error) {
	return m.variants(m.Called(ctx, productIDs, activeOnly))
}

func (m *VariantRepository) ColorTaken(ctx context.Context, productID, colorID, excludeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, productID, colorID, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *VariantRepository) SetActiveByProduct(ctx context.Context, productID uuid.UUID, active bool) (int, error) {
	args := m.Called(ctx, productID, active)
	return args.Int(0), args.Error(1)
}

func (m *VariantRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	args := m.Called(ctx, id, active)
	return args.Error(0)
}

func (m *VariantRepository) SoftDelete(ctx context.Context, id uuid.UUID, actorID *uuid.UUID) error {
	args := m.Called(ctx, id, actorID)
	return args.Error(0)
}

func (m *VariantRepository) Restore(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *VariantRepository) ProductIDsMatching(ctx context.Context, filter domain.VariantFilter) ([]uuid.UUID, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *VariantRepository) CountByColor(ctx context.Context, colorID uuid.UUID) (int, error) {
	args := m.Called(ctx, colorID)
	return args.Int(0), args.Error(1)
}

// ColorRepository is a mock implementation of domain.ColorRepository
type ColorRepository struct {
	mock.Mock
}

func (m *ColorRepository) color(args mock.Arguments) (*domain.Color, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Color), args.Error(1)
}

func (m *ColorRepository) Create(ctx context.Context, color *domain.Color) error {
	args := m.Called(ctx, color)
	return args.Error(0)
}

func (m *ColorRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Color, error) {
	return m.color(m.Called(ctx, id))
}

func (m *ColorRepository) GetByIDAll(ctx context.Context, id uuid.UUID) (*domain.Color, error) {
	return m.color(m.Called(ctx, id))
}

func (m *ColorRepository) Update(ctx context.Context, color *domain.Color) error {
	args := m.Called(ctx, color)
	return args.Error(0)
}

func (m *ColorRepository) SoftDelete(ctx context.Context, id uuid.UUID, actorID *uuid.UUID) error {
	args := m.Called(ctx, id, actorID)
	return args.Error(0)
}

func (m *ColorRepository) Restore(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *ColorRepository) List(ctx context.Context, filter domain.ColorFilter, sort domain.SortSpec, page domain.Page) ([]*domain.Color, int, error) {
	args := m.Called(ctx, filter, sort, page)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*domain.Color), args.Int(1), args.Error(2)
}

func (m *ColorRepository) ListDeleted(ctx context.Context, filter domain.ColorFilter, sort domain.SortSpec, page domain.Page) ([]*domain.Color, int, error) {
	args := m.Called(ctx, filter, sort, page)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*domain.Color), args.Int(1), args.Error(2)
}

func (m *ColorRepository) FindByName(ctx context.Context, name string, excludeID uuid.UUID) (*domain.Color, error) {
	return m.color(m.Called(ctx, name, excludeID))
}

func (m *ColorRepository) FindSolidByCode(ctx context.Context, code string, excludeID uuid.UUID) (*domain.Color, error) {
	return m.color(m.Called(ctx, code, excludeID))
}

func (m *ColorRepository) ListHalf(ctx context.Context, excludeID uuid.UUID) ([]*domain.Color, error) {
	args := m.Called(ctx, excludeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Color), args.Error(1)
}

// OrderReader is a mock implementation of domain.OrderReader
type OrderReader struct {
	mock.Mock
}

func (m *OrderReader) ProductHasOrders(ctx context.Context, productID uuid.UUID) (bool, error) {
	args := m.Called(ctx, productID)
	return args.Bool(0), args.Error(1)
}

func (m *OrderReader) VariantHasOrders(ctx context.Context, variantID uuid.UUID) (bool, error) {
	args := m.Called(ctx, variantID)
	return args.Bool(0), args.Error(1)
}

func (m *OrderReader) TopSelling(ctx context.Context, limit int) ([]domain.ProductSales, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ProductSales), args.Error(1)
}

// ReferenceReader is a mock implementation of domain.ReferenceReader
type ReferenceReader struct {
	mock.Mock
}

func (m *ReferenceReader) CategoryExists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *ReferenceReader) BrandExists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *ReferenceReader) MissingSizes(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

// CatalogCache is a mock implementation of domain.CatalogCache
type CatalogCache struct {
	mock.Mock
}

func (m *CatalogCache) GetProduct(ctx context.Context, key string, dst interface{}) error {
	args := m.Called(ctx, key, dst)
	return args.Error(0)
}

func (m *CatalogCache) SetProduct(ctx context.Context, productID uuid.UUID, key string, value interface{}) error {
	args := m.Called(ctx, productID, key, value)
	return args.Error(0)
}

func (m *CatalogCache) GetList(ctx context.Context, key string, dst interface{}) error {
	args := m.Called(ctx, key, dst)
	return args.Error(0)
}

func (m *CatalogCache) SetList(ctx context.Context, key string, value interface{}) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *CatalogCache) InvalidateProduct(ctx context.Context, productID uuid.UUID) error {
	args := m.Called(ctx, productID)
	return args.Error(0)
}

func (m *CatalogCache) InvalidateLists(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// EventPublisher is a mock implementation of domain.EventPublisher
type EventPublisher struct {
	mock.Mock
}

func (m *EventPublisher) Publish(ctx context.Context, subject string, data []byte) error {
	args := m.Called(ctx, subject, data)
	return args.Error(0)
}
