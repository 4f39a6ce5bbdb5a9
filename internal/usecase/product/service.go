package product

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/Pesokrava/storefront_catalog/internal/domain"
	"github.com/Pesokrava/storefront_catalog/internal/pkg/logger"
	"github.com/Pesokrava/storefront_catalog/internal/pkg/slug"
	appvalidator "github.com/Pesokrava/storefront_catalog/internal/pkg/validator"
	"github.com/Pesokrava/storefront_catalog/internal/usecase/notify"
)

const notFoundMessage = "Product not found"

// Settings holds the catalog business settings used by the service
type Settings struct {
	LowStockThreshold int
	HighlightLimit    int
	FeaturedMinRating float64
}

// Service handles product business logic
type Service struct {
	products domain.ProductRepository
	variants domain.VariantRepository
	orders   domain.OrderReader
	refs     domain.ReferenceReader
	notifier *notify.Notifier
	cache    domain.CatalogCache
	settings Settings
	validate *validator.Validate
	logger   *logger.Logger
}

// NewService creates a new product service. cache may be nil.
func NewService(
	products domain.ProductRepository,
	variants domain.VariantRepository,
	orders domain.OrderReader,
	refs domain.ReferenceReader,
	notifier *notify.Notifier,
	cache domain.CatalogCache,
	settings Settings,
	log *logger.Logger,
) *Service {
	return &Service{
		products: products,
		variants: variants,
		orders:   orders,
		refs:     refs,
		notifier: notifier,
		cache:    cache,
		settings: settings,
		validate: appvalidator.Get(),
		logger:   log,
	}
}

// Create creates a new product with a unique slug derived from its name
func (s *Service) Create(ctx context.Context, in domain.ProductInput) (*domain.Product, error) {
	if err := s.validate.Struct(in); err != nil {
		s.logger.Debugf("Product validation failed: %v", err)
		return nil, domain.Invalid("%s", appvalidator.Describe(err))
	}

	if err := s.checkReferences(ctx, in.CategoryID, in.BrandID); err != nil {
		return nil, err
	}

	productSlug, err := s.uniqueSlug(ctx, baseSlug(in.Name), uuid.Nil)
	if err != nil {
		s.logger.Error("Failed to generate product slug", err)
		return nil, err
	}

	product := &domain.Product{
		Name:        in.Name,
		Slug:        productSlug,
		Description: in.Description,
		CategoryID:  in.CategoryID,
		BrandID:     in.BrandID,
		Images:      in.Images,
		StockStatus: domain.StockOutOfStock,
		IsActive:    true,
	}
	if product.Images == nil {
		product.Images = domain.Images{}
	}
	if in.IsActive != nil {
		product.IsActive = *in.IsActive
	}

	if err := s.products.Create(ctx, product); err != nil {
		s.logger.Error("Failed to create product", err)
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"product_id": product.ID,
		"slug":       product.Slug,
	}).Info("Product created successfully")

	s.notifier.ProductChanged(ctx, domain.EventProductCreated, product.ID)

	return product, nil
}

// Update applies the allow-listed fields of in. A new name regenerates the slug.
func (s *Service) Update(ctx context.Context, id uuid.UUID, in domain.ProductUpdate) (*domain.Product, error) {
	if err := s.validate.Struct(in); err != nil {
		s.logger.Debugf("Product validation failed: %v", err)
		return nil, domain.Invalid("%s", appvalidator.Describe(err))
	}

	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, s.lookupError(err, id)
	}

	if err := s.checkReferences(ctx, in.CategoryID, in.BrandID); err != nil {
		return nil, err
	}

	if in.Name != nil && *in.Name != product.Name {
		product.Name = *in.Name
		product.Slug, err = s.uniqueSlug(ctx, baseSlug(product.Name), product.ID)
		if err != nil {
			s.logger.Error("Failed to generate product slug", err)
			return nil, err
		}
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.CategoryID != nil {
		product.CategoryID = in.CategoryID
	}
	if in.BrandID != nil {
		product.BrandID = in.BrandID
	}
	if in.Images != nil {
		product.Images = in.Images
	}
	if in.IsActive != nil {
		product.IsActive = *in.IsActive
	}

	if err := s.products.Update(ctx, product); err != nil {
		s.logger.Error("Failed to update product", err)
		return nil, domain.NotFoundAs(err, notFoundMessage)
	}

	s.logger.WithFields(map[string]interface{}{
		"product_id": product.ID,
		"slug":       product.Slug,
	}).Info("Product updated successfully")

	s.notifier.ProductChanged(ctx, domain.EventProductUpdated, product.ID)

	return product, nil
}

// RefreshStock recalculates the total quantity and stock status of a product
func (s *Service) RefreshStock(ctx context.Context, id uuid.UUID) (*domain.StockInfo, error) {
	if _, err := s.products.GetByID(ctx, id); err != nil {
		return nil, s.lookupError(err, id)
	}

	info, err := s.products.RefreshStock(ctx, id, s.settings.LowStockThreshold)
	if err != nil {
		s.logger.Errorf(err, "Failed to refresh stock of product %s", id)
		return nil, err
	}

	s.notifier.ProductChanged(ctx, domain.EventProductUpdated, id)

	return info, nil
}

func (s *Service) checkReferences(ctx context.Context, categoryID, brandID *uuid.UUID) error {
	if categoryID != nil {
		ok, err := s.refs.CategoryExists(ctx, *categoryID)
		if err != nil {
			s.logger.Error("Failed to check category", err)
			return err
		}
		if !ok {
			return domain.NotFound("Category not found")
		}
	}
	if brandID != nil {
		ok, err := s.refs.BrandExists(ctx, *brandID)
		if err != nil {
			s.logger.Error("Failed to check brand", err)
			return err
		}
		if !ok {
			return domain.NotFound("Brand not found")
		}
	}
	return nil
}

// uniqueSlug returns base, or base-n with the smallest n >= 1 that no other
// non-deleted product uses
func (s *Service) uniqueSlug(ctx context.Context, base string, excludeID uuid.UUID) (string, error) {
	for n := 0; ; n++ {
		candidate := slug.Candidate(base, n)
		taken, err := s.products.SlugTaken(ctx, candidate, excludeID)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
}

func baseSlug(name string) string {
	if s := slug.Make(name); s != "" {
		return s
	}
	return "product"
}

func (s *Service) lookupError(err error, id uuid.UUID) error {
	if err == domain.ErrNotFound {
		s.logger.Debugf("Product not found: %s", id)
	} else {
		s.logger.Error("Failed to get product", err)
	}
	return domain.NotFoundAs(err, notFoundMessage)
}
