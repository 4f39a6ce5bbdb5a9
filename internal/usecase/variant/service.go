package variant

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/Pesokrava/storefront_catalog/internal/catalog"
	"github.com/Pesokrava/storefront_catalog/internal/domain"
	"github.com/Pesokrava/storefront_catalog/internal/pkg/logger"
	appvalidator "github.com/Pesokrava/storefront_catalog/internal/pkg/validator"
	"github.com/Pesokrava/storefront_catalog/internal/usecase/notify"
)

const notFoundMessage = "Variant not found"

// DeleteResult reports which branch a variant delete took
type DeleteResult struct {
	DeactivatedInstead bool
	Message            string
}

// Service handles variant business logic
type Service struct {
	products          domain.ProductRepository
	variants          domain.VariantRepository
	colors            domain.ColorRepository
	orders            domain.OrderReader
	refs              domain.ReferenceReader
	notifier          *notify.Notifier
	lowStockThreshold int
	validate          *validator.Validate
	logger            *logger.Logger
}

// NewService creates a new variant service
func NewService(
	products domain.ProductRepository,
	variants domain.VariantRepository,
	colors domain.ColorRepository,
	orders domain.OrderReader,
	refs domain.ReferenceReader,
	notifier *notify.Notifier,
	lowStockThreshold int,
	log *logger.Logger,
) *Service {
	return &Service{
		products:          products,
		variants:          variants,
		colors:            colors,
		orders:            orders,
		refs:              refs,
		notifier:          notifier,
		lowStockThreshold: lowStockThreshold,
		validate:          appvalidator.Get(),
		logger:            log,
	}
}

// Create adds a variant to a product. A product holds at most one
// non-deleted variant per color.
func (s *Service) Create(ctx context.Context, in domain.VariantInput) (*domain.Variant, error) {
	if err := s.validate.Struct(in); err != nil {
		s.logger.Debugf("Variant validation failed: %v", err)
		return nil, domain.Invalid("%s", appvalidator.Describe(err))
	}

	if _, err := s.products.GetByID(ctx, in.ProductID); err != nil {
		return nil, s.missing(err, "Product not found")
	}

	color, err := s.colors.GetByID(ctx, in.ColorID)
	if err != nil {
		return nil, s.missing(err, "Color not found")
	}

	if err := s.checkColorFree(ctx, in.ProductID, in.ColorID, uuid.Nil); err != nil {
		return nil, err
	}
	if err := s.checkSizes(ctx, in.Sizes); err != nil {
		return nil, err
	}

	variant := &domain.Variant{
		ProductID:       in.ProductID,
		ColorID:         in.ColorID,
		Gender:          in.Gender,
		Price:           in.Price,
		PercentDiscount: in.PercentDiscount,
		PriceFinal:      catalog.FinalPrice(in.Price, in.PercentDiscount),
		Images:          in.Images,
		IsActive:        true,
		Sizes:           in.Sizes,
	}
	if variant.Images == nil {
		variant.Images = domain.Images{}
	}
	if variant.Sizes == nil {
		variant.Sizes = []domain.VariantSize{}
	}
	if in.IsActive != nil {
		variant.IsActive = *in.IsActive
	}

	if err := s.variants.Create(ctx, variant); err != nil {
		s.logger.Error("Failed to create variant", err)
		return nil, err
	}
	variant.Color = color

	s.logger.WithFields(map[string]interface{}{
		"variant_id": variant.ID,
		"product_id": variant.ProductID,
		"color_id":   variant.ColorID,
	}).Info("Variant created successfully")

	s.refreshStock(ctx, variant.ProductID)
	s.notifier.VariantChanged(ctx, domain.EventVariantCreated, variant.ProductID, variant.ID)

	return variant, nil
}

// Update applies the allow-listed fields of in and recomputes the final price
func (s *Service) Update(ctx context.Context, id uuid.UUID, in domain.VariantUpdate) (*domain.Variant, error) {
	if err := s.validate.Struct(in); err != nil {
		s.logger.Debugf("Variant validation failed: %v", err)
		return nil, domain.Invalid("%s", appvalidator.Describe(err))
	}

	variant, err := s.variants.GetByID(ctx, id)
	if err != nil {
		return nil, s.missing(err, notFoundMessage)
	}

	if in.ColorID != nil && *in.ColorID != variant.ColorID {
		color, err := s.colors.GetByID(ctx, *in.ColorID)
		if err != nil {
			return nil, s.missing(err, "Color not found")
		}
		if err := s.checkColorFree(ctx, variant.ProductID, *in.ColorID, variant.ID); err != nil {
			return nil, err
		}
		variant.ColorID = *in.ColorID
		variant.Color = color
	}
	if in.Sizes != nil {
		if err := s.checkSizes(ctx, in.Sizes); err != nil {
			return nil, err
		}
		variant.Sizes = in.Sizes
	}
	if in.Gender != nil {
		variant.Gender = *in.Gender
	}
	if in.Price != nil {
		variant.Price = *in.Price
	}
	if in.PercentDiscount != nil {
		variant.PercentDiscount = *in.PercentDiscount
	}
	if in.Images != nil {
		variant.Images = in.Images
	}
	if in.IsActive != nil {
		variant.IsActive = *in.IsActive
	}
	variant.PriceFinal = catalog.FinalPrice(variant.Price, variant.PercentDiscount)

	if err := s.variants.Update(ctx, variant); err != nil {
		s.logger.Error("Failed to update variant", err)
		return nil, domain.NotFoundAs(err, notFoundMessage)
	}

	s.logger.WithFields(map[string]interface{}{
		"variant_id": variant.ID,
		"product_id": variant.ProductID,
	}).Info("Variant updated successfully")

	s.refreshStock(ctx, variant.ProductID)
	s.notifier.VariantChanged(ctx, domain.EventVariantUpdated, variant.ProductID, variant.ID)

	return variant, nil
}

func (s *Service) checkColorFree(ctx context.Context, productID, colorID, excludeID uuid.UUID) error {
	taken, err := s.variants.ColorTaken(ctx, productID, colorID, excludeID)
	if err != nil {
		s.logger.Error("Failed to check variant color", err)
		return err
	}
	if taken {
		return domain.Conflict("A variant with this color already exists for this product")
	}
	return nil
}

func (s *Service) checkSizes(ctx context.Context, sizes []domain.VariantSize) error {
	if len(sizes) == 0 {
		return nil
	}

	seen := make(map[uuid.UUID]struct{}, len(sizes))
	ids := make([]uuid.UUID, 0, len(sizes))
	for _, size := range sizes {
		if _, dup := seen[size.SizeID]; dup {
			return domain.Invalid("size %s is listed more than once", size.SizeID)
		}
		seen[size.SizeID] = struct{}{}
		ids = append(ids, size.SizeID)
	}

	missing, err := s.refs.MissingSizes(ctx, ids)
	if err != nil {
		s.logger.Error("Failed to check sizes", err)
		return err
	}
	if len(missing) > 0 {
		return domain.NotFound("Size not found: %s", missing[0])
	}
	return nil
}

func (s *Service) refreshStock(ctx context.Context, productID uuid.UUID) {
	if _, err := s.products.RefreshStock(ctx, productID, s.lowStockThreshold); err != nil {
		s.logger.Warnf("Failed to refresh stock of product %s: %v", productID, err)
	}
}

func (s *Service) missing(err error, message string) error {
	if err != domain.ErrNotFound {
		s.logger.Error("Failed to load variant dependencies", err)
	}
	return domain.NotFoundAs(err, "%s", message)
}
