package variant

import (
	"context"

	"github.com/google/uuid"

	"github.com/Pesokrava/storefront_catalog/internal/domain"
)

// Delete soft-deletes a variant. A variant referenced by orders is only
// deactivated.
func (s *Service) Delete(ctx context.Context, id uuid.UUID, actorID *uuid.UUID) (*DeleteResult, error) {
	variant, err := s.variants.GetByID(ctx, id)
	if err != nil {
		return nil, s.missing(err, notFoundMessage)
	}

	hasOrders, err := s.orders.VariantHasOrders(ctx, id)
	if err != nil {
		s.logger.Error("Failed to check variant orders", err)
		return nil, err
	}

	result := &DeleteResult{Message: "Variant deleted successfully"}
	event := domain.EventVariantDeleted

	if hasOrders {
		err = s.variants.SetActive(ctx, id, false)
		result = &DeleteResult{
			DeactivatedInstead: true,
			Message:            "Variant has orders and was deactivated instead of deleted",
		}
		event = domain.EventVariantDeactivated
	} else {
		err = s.variants.SoftDelete(ctx, id, actorID)
	}
	if err != nil {
		s.logger.Error("Failed to delete variant", err)
		return nil, domain.NotFoundAs(err, notFoundMessage)
	}

	s.logger.WithFields(map[string]interface{}{
		"variant_id":          id,
		"product_id":          variant.ProductID,
		"deactivated_instead": hasOrders,
	}).Info("Variant removed")

	s.refreshStock(ctx, variant.ProductID)
	s.notifier.VariantChanged(ctx, event, variant.ProductID, id)

	return result, nil
}

// Restore brings a soft-deleted variant back. The parent product must be
// live and no live sibling may hold the same color.
func (s *Service) Restore(ctx context.Context, id uuid.UUID) (*domain.Variant, error) {
	variant, err := s.variants.GetByIDAll(ctx, id)
	if err != nil {
		return nil, s.missing(err, notFoundMessage)
	}
	if !variant.IsDeleted() {
		return variant, nil
	}

	product, err := s.products.GetByIDAll(ctx, variant.ProductID)
	if err != nil {
		return nil, s.missing(err, "Product not found")
	}
	if product.IsDeleted() {
		return nil, domain.Conflict("Cannot restore a variant of a deleted product, restore the product first")
	}

	if err := s.checkColorFree(ctx, variant.ProductID, variant.ColorID, variant.ID); err != nil {
		return nil, err
	}

	if err := s.variants.Restore(ctx, id); err != nil {
		s.logger.Error("Failed to restore variant", err)
		return nil, domain.NotFoundAs(err, notFoundMessage)
	}

	s.logger.WithFields(map[string]interface{}{
		"variant_id": id,
		"product_id": variant.ProductID,
	}).Info("Variant restored successfully")

	s.refreshStock(ctx, variant.ProductID)
	s.notifier.VariantChanged(ctx, domain.EventVariantRestored, variant.ProductID, id)

	variant.DeletedAt = nil
	variant.DeletedBy = nil
	variant.IsActive = true
	return variant, nil
}

// SetActive changes the active flag of a variant
func (s *Service) SetActive(ctx context.Context, id uuid.UUID, active bool) (*domain.Variant, error) {
	variant, err := s.variants.GetByID(ctx, id)
	if err != nil {
		return nil, s.missing(err, notFoundMessage)
	}

	if err := s.variants.SetActive(ctx, id, active); err != nil {
		s.logger.Error("Failed to update variant status", err)
		return nil, domain.NotFoundAs(err, notFoundMessage)
	}
	variant.IsActive = active

	s.logger.WithFields(map[string]interface{}{
		"variant_id": id,
		"is_active":  active,
	}).Info("Variant status updated")

	s.refreshStock(ctx, variant.ProductID)
	s.notifier.VariantChanged(ctx, domain.EventVariantStatusChanged, variant.ProductID, id)

	return variant, nil
}
