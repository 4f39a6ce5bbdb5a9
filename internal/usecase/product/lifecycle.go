package product

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Pesokrava/storefront_catalog/internal/domain"
)

// DeleteResult reports which branch a product delete took
type DeleteResult struct {
	DeactivatedInstead bool
	Message            string
}

// RestoreResult is the outcome of a product restore
type RestoreResult struct {
	Product          *domain.Product
	RestoredVariants int
	Message          string
}

// StatusResult is the outcome of a product status change
type StatusResult struct {
	Product          *domain.Product
	AffectedVariants int
	Message          string
}

// Delete soft-deletes a product and deactivates its variants. A product
// referenced by orders is only deactivated.
func (s *Service) Delete(ctx context.Context, id uuid.UUID, actorID *uuid.UUID) (*DeleteResult, error) {
	if _, err := s.products.GetByID(ctx, id); err != nil {
		return nil, s.lookupError(err, id)
	}

	hasOrders, err := s.orders.ProductHasOrders(ctx, id)
	if err != nil {
		s.logger.Error("Failed to check product orders", err)
		return nil, err
	}

	if hasOrders {
		if err := s.products.SetActive(ctx, id, false); err != nil {
			s.logger.Error("Failed to deactivate product", err)
			return nil, domain.NotFoundAs(err, notFoundMessage)
		}
		if _, err := s.variants.SetActiveByProduct(ctx, id, false); err != nil {
			s.logger.Error("Failed to deactivate product variants", err)
			return nil, err
		}
		s.refreshStock(ctx, id)

		s.logger.WithFields(map[string]interface{}{
			"product_id": id,
		}).Info("Product has orders, deactivated instead of deleted")

		s.notifier.ProductChanged(ctx, domain.EventProductDeactivated, id)

		return &DeleteResult{
			DeactivatedInstead: true,
			Message:            "Product has orders and was deactivated instead of deleted",
		}, nil
	}

	if err := s.products.SoftDelete(ctx, id, actorID); err != nil {
		s.logger.Error("Failed to delete product", err)
		return nil, domain.NotFoundAs(err, notFoundMessage)
	}
	if _, err := s.variants.SetActiveByProduct(ctx, id, false); err != nil {
		s.logger.Error("Failed to deactivate product variants", err)
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"product_id": id,
	}).Info("Product deleted successfully")

	s.notifier.ProductChanged(ctx, domain.EventProductDeleted, id)

	return &DeleteResult{Message: "Product deleted successfully"}, nil
}

// Restore brings a soft-deleted product back, reassigning its slug when a
// live product took it meanwhile. With cascade its soft-deleted variants are
// restored in position order unless their color is already in use. A live
// product is left as is and only the variant cascade runs.
func (s *Service) Restore(ctx context.Context, id uuid.UUID, cascade bool) (*RestoreResult, error) {
	product, err := s.products.GetByIDAll(ctx, id)
	if err != nil {
		return nil, s.lookupError(err, id)
	}

	if product.IsDeleted() {
		productSlug, err := s.uniqueSlug(ctx, product.Slug, id)
		if err != nil {
			s.logger.Error("Failed to generate product slug", err)
			return nil, err
		}
		if err := s.products.Restore(ctx, id, productSlug); err != nil {
			s.logger.Error("Failed to restore product", err)
			return nil, domain.NotFoundAs(err, notFoundMessage)
		}
	}

	restored := 0
	if cascade {
		restored, err = s.restoreVariants(ctx, id)
		if err != nil {
			return nil, err
		}
	}
	s.refreshStock(ctx, id)

	product, err = s.products.GetByID(ctx, id)
	if err != nil {
		return nil, s.lookupError(err, id)
	}

	s.logger.WithFields(map[string]interface{}{
		"product_id":        id,
		"restored_variants": restored,
	}).Info("Product restored successfully")

	s.notifier.ProductChanged(ctx, domain.EventProductRestored, id)

	message := "Product restored without variants"
	if cascade {
		message = fmt.Sprintf("Product restored with %d variants", restored)
	}

	return &RestoreResult{
		Product:          product,
		RestoredVariants: restored,
		Message:          message,
	}, nil
}

func (s *Service) restoreVariants(ctx context.Context, productID uuid.UUID) (int, error) {
	deleted, err := s.variants.ListDeletedByProduct(ctx, productID)
	if err != nil {
		s.logger.Error("Failed to list deleted variants", err)
		return 0, err
	}
	if len(deleted) == 0 {
		return 0, nil
	}

	live, err := s.variants.ListByProduct(ctx, productID)
	if err != nil {
		s.logger.Error("Failed to list product variants", err)
		return 0, err
	}

	held := make(map[uuid.UUID]struct{}, len(live)+len(deleted))
	for _, v := range live {
		held[v.ColorID] = struct{}{}
	}

	restored := 0
	for _, v := range deleted {
		if _, taken := held[v.ColorID]; taken {
			s.logger.Debugf("Skipping restore of variant %s: color %s already in use", v.ID, v.ColorID)
			continue
		}
		if err := s.variants.Restore(ctx, v.ID); err != nil {
			s.logger.Errorf(err, "Failed to restore variant %s", v.ID)
			return restored, err
		}
		held[v.ColorID] = struct{}{}
		restored++
	}
	return restored, nil
}

// SetActive changes the active flag of a product. With cascade the flag is
// also applied to its non-deleted variants.
func (s *Service) SetActive(ctx context.Context, id uuid.UUID, active, cascade bool) (*StatusResult, error) {
	if _, err := s.products.GetByID(ctx, id); err != nil {
		return nil, s.lookupError(err, id)
	}

	if err := s.products.SetActive(ctx, id, active); err != nil {
		s.logger.Error("Failed to update product status", err)
		return nil, domain.NotFoundAs(err, notFoundMessage)
	}

	affected := 0
	if cascade {
		n, err := s.variants.SetActiveByProduct(ctx, id, active)
		if err != nil {
			s.logger.Error("Failed to update variant status", err)
			return nil, err
		}
		affected = n
		s.refreshStock(ctx, id)
	}

	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, s.lookupError(err, id)
	}

	s.logger.WithFields(map[string]interface{}{
		"product_id":        id,
		"is_active":         active,
		"affected_variants": affected,
	}).Info("Product status updated")

	s.notifier.ProductChanged(ctx, domain.EventProductStatusChanged, id)

	state := "deactivated"
	if active {
		state = "activated"
	}
	message := fmt.Sprintf("Product %s", state)
	if cascade {
		message = fmt.Sprintf("Product %s with %d variants", state, affected)
	}

	return &StatusResult{
		Product:          product,
		AffectedVariants: affected,
		Message:          message,
	}, nil
}

// refreshStock recomputes stock after a cascade. The stock worker retries
// on the published event, so a failure here is only logged.
func (s *Service) refreshStock(ctx context.Context, id uuid.UUID) {
	if _, err := s.products.RefreshStock(ctx, id, s.settings.LowStockThreshold); err != nil {
		s.logger.Warnf("Failed to refresh stock of product %s: %v", id, err)
	}
}
