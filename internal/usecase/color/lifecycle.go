package color

import (
	"context"

	"github.com/google/uuid"

	"github.com/Pesokrava/storefront_catalog/internal/domain"
)

// Delete soft-deletes a color no live variant uses
func (s *Service) Delete(ctx context.Context, id uuid.UUID, actorID *uuid.UUID) error {
	if _, err := s.colors.GetByID(ctx, id); err != nil {
		return s.lookupError(err, id)
	}

	inUse, err := s.variants.CountByColor(ctx, id)
	if err != nil {
		s.logger.Error("Failed to count color variants", err)
		return err
	}
	if inUse > 0 {
		return domain.Conflict("Color is used by %d variants and cannot be deleted", inUse)
	}

	if err := s.colors.SoftDelete(ctx, id, actorID); err != nil {
		s.logger.Error("Failed to delete color", err)
		return domain.NotFoundAs(err, notFoundMessage)
	}

	s.logger.WithFields(map[string]interface{}{
		"color_id": id,
	}).Info("Color deleted successfully")

	s.notifier.ColorChanged(ctx, domain.EventColorDeleted, id)

	return nil
}

// Restore brings a soft-deleted color back if its name, code and pair are
// still free
func (s *Service) Restore(ctx context.Context, id uuid.UUID) (*domain.Color, error) {
	color, err := s.colors.GetByIDAll(ctx, id)
	if err != nil {
		return nil, s.lookupError(err, id)
	}
	if !color.IsDeleted() {
		return color, nil
	}

	if err := s.checkUnique(ctx, color, color.ID); err != nil {
		return nil, err
	}

	if err := s.colors.Restore(ctx, id); err != nil {
		s.logger.Error("Failed to restore color", err)
		return nil, domain.NotFoundAs(err, notFoundMessage)
	}
	color.DeletedAt = nil
	color.DeletedBy = nil

	s.logger.WithFields(map[string]interface{}{
		"color_id": id,
	}).Info("Color restored successfully")

	s.notifier.ColorChanged(ctx, domain.EventColorRestored, id)

	return color, nil
}
