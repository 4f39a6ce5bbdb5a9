package color

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/Pesokrava/storefront_catalog/internal/domain"
	"github.com/Pesokrava/storefront_catalog/internal/pkg/logger"
	appvalidator "github.com/Pesokrava/storefront_catalog/internal/pkg/validator"
	"github.com/Pesokrava/storefront_catalog/internal/query"
	"github.com/Pesokrava/storefront_catalog/internal/usecase/notify"
)

const notFoundMessage = "Color not found"

// Service handles color business logic
type Service struct {
	colors   domain.ColorRepository
	variants domain.VariantRepository
	notifier *notify.Notifier
	validate *validator.Validate
	logger   *logger.Logger
}

// NewService creates a new color service
func NewService(colors domain.ColorRepository, variants domain.VariantRepository, notifier *notify.Notifier, log *logger.Logger) *Service {
	return &Service{
		colors:   colors,
		variants: variants,
		notifier: notifier,
		validate: appvalidator.Get(),
		logger:   log,
	}
}

// Create creates a new color. Names, solid codes and half pairs are unique
// among non-deleted colors.
func (s *Service) Create(ctx context.Context, in domain.ColorInput) (*domain.Color, error) {
	if err := s.validate.Struct(in); err != nil {
		s.logger.Debugf("Color validation failed: %v", err)
		return nil, domain.Invalid("%s", appvalidator.Describe(err))
	}

	color := &domain.Color{
		Name:   strings.TrimSpace(in.Name),
		Type:   in.Type,
		Code:   in.Code,
		Colors: in.Colors,
	}
	if err := normalize(color); err != nil {
		return nil, err
	}
	if err := s.checkUnique(ctx, color, uuid.Nil); err != nil {
		return nil, err
	}

	if err := s.colors.Create(ctx, color); err != nil {
		s.logger.Error("Failed to create color", err)
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"color_id": color.ID,
		"name":     color.Name,
	}).Info("Color created successfully")

	s.notifier.ColorChanged(ctx, domain.EventColorCreated, color.ID)

	return color, nil
}

// Update applies the allow-listed fields of in. The effective type is the
// new type when given, the stored one otherwise.
func (s *Service) Update(ctx context.Context, id uuid.UUID, in domain.ColorUpdate) (*domain.Color, error) {
	if err := s.validate.Struct(in); err != nil {
		s.logger.Debugf("Color validation failed: %v", err)
		return nil, domain.Invalid("%s", appvalidator.Describe(err))
	}

	color, err := s.colors.GetByID(ctx, id)
	if err != nil {
		return nil, s.lookupError(err, id)
	}

	if in.Name != nil {
		color.Name = strings.TrimSpace(*in.Name)
	}
	if in.Type != nil {
		color.Type = *in.Type
	}
	if in.Code != nil {
		color.Code = *in.Code
	}
	if in.Colors != nil {
		color.Colors = in.Colors
	}
	if err := normalize(color); err != nil {
		return nil, err
	}
	if err := s.checkUnique(ctx, color, color.ID); err != nil {
		return nil, err
	}

	if err := s.colors.Update(ctx, color); err != nil {
		s.logger.Error("Failed to update color", err)
		return nil, domain.NotFoundAs(err, notFoundMessage)
	}

	s.logger.WithFields(map[string]interface{}{
		"color_id": color.ID,
		"name":     color.Name,
	}).Info("Color updated successfully")

	s.notifier.ColorChanged(ctx, domain.EventColorUpdated, color.ID)

	return color, nil
}

// Get retrieves a color, soft-deleted ones included
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Color, error) {
	color, err := s.colors.GetByIDAll(ctx, id)
	if err != nil {
		return nil, s.lookupError(err, id)
	}
	return color, nil
}

// List retrieves a page of non-deleted colors, newest first by default
func (s *Service) List(ctx context.Context, q query.ColorQuery) (*domain.PageResult[*domain.Color], error) {
	sort := query.ColorSorts.Resolve(q.Sort, query.NewestFirst)

	colors, total, err := s.colors.List(ctx, q.Filter, sort, q.Page)
	if err != nil {
		s.logger.Error("Failed to list colors", err)
		return nil, err
	}
	return &domain.PageResult[*domain.Color]{Items: colors, Total: total, Page: q.Page}, nil
}

// ListDeleted retrieves a page of soft-deleted colors, most recently deleted first by default
func (s *Service) ListDeleted(ctx context.Context, q query.ColorQuery) (*domain.PageResult[*domain.Color], error) {
	sort := query.ColorSorts.Resolve(q.Sort, query.RecentlyDeletedFirst)

	colors, total, err := s.colors.ListDeleted(ctx, q.Filter, sort, q.Page)
	if err != nil {
		s.logger.Error("Failed to list deleted colors", err)
		return nil, err
	}
	return &domain.PageResult[*domain.Color]{Items: colors, Total: total, Page: q.Page}, nil
}

// normalize upper-cases hex codes and keeps only the fields of the color's type
func normalize(c *domain.Color) error {
	switch c.Type {
	case domain.ColorSolid:
		c.Code = strings.ToUpper(strings.TrimSpace(c.Code))
		if c.Code == "" {
			return domain.Invalid("code is required for solid colors")
		}
		c.Colors = []string{}
	case domain.ColorHalf:
		if len(c.Colors) != 2 {
			return domain.Invalid("colors must have exactly 2 items for half colors")
		}
		pair := make([]string, 2)
		for i, code := range c.Colors {
			pair[i] = strings.ToUpper(strings.TrimSpace(code))
		}
		c.Colors = pair
		c.Code = ""
	default:
		return domain.Invalid("type must be one of: solid half")
	}
	return nil
}

func (s *Service) checkUnique(ctx context.Context, c *domain.Color, excludeID uuid.UUID) error {
	existing, err := s.colors.FindByName(ctx, c.Name, excludeID)
	if err := s.found(err); err != nil {
		return err
	}
	if existing != nil {
		return domain.Conflict("Color name %q already exists", c.Name)
	}

	switch c.Type {
	case domain.ColorSolid:
		existing, err := s.colors.FindSolidByCode(ctx, c.Code, excludeID)
		if err := s.found(err); err != nil {
			return err
		}
		if existing != nil {
			return domain.Conflict("Color code %s is already used by color %q", c.Code, existing.Name)
		}
	case domain.ColorHalf:
		halves, err := s.colors.ListHalf(ctx, excludeID)
		if err != nil {
			s.logger.Error("Failed to list half colors", err)
			return err
		}
		for _, half := range halves {
			if domain.SamePair(c.Colors, half.Colors) {
				return domain.Conflict("This color pair is already used by color %q", half.Name)
			}
		}
	}
	return nil
}

// found filters out the miss of a uniqueness lookup
func (s *Service) found(err error) error {
	if err == nil || err == domain.ErrNotFound {
		return nil
	}
	s.logger.Error("Failed to check color uniqueness", err)
	return err
}

func (s *Service) lookupError(err error, id uuid.UUID) error {
	if err == domain.ErrNotFound {
		s.logger.Debugf("Color not found: %s", id)
	} else {
		s.logger.Error("Failed to get color", err)
	}
	return domain.NotFoundAs(err, notFoundMessage)
}
