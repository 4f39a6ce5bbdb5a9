package domain

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ColorType distinguishes single-tone from two-tone colors
type ColorType string

const (
	ColorSolid ColorType = "solid"
	ColorHalf  ColorType = "half"
)

// Valid reports whether t is a known color type
func (t ColorType) Valid() bool {
	return t == ColorSolid || t == ColorHalf
}

// Color is a named swatch referenced by variants. Solid colors carry Code,
// half colors carry a pair of hex codes in Colors.
type Color struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	Name      string     `json:"name" db:"name"`
	Type      ColorType  `json:"type" db:"type"`
	Code      string     `json:"code,omitempty" db:"code"`
	Colors    []string   `json:"colors" db:"-"`
	CreatedAt time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time  `json:"updatedAt" db:"updated_at"`
	DeletedAt *time.Time `json:"deletedAt" db:"deleted_at"`
	DeletedBy *uuid.UUID `json:"deletedBy" db:"deleted_by"`
}

// IsDeleted reports whether the color is soft-deleted
func (c *Color) IsDeleted() bool {
	return c.DeletedAt != nil
}

// SamePair reports whether two hex pairs hold the same two codes in any order,
// ignoring case. Pairs that are not exactly two long never match.
func SamePair(a, b []string) bool {
	if len(a) != 2 || len(b) != 2 {
		return false
	}
	a0, a1 := strings.ToUpper(a[0]), strings.ToUpper(a[1])
	b0, b1 := strings.ToUpper(b[0]), strings.ToUpper(b[1])
	return (a0 == b0 && a1 == b1) || (a0 == b1 && a1 == b0)
}

// ColorFilter narrows color listings
type ColorFilter struct {
	Name string
	Type ColorType
}

// ColorRepository defines the interface for color data access
type ColorRepository interface {
	// Create inserts a new color
	Create(ctx context.Context, color *Color) error

	// GetByID retrieves a non-deleted color
	GetByID(ctx context.Context, id uuid.UUID) (*Color, error)

	// GetByIDAll retrieves a color including soft-deleted ones
	GetByIDAll(ctx context.Context, id uuid.UUID) (*Color, error)

	// Update writes name, type, code and pair of a non-deleted color
	Update(ctx context.Context, color *Color) error

	// SoftDelete stamps deleted_at/deleted_by
	SoftDelete(ctx context.Context, id uuid.UUID, actorID *uuid.UUID) error

	// Restore clears the soft-delete stamps
	Restore(ctx context.Context, id uuid.UUID) error

	// List retrieves a page of non-deleted colors
	List(ctx context.Context, filter ColorFilter, sort SortSpec, page Page) ([]*Color, int, error)

	// ListDeleted retrieves a page of soft-deleted colors
	ListDeleted(ctx context.Context, filter ColorFilter, sort SortSpec, page Page) ([]*Color, int, error)

	// FindByName returns the non-deleted color named name other than excludeID
	FindByName(ctx context.Context, name string, excludeID uuid.UUID) (*Color, error)

	// FindSolidByCode returns the non-deleted solid color with code other than excludeID
	FindSolidByCode(ctx context.Context, code string, excludeID uuid.UUID) (*Color, error)

	// ListHalf returns every non-deleted half color other than excludeID
	ListHalf(ctx context.Context, excludeID uuid.UUID) ([]*Color, error)
}
