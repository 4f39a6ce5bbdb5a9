package domain

import "github.com/google/uuid"

// Request payloads accepted by the admin API. Update payloads use nil to
// mean "leave unchanged"; fields not listed here cannot be written.

// ProductInput creates a product
type ProductInput struct {
	Name        string     `json:"name" validate:"required,max=1000"`
	Description string     `json:"description" validate:"required,max=1000"`
	CategoryID  *uuid.UUID `json:"categoryId"`
	BrandID     *uuid.UUID `json:"brandId"`
	Images      []Image    `json:"images" validate:"omitempty,dive"`
	IsActive    *bool      `json:"isActive"`
}

// ProductUpdate changes the editable fields of a product
type ProductUpdate struct {
	Name        *string    `json:"name" validate:"omitempty,min=1,max=1000"`
	Description *string    `json:"description" validate:"omitempty,min=1,max=1000"`
	CategoryID  *uuid.UUID `json:"categoryId"`
	BrandID     *uuid.UUID `json:"brandId"`
	Images      []Image    `json:"images" validate:"omitempty,dive"`
	IsActive    *bool      `json:"isActive"`
}

// VariantInput creates a variant
type VariantInput struct {
	ProductID       uuid.UUID     `json:"productId" validate:"required"`
	ColorID         uuid.UUID     `json:"colorId" validate:"required"`
	Gender          Gender        `json:"gender" validate:"required,oneof=male female unisex"`
	Price           float64       `json:"price" validate:"gte=0"`
	PercentDiscount float64       `json:"percentDiscount" validate:"gte=0,lte=100"`
	Sizes           []VariantSize `json:"sizes" validate:"omitempty,dive"`
	Images          []Image       `json:"images" validate:"omitempty,dive"`
	IsActive        *bool         `json:"isActive"`
}

// VariantUpdate changes the editable fields of a variant
type VariantUpdate struct {
	ColorID         *uuid.UUID    `json:"colorId"`
	Gender          *Gender       `json:"gender" validate:"omitempty,oneof=male female unisex"`
	Price           *float64      `json:"price" validate:"omitempty,gte=0"`
	PercentDiscount *float64      `json:"percentDiscount" validate:"omitempty,gte=0,lte=100"`
	Sizes           []VariantSize `json:"sizes" validate:"omitempty,dive"`
	Images          []Image       `json:"images" validate:"omitempty,dive"`
	IsActive        *bool         `json:"isActive"`
}

// ColorInput creates a color
type ColorInput struct {
	Name   string    `json:"name" validate:"required,max=100"`
	Type   ColorType `json:"type" validate:"required,oneof=solid half"`
	Code   string    `json:"code" validate:"omitempty,hexcolor"`
	Colors []string  `json:"colors" validate:"omitempty,len=2,dive,hexcolor"`
}

// ColorUpdate changes the editable fields of a color
type ColorUpdate struct {
	Name   *string    `json:"name" validate:"omitempty,min=1,max=100"`
	Type   *ColorType `json:"type" validate:"omitempty,oneof=solid half"`
	Code   *string    `json:"code" validate:"omitempty,hexcolor"`
	Colors []string   `json:"colors" validate:"omitempty,len=2,dive,hexcolor"`
}

// StatusInput flips the active flag of a product or variant. An omitted
// Cascade applies the flag to the product's variants too.
type StatusInput struct {
	IsActive *bool `json:"isActive" validate:"required"`
	// Cascade defaults to true
	Cascade *bool `json:"cascade"`
}
