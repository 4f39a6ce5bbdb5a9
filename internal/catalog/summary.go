// Package catalog shapes products and variants into the payloads served by
// the public and admin APIs. Every function is a pure transformation.
package catalog

import (
	"github.com/google/uuid"

	"github.com/Pesokrava/storefront_catalog/internal/domain"
)

// ColorSummary is the display data of one distinct variant color
type ColorSummary struct {
	ID     uuid.UUID        `json:"id"`
	Name   string           `json:"name"`
	Code   string           `json:"code,omitempty"`
	Type   domain.ColorType `json:"type,omitempty"`
	Colors []string         `json:"colors"`
}

// PriceRange spans the final prices of a variant list. Min and Max are nil
// when the list is empty.
type PriceRange struct {
	Min           *float64 `json:"min"`
	Max           *float64 `json:"max"`
	IsSinglePrice bool     `json:"isSinglePrice"`
}

// DiscountSummary reports the largest discount of a variant list
type DiscountSummary struct {
	HasDiscount bool    `json:"hasDiscount"`
	MaxPercent  float64 `json:"maxPercent"`
}

// VariantSummary is the list-page aggregate of a product's variants
type VariantSummary struct {
	Total      int             `json:"total"`
	Active     int             `json:"active"`
	Colors     []ColorSummary  `json:"colors"`
	ColorCount int             `json:"colorCount"`
	SizeCount  int             `json:"sizeCount"`
	PriceRange PriceRange      `json:"priceRange"`
	Discount   DiscountSummary `json:"discount"`
}

// EmptySummary is the summary of a product without variants
func EmptySummary() VariantSummary {
	return VariantSummary{
		Colors:     []ColorSummary{},
		PriceRange: PriceRange{IsSinglePrice: true},
	}
}

// Summarize aggregates variants. Colors keep first-seen order.
func Summarize(variants []*domain.Variant) VariantSummary {
	summary := EmptySummary()
	if len(variants) == 0 {
		return summary
	}

	seenColors := make(map[uuid.UUID]struct{})
	seenSizes := make(map[uuid.UUID]struct{})

	for _, v := range variants {
		if v == nil {
			continue
		}
		summary.Total++
		if v.IsActive {
			summary.Active++
		}

		if v.ColorID != uuid.Nil {
			if _, ok := seenColors[v.ColorID]; !ok {
				seenColors[v.ColorID] = struct{}{}
				summary.Colors = append(summary.Colors, colorSummary(v))
			}
		}

		for _, s := range v.Sizes {
			if s.SizeID != uuid.Nil {
				seenSizes[s.SizeID] = struct{}{}
			}
		}

		price := v.PriceFinal
		if summary.PriceRange.Min == nil || price < *summary.PriceRange.Min {
			summary.PriceRange.Min = floatPtr(price)
		}
		if summary.PriceRange.Max == nil || price > *summary.PriceRange.Max {
			summary.PriceRange.Max = floatPtr(price)
		}

		if v.PercentDiscount > 0 {
			summary.Discount.HasDiscount = true
			if v.PercentDiscount > summary.Discount.MaxPercent {
				summary.Discount.MaxPercent = v.PercentDiscount
			}
		}
	}

	summary.ColorCount = len(seenColors)
	summary.SizeCount = len(seenSizes)
	summary.PriceRange.IsSinglePrice = summary.PriceRange.Min == nil ||
		*summary.PriceRange.Min == *summary.PriceRange.Max

	return summary
}

func colorSummary(v *domain.Variant) ColorSummary {
	cs := ColorSummary{ID: v.ColorID, Colors: []string{}}
	if v.Color != nil {
		cs.Name = v.Color.Name
		cs.Code = v.Color.Code
		cs.Type = v.Color.Type
		if v.Color.Colors != nil {
			cs.Colors = v.Color.Colors
		}
	}
	return cs
}

// Stats counts a product's variants by lifecycle state
type Stats struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Inactive int `json:"inactive"`
	Deleted  int `json:"deleted"`
}

// VariantStats counts variants including soft-deleted ones. Active and
// Inactive only count non-deleted variants.
func VariantStats(variants []*domain.Variant) Stats {
	var stats Stats
	for _, v := range variants {
		if v == nil {
			continue
		}
		stats.Total++
		switch {
		case v.IsDeleted():
			stats.Deleted++
		case v.IsActive:
			stats.Active++
		default:
			stats.Inactive++
		}
	}
	return stats
}

// ActiveVariants returns the variants that are active and not deleted
func ActiveVariants(variants []*domain.Variant) []*domain.Variant {
	active := make([]*domain.Variant, 0, len(variants))
	for _, v := range variants {
		if v != nil && v.IsActive && !v.IsDeleted() {
			active = append(active, v)
		}
	}
	return active
}

func floatPtr(f float64) *float64 {
	return &f
}
