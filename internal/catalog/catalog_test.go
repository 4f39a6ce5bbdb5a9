package catalog

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pesokrava/storefront_catalog/internal/domain"
)

func newVariant(color *domain.Color, price, discount float64, active bool, sizeIDs ...uuid.UUID) *domain.Variant {
	v := &domain.Variant{
		ID:              uuid.New(),
		ColorID:         color.ID,
		Color:           color,
		Gender:          domain.GenderUnisex,
		Price:           price,
		PercentDiscount: discount,
		PriceFinal:      FinalPrice(price, discount),
		IsActive:        active,
	}
	for _, id := range sizeIDs {
		v.Sizes = append(v.Sizes, domain.VariantSize{SizeID: id, Quantity: 3, SKU: "SKU-" + id.String()[:4]})
	}
	return v
}

func TestFinalPrice(t *testing.T) {
	tests := []struct {
		name     string
		price    float64
		discount float64
		expected float64
	}{
		{"no discount", 150000, 0, 150000},
		{"fifteen percent", 100000, 15, 85000},
		{"rounds to cents", 19.99, 15, 16.99},
		{"half rounds away from zero", 0.125, 0, 0.13},
		{"full discount", 250, 100, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FinalPrice(tt.price, tt.discount))
		})
	}
}

func TestSummarize_Empty(t *testing.T) {
	summary := Summarize(nil)

	assert.Equal(t, 0, summary.Total)
	assert.Equal(t, 0, summary.Active)
	assert.NotNil(t, summary.Colors)
	assert.Empty(t, summary.Colors)
	assert.Equal(t, 0, summary.ColorCount)
	assert.Equal(t, 0, summary.SizeCount)
	assert.Nil(t, summary.PriceRange.Min)
	assert.Nil(t, summary.PriceRange.Max)
	assert.True(t, summary.PriceRange.IsSinglePrice)
	assert.False(t, summary.Discount.HasDiscount)
	assert.Equal(t, float64(0), summary.Discount.MaxPercent)
	assert.Equal(t, EmptySummary(), summary)
}

func TestSummarize_DistinctColorsAndSizes(t *testing.T) {
	red := &domain.Color{ID: uuid.New(), Name: "Red", Type: domain.ColorSolid, Code: "#FF0000"}
	split := &domain.Color{ID: uuid.New(), Name: "Black/White", Type: domain.ColorHalf, Colors: []string{"#000000", "#FFFFFF"}}
	s1, s2, s3 := uuid.New(), uuid.New(), uuid.New()

	summary := Summarize([]*domain.Variant{
		newVariant(red, 200000, 0, true, s1, s2),
		newVariant(split, 100000, 10, false, s2, s3),
		newVariant(red, 300000, 25, true, s1),
	})

	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 2, summary.Active)
	assert.Equal(t, 2, summary.ColorCount)
	assert.Equal(t, 3, summary.SizeCount)
	require.Len(t, summary.Colors, 2)
	assert.Equal(t, red.ID, summary.Colors[0].ID)
	assert.Equal(t, "#FF0000", summary.Colors[0].Code)
	assert.Equal(t, split.ID, summary.Colors[1].ID)
	assert.Equal(t, []string{"#000000", "#FFFFFF"}, summary.Colors[1].Colors)

	require.NotNil(t, summary.PriceRange.Min)
	require.NotNil(t, summary.PriceRange.Max)
	assert.Equal(t, float64(90000), *summary.PriceRange.Min)
	assert.Equal(t, float64(225000), *summary.PriceRange.Max)
	assert.False(t, summary.PriceRange.IsSinglePrice)

	assert.True(t, summary.Discount.HasDiscount)
	assert.Equal(t, float64(25), summary.Discount.MaxPercent)
}

func TestSummarize_SinglePrice(t *testing.T) {
	color := &domain.Color{ID: uuid.New(), Name: "Blue"}

	summary := Summarize([]*domain.Variant{
		newVariant(color, 120000, 0, true),
		newVariant(&domain.Color{ID: uuid.New(), Name: "Green"}, 120000, 0, true),
	})

	assert.True(t, summary.PriceRange.IsSinglePrice)
	assert.False(t, summary.Discount.HasDiscount)
}

func TestVariantStats(t *testing.T) {
	color := &domain.Color{ID: uuid.New()}
	deletedAt := time.Now()

	deleted := newVariant(color, 10, 0, false)
	deleted.DeletedAt = &deletedAt

	stats := VariantStats([]*domain.Variant{
		newVariant(color, 10, 0, true),
		newVariant(color, 10, 0, false),
		deleted,
	})

	assert.Equal(t, Stats{Total: 3, Active: 1, Inactive: 1, Deleted: 1}, stats)
}

func TestToPublicView_HeadlinePriceFromCheapestActive(t *testing.T) {
	color := &domain.Color{ID: uuid.New(), Name: "Red"}
	deletedBy := uuid.New()

	cheapestInactive := newVariant(color, 50000, 0, false)
	cheapest := newVariant(color, 200000, 50, true)
	other := newVariant(color, 150000, 10, true)

	product := &domain.Product{
		ID:        uuid.New(),
		Name:      "Runner",
		Slug:      "runner",
		DeletedBy: &deletedBy,
		CreatedAt: time.Now(),
		Variants:  []*domain.Variant{cheapestInactive, other, cheapest},
	}

	view := ToPublicView(product)

	require.Len(t, view.Variants, 2)
	assert.Equal(t, other.ID, view.Variants[0].ID)
	assert.Equal(t, float64(100000), view.Price)
	assert.Equal(t, float64(200000), view.OriginalPrice)
	assert.Equal(t, float64(50), view.DiscountPercent)
	assert.True(t, view.HasDiscount)
	assert.Equal(t, float64(50), view.MaxDiscountPercent)
	assert.Equal(t, product.CreatedAt, view.CreatedAt)
}

func TestToPublicView_MainImage(t *testing.T) {
	color := &domain.Color{ID: uuid.New()}

	tests := []struct {
		name     string
		images   domain.Images
		variants func() []*domain.Variant
		expected string
	}{
		{
			name: "product image marked main",
			images: domain.Images{
				{URL: "https://cdn.test/a.jpg"},
				{URL: "https://cdn.test/b.jpg", IsMain: true},
			},
			expected: "https://cdn.test/b.jpg",
		},
		{
			name:     "first product image",
			images:   domain.Images{{URL: "https://cdn.test/a.jpg"}, {URL: "https://cdn.test/b.jpg"}},
			expected: "https://cdn.test/a.jpg",
		},
		{
			name: "first variant with images",
			variants: func() []*domain.Variant {
				bare := newVariant(color, 10, 0, true)
				withImages := newVariant(color, 20, 0, true)
				withImages.Images = domain.Images{
					{URL: "https://cdn.test/v1.jpg"},
					{URL: "https://cdn.test/v2.jpg", IsMain: true},
				}
				return []*domain.Variant{bare, withImages}
			},
			expected: "https://cdn.test/v2.jpg",
		},
		{
			name:     "none",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			product := &domain.Product{ID: uuid.New(), Images: tt.images}
			if tt.variants != nil {
				product.Variants = tt.variants()
			}
			assert.Equal(t, tt.expected, ToPublicView(product).MainImage)
		})
	}
}

func TestToPublicListItem_NoVariants(t *testing.T) {
	item := ToPublicListItem(&domain.Product{ID: uuid.New(), Name: "Empty"})

	assert.Nil(t, item.Variants)
	assert.Equal(t, EmptySummary(), item.VariantSummary)
	assert.Equal(t, float64(0), item.Price)
	assert.NotNil(t, item.Images)
}

func TestToPublicListItem_SummarizesActiveVariants(t *testing.T) {
	color := &domain.Color{ID: uuid.New()}
	product := &domain.Product{
		ID: uuid.New(),
		Variants: []*domain.Variant{
			newVariant(color, 100, 0, true),
			newVariant(color, 10, 0, false),
		},
	}

	item := ToPublicListItem(product)

	assert.Nil(t, item.Variants)
	assert.Equal(t, 1, item.VariantSummary.Total)
	assert.Equal(t, float64(100), *item.VariantSummary.PriceRange.Min)
}

func TestToAdminListItem(t *testing.T) {
	color := &domain.Color{ID: uuid.New()}
	product := &domain.Product{
		ID:       uuid.New(),
		Variants: []*domain.Variant{newVariant(color, 100, 0, true), newVariant(color, 10, 0, false)},
	}

	item := ToAdminListItem(product)

	assert.Nil(t, item.Product.Variants)
	assert.Len(t, product.Variants, 2)
	assert.Equal(t, 2, item.VariantSummary.Total)
	assert.Equal(t, 1, item.VariantSummary.Active)
}
