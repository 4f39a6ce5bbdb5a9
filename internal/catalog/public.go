package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/Pesokrava/storefront_catalog/internal/domain"
)

// PublicSize is a size entry as shown to shoppers
type PublicSize struct {
	SizeID      uuid.UUID       `json:"sizeId"`
	Size        *domain.SizeRef `json:"sizeInfo"`
	Quantity    int             `json:"quantity"`
	SKU         string          `json:"sku"`
	IsAvailable bool            `json:"isAvailable"`
}

// PublicVariant is an active variant as shown to shoppers
type PublicVariant struct {
	ID              uuid.UUID     `json:"id"`
	Color           ColorSummary  `json:"color"`
	Gender          domain.Gender `json:"gender"`
	Price           float64       `json:"price"`
	PercentDiscount float64       `json:"percentDiscount"`
	PriceFinal      float64       `json:"priceFinal"`
	Images          domain.Images `json:"images"`
	Sizes           []PublicSize  `json:"sizes"`
}

// PublicProduct is a product without administrative fields. The headline
// price fields come from the active variant with the lowest final price.
type PublicProduct struct {
	ID            uuid.UUID           `json:"id"`
	Name          string              `json:"name"`
	Slug          string              `json:"slug"`
	Description   string              `json:"description"`
	Category      *domain.CategoryRef `json:"category"`
	Brand         *domain.BrandRef    `json:"brand"`
	Images        domain.Images       `json:"images"`
	Rating        float64             `json:"rating"`
	NumReviews    int                 `json:"numReviews"`
	StockStatus   domain.StockStatus  `json:"stockStatus"`
	TotalQuantity int                 `json:"totalQuantity"`
	IsActive      bool                `json:"isActive"`
	CreatedAt     time.Time           `json:"createdAt"`

	Price              float64 `json:"price"`
	OriginalPrice      float64 `json:"originalPrice"`
	DiscountPercent    float64 `json:"discountPercent"`
	HasDiscount        bool    `json:"hasDiscount"`
	MaxDiscountPercent float64 `json:"maxDiscountPercent"`
	MainImage          string  `json:"mainImage,omitempty"`

	Variants []PublicVariant `json:"variants,omitempty"`
}

// PublicListItem is a public product on a list page
type PublicListItem struct {
	PublicProduct
	VariantSummary VariantSummary `json:"variantSummary"`
	TotalSold      *int           `json:"totalSold,omitempty"`
}

// AdminListItem is a product on an admin list page
type AdminListItem struct {
	domain.Product
	VariantSummary VariantSummary `json:"variantSummary"`
}

// AdminProduct is the admin detail of a product, soft-deleted variants included
type AdminProduct struct {
	domain.Product
	VariantStats Stats `json:"variantStats"`
	IsDeleted    bool  `json:"isDeleted"`
}

// ToPublicView strips administrative data from p and exposes its active variants
func ToPublicView(p *domain.Product) PublicProduct {
	view := PublicProduct{
		ID:            p.ID,
		Name:          p.Name,
		Slug:          p.Slug,
		Description:   p.Description,
		Category:      p.Category,
		Brand:         p.Brand,
		Images:        p.Images,
		Rating:        p.Rating,
		NumReviews:    p.NumReviews,
		StockStatus:   p.StockStatus,
		TotalQuantity: p.TotalQuantity,
		IsActive:      p.IsActive,
		CreatedAt:     p.CreatedAt,
	}
	if view.Images == nil {
		view.Images = domain.Images{}
	}

	active := ActiveVariants(p.Variants)
	if len(active) == 0 {
		view.MainImage = mainImage(view.Images, nil)
		return view
	}

	view.Variants = make([]PublicVariant, 0, len(active))
	var cheapest *domain.Variant
	for _, v := range active {
		view.Variants = append(view.Variants, publicVariant(v))

		if cheapest == nil || v.PriceFinal < cheapest.PriceFinal {
			cheapest = v
		}
		if v.PercentDiscount > view.MaxDiscountPercent {
			view.MaxDiscountPercent = v.PercentDiscount
		}
	}

	view.Price = cheapest.PriceFinal
	view.OriginalPrice = cheapest.Price
	view.DiscountPercent = cheapest.PercentDiscount
	view.HasDiscount = cheapest.PercentDiscount > 0
	view.MainImage = mainImage(view.Images, active)

	return view
}

// ToPublicListItem is the public view of p with variants replaced by their summary
func ToPublicListItem(p *domain.Product) PublicListItem {
	view := ToPublicView(p)
	view.Variants = nil

	return PublicListItem{
		PublicProduct:  view,
		VariantSummary: Summarize(ActiveVariants(p.Variants)),
	}
}

// ToAdminListItem keeps every field of p and replaces its variants by their summary
func ToAdminListItem(p *domain.Product) AdminListItem {
	item := AdminListItem{
		Product:        *p,
		VariantSummary: Summarize(p.Variants),
	}
	item.Product.Variants = nil
	return item
}

// ToAdminDetail wraps p with variant lifecycle counts
func ToAdminDetail(p *domain.Product) AdminProduct {
	return AdminProduct{
		Product:      *p,
		VariantStats: VariantStats(p.Variants),
		IsDeleted:    p.IsDeleted(),
	}
}

func publicVariant(v *domain.Variant) PublicVariant {
	pv := PublicVariant{
		ID:              v.ID,
		Color:           colorSummary(v),
		Gender:          v.Gender,
		Price:           v.Price,
		PercentDiscount: v.PercentDiscount,
		PriceFinal:      v.PriceFinal,
		Images:          v.Images,
		Sizes:           make([]PublicSize, 0, len(v.Sizes)),
	}
	if pv.Images == nil {
		pv.Images = domain.Images{}
	}
	for _, s := range v.Sizes {
		pv.Sizes = append(pv.Sizes, PublicSize{
			SizeID:      s.SizeID,
			Size:        s.Size,
			Quantity:    s.Quantity,
			SKU:         s.SKU,
			IsAvailable: s.Quantity > 0,
		})
	}
	return pv
}

// mainImage picks the product image marked main, else the first product
// image, else the main or first image of the first variant that has images.
func mainImage(images domain.Images, variants []*domain.Variant) string {
	if url := pickImage(images); url != "" {
		return url
	}
	for _, v := range variants {
		if url := pickImage(v.Images); url != "" {
			return url
		}
	}
	return ""
}

func pickImage(images domain.Images) string {
	if len(images) == 0 {
		return ""
	}
	for _, img := range images {
		if img.IsMain {
			return img.URL
		}
	}
	return images[0].URL
}
