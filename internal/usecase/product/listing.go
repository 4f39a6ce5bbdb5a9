package product

import (
	"context"
	"strconv"

	"github.com/google/uuid"

	"github.com/Pesokrava/storefront_catalog/internal/catalog"
	"github.com/Pesokrava/storefront_catalog/internal/domain"
	"github.com/Pesokrava/storefront_catalog/internal/query"
	"github.com/Pesokrava/storefront_catalog/internal/repository/cache"
)

var byRating = domain.SortSpec{
	{Field: domain.SortFieldRating, Direction: domain.SortDesc},
	{Field: domain.SortFieldNumReviews, Direction: domain.SortDesc},
}

// ListPublic lists active products for shoppers
func (s *Service) ListPublic(ctx context.Context, q query.ProductQuery) (*domain.PageResult[catalog.PublicListItem], error) {
	key := cache.ListKey("public", q.CacheKey())

	var cached domain.PageResult[catalog.PublicListItem]
	if s.cacheGetList(ctx, key, &cached) {
		return &cached, nil
	}

	products, total, err := s.resolve(ctx, q, query.ScopePublic, false, query.NewestFirst)
	if err != nil {
		return nil, err
	}
	if total == 0 {
		return domain.EmptyPage[catalog.PublicListItem](q.Page), nil
	}

	if err := s.attachVariants(ctx, products, true); err != nil {
		return nil, err
	}

	result := &domain.PageResult[catalog.PublicListItem]{
		Items: publicItems(products),
		Total: total,
		Page:  q.Page,
	}
	s.cacheSetList(ctx, key, result)

	return result, nil
}

// ListAdmin lists non-deleted products, inactive ones included
func (s *Service) ListAdmin(ctx context.Context, q query.ProductQuery) (*domain.PageResult[catalog.AdminListItem], error) {
	return s.listAdmin(ctx, q, false, query.NewestFirst)
}

// ListDeleted lists soft-deleted products, most recently deleted first by default
func (s *Service) ListDeleted(ctx context.Context, q query.ProductQuery) (*domain.PageResult[catalog.AdminListItem], error) {
	return s.listAdmin(ctx, q, true, query.RecentlyDeletedFirst)
}

func (s *Service) listAdmin(ctx context.Context, q query.ProductQuery, deleted bool, fallback domain.SortSpec) (*domain.PageResult[catalog.AdminListItem], error) {
	products, total, err := s.resolve(ctx, q, query.ScopeAdmin, deleted, fallback)
	if err != nil {
		return nil, err
	}
	if total == 0 {
		return domain.EmptyPage[catalog.AdminListItem](q.Page), nil
	}

	if err := s.attachVariants(ctx, products, false); err != nil {
		return nil, err
	}

	items := make([]catalog.AdminListItem, 0, len(products))
	for _, p := range products {
		items = append(items, catalog.ToAdminListItem(p))
	}

	return &domain.PageResult[catalog.AdminListItem]{Items: items, Total: total, Page: q.Page}, nil
}

// resolve runs the two-phase listing query. Variant predicates are resolved
// to a product id set first; an empty set ends the listing without a
// product query. Deleted products lost their variants to the same cascade,
// so the deleted view matches variants in any state.
func (s *Service) resolve(ctx context.Context, q query.ProductQuery, scope query.Scope, deleted bool, fallback domain.SortSpec) ([]*domain.Product, int, error) {
	spec := query.BuildFilter(q, scope)
	spec.Variant.AnyState = deleted

	if !spec.Variant.IsEmpty() {
		ids, err := s.variants.ProductIDsMatching(ctx, spec.Variant)
		if err != nil {
			s.logger.Error("Failed to resolve variant filter", err)
			return nil, 0, err
		}
		if len(ids) == 0 {
			return nil, 0, nil
		}
		spec.Product.IDs = ids
	}

	sort := query.ProductSorts.Resolve(q.Sort, fallback)

	list := s.products.List
	if deleted {
		list = s.products.ListDeleted
	}

	products, total, err := list(ctx, spec.Product, sort, q.Page)
	if err != nil {
		s.logger.Error("Failed to list products", err)
		return nil, 0, err
	}
	return products, total, nil
}

// GetAdmin returns a product with every variant, soft-deleted ones included
func (s *Service) GetAdmin(ctx context.Context, id uuid.UUID) (*catalog.AdminProduct, error) {
	product, err := s.products.GetByIDAll(ctx, id)
	if err != nil {
		return nil, s.lookupError(err, id)
	}

	variants, err := s.variants.ListByProductAll(ctx, id)
	if err != nil {
		s.logger.Error("Failed to list product variants", err)
		return nil, err
	}
	product.Variants = variants

	detail := catalog.ToAdminDetail(product)
	return &detail, nil
}

// GetPublicByID returns the public view of an active product
func (s *Service) GetPublicByID(ctx context.Context, id uuid.UUID) (*catalog.PublicProduct, error) {
	return s.publicDetail(ctx, cache.ProductKey(id), func() (*domain.Product, error) {
		return s.products.GetByID(ctx, id)
	})
}

// GetPublicBySlug returns the public view of an active product by slug
func (s *Service) GetPublicBySlug(ctx context.Context, productSlug string) (*catalog.PublicProduct, error) {
	return s.publicDetail(ctx, cache.ProductSlugKey(productSlug), func() (*domain.Product, error) {
		return s.products.GetBySlug(ctx, productSlug)
	})
}

func (s *Service) publicDetail(ctx context.Context, key string, load func() (*domain.Product, error)) (*catalog.PublicProduct, error) {
	if s.cache != nil {
		var cached catalog.PublicProduct
		if err := s.cache.GetProduct(ctx, key, &cached); err == nil {
			s.logger.Debugf("Cache hit for %s", key)
			return &cached, nil
		}
	}

	product, err := load()
	if err != nil {
		if err != domain.ErrNotFound {
			s.logger.Error("Failed to get product", err)
		}
		return nil, domain.NotFoundAs(err, notFoundMessage)
	}
	if !product.IsActive {
		return nil, domain.NotFound(notFoundMessage)
	}

	variants, err := s.variants.ListByProduct(ctx, product.ID)
	if err != nil {
		s.logger.Error("Failed to list product variants", err)
		return nil, err
	}
	product.Variants = variants

	view := catalog.ToPublicView(product)

	if s.cache != nil {
		if err := s.cache.SetProduct(ctx, product.ID, key, view); err != nil {
			s.logger.Warnf("Failed to cache product %s: %v", product.ID, err)
		}
	}

	return &view, nil
}

// Featured lists active products rated at least the featured threshold
func (s *Service) Featured(ctx context.Context, limit int) ([]catalog.PublicListItem, error) {
	limit = s.highlightLimit(limit)
	minRating := s.settings.FeaturedMinRating

	return s.highlight(ctx, "featured", limit, func() ([]catalog.PublicListItem, error) {
		return s.activeItems(ctx, domain.ProductFilter{MinRating: &minRating}, byRating, limit)
	})
}

// NewArrivals lists the most recently created active products
func (s *Service) NewArrivals(ctx context.Context, limit int) ([]catalog.PublicListItem, error) {
	limit = s.highlightLimit(limit)

	return s.highlight(ctx, "new-arrivals", limit, func() ([]catalog.PublicListItem, error) {
		return s.activeItems(ctx, domain.ProductFilter{}, query.NewestFirst, limit)
	})
}

// BestSellers lists active products by quantity sold, falling back to new
// arrivals when nothing has sold yet
func (s *Service) BestSellers(ctx context.Context, limit int) ([]catalog.PublicListItem, error) {
	limit = s.highlightLimit(limit)

	return s.highlight(ctx, "best-sellers", limit, func() ([]catalog.PublicListItem, error) {
		sales, err := s.orders.TopSelling(ctx, limit)
		if err != nil {
			s.logger.Error("Failed to rank best sellers", err)
			return nil, err
		}
		if len(sales) == 0 {
			return s.activeItems(ctx, domain.ProductFilter{}, query.NewestFirst, limit)
		}

		ids := make([]uuid.UUID, 0, len(sales))
		for _, sale := range sales {
			ids = append(ids, sale.ProductID)
		}

		items, err := s.activeItems(ctx, domain.ProductFilter{IDs: ids}, query.NewestFirst, limit)
		if err != nil {
			return nil, err
		}

		byID := make(map[uuid.UUID]catalog.PublicListItem, len(items))
		for _, item := range items {
			byID[item.ID] = item
		}

		ranked := make([]catalog.PublicListItem, 0, len(items))
		for _, sale := range sales {
			item, ok := byID[sale.ProductID]
			if !ok {
				continue
			}
			sold := sale.TotalSold
			item.TotalSold = &sold
			ranked = append(ranked, item)
		}
		return ranked, nil
	})
}

// Related lists active products of the same category, best rated first
func (s *Service) Related(ctx context.Context, id uuid.UUID, limit int) ([]catalog.PublicListItem, error) {
	limit = s.highlightLimit(limit)

	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, s.lookupError(err, id)
	}
	if product.CategoryID == nil {
		return []catalog.PublicListItem{}, nil
	}

	filter := domain.ProductFilter{CategoryID: product.CategoryID, ExcludeID: &product.ID}
	return s.activeItems(ctx, filter, byRating, limit)
}

func (s *Service) activeItems(ctx context.Context, filter domain.ProductFilter, sort domain.SortSpec, limit int) ([]catalog.PublicListItem, error) {
	active := true
	filter.IsActive = &active

	products, _, err := s.products.List(ctx, filter, sort, domain.Page{Number: 1, Limit: limit})
	if err != nil {
		s.logger.Error("Failed to list products", err)
		return nil, err
	}
	if err := s.attachVariants(ctx, products, true); err != nil {
		return nil, err
	}
	return publicItems(products), nil
}

func (s *Service) highlight(ctx context.Context, name string, limit int, load func() ([]catalog.PublicListItem, error)) ([]catalog.PublicListItem, error) {
	key := cache.ListKey(name, strconv.Itoa(limit))

	var cached []catalog.PublicListItem
	if s.cacheGetList(ctx, key, &cached) {
		return cached, nil
	}

	items, err := load()
	if err != nil {
		return nil, err
	}
	s.cacheSetList(ctx, key, items)
	return items, nil
}

func (s *Service) highlightLimit(limit int) int {
	if limit <= 0 {
		limit = s.settings.HighlightLimit
	}
	if limit <= 0 {
		limit = 8
	}
	if limit > query.MaxLimit {
		limit = query.MaxLimit
	}
	return limit
}

// attachVariants loads the variants of products in one query
func (s *Service) attachVariants(ctx context.Context, products []*domain.Product, activeOnly bool) error {
	if len(products) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}

	variants, err := s.variants.ListByProducts(ctx, ids, activeOnly)
	if err != nil {
		s.logger.Error("Failed to list variants", err)
		return err
	}

	grouped := make(map[uuid.UUID][]*domain.Variant, len(products))
	for _, v := range variants {
		grouped[v.ProductID] = append(grouped[v.ProductID], v)
	}
	for _, p := range products {
		p.Variants = grouped[p.ID]
	}
	return nil
}

func publicItems(products []*domain.Product) []catalog.PublicListItem {
	items := make([]catalog.PublicListItem, 0, len(products))
	for _, p := range products {
		items = append(items, catalog.ToPublicListItem(p))
	}
	return items
}

func (s *Service) cacheGetList(ctx context.Context, key string, dst interface{}) bool {
	if s.cache == nil {
		return false
	}
	if err := s.cache.GetList(ctx, key, dst); err != nil {
		if err != domain.ErrNotFound {
			s.logger.Warnf("Failed to read listing cache %s: %v", key, err)
		}
		return false
	}
	s.logger.Debugf("Cache hit for %s", key)
	return true
}

func (s *Service) cacheSetList(ctx context.Context, key string, value interface{}) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetList(ctx, key, value); err != nil {
		s.logger.Warnf("Failed to cache listing %s: %v", key, err)
	}
}
