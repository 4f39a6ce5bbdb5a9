package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Pesokrava/storefront_catalog/internal/domain"
)

const productSelect = `
	SELECT p.id, p.name, p.slug, p.description, p.category_id, p.brand_id, p.images,
		p.total_quantity, p.stock_status, p.rating, p.num_reviews, p.is_active,
		p.created_at, p.updated_at, p.deleted_at, p.deleted_by,
		c.name AS category_name, b.name AS brand_name, b.logo AS brand_logo
	FROM products p
	LEFT JOIN categories c ON c.id = p.category_id
	LEFT JOIN brands b ON b.id = p.brand_id`

// productRow is a product joined with its category and brand display data
type productRow struct {
	domain.Product
	CategoryName sql.NullString `db:"category_name"`
	BrandName    sql.NullString `db:"brand_name"`
	BrandLogo    sql.NullString `db:"brand_logo"`
}

func (r *productRow) toDomain() *domain.Product {
	p := r.Product
	if p.CategoryID != nil && r.CategoryName.Valid {
		p.Category = &domain.CategoryRef{ID: *p.CategoryID, Name: r.CategoryName.String}
	}
	if p.BrandID != nil && r.BrandName.Valid {
		p.Brand = &domain.BrandRef{ID: *p.BrandID, Name: r.BrandName.String, Logo: r.BrandLogo.String}
	}
	if p.Images == nil {
		p.Images = domain.Images{}
	}
	return &p
}

// ProductRepository implements domain.ProductRepository for PostgreSQL
type ProductRepository struct {
	db *sqlx.DB
}

// NewProductRepository creates a new PostgreSQL product repository
func NewProductRepository(db *sqlx.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// Create creates a new product
func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	query := `
		INSERT INTO products (name, slug, description, category_id, brand_id, images,
			total_quantity, stock_status, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, rating, num_reviews, created_at, updated_at
	`

	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now
	if product.StockStatus == "" {
		product.StockStatus = domain.StockOutOfStock
	}

	return r.db.QueryRowxContext(
		ctx,
		query,
		product.Name,
		product.Slug,
		product.Description,
		product.CategoryID,
		product.BrandID,
		product.Images,
		product.TotalQuantity,
		product.StockStatus,
		product.IsActive,
		product.CreatedAt,
		product.UpdatedAt,
	).Scan(
		&product.ID,
		&product.Rating,
		&product.NumReviews,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
}

func (r *ProductRepository) getOne(ctx context.Context, where string, arg interface{}) (*domain.Product, error) {
	var row productRow
	err := r.db.GetContext(ctx, &row, productSelect+where, arg)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return row.toDomain(), nil
}

// GetByID retrieves a non-deleted product by ID
func (r *ProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	return r.getOne(ctx, " WHERE p.id = $1 AND p.deleted_at IS NULL", id)
}

// GetByIDAll retrieves a product by ID whether or not it is soft-deleted
func (r *ProductRepository) GetByIDAll(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	return r.getOne(ctx, " WHERE p.id = $1", id)
}

// GetBySlug retrieves a non-deleted product by slug
func (r *ProductRepository) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	return r.getOne(ctx, " WHERE p.slug = $1 AND p.deleted_at IS NULL", slug)
}

// SlugTaken reports whether another non-deleted product uses slug
func (r *ProductRepository) SlugTaken(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM products WHERE slug = $1 AND deleted_at IS NULL AND id <> $2)`

	var taken bool
	if err := r.db.GetContext(ctx, &taken, query, slug, excludeID); err != nil {
		return false, err
	}
	return taken, nil
}

// List retrieves a page of non-deleted products and the total match count
func (r *ProductRepository) List(ctx context.Context, filter domain.ProductFilter, sort domain.SortSpec, page domain.Page) ([]*domain.Product, int, error) {
	return r.list(ctx, filter, sort, page, activeView)
}

// ListDeleted retrieves a page of soft-deleted products and the total match count
func (r *ProductRepository) ListDeleted(ctx context.Context, filter domain.ProductFilter, sort domain.SortSpec, page domain.Page) ([]*domain.Product, int, error) {
	return r.list(ctx, filter, sort, page, deletedView)
}

func (r *ProductRepository) list(ctx context.Context, filter domain.ProductFilter, sort domain.SortSpec, page domain.Page, v view) ([]*domain.Product, int, error) {
	w := productWhere(filter, v)
	where := w.sql()

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM products p`+where, w.args...); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []*domain.Product{}, 0, nil
	}

	query := productSelect + where + orderBy(sort, productSortColumns, "p.id ASC") + limitOffset(w, page)

	var rows []productRow
	if err := r.db.SelectContext(ctx, &rows, query, w.args...); err != nil {
		return nil, 0, err
	}

	products := make([]*domain.Product, 0, len(rows))
	for i := range rows {
		products = append(products, rows[i].toDomain())
	}
	return products, total, nil
}

// Update updates the editable fields of a non-deleted product
func (r *ProductRepository) Update(ctx context.Context, product *domain.Product) error {
	query := `
		UPDATE products
		SET name = $1, slug = $2, description = $3, category_id = $4, brand_id = $5,
			images = $6, is_active = $7, updated_at = $8
		WHERE id = $9 AND deleted_at IS NULL
		RETURNING updated_at
	`

	product.UpdatedAt = time.Now()

	err := r.db.QueryRowxContext(
		ctx,
		query,
		product.Name,
		product.Slug,
		product.Description,
		product.CategoryID,
		product.BrandID,
		product.Images,
		product.IsActive,
		product.UpdatedAt,
		product.ID,
	).Scan(&product.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}

	return nil
}

// SetActive sets is_active on a non-deleted product
func (r *ProductRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	query := `
		UPDATE products
		SET is_active = $1, updated_at = $2
		WHERE id = $3 AND deleted_at IS NULL
	`
	return execOne(ctx, r.db, query, active, time.Now(), id)
}

// SoftDelete soft-deletes a product and deactivates it
func (r *ProductRepository) SoftDelete(ctx context.Context, id uuid.UUID, actorID *uuid.UUID) error {
	query := `
		UPDATE products
		SET deleted_at = $1, deleted_by = $2, is_active = FALSE, updated_at = $1
		WHERE id = $3 AND deleted_at IS NULL
	`
	return execOne(ctx, r.db, query, time.Now(), actorID, id)
}

// Restore clears the soft-delete stamps, stores slug and activates the product
func (r *ProductRepository) Restore(ctx context.Context, id uuid.UUID, slug string) error {
	query := `
		UPDATE products
		SET deleted_at = NULL, deleted_by = NULL, is_active = TRUE, slug = $1, updated_at = $2
		WHERE id = $3
	`
	return execOne(ctx, r.db, query, slug, time.Now(), id)
}

// RefreshStock recalculates total quantity and stock status from the sizes
// of active, non-deleted variants
func (r *ProductRepository) RefreshStock(ctx context.Context, id uuid.UUID, lowStockThreshold int) (*domain.StockInfo, error) {
	sumQuery := `
		SELECT COALESCE(SUM(vs.quantity), 0)
		FROM variants v
		JOIN variant_sizes vs ON vs.variant_id = v.id
		WHERE v.product_id = $1 AND v.is_active = TRUE AND v.deleted_at IS NULL
	`

	var total int
	if err := r.db.GetContext(ctx, &total, sumQuery, id); err != nil {
		return nil, err
	}

	info := &domain.StockInfo{
		TotalQuantity: total,
		StockStatus:   domain.StockStatusFor(total, lowStockThreshold),
	}

	updateQuery := `
		UPDATE products
		SET total_quantity = $1, stock_status = $2, updated_at = $3
		WHERE id = $4 AND deleted_at IS NULL
	`
	if err := execOne(ctx, r.db, updateQuery, info.TotalQuantity, info.StockStatus, time.Now(), id); err != nil {
		return nil, err
	}

	return info, nil
}

// execOne runs a statement that must touch at least one row
func execOne(ctx context.Context, db sqlx.ExecerContext, query string, args ...interface{}) error {
	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return domain.ErrNotFound
	}

	return nil
}
