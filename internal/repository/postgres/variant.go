package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/Pesokrava/storefront_catalog/internal/domain"
)

const variantSelect = `
	SELECT v.id, v.product_id, v.position, v.color_id, v.gender, v.price,
		v.percent_discount, v.price_final, v.images, v.is_active,
		v.created_at, v.updated_at, v.deleted_at, v.deleted_by,
		c.name AS color_name, c.type AS color_type, c.code AS color_code, c.colors AS color_colors
	FROM variants v
	LEFT JOIN colors c ON c.id = v.color_id`

type variantRow struct {
	domain.Variant
	ColorName   sql.NullString `db:"color_name"`
	ColorType   sql.NullString `db:"color_type"`
	ColorCode   sql.NullString `db:"color_code"`
	ColorColors pq.StringArray `db:"color_colors"`
}

func (r *variantRow) toDomain() *domain.Variant {
	v := r.Variant
	if r.ColorName.Valid {
		v.Color = &domain.Color{
			ID:     v.ColorID,
			Name:   r.ColorName.String,
			Type:   domain.ColorType(r.ColorType.String),
			Code:   r.ColorCode.String,
			Colors: []string(r.ColorColors),
		}
	}
	if v.Images == nil {
		v.Images = domain.Images{}
	}
	v.Sizes = []domain.VariantSize{}
	return &v
}

type variantSizeRow struct {
	VariantID uuid.UUID `db:"variant_id"`
	domain.VariantSize
	SizeValue       sql.NullString `db:"size_value"`
	SizeDescription sql.NullString `db:"size_description"`
}

// VariantRepository implements domain.VariantRepository for PostgreSQL
type VariantRepository struct {
	db *sqlx.DB
}

// NewVariantRepository creates a new PostgreSQL variant repository
func NewVariantRepository(db *sqlx.DB) *VariantRepository {
	return &VariantRepository{db: db}
}

// Create inserts a variant at the end of its product's variant list, with its sizes
func (r *VariantRepository) Create(ctx context.Context, variant *domain.Variant) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO variants (product_id, position, color_id, gender, price, percent_discount,
			price_final, images, is_active, created_at, updated_at)
		VALUES ($1, (SELECT COALESCE(MAX(position) + 1, 0) FROM variants WHERE product_id = $1),
			$2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, position, created_at, updated_at
	`

	now := time.Now()
	variant.CreatedAt = now
	variant.UpdatedAt = now

	err = tx.QueryRowxContext(
		ctx,
		query,
		variant.ProductID,
		variant.ColorID,
		variant.Gender,
		variant.Price,
		variant.PercentDiscount,
		variant.PriceFinal,
		variant.Images,
		variant.IsActive,
		variant.CreatedAt,
		variant.UpdatedAt,
	).Scan(&variant.ID, &variant.Position, &variant.CreatedAt, &variant.UpdatedAt)
	if err != nil {
		return err
	}

	if err := insertSizes(ctx, tx, variant.ID, variant.Sizes); err != nil {
		return err
	}

	return tx.Commit()
}

func insertSizes(ctx context.Context, tx *sqlx.Tx, variantID uuid.UUID, sizes []domain.VariantSize) error {
	query := `INSERT INTO variant_sizes (variant_id, size_id, quantity, sku) VALUES ($1, $2, $3, $4)`
	for _, s := range sizes {
		if _, err := tx.ExecContext(ctx, query, variantID, s.SizeID, s.Quantity, s.SKU); err != nil {
			return fmt.Errorf("failed to insert size %s: %w", s.SizeID, err)
		}
	}
	return nil
}

func (r *VariantRepository) getOne(ctx context.Context, where string, id uuid.UUID) (*domain.Variant, error) {
	var row variantRow
	if err := r.db.GetContext(ctx, &row, variantSelect+where, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	variants := []*domain.Variant{row.toDomain()}
	if err := r.attachSizes(ctx, variants); err != nil {
		return nil, err
	}
	return variants[0], nil
}

// GetByID retrieves a non-deleted variant
func (r *VariantRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Variant, error) {
	return r.getOne(ctx, " WHERE v.id = $1 AND v.deleted_at IS NULL", id)
}

// GetByIDAll retrieves a variant whether or not it is soft-deleted
func (r *VariantRepository) GetByIDAll(ctx context.Context, id uuid.UUID) (*domain.Variant, error) {
	return r.getOne(ctx, " WHERE v.id = $1", id)
}

// Update writes the editable fields of a non-deleted variant and replaces its sizes
func (r *VariantRepository) Update(ctx context.Context, variant *domain.Variant) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE variants
		SET color_id = $1, gender = $2, price = $3, percent_discount = $4, price_final = $5,
			images = $6, is_active = $7, updated_at = $8
		WHERE id = $9 AND deleted_at IS NULL
		RETURNING updated_at
	`

	variant.UpdatedAt = time.Now()

	err = tx.QueryRowxContext(
		ctx,
		query,
		variant.ColorID,
		variant.Gender,
		variant.Price,
		variant.PercentDiscount,
		variant.PriceFinal,
		variant.Images,
		variant.IsActive,
		variant.UpdatedAt,
		variant.ID,
	).Scan(&variant.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM variant_sizes WHERE variant_id = $1`, variant.ID); err != nil {
		return fmt.Errorf("failed to clear sizes: %w", err)
	}
	if err := insertSizes(ctx, tx, variant.ID, variant.Sizes); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *VariantRepository) listWhere(ctx context.Context, where string, args ...interface{}) ([]*domain.Variant, error) {
	var rows []variantRow
	query := variantSelect + where + ` ORDER BY v.product_id, v.position, v.created_at`
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	variants := make([]*domain.Variant, 0, len(rows))
	for i := range rows {
		variants = append(variants, rows[i].toDomain())
	}
	if err := r.attachSizes(ctx, variants); err != nil {
		return nil, err
	}
	return variants, nil
}

// attachSizes loads the sizes of variants in one query
func (r *VariantRepository) attachSizes(ctx context.Context, variants []*domain.Variant) error {
	if len(variants) == 0 {
		return nil
	}

	byID := make(map[uuid.UUID]*domain.Variant, len(variants))
	ids := make([]uuid.UUID, 0, len(variants))
	for _, v := range variants {
		byID[v.ID] = v
		ids = append(ids, v.ID)
	}

	query := `
		SELECT vs.variant_id, vs.size_id, vs.quantity, vs.sku,
			s.value AS size_value, s.description AS size_description
		FROM variant_sizes vs
		LEFT JOIN sizes s ON s.id = vs.size_id
		WHERE vs.variant_id = ANY($1::uuid[])
		ORDER BY vs.variant_id, s.value
	`

	var rows []variantSizeRow
	if err := r.db.SelectContext(ctx, &rows, query, idArray(ids)); err != nil {
		return fmt.Errorf("failed to load variant sizes: %w", err)
	}

	for _, row := range rows {
		v, ok := byID[row.VariantID]
		if !ok {
			continue
		}
		size := row.VariantSize
		if row.SizeValue.Valid {
			size.Size = &domain.SizeRef{
				ID:          size.SizeID,
				Value:       row.SizeValue.String,
				Description: row.SizeDescription.String,
			}
		}
		v.Sizes = append(v.Sizes, size)
	}
	return nil
}

// ListByProduct retrieves the non-deleted variants of a product in position order
func (r *VariantRepository) ListByProduct(ctx context.Context, productID uuid.UUID) ([]*domain.Variant, error) {
	return r.listWhere(ctx, " WHERE v.product_id = $1 AND v.deleted_at IS NULL", productID)
}

// ListByProductAll retrieves every variant of a product, soft-deleted included
func (r *VariantRepository) ListByProductAll(ctx context.Context, productID uuid.UUID) ([]*domain.Variant, error) {
	return r.listWhere(ctx, " WHERE v.product_id = $1", productID)
}

// ListDeletedByProduct retrieves the soft-deleted variants of a product in position order
func (r *VariantRepository) ListDeletedByProduct(ctx context.Context, productID uuid.UUID) ([]*domain.Variant, error) {
	return r.listWhere(ctx, " WHERE v.product_id = $1 AND v.deleted_at IS NOT NULL", productID)
}

// ListByProducts retrieves the non-deleted variants of several products
func (r *VariantRepository) ListByProducts(ctx context.Context, productIDs []uuid.UUID, activeOnly bool) ([]*domain.Variant, error) {
	if len(productIDs) == 0 {
		return []*domain.Variant{}, nil
	}
	where := " WHERE v.product_id = ANY($1::uuid[]) AND v.deleted_at IS NULL"
	if activeOnly {
		where += " AND v.is_active = TRUE"
	}
	return r.listWhere(ctx, where, idArray(productIDs))
}

// ColorTaken reports whether another non-deleted variant of the product uses colorID
func (r *VariantRepository) ColorTaken(ctx context.Context, productID, colorID, excludeID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM variants
			WHERE product_id = $1 AND color_id = $2 AND id <> $3 AND deleted_at IS NULL
		)
	`

	var taken bool
	if err := r.db.GetContext(ctx, &taken, query, productID, colorID, excludeID); err != nil {
		return false, err
	}
	return taken, nil
}

// SetActiveByProduct sets is_active on the non-deleted variants of a product
// whose value differs and returns how many changed
func (r *VariantRepository) SetActiveByProduct(ctx context.Context, productID uuid.UUID, active bool) (int, error) {
	query := `
		UPDATE variants
		SET is_active = $1, updated_at = $2
		WHERE product_id = $3 AND deleted_at IS NULL AND is_active <> $1
	`

	result, err := r.db.ExecContext(ctx, query, active, time.Now(), productID)
	if err != nil {
		return 0, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(rowsAffected), nil
}

// SetActive sets is_active on a non-deleted variant
func (r *VariantRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	query := `
		UPDATE variants
		SET is_active = $1, updated_at = $2
		WHERE id = $3 AND deleted_at IS NULL
	`
	return execOne(ctx, r.db, query, active, time.Now(), id)
}

// SoftDelete soft-deletes a variant and deactivates it
func (r *VariantRepository) SoftDelete(ctx context.Context, id uuid.UUID, actorID *uuid.UUID) error {
	query := `
		UPDATE variants
		SET deleted_at = $1, deleted_by = $2, is_active = FALSE, updated_at = $1
		WHERE id = $3 AND deleted_at IS NULL
	`
	return execOne(ctx, r.db, query, time.Now(), actorID, id)
}

// Restore clears the soft-delete stamps and activates the variant
func (r *VariantRepository) Restore(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE variants
		SET deleted_at = NULL, deleted_by = NULL, is_active = TRUE, updated_at = $1
		WHERE id = $2
	`
	return execOne(ctx, r.db, query, time.Now(), id)
}

// ProductIDsMatching returns the distinct products owning an active,
// non-deleted variant that satisfies filter
func (r *VariantRepository) ProductIDsMatching(ctx context.Context, filter domain.VariantFilter) ([]uuid.UUID, error) {
	w := variantWhere(filter)
	query := `SELECT DISTINCT v.product_id FROM variants v` + w.sql()

	ids := []uuid.UUID{}
	if err := r.db.SelectContext(ctx, &ids, query, w.args...); err != nil {
		return nil, err
	}
	return ids, nil
}

// CountByColor counts the non-deleted variants using a color
func (r *VariantRepository) CountByColor(ctx context.Context, colorID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM variants WHERE color_id = $1 AND deleted_at IS NULL`

	var count int
	if err := r.db.GetContext(ctx, &count, query, colorID); err != nil {
		return 0, err
	}
	return count, nil
}
