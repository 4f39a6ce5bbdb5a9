package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/Pesokrava/storefront_catalog/internal/domain"
)

const colorSelect = `
	SELECT c.id, c.name, c.type, c.code, c.colors, c.created_at, c.updated_at, c.deleted_at, c.deleted_by
	FROM colors c`

// colorRow carries the text[] pair column that domain.Color keeps as a plain slice
type colorRow struct {
	domain.Color
	Pair pq.StringArray `db:"colors"`
}

func (r *colorRow) toDomain() *domain.Color {
	c := r.Color
	c.Colors = []string(r.Pair)
	if c.Colors == nil {
		c.Colors = []string{}
	}
	return &c
}

// ColorRepository implements domain.ColorRepository for PostgreSQL
type ColorRepository struct {
	db *sqlx.DB
}

// NewColorRepository creates a new PostgreSQL color repository
func NewColorRepository(db *sqlx.DB) *ColorRepository {
	return &ColorRepository{db: db}
}

// Create creates a new color
func (r *ColorRepository) Create(ctx context.Context, color *domain.Color) error {
	query := `
		INSERT INTO colors (name, type, code, colors, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	now := time.Now()
	color.CreatedAt = now
	color.UpdatedAt = now

	return r.db.QueryRowxContext(
		ctx,
		query,
		color.Name,
		color.Type,
		color.Code,
		pq.StringArray(color.Colors),
		color.CreatedAt,
		color.UpdatedAt,
	).Scan(&color.ID, &color.CreatedAt, &color.UpdatedAt)
}

func (r *ColorRepository) getOne(ctx context.Context, where string, args ...interface{}) (*domain.Color, error) {
	var row colorRow
	if err := r.db.GetContext(ctx, &row, colorSelect+where, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return row.toDomain(), nil
}

// GetByID retrieves a non-deleted color
func (r *ColorRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Color, error) {
	return r.getOne(ctx, " WHERE c.id = $1 AND c.deleted_at IS NULL", id)
}

// GetByIDAll retrieves a color whether or not it is soft-deleted
func (r *ColorRepository) GetByIDAll(ctx context.Context, id uuid.UUID) (*domain.Color, error) {
	return r.getOne(ctx, " WHERE c.id = $1", id)
}

// Update updates name, type, code and pair of a non-deleted color
func (r *ColorRepository) Update(ctx context.Context, color *domain.Color) error {
	query := `
		UPDATE colors
		SET name = $1, type = $2, code = $3, colors = $4, updated_at = $5
		WHERE id = $6 AND deleted_at IS NULL
		RETURNING updated_at
	`

	color.UpdatedAt = time.Now()

	err := r.db.QueryRowxContext(
		ctx,
		query,
		color.Name,
		color.Type,
		color.Code,
		pq.StringArray(color.Colors),
		color.UpdatedAt,
		color.ID,
	).Scan(&color.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}

	return nil
}

// SoftDelete soft-deletes a color
func (r *ColorRepository) SoftDelete(ctx context.Context, id uuid.UUID, actorID *uuid.UUID) error {
	query := `
		UPDATE colors
		SET deleted_at = $1, deleted_by = $2, updated_at = $1
		WHERE id = $3 AND deleted_at IS NULL
	`
	return execOne(ctx, r.db, query, time.Now(), actorID, id)
}

// Restore clears the soft-delete stamps of a color
func (r *ColorRepository) Restore(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE colors
		SET deleted_at = NULL, deleted_by = NULL, updated_at = $1
		WHERE id = $2
	`
	return execOne(ctx, r.db, query, time.Now(), id)
}

// List retrieves a page of non-deleted colors and the total match count
func (r *ColorRepository) List(ctx context.Context, filter domain.ColorFilter, sort domain.SortSpec, page domain.Page) ([]*domain.Color, int, error) {
	return r.list(ctx, filter, sort, page, activeView)
}

// ListDeleted retrieves a page of soft-deleted colors and the total match count
func (r *ColorRepository) ListDeleted(ctx context.Context, filter domain.ColorFilter, sort domain.SortSpec, page domain.Page) ([]*domain.Color, int, error) {
	return r.list(ctx, filter, sort, page, deletedView)
}

func (r *ColorRepository) list(ctx context.Context, filter domain.ColorFilter, sort domain.SortSpec, page domain.Page, v view) ([]*domain.Color, int, error) {
	w := colorWhere(filter, v)
	where := w.sql()

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM colors c`+where, w.args...); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []*domain.Color{}, 0, nil
	}

	query := colorSelect + where + orderBy(sort, colorSortColumns, "c.id ASC") + limitOffset(w, page)
	colors, err := r.selectColors(ctx, query, w.args...)
	if err != nil {
		return nil, 0, err
	}
	return colors, total, nil
}

func (r *ColorRepository) selectColors(ctx context.Context, query string, args ...interface{}) ([]*domain.Color, error) {
	var rows []colorRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	colors := make([]*domain.Color, 0, len(rows))
	for i := range rows {
		colors = append(colors, rows[i].toDomain())
	}
	return colors, nil
}

// FindByName returns the non-deleted color named name, other than excludeID
func (r *ColorRepository) FindByName(ctx context.Context, name string, excludeID uuid.UUID) (*domain.Color, error) {
	return r.getOne(ctx, " WHERE c.name = $1 AND c.id <> $2 AND c.deleted_at IS NULL LIMIT 1", name, excludeID)
}

// FindSolidByCode returns the non-deleted solid color using code, other than excludeID
func (r *ColorRepository) FindSolidByCode(ctx context.Context, code string, excludeID uuid.UUID) (*domain.Color, error) {
	return r.getOne(ctx,
		" WHERE UPPER(c.code) = UPPER($1) AND c.type = 'solid' AND c.id <> $2 AND c.deleted_at IS NULL LIMIT 1",
		code, excludeID)
}

// ListHalf returns every non-deleted half color other than excludeID
func (r *ColorRepository) ListHalf(ctx context.Context, excludeID uuid.UUID) ([]*domain.Color, error) {
	return r.selectColors(ctx, colorSelect+" WHERE c.type = 'half' AND c.id <> $1 AND c.deleted_at IS NULL", excludeID)
}
