package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// ReferenceRepository checks category, brand and size records
type ReferenceRepository struct {
	db *sqlx.DB
}

// NewReferenceRepository creates a new PostgreSQL reference reader
func NewReferenceRepository(db *sqlx.DB) *ReferenceRepository {
	return &ReferenceRepository{db: db}
}

// CategoryExists reports whether a non-deleted category has the id
func (r *ReferenceRepository) CategoryExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS(SELECT 1 FROM categories WHERE id = $1 AND deleted_at IS NULL)`, id)
}

// BrandExists reports whether a non-deleted brand has the id
func (r *ReferenceRepository) BrandExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS(SELECT 1 FROM brands WHERE id = $1 AND deleted_at IS NULL)`, id)
}

func (r *ReferenceRepository) exists(ctx context.Context, query string, id uuid.UUID) (bool, error) {
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, id); err != nil {
		return false, err
	}
	return exists, nil
}

// MissingSizes returns the ids that match no non-deleted size
func (r *ReferenceRepository) MissingSizes(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `SELECT id FROM sizes WHERE id = ANY($1::uuid[]) AND deleted_at IS NULL`

	var found []uuid.UUID
	if err := r.db.SelectContext(ctx, &found, query, idArray(ids)); err != nil {
		return nil, err
	}

	present := make(map[uuid.UUID]struct{}, len(found))
	for _, id := range found {
		present[id] = struct{}{}
	}

	var missing []uuid.UUID
	for _, id := range ids {
		if _, ok := present[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing, nil
}
