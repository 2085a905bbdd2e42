// Package variant implements the menu item variant repository using
// PostgreSQL. Variants carry no publish flag; they are versioned as part of
// their parent item's snapshot.
package variant

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/tablecraft/menuhub-backend/internal/adapter/postgres"
	"github.com/tablecraft/menuhub-backend/internal/domain"
)

// Repo provides variant persistence backed by PostgreSQL.
type Repo struct {
	db postgres.DB
}

// New creates a new variant repository.
func New(db postgres.DB) *Repo {
	return &Repo{db: db}
}

var builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// ---------------------------------------------------------------------------
// Raw SQL
// ---------------------------------------------------------------------------

const getByItemIDSQL = `
SELECT id, menu_item_id, name, price, available, position, created_at
FROM menu_item_variants
WHERE menu_item_id = $1
ORDER BY position`

const getByItemIDsSQL = `
SELECT id, menu_item_id, name, price, available, position, created_at
FROM menu_item_variants
WHERE menu_item_id = ANY($1::uuid[])
ORDER BY menu_item_id, position`

const deleteByItemIDSQL = `
DELETE FROM menu_item_variants WHERE menu_item_id = $1`

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByItemID returns all variants for a menu item, ordered by position.
func (r *Repo) GetByItemID(ctx context.Context, itemID uuid.UUID) ([]domain.Variant, error) {
	querier := postgres.QuerierFromCtx(ctx, r.db)

	rows, err := querier.Query(ctx, getByItemIDSQL, itemID)
	if err != nil {
		return nil, fmt.Errorf("get variants by menu_item_id: %w", err)
	}
	defer rows.Close()

	variants, err := scanVariants(rows)
	if err != nil {
		return nil, fmt.Errorf("get variants by menu_item_id: %w", err)
	}

	return variants, nil
}

// GetByItemIDs returns variants for multiple items in one query. Results
// include MenuItemID for grouping by the caller.
func (r *Repo) GetByItemIDs(ctx context.Context, itemIDs []uuid.UUID) ([]domain.Variant, error) {
	if len(itemIDs) == 0 {
		return []domain.Variant{}, nil
	}

	querier := postgres.QuerierFromCtx(ctx, r.db)

	rows, err := querier.Query(ctx, getByItemIDsSQL, itemIDs)
	if err != nil {
		return nil, fmt.Errorf("get variants by menu_item_ids: %w", err)
	}
	defer rows.Close()

	variants, err := scanVariants(rows)
	if err != nil {
		return nil, fmt.Errorf("get variants by menu_item_ids: %w", err)
	}

	return variants, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// ReplaceForItem deletes every current variant of the item and inserts the
// given set as new rows with fresh identifiers. Snapshot variant ids are
// never reused, since their originals may have been deleted independently.
// An empty input leaves the item with zero variants, which is a valid state.
// Runs against the caller's transaction when one is in the context.
func (r *Repo) ReplaceForItem(ctx context.Context, itemID uuid.UUID, variants []domain.Variant) ([]domain.Variant, error) {
	querier := postgres.QuerierFromCtx(ctx, r.db)

	if _, err := querier.Exec(ctx, deleteByItemIDSQL, itemID); err != nil {
		return nil, postgres.MapError(err, "variant", itemID)
	}

	if len(variants) == 0 {
		return []domain.Variant{}, nil
	}

	now := time.Now().UTC().Truncate(time.Microsecond)
	insert := builder.
		Insert("menu_item_variants").
		Columns("id", "menu_item_id", "name", "price", "available", "position", "created_at")
	for _, v := range variants {
		insert = insert.Values(uuid.New(), itemID, v.Name, v.Price, v.Available, v.Position, now)
	}

	query, args, err := insert.
		Suffix(`RETURNING id, menu_item_id, name, price, available, position, created_at`).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build replace variants: %w", err)
	}

	rows, err := querier.Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "variant", itemID)
	}
	defer rows.Close()

	inserted, err := scanVariants(rows)
	if err != nil {
		return nil, fmt.Errorf("replace variants: %w", err)
	}

	return inserted, nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

func scanVariants(rows pgx.Rows) ([]domain.Variant, error) {
	var variants []domain.Variant
	for rows.Next() {
		var v domain.Variant
		if err := rows.Scan(&v.ID, &v.MenuItemID, &v.Name, &v.Price, &v.Available, &v.Position, &v.CreatedAt); err != nil {
			return nil, err
		}
		variants = append(variants, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if variants == nil {
		variants = []domain.Variant{}
	}

	return variants, nil
}
