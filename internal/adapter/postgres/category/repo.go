// Package category implements the menu category repository using PostgreSQL.
package category

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	postgres "github.com/tablecraft/menuhub-backend/internal/adapter/postgres"
	"github.com/tablecraft/menuhub-backend/internal/domain"
)

// Repo provides category persistence backed by PostgreSQL.
type Repo struct {
	db postgres.DB
}

// New creates a new category repository.
func New(db postgres.DB) *Repo {
	return &Repo{db: db}
}

var builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const getByIDSQL = `
SELECT id, name, position FROM categories WHERE id = $1`

const listSQL = `
SELECT id, name, position FROM categories ORDER BY position, name`

// GetByID returns a single category.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	querier := postgres.QuerierFromCtx(ctx, r.db)

	var c domain.Category
	if err := querier.QueryRow(ctx, getByIDSQL, id).Scan(&c.ID, &c.Name, &c.Position); err != nil {
		return nil, postgres.MapError(err, "category", id)
	}

	return &c, nil
}

// List returns all categories in display order.
func (r *Repo) List(ctx context.Context) ([]domain.Category, error) {
	querier := postgres.QuerierFromCtx(ctx, r.db)

	rows, err := querier.Query(ctx, listSQL)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Position); err != nil {
			return nil, fmt.Errorf("list categories: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	if categories == nil {
		categories = []domain.Category{}
	}

	return categories, nil
}

// Create inserts a new category.
func (r *Repo) Create(ctx context.Context, c *domain.Category) (*domain.Category, error) {
	querier := postgres.QuerierFromCtx(ctx, r.db)

	id := c.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	query, args, err := builder.
		Insert("categories").
		Columns("id", "name", "position").
		Values(id, c.Name, c.Position).
		Suffix("RETURNING id, name, position").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build create category: %w", err)
	}

	var created domain.Category
	if err := querier.QueryRow(ctx, query, args...).Scan(&created.ID, &created.Name, &created.Position); err != nil {
		return nil, postgres.MapError(err, "category", id)
	}

	return &created, nil
}
