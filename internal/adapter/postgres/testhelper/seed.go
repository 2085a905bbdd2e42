package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tablecraft/menuhub-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedCategory creates a category with a unique name.
func SeedCategory(t *testing.T, pool *pgxpool.Pool) domain.Category {
	t.Helper()
	ctx := context.Background()

	cat := domain.Category{
		ID:       uuid.New(),
		Name:     "Category " + uniqueSuffix(),
		Position: 1,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO categories (id, name, position) VALUES ($1, $2, $3)`,
		cat.ID, cat.Name, cat.Position,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedCategory insert: %v", err)
	}

	return cat
}

// SeedMenuItem creates a draft menu item in the given category.
// Pass mutate to adjust fields (price, published_at, ...) before insert.
func SeedMenuItem(t *testing.T, pool *pgxpool.Pool, categoryID uuid.UUID, mutate ...func(*domain.MenuItem)) domain.MenuItem {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	desc := "Seeded item description"
	item := domain.MenuItem{
		ID:          uuid.New(),
		CategoryID:  categoryID,
		Name:        "Item " + uniqueSuffix(),
		Description: &desc,
		Price:       9.99,
		Available:   true,
		Tags:        []string{"seeded"},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, fn := range mutate {
		fn(&item)
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO menu_items (id, category_id, name, description, price, available, tags, calories, published_at, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		item.ID, item.CategoryID, item.Name, item.Description, item.Price, item.Available,
		item.Tags, item.Calories, item.PublishedAt, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedMenuItem insert: %v", err)
	}

	return item
}

// SeedVariant creates a variant for the given menu item.
func SeedVariant(t *testing.T, pool *pgxpool.Pool, itemID uuid.UUID, name string, price float64, position int) domain.Variant {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	v := domain.Variant{
		ID:         uuid.New(),
		MenuItemID: itemID,
		Name:       name,
		Price:      price,
		Available:  true,
		Position:   position,
		CreatedAt:  now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO menu_item_variants (id, menu_item_id, name, price, available, position, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		v.ID, v.MenuItemID, v.Name, v.Price, v.Available, v.Position, v.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedVariant insert: %v", err)
	}

	return v
}
