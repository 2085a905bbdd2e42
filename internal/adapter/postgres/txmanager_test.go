package postgres_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tablecraft/menuhub-backend/internal/adapter/postgres"
	"github.com/tablecraft/menuhub-backend/internal/adapter/postgres/testhelper"
)

// categoryExists checks whether a category row with the given ID exists.
func categoryExists(t *testing.T, pool *pgxpool.Pool, id uuid.UUID) bool {
	t.Helper()
	var exists bool
	err := pool.QueryRow(
		context.Background(),
		`SELECT EXISTS(SELECT 1 FROM categories WHERE id = $1)`,
		id,
	).Scan(&exists)
	if err != nil {
		t.Fatalf("categoryExists query: %v", err)
	}
	return exists
}

func TestRunInTx_Commit(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)

	id := uuid.New()

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		q := postgres.QuerierFromCtx(ctx, pool)
		_, err := q.Exec(ctx,
			`INSERT INTO categories (id, name, position) VALUES ($1, $2, $3)`,
			id, "commit-test-"+id.String()[:8], 99,
		)
		return err
	})
	if err != nil {
		t.Fatalf("RunInTx returned error: %v", err)
	}

	if !categoryExists(t, pool, id) {
		t.Fatal("expected category to exist after committed transaction")
	}
}

func TestRunInTx_RollbackOnError(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)

	id := uuid.New()
	sentinel := errors.New("business logic error")

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		q := postgres.QuerierFromCtx(ctx, pool)
		if _, execErr := q.Exec(ctx,
			`INSERT INTO categories (id, name, position) VALUES ($1, $2, $3)`,
			id, "rollback-test-"+id.String()[:8], 99,
		); execErr != nil {
			return execErr
		}
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("RunInTx error = %v, want sentinel", err)
	}

	if categoryExists(t, pool, id) {
		t.Fatal("expected category insert to be rolled back")
	}
}

func TestRunInTx_RollbackOnPanic(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)

	id := uuid.New()

	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Fatal("expected panic to propagate")
			}
		}()
		_ = tm.RunInTx(context.Background(), func(ctx context.Context) error {
			q := postgres.QuerierFromCtx(ctx, pool)
			if _, execErr := q.Exec(ctx,
				`INSERT INTO categories (id, name, position) VALUES ($1, $2, $3)`,
				id, "panic-test-"+id.String()[:8], 99,
			); execErr != nil {
				return execErr
			}
			panic("boom")
		})
	}()

	if categoryExists(t, pool, id) {
		t.Fatal("expected category insert to be rolled back after panic")
	}
}
