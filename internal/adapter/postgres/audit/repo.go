// Package audit implements the audit log repository using PostgreSQL.
// It provides append-only operations for audit records.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	postgres "github.com/tablecraft/menuhub-backend/internal/adapter/postgres"
	"github.com/tablecraft/menuhub-backend/internal/domain"
)

// Repo provides audit log persistence backed by PostgreSQL.
type Repo struct {
	db postgres.DB
}

// New creates a new audit repository.
func New(db postgres.DB) *Repo {
	return &Repo{db: db}
}

const createSQL = `
INSERT INTO audit_log (id, actor_id, entity_type, entity_id, action, changes, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, actor_id, entity_type, entity_id, action, changes, created_at`

const getByEntitySQL = `
SELECT id, actor_id, entity_type, entity_id, action, changes, created_at
FROM audit_log
WHERE entity_type = $1 AND entity_id = $2
ORDER BY created_at DESC
LIMIT $3`

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new audit record and returns the persisted copy.
func (r *Repo) Create(ctx context.Context, record domain.AuditRecord) (domain.AuditRecord, error) {
	querier := postgres.QuerierFromCtx(ctx, r.db)

	changesJSON, err := json.Marshal(record.Changes)
	if err != nil {
		return domain.AuditRecord{}, fmt.Errorf("audit_record marshal changes: %w", err)
	}

	id := record.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	createdAt := record.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC().Truncate(time.Microsecond)
	}

	row := querier.QueryRow(ctx, createSQL,
		id, record.ActorID, record.EntityType, record.EntityID,
		record.Action, changesJSON, createdAt,
	)

	stored, err := scanRecord(row.Scan)
	if err != nil {
		return domain.AuditRecord{}, postgres.MapError(err, "audit_record", id)
	}

	return stored, nil
}

// Log creates an audit record without returning it (fire-and-forget).
func (r *Repo) Log(ctx context.Context, record domain.AuditRecord) error {
	_, err := r.Create(ctx, record)
	return err
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByEntity returns the change history for a specific entity, ordered by
// created_at DESC, limited to `limit` records.
func (r *Repo) GetByEntity(ctx context.Context, entityType domain.EntityType, entityID uuid.UUID, limit int) ([]domain.AuditRecord, error) {
	querier := postgres.QuerierFromCtx(ctx, r.db)

	rows, err := querier.Query(ctx, getByEntitySQL, entityType, entityID, limit)
	if err != nil {
		return nil, fmt.Errorf("get audit_records by entity: %w", err)
	}
	defer rows.Close()

	var records []domain.AuditRecord
	for rows.Next() {
		rec, scanErr := scanRecord(rows.Scan)
		if scanErr != nil {
			return nil, fmt.Errorf("get audit_records by entity: %w", scanErr)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get audit_records by entity: %w", err)
	}

	if records == nil {
		records = []domain.AuditRecord{}
	}

	return records, nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

func scanRecord(scan func(dest ...any) error) (domain.AuditRecord, error) {
	var (
		rec         domain.AuditRecord
		actorID     pgtype.UUID
		entityID    pgtype.UUID
		changesJSON []byte
	)

	if err := scan(&rec.ID, &actorID, &rec.EntityType, &entityID, &rec.Action, &changesJSON, &rec.CreatedAt); err != nil {
		return domain.AuditRecord{}, err
	}

	if actorID.Valid {
		aid := uuid.UUID(actorID.Bytes)
		rec.ActorID = &aid
	}
	if entityID.Valid {
		eid := uuid.UUID(entityID.Bytes)
		rec.EntityID = &eid
	}
	if len(changesJSON) > 0 {
		if err := json.Unmarshal(changesJSON, &rec.Changes); err != nil {
			return domain.AuditRecord{}, fmt.Errorf("unmarshal changes: %w", err)
		}
	}

	return rec, nil
}
