package domain

import (
	"time"

	"github.com/google/uuid"
)

// EntityType identifies the kind of domain entity (used in audit logs).
type EntityType string

const (
	EntityTypeMenuItem EntityType = "MENU_ITEM"
	EntityTypeVariant  EntityType = "VARIANT"
	EntityTypeCategory EntityType = "CATEGORY"
	EntityTypeSnapshot EntityType = "SNAPSHOT"
)

// AuditAction identifies what happened to an entity.
type AuditAction string

const (
	AuditActionPublish AuditAction = "PUBLISH"
	AuditActionRevert  AuditAction = "REVERT"
	AuditActionCreate  AuditAction = "CREATE"
	AuditActionUpdate  AuditAction = "UPDATE"
	AuditActionDelete  AuditAction = "DELETE"
)

// AuditRecord is an append-only change log entry. ActorID is the staff
// member who triggered the operation, when known.
type AuditRecord struct {
	ID         uuid.UUID
	ActorID    *uuid.UUID
	EntityType EntityType
	EntityID   *uuid.UUID
	Action     AuditAction
	Changes    map[string]any
	CreatedAt  time.Time
}
