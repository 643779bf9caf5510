package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Audit actions recorded after successful mutations.
const (
	AuditActionCreate = "CREATE"
	AuditActionUpdate = "UPDATE"
	AuditActionCancel = "CANCEL"
	AuditActionDelete = "DELETE"
)

// AuditLog is an append-only record of who did what to which entity.
type AuditLog struct {
	bun.BaseModel `bun:"table:audit_logs"`

	ID        uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	Username  string    `bun:"username,notnull" json:"username"`
	Action    string    `bun:"action,notnull" json:"action"`
	Entity    string    `bun:"entity,notnull" json:"entity"`
	EntityID  uuid.UUID `bun:"entity_id,notnull,type:uuid" json:"entity_id"`
	Timestamp time.Time `bun:"timestamp,notnull" json:"timestamp"`
}

func (l *AuditLog) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	if _, ok := query.(*bun.InsertQuery); ok {
		if l.ID == uuid.Nil {
			id, err := uuid.NewV7()
			if err != nil {
				return err
			}
			l.ID = id
		}
		if l.Timestamp.IsZero() {
			l.Timestamp = time.Now().UTC()
		}
	}
	return nil
}
