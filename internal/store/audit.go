package store

import (
	"context"

	"github.com/BrettNon/EHR-System-for-PIES-Holistic-Yoga/internal/domain"
)

type AuditLogRepository interface {
	Insert(ctx context.Context, entry domain.AuditLog) (domain.AuditLog, error)
	ListRecent(ctx context.Context, limit int) ([]domain.AuditLog, error)
}
