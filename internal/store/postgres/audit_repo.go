package postgres

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/BrettNon/EHR-System-for-PIES-Holistic-Yoga/internal/domain"
)

type AuditLogRepo struct {
	db *bun.DB
}

func NewAuditLogRepo(db *bun.DB) *AuditLogRepo {
	return &AuditLogRepo{db: db}
}

func (r *AuditLogRepo) Insert(ctx context.Context, entry domain.AuditLog) (domain.AuditLog, error) {
	_, err := r.db.NewInsert().Model(&entry).Exec(ctx)
	if err != nil {
		return domain.AuditLog{}, err
	}
	return entry, nil
}

func (r *AuditLogRepo) ListRecent(ctx context.Context, limit int) ([]domain.AuditLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	var rows []domain.AuditLog
	err := r.db.NewSelect().
		Model(&rows).
		OrderExpr("timestamp DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rows, nil
}
