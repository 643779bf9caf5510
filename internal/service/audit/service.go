// Package audit appends and reads the compliance trail. Entries are written
// after successful mutations and never updated or deleted.
package audit

import (
	"context"

	"github.com/google/uuid"

	"github.com/BrettNon/EHR-System-for-PIES-Holistic-Yoga/internal/domain"
	"github.com/BrettNon/EHR-System-for-PIES-Holistic-Yoga/internal/store"
)

type Service struct {
	repo store.AuditLogRepository
}

func NewService(repo store.AuditLogRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Record(ctx context.Context, actor, action, entity string, entityID uuid.UUID) error {
	if actor == "" {
		actor = "anonymous"
	}
	_, err := s.repo.Insert(ctx, domain.AuditLog{
		Username: actor,
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
	})
	return err
}

func (s *Service) ListRecent(ctx context.Context, limit int) ([]domain.AuditLog, error) {
	return s.repo.ListRecent(ctx, limit)
}
