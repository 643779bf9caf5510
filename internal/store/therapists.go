package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/BrettNon/EHR-System-for-PIES-Holistic-Yoga/internal/domain"
)

type TherapistRepository interface {
	Create(ctx context.Context, t domain.Therapist) (domain.Therapist, error)
	FindByID(ctx context.Context, id uuid.UUID) (domain.Therapist, error)
	FindByUsername(ctx context.Context, username string) (domain.Therapist, error)
	ListActive(ctx context.Context) ([]domain.Therapist, error)
	Update(ctx context.Context, t domain.Therapist) (domain.Therapist, error)
}
