package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/BrettNon/EHR-System-for-PIES-Holistic-Yoga/internal/domain"
)

type PatientRepository interface {
	Create(ctx context.Context, p domain.Patient) (domain.Patient, error)
	FindByID(ctx context.Context, id uuid.UUID) (domain.Patient, error)
	ListActive(ctx context.Context) ([]domain.Patient, error)
	ListByTherapist(ctx context.Context, therapistID uuid.UUID) ([]domain.Patient, error)
	Update(ctx context.Context, p domain.Patient) (domain.Patient, error)
}
