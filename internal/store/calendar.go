package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BrettNon/EHR-System-for-PIES-Holistic-Yoga/internal/domain"
)

// CalendarTx is the slice of the store visible inside a calendar transaction.
// CreateAppointment translates an exclusion-constraint violation raced in by
// a concurrent insert into a *ConflictError rather than a raw driver error.
type CalendarTx interface {
	CountOverlapping(ctx context.Context, personID uuid.UUID, role PersonRole, start, end time.Time) (int, error)
	CreateAppointment(ctx context.Context, appt domain.Appointment) (domain.Appointment, error)
	FindAppointment(ctx context.Context, id uuid.UUID) (domain.Appointment, error)
	UpdateAppointment(ctx context.Context, appt domain.Appointment) (domain.Appointment, error)
	RecordAudit(ctx context.Context, entry domain.AuditLog) error
}
