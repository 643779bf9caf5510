package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BrettNon/EHR-System-for-PIES-Holistic-Yoga/internal/domain"
)

// PersonRole selects which side of an appointment a query is scoped to.
type PersonRole string

const (
	PersonRoleTherapist PersonRole = "THERAPIST"
	PersonRolePatient   PersonRole = "PATIENT"
)

type AppointmentRepository interface {
	// CountOverlapping counts active appointments for the person whose
	// half-open interval intersects [start, end).
	CountOverlapping(ctx context.Context, personID uuid.UUID, role PersonRole, start, end time.Time) (int, error)

	// FindActiveInRange lists active appointments for the person whose start
	// time falls in [from, to] inclusive, ascending by start time.
	FindActiveInRange(ctx context.Context, personID uuid.UUID, role PersonRole, from, to time.Time) ([]domain.Appointment, error)

	FindByID(ctx context.Context, id uuid.UUID) (domain.Appointment, error)

	// InCalendarTransaction runs fn inside a store transaction that holds the
	// calendar locks for both the therapist and the patient, serializing
	// check-then-insert sequences against concurrent bookings.
	InCalendarTransaction(ctx context.Context, therapistID, patientID uuid.UUID, fn func(ctx context.Context, tx CalendarTx) error) error
}
