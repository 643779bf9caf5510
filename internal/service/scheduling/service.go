// Package scheduling implements the appointment overlap and availability
// engine: the conflict checks that keep a therapist or a patient from being
// double-booked, and the schedule listing queries.
//
// Appointments occupy the half-open interval
// [AppointmentTime, AppointmentTime+DurationMinutes), so back-to-back
// bookings never conflict. Only active appointments participate in conflict
// checks and listings; cancelled ones are kept for the audit trail.
package scheduling

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/BrettNon/EHR-System-for-PIES-Holistic-Yoga/internal/domain"
	"github.com/BrettNon/EHR-System-for-PIES-Holistic-Yoga/internal/store"
)

type Service struct {
	appts store.AppointmentRepository
}

func NewService(appts store.AppointmentRepository) *Service {
	return &Service{appts: appts}
}

type ScheduleInput struct {
	TherapistID     uuid.UUID
	PatientID       uuid.UUID
	StartTime       time.Time
	DurationMinutes int
	Notes           string
}

// Schedule books a new appointment for the given actor. The conflict checks
// and the insert run inside one calendar transaction holding both persons'
// calendar locks, so a concurrent booking for the same therapist or patient
// cannot slip between the check and the insert. The audit entry is written in
// the same transaction: either the row and its audit record both land, or
// neither does.
func (s *Service) Schedule(ctx context.Context, actor string, in ScheduleInput) (domain.Appointment, error) {
	if strings.TrimSpace(actor) == "" {
		return domain.Appointment{}, validationError("actor is required")
	}
	if in.TherapistID == uuid.Nil {
		return domain.Appointment{}, validationError("therapist_id is required")
	}
	if in.PatientID == uuid.Nil {
		return domain.Appointment{}, validationError("patient_id is required")
	}
	if in.StartTime.IsZero() {
		return domain.Appointment{}, validationError("appointment_time is required")
	}
	if in.DurationMinutes <= 0 {
		return domain.Appointment{}, invalidInterval("duration_minutes must be positive")
	}

	start := in.StartTime.UTC()
	end := start.Add(time.Duration(in.DurationMinutes) * time.Minute)

	var out domain.Appointment
	err := s.appts.InCalendarTransaction(ctx, in.TherapistID, in.PatientID, func(ctx context.Context, tx store.CalendarTx) error {
		n, err := tx.CountOverlapping(ctx, in.TherapistID, store.PersonRoleTherapist, start, end)
		if err != nil {
			return err
		}
		if n > 0 {
			return &ConflictError{Kind: TherapistBusy}
		}

		n, err = tx.CountOverlapping(ctx, in.PatientID, store.PersonRolePatient, start, end)
		if err != nil {
			return err
		}
		if n > 0 {
			return &ConflictError{Kind: PatientBusy}
		}

		created, err := tx.CreateAppointment(ctx, domain.Appointment{
			TherapistID:     in.TherapistID,
			PatientID:       in.PatientID,
			AppointmentTime: start,
			DurationMinutes: in.DurationMinutes,
			Notes:           in.Notes,
			ActiveStatus:    true,
		})
		if err != nil {
			return err
		}

		if err := tx.RecordAudit(ctx, domain.AuditLog{
			Username: actor,
			Action:   domain.AuditActionCreate,
			Entity:   "Appointment",
			EntityID: created.ID,
		}); err != nil {
			return err
		}

		out = created
		return nil
	})
	if err != nil {
		return domain.Appointment{}, mapStoreError(err)
	}
	return out, nil
}

// Cancel soft-deletes an appointment and records the audit entry in the same
// transaction. Cancelling an appointment that is already inactive is a no-op
// success; no second audit entry is written.
func (s *Service) Cancel(ctx context.Context, actor string, appointmentID uuid.UUID) error {
	if strings.TrimSpace(actor) == "" {
		return validationError("actor is required")
	}
	if appointmentID == uuid.Nil {
		return validationError("appointment_id is required")
	}

	// The calendar locks are keyed by therapist and patient, so look the
	// appointment up first to learn which calendars the cancel touches.
	appt, err := s.appts.FindByID(ctx, appointmentID)
	if err != nil {
		return err
	}

	return s.appts.InCalendarTransaction(ctx, appt.TherapistID, appt.PatientID, func(ctx context.Context, tx store.CalendarTx) error {
		current, err := tx.FindAppointment(ctx, appointmentID)
		if err != nil {
			return err
		}
		if !current.ActiveStatus {
			return nil
		}

		current.ActiveStatus = false
		if _, err := tx.UpdateAppointment(ctx, current); err != nil {
			return err
		}

		return tx.RecordAudit(ctx, domain.AuditLog{
			Username: actor,
			Action:   domain.AuditActionCancel,
			Entity:   "Appointment",
			EntityID: appointmentID,
		})
	})
}

// HasTherapistConflict reports whether any active appointment for the
// therapist intersects [proposedStart, proposedEnd). Read-only.
func (s *Service) HasTherapistConflict(ctx context.Context, therapistID uuid.UUID, proposedStart, proposedEnd time.Time) (bool, error) {
	return s.hasConflict(ctx, therapistID, store.PersonRoleTherapist, proposedStart, proposedEnd)
}

// HasPatientConflict is the patient-scoped counterpart of
// HasTherapistConflict.
func (s *Service) HasPatientConflict(ctx context.Context, patientID uuid.UUID, proposedStart, proposedEnd time.Time) (bool, error) {
	return s.hasConflict(ctx, patientID, store.PersonRolePatient, proposedStart, proposedEnd)
}

func (s *Service) hasConflict(ctx context.Context, personID uuid.UUID, role store.PersonRole, proposedStart, proposedEnd time.Time) (bool, error) {
	if personID == uuid.Nil {
		return false, validationError("person id is required")
	}
	start := proposedStart.UTC()
	end := proposedEnd.UTC()
	if !end.After(start) {
		return false, invalidInterval("proposed end must be after proposed start")
	}

	n, err := s.appts.CountOverlapping(ctx, personID, role, start, end)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ListTherapistSchedule lists the therapist's active appointments whose start
// time falls in [from, to], both bounds inclusive, ascending by start time.
// The window filters on start time only, not on full-interval containment.
func (s *Service) ListTherapistSchedule(ctx context.Context, therapistID uuid.UUID, from, to time.Time) ([]domain.Appointment, error) {
	return s.listSchedule(ctx, therapistID, store.PersonRoleTherapist, from, to)
}

// ListPatientSchedule is the patient-scoped counterpart of
// ListTherapistSchedule.
func (s *Service) ListPatientSchedule(ctx context.Context, patientID uuid.UUID, from, to time.Time) ([]domain.Appointment, error) {
	return s.listSchedule(ctx, patientID, store.PersonRolePatient, from, to)
}

func (s *Service) listSchedule(ctx context.Context, personID uuid.UUID, role store.PersonRole, from, to time.Time) ([]domain.Appointment, error) {
	if personID == uuid.Nil {
		return nil, validationError("person id is required")
	}
	start := from.UTC()
	end := to.UTC()
	if end.Before(start) {
		return nil, validationError("to must not be before from")
	}

	return s.appts.FindActiveInRange(ctx, personID, role, start, end)
}
