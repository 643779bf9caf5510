package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/uptrace/bun"

	"github.com/BrettNon/EHR-System-for-PIES-Holistic-Yoga/internal/domain"
	"github.com/BrettNon/EHR-System-for-PIES-Holistic-Yoga/internal/store"
)

const (
	therapistOverlapConstraint = "appointments_therapist_no_overlap"
	patientOverlapConstraint   = "appointments_patient_no_overlap"
)

type AppointmentRepo struct {
	db *bun.DB
}

func NewAppointmentRepo(db *bun.DB) *AppointmentRepo {
	return &AppointmentRepo{db: db}
}

type calendarTx struct {
	tx bun.Tx
}

func (r *AppointmentRepo) CountOverlapping(ctx context.Context, personID uuid.UUID, role store.PersonRole, start, end time.Time) (int, error) {
	return countOverlapping(ctx, r.db, personID, role, start, end)
}

func (r *AppointmentRepo) FindActiveInRange(ctx context.Context, personID uuid.UUID, role store.PersonRole, from, to time.Time) ([]domain.Appointment, error) {
	var rows []domain.Appointment
	err := r.db.NewSelect().
		Model(&rows).
		Where("? = ?", bun.Ident(personColumn(role)), personID).
		Where("active_status").
		Where("appointment_time >= ?", from).
		Where("appointment_time <= ?", to).
		OrderExpr("appointment_time ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *AppointmentRepo) FindByID(ctx context.Context, id uuid.UUID) (domain.Appointment, error) {
	return findAppointment(ctx, r.db, id)
}

// InCalendarTransaction serializes booking mutations per person. Both calendar
// keys are locked in a stable order so two bookings sharing either the
// therapist or the patient cannot interleave their check-then-insert
// sequences, and cannot deadlock each other.
func (r *AppointmentRepo) InCalendarTransaction(ctx context.Context, therapistID, patientID uuid.UUID, fn func(ctx context.Context, tx store.CalendarTx) error) error {
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := lockCalendars(ctx, tx, therapistID, patientID); err != nil {
			return err
		}
		return fn(ctx, calendarTx{tx: tx})
	})
}

func lockCalendars(ctx context.Context, tx bun.Tx, therapistID, patientID uuid.UUID) error {
	first := "therapist:" + therapistID.String()
	second := "patient:" + patientID.String()
	if second < first {
		first, second = second, first
	}
	for _, key := range []string{first, second} {
		if _, err := tx.NewRaw("SELECT pg_advisory_xact_lock(hashtext(?))", key).Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (r calendarTx) CountOverlapping(ctx context.Context, personID uuid.UUID, role store.PersonRole, start, end time.Time) (int, error) {
	return countOverlapping(ctx, r.tx, personID, role, start, end)
}

func (r calendarTx) CreateAppointment(ctx context.Context, appt domain.Appointment) (domain.Appointment, error) {
	m := domain.Appointment{
		ID:              appt.ID,
		TherapistID:     appt.TherapistID,
		PatientID:       appt.PatientID,
		AppointmentTime: appt.AppointmentTime,
		DurationMinutes: appt.DurationMinutes,
		Notes:           appt.Notes,
		ActiveStatus:    appt.ActiveStatus,
		CreatedAt:       appt.CreatedAt,
		UpdatedAt:       appt.UpdatedAt,
	}

	_, err := r.tx.NewInsert().Model(&m).Exec(ctx)
	if err != nil {
		if conflict := conflictFromConstraint(err); conflict != nil {
			return domain.Appointment{}, conflict
		}
		return domain.Appointment{}, err
	}

	appt.ID = m.ID
	appt.CreatedAt = m.CreatedAt
	appt.UpdatedAt = m.UpdatedAt
	return appt, nil
}

func (r calendarTx) FindAppointment(ctx context.Context, id uuid.UUID) (domain.Appointment, error) {
	return findAppointment(ctx, r.tx, id)
}

func (r calendarTx) UpdateAppointment(ctx context.Context, appt domain.Appointment) (domain.Appointment, error) {
	res, err := r.tx.NewUpdate().
		Model(&appt).
		WherePK().
		Exec(ctx)
	if err != nil {
		return domain.Appointment{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return domain.Appointment{}, err
	}
	if affected == 0 {
		return domain.Appointment{}, store.ErrNotFound
	}
	return appt, nil
}

func (r calendarTx) RecordAudit(ctx context.Context, entry domain.AuditLog) error {
	_, err := r.tx.NewInsert().Model(&entry).Exec(ctx)
	return err
}

func countOverlapping(ctx context.Context, db bun.IDB, personID uuid.UUID, role store.PersonRole, start, end time.Time) (int, error) {
	return db.NewSelect().
		Model((*domain.Appointment)(nil)).
		Where("? = ?", bun.Ident(personColumn(role)), personID).
		Where("active_status").
		Where("appointment_time < ?", end).
		Where("appointment_time + duration_minutes * interval '1 minute' > ?", start).
		Count(ctx)
}

func findAppointment(ctx context.Context, db bun.IDB, id uuid.UUID) (domain.Appointment, error) {
	var m domain.Appointment
	err := db.NewSelect().
		Model(&m).
		Where("id = ?", id).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Appointment{}, store.ErrNotFound
	}
	if err != nil {
		return domain.Appointment{}, err
	}
	return m, nil
}

func personColumn(role store.PersonRole) string {
	if role == store.PersonRolePatient {
		return "patient_id"
	}
	return "therapist_id"
}

// conflictFromConstraint maps an exclusion-constraint violation raced in by a
// concurrent booking to the conflict error the caller expects, keyed on which
// constraint fired.
func conflictFromConstraint(err error) *store.ConflictError {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23P01" {
		return nil
	}
	switch pgErr.ConstraintName {
	case therapistOverlapConstraint:
		return &store.ConflictError{Role: store.PersonRoleTherapist}
	case patientOverlapConstraint:
		return &store.ConflictError{Role: store.PersonRolePatient}
	}
	return nil
}
