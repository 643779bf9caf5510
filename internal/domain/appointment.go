package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type Appointment struct {
	bun.BaseModel `bun:"table:appointments"`

	ID              uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	TherapistID     uuid.UUID `bun:"therapist_id,notnull,type:uuid" json:"therapist_id"`
	PatientID       uuid.UUID `bun:"patient_id,notnull,type:uuid" json:"patient_id"`
	AppointmentTime time.Time `bun:"appointment_time,notnull" json:"appointment_time"`
	DurationMinutes int       `bun:"duration_minutes,notnull" json:"duration_minutes"`
	Notes           string    `bun:"notes" json:"notes"`
	ActiveStatus    bool      `bun:"active_status,notnull" json:"active_status"`
	CreatedAt       time.Time `bun:"created_at,notnull" json:"created_at"`
	UpdatedAt       time.Time `bun:"updated_at,notnull" json:"updated_at"`
}

// EndTime is the exclusive end of the appointment's interval.
func (a Appointment) EndTime() time.Time {
	return a.AppointmentTime.Add(time.Duration(a.DurationMinutes) * time.Minute)
}

// OverlapsInterval reports whether the appointment's half-open interval
// intersects [start, end). An appointment ending exactly at start, or
// starting exactly at end, does not overlap.
func (a Appointment) OverlapsInterval(start, end time.Time) bool {
	return Overlaps(a.AppointmentTime, a.EndTime(), start, end)
}

// Overlaps is the half-open interval intersection test: [s1, e1) and
// [s2, e2) intersect iff s1 < e2 && e1 > s2.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && e1.After(s2)
}

func (a *Appointment) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	now := time.Now().UTC()
	switch query.(type) {
	case *bun.InsertQuery:
		if a.ID == uuid.Nil {
			id, err := uuid.NewV7()
			if err != nil {
				return err
			}
			a.ID = id
		}
		if a.CreatedAt.IsZero() {
			a.CreatedAt = now
		}
		if a.UpdatedAt.IsZero() {
			a.UpdatedAt = now
		}
	case *bun.UpdateQuery:
		a.UpdatedAt = now
	}
	return nil
}
