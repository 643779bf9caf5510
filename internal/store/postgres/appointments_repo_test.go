package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/BrettNon/EHR-System-for-PIES-Holistic-Yoga/internal/store"
)

func TestConflictFromConstraint(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want store.PersonRole
	}{
		{
			"therapist exclusion",
			&pgconn.PgError{Code: "23P01", ConstraintName: therapistOverlapConstraint},
			store.PersonRoleTherapist,
		},
		{
			"patient exclusion",
			&pgconn.PgError{Code: "23P01", ConstraintName: patientOverlapConstraint},
			store.PersonRolePatient,
		},
		{
			"wrapped",
			fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23P01", ConstraintName: patientOverlapConstraint}),
			store.PersonRolePatient,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			conflict := conflictFromConstraint(tc.err)
			if conflict == nil {
				t.Fatalf("conflictFromConstraint(%v) = nil", tc.err)
			}
			if conflict.Role != tc.want {
				t.Fatalf("role = %q, want %q", conflict.Role, tc.want)
			}
			if !errors.Is(conflict, store.ErrConflict) {
				t.Fatalf("conflict error does not match store.ErrConflict")
			}
		})
	}
}

func TestConflictFromConstraintIgnoresOtherErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"plain error", errors.New("connection reset")},
		{"other pg code", &pgconn.PgError{Code: "23505", ConstraintName: "therapists_username_key"}},
		{"unknown constraint", &pgconn.PgError{Code: "23P01", ConstraintName: "some_other_constraint"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if conflict := conflictFromConstraint(tc.err); conflict != nil {
				t.Fatalf("conflictFromConstraint(%v) = %v, want nil", tc.err, conflict)
			}
		})
	}
}

func TestPersonColumn(t *testing.T) {
	if got := personColumn(store.PersonRoleTherapist); got != "therapist_id" {
		t.Fatalf("therapist column = %q", got)
	}
	if got := personColumn(store.PersonRolePatient); got != "patient_id" {
		t.Fatalf("patient column = %q", got)
	}
}
