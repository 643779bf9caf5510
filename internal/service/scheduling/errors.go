package scheduling

import (
	"errors"

	"github.com/BrettNon/EHR-System-for-PIES-Holistic-Yoga/internal/store"
)

type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

func validationError(msg string) error {
	return &ValidationError{msg: msg}
}

// InvalidIntervalError rejects a proposed interval before any overlap
// checking happens: non-positive duration, or end not after start.
type InvalidIntervalError struct {
	msg string
}

func (e *InvalidIntervalError) Error() string {
	return e.msg
}

func invalidInterval(msg string) error {
	return &InvalidIntervalError{msg: msg}
}

type ConflictKind string

const (
	TherapistBusy ConflictKind = "THERAPIST_BUSY"
	PatientBusy   ConflictKind = "PATIENT_BUSY"
)

// ConflictError reports that the proposed interval overlaps an active
// appointment for the therapist or the patient. No mutation was performed.
type ConflictError struct {
	Kind ConflictKind
}

func (e *ConflictError) Error() string {
	switch e.Kind {
	case PatientBusy:
		return "patient already has an appointment in that interval"
	default:
		return "therapist already has an appointment in that interval"
	}
}

// mapStoreError lifts store-level conflicts into the engine's error
// vocabulary. A constraint-violation race inside the store must surface as a
// ConflictError, never as an opaque infrastructure error.
func mapStoreError(err error) error {
	var sc *store.ConflictError
	if errors.As(err, &sc) {
		if sc.Role == store.PersonRolePatient {
			return &ConflictError{Kind: PatientBusy}
		}
		return &ConflictError{Kind: TherapistBusy}
	}
	return err
}
