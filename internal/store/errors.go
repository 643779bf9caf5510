package store

import (
	"errors"
	"fmt"
)

var (
	ErrConflict = errors.New("conflict")
	ErrNotFound = errors.New("not found")
)

// ConflictError reports which side of a booking is double-booked. It matches
// ErrConflict under errors.Is so callers can branch on conflict-ness without
// caring about the role.
type ConflictError struct {
	Role PersonRole
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s already booked in that interval", e.Role)
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}
