// Package patients manages patient demographic records. Removal is a soft
// delete: the record stays in the store with active_status false.
package patients

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/BrettNon/EHR-System-for-PIES-Holistic-Yoga/internal/domain"
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

type auditRecorder interface {
	Record(ctx context.Context, actor, action, entity string, entityID uuid.UUID) error
}

type Service struct {
	repo  store.PatientRepository
	audit auditRecorder
}

func NewService(repo store.PatientRepository, audit auditRecorder) *Service {
	return &Service{repo: repo, audit: audit}
}

type Input struct {
	FirstName             string
	LastName              string
	DateOfBirth           *time.Time
	Address               string
	City                  string
	State                 string
	ZipCode               string
	Email                 string
	HomePhoneNumber       string
	CellPhoneNumber       string
	WorkPhoneNumber       string
	EmergencyContactName  string
	EmergencyContactPhone string
	ReferredBy            string
	TherapistID           uuid.UUID
}

func (in *Input) validate() error {
	if strings.TrimSpace(in.FirstName) == "" {
		return validationError("first_name is required")
	}
	if strings.TrimSpace(in.LastName) == "" {
		return validationError("last_name is required")
	}
	if in.TherapistID == uuid.Nil {
		return validationError("therapist_id is required")
	}
	if email := strings.TrimSpace(in.Email); email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return validationError("invalid email")
		}
	}
	return nil
}

func (s *Service) Create(ctx context.Context, actor string, in Input) (domain.Patient, error) {
	if strings.TrimSpace(actor) == "" {
		return domain.Patient{}, validationError("actor is required")
	}
	if err := in.validate(); err != nil {
		return domain.Patient{}, err
	}

	p, err := s.repo.Create(ctx, domain.Patient{
		FirstName:             strings.TrimSpace(in.FirstName),
		LastName:              strings.TrimSpace(in.LastName),
		DateOfBirth:           in.DateOfBirth,
		Address:               in.Address,
		City:                  in.City,
		State:                 in.State,
		ZipCode:               in.ZipCode,
		Email:                 strings.TrimSpace(in.Email),
		HomePhoneNumber:       in.HomePhoneNumber,
		CellPhoneNumber:       in.CellPhoneNumber,
		WorkPhoneNumber:       in.WorkPhoneNumber,
		EmergencyContactName:  in.EmergencyContactName,
		EmergencyContactPhone: in.EmergencyContactPhone,
		ReferredBy:            in.ReferredBy,
		TherapistID:           in.TherapistID,
		ActiveStatus:          true,
	})
	if err != nil {
		return domain.Patient{}, err
	}

	if err := s.audit.Record(ctx, actor, domain.AuditActionCreate, "Patient", p.ID); err != nil {
		return domain.Patient{}, err
	}
	return p, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (domain.Patient, error) {
	if id == uuid.Nil {
		return domain.Patient{}, validationError("patient_id is required")
	}
	return s.repo.FindByID(ctx, id)
}

func (s *Service) ListActive(ctx context.Context) ([]domain.Patient, error) {
	return s.repo.ListActive(ctx)
}

func (s *Service) ListByTherapist(ctx context.Context, therapistID uuid.UUID) ([]domain.Patient, error) {
	if therapistID == uuid.Nil {
		return nil, validationError("therapist_id is required")
	}
	return s.repo.ListByTherapist(ctx, therapistID)
}

func (s *Service) Update(ctx context.Context, actor string, id uuid.UUID, in Input) (domain.Patient, error) {
	if strings.TrimSpace(actor) == "" {
		return domain.Patient{}, validationError("actor is required")
	}
	if id == uuid.Nil {
		return domain.Patient{}, validationError("patient_id is required")
	}
	if err := in.validate(); err != nil {
		return domain.Patient{}, err
	}

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Patient{}, err
	}

	p.FirstName = strings.TrimSpace(in.FirstName)
	p.LastName = strings.TrimSpace(in.LastName)
	p.DateOfBirth = in.DateOfBirth
	p.Address = in.Address
	p.City = in.City
	p.State = in.State
	p.ZipCode = in.ZipCode
	p.Email = strings.TrimSpace(in.Email)
	p.HomePhoneNumber = in.HomePhoneNumber
	p.CellPhoneNumber = in.CellPhoneNumber
	p.WorkPhoneNumber = in.WorkPhoneNumber
	p.EmergencyContactName = in.EmergencyContactName
	p.EmergencyContactPhone = in.EmergencyContactPhone
	p.ReferredBy = in.ReferredBy
	p.TherapistID = in.TherapistID

	updated, err := s.repo.Update(ctx, p)
	if err != nil {
		return domain.Patient{}, err
	}

	if err := s.audit.Record(ctx, actor, domain.AuditActionUpdate, "Patient", updated.ID); err != nil {
		return domain.Patient{}, err
	}
	return updated, nil
}

// Deactivate soft-deletes the patient. Deactivating an already-inactive
// record is a no-op success.
func (s *Service) Deactivate(ctx context.Context, actor string, id uuid.UUID) error {
	if strings.TrimSpace(actor) == "" {
		return validationError("actor is required")
	}
	if id == uuid.Nil {
		return validationError("patient_id is required")
	}

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !p.ActiveStatus {
		return nil
	}

	p.ActiveStatus = false
	if _, err := s.repo.Update(ctx, p); err != nil {
		return err
	}
	return s.audit.Record(ctx, actor, domain.AuditActionDelete, "Patient", id)
}
