// Package therapists manages therapist records and their login credentials.
package therapists

import (
	"context"
	"net/mail"
	"strings"

	"github.com/google/uuid"

	"github.com/BrettNon/EHR-System-for-PIES-Holistic-Yoga/internal/auth"
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
	repo  store.TherapistRepository
	audit auditRecorder
}

func NewService(repo store.TherapistRepository, audit auditRecorder) *Service {
	return &Service{repo: repo, audit: audit}
}

type CreateInput struct {
	FirstName   string
	LastName    string
	Title       string
	Email       string
	PhoneNumber string
	Username    string
	Password    string
	Role        domain.Role
}

func (s *Service) Create(ctx context.Context, actor string, in CreateInput) (domain.Therapist, error) {
	if strings.TrimSpace(actor) == "" {
		return domain.Therapist{}, validationError("actor is required")
	}
	if strings.TrimSpace(in.FirstName) == "" {
		return domain.Therapist{}, validationError("first_name is required")
	}
	if strings.TrimSpace(in.LastName) == "" {
		return domain.Therapist{}, validationError("last_name is required")
	}
	username := strings.TrimSpace(in.Username)
	if username == "" {
		return domain.Therapist{}, validationError("username is required")
	}
	if len(in.Password) < 8 {
		return domain.Therapist{}, validationError("password must be at least 8 characters")
	}
	if email := strings.TrimSpace(in.Email); email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return domain.Therapist{}, validationError("invalid email")
		}
	}
	role := in.Role
	if role == "" {
		role = domain.RoleTherapist
	}
	if role != domain.RoleAdmin && role != domain.RoleTherapist {
		return domain.Therapist{}, validationError("invalid role")
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return domain.Therapist{}, err
	}

	t, err := s.repo.Create(ctx, domain.Therapist{
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Title:        in.Title,
		Email:        strings.TrimSpace(in.Email),
		PhoneNumber:  in.PhoneNumber,
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		ActiveStatus: true,
	})
	if err != nil {
		return domain.Therapist{}, err
	}

	if err := s.audit.Record(ctx, actor, domain.AuditActionCreate, "Therapist", t.ID); err != nil {
		return domain.Therapist{}, err
	}
	return t, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (domain.Therapist, error) {
	if id == uuid.Nil {
		return domain.Therapist{}, validationError("therapist_id is required")
	}
	return s.repo.FindByID(ctx, id)
}

func (s *Service) ListActive(ctx context.Context) ([]domain.Therapist, error) {
	return s.repo.ListActive(ctx)
}

type UpdateInput struct {
	FirstName   string
	LastName    string
	Title       string
	Email       string
	PhoneNumber string
	// Password is optional; empty leaves the stored hash untouched.
	Password string
}

func (s *Service) Update(ctx context.Context, actor string, id uuid.UUID, in UpdateInput) (domain.Therapist, error) {
	if strings.TrimSpace(actor) == "" {
		return domain.Therapist{}, validationError("actor is required")
	}
	if id == uuid.Nil {
		return domain.Therapist{}, validationError("therapist_id is required")
	}
	if strings.TrimSpace(in.FirstName) == "" {
		return domain.Therapist{}, validationError("first_name is required")
	}
	if strings.TrimSpace(in.LastName) == "" {
		return domain.Therapist{}, validationError("last_name is required")
	}
	if email := strings.TrimSpace(in.Email); email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return domain.Therapist{}, validationError("invalid email")
		}
	}

	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Therapist{}, err
	}

	t.FirstName = strings.TrimSpace(in.FirstName)
	t.LastName = strings.TrimSpace(in.LastName)
	t.Title = in.Title
	t.Email = strings.TrimSpace(in.Email)
	t.PhoneNumber = in.PhoneNumber
	if in.Password != "" {
		if len(in.Password) < 8 {
			return domain.Therapist{}, validationError("password must be at least 8 characters")
		}
		hash, err := auth.HashPassword(in.Password)
		if err != nil {
			return domain.Therapist{}, err
		}
		t.PasswordHash = hash
	}

	updated, err := s.repo.Update(ctx, t)
	if err != nil {
		return domain.Therapist{}, err
	}

	if err := s.audit.Record(ctx, actor, domain.AuditActionUpdate, "Therapist", updated.ID); err != nil {
		return domain.Therapist{}, err
	}
	return updated, nil
}

// Deactivate soft-deletes the therapist; already-inactive is a no-op success.
func (s *Service) Deactivate(ctx context.Context, actor string, id uuid.UUID) error {
	if strings.TrimSpace(actor) == "" {
		return validationError("actor is required")
	}
	if id == uuid.Nil {
		return validationError("therapist_id is required")
	}

	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !t.ActiveStatus {
		return nil
	}

	t.ActiveStatus = false
	if _, err := s.repo.Update(ctx, t); err != nil {
		return err
	}
	return s.audit.Record(ctx, actor, domain.AuditActionDelete, "Therapist", id)
}

// Authenticate checks a username/password pair against the stored bcrypt
// hash. Inactive therapists cannot log in. The same error comes back for a
// missing user and a wrong password.
func (s *Service) Authenticate(ctx context.Context, username, password string) (domain.Therapist, error) {
	t, err := s.repo.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return domain.Therapist{}, store.ErrNotFound
	}
	if !t.ActiveStatus || !auth.CheckPassword(t.PasswordHash, password) {
		return domain.Therapist{}, store.ErrNotFound
	}
	return t, nil
}
