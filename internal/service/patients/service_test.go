package patients

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/BrettNon/EHR-System-for-PIES-Holistic-Yoga/internal/domain"
	"github.com/BrettNon/EHR-System-for-PIES-Holistic-Yoga/internal/store"
)

type fakeRepo struct {
	createFn   func(ctx context.Context, p domain.Patient) (domain.Patient, error)
	findByIDFn func(ctx context.Context, id uuid.UUID) (domain.Patient, error)
	updateFn   func(ctx context.Context, p domain.Patient) (domain.Patient, error)
}

func (f *fakeRepo) Create(ctx context.Context, p domain.Patient) (domain.Patient, error) {
	if f.createFn == nil {
		panic("Create not configured")
	}
	return f.createFn(ctx, p)
}

func (f *fakeRepo) FindByID(ctx context.Context, id uuid.UUID) (domain.Patient, error) {
	if f.findByIDFn == nil {
		panic("FindByID not configured")
	}
	return f.findByIDFn(ctx, id)
}

func (f *fakeRepo) ListActive(ctx context.Context) ([]domain.Patient, error) {
	return nil, nil
}

func (f *fakeRepo) ListByTherapist(ctx context.Context, therapistID uuid.UUID) ([]domain.Patient, error) {
	return nil, nil
}

func (f *fakeRepo) Update(ctx context.Context, p domain.Patient) (domain.Patient, error) {
	if f.updateFn == nil {
		panic("Update not configured")
	}
	return f.updateFn(ctx, p)
}

type recordedAudit struct {
	actor, action, entity string
	entityID              uuid.UUID
}

type fakeAudit struct {
	entries []recordedAudit
}

func (f *fakeAudit) Record(ctx context.Context, actor, action, entity string, entityID uuid.UUID) error {
	f.entries = append(f.entries, recordedAudit{actor: actor, action: action, entity: entity, entityID: entityID})
	return nil
}

var therapistID = uuid.MustParse("00000000-0000-0000-0000-000000000001")

func TestCreateValidation(t *testing.T) {
	svc := NewService(&fakeRepo{}, &fakeAudit{})

	tests := []struct {
		name string
		in   Input
	}{
		{"blank first name", Input{FirstName: "  ", LastName: "Doe", TherapistID: therapistID}},
		{"blank last name", Input{FirstName: "Jane", LastName: "", TherapistID: therapistID}},
		{"missing therapist", Input{FirstName: "Jane", LastName: "Doe"}},
		{"bad email", Input{FirstName: "Jane", LastName: "Doe", TherapistID: therapistID, Email: "not-an-email"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), "front-desk", tc.in)
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("error = %v, want *ValidationError", err)
			}
		})
	}
}

func TestCreateTrimsAndAudits(t *testing.T) {
	var saved domain.Patient
	repo := &fakeRepo{
		createFn: func(ctx context.Context, p domain.Patient) (domain.Patient, error) {
			p.ID = uuid.MustParse("00000000-0000-0000-0000-000000000099")
			saved = p
			return p, nil
		},
	}
	audit := &fakeAudit{}
	svc := NewService(repo, audit)

	p, err := svc.Create(context.Background(), "front-desk", Input{
		FirstName:   "  Jane ",
		LastName:    " Doe ",
		Email:       "jane@example.com",
		TherapistID: therapistID,
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if saved.FirstName != "Jane" || saved.LastName != "Doe" {
		t.Fatalf("names = %q %q, want trimmed", saved.FirstName, saved.LastName)
	}
	if !saved.ActiveStatus {
		t.Fatalf("new patient must be active")
	}
	if len(audit.entries) != 1 {
		t.Fatalf("audit entries = %d, want 1", len(audit.entries))
	}
	e := audit.entries[0]
	if e.actor != "front-desk" || e.action != domain.AuditActionCreate || e.entity != "Patient" || e.entityID != p.ID {
		t.Fatalf("audit entry = %+v", e)
	}
}

func TestUpdateNotFound(t *testing.T) {
	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, id uuid.UUID) (domain.Patient, error) {
			return domain.Patient{}, store.ErrNotFound
		},
	}
	svc := NewService(repo, &fakeAudit{})

	_, err := svc.Update(context.Background(), "front-desk", uuid.MustParse("00000000-0000-0000-0000-000000000042"), Input{
		FirstName:   "Jane",
		LastName:    "Doe",
		TherapistID: therapistID,
	})
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("error = %v, want store.ErrNotFound", err)
	}
}

func TestDeactivateSoftDeletesAndAudits(t *testing.T) {
	id := uuid.MustParse("00000000-0000-0000-0000-000000000042")
	existing := domain.Patient{ID: id, FirstName: "Jane", LastName: "Doe", TherapistID: therapistID, ActiveStatus: true}

	var updated domain.Patient
	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, got uuid.UUID) (domain.Patient, error) {
			return existing, nil
		},
		updateFn: func(ctx context.Context, p domain.Patient) (domain.Patient, error) {
			updated = p
			return p, nil
		},
	}
	audit := &fakeAudit{}
	svc := NewService(repo, audit)

	if err := svc.Deactivate(context.Background(), "front-desk", id); err != nil {
		t.Fatalf("Deactivate error: %v", err)
	}
	if updated.ActiveStatus {
		t.Fatalf("patient still active after deactivate")
	}
	if len(audit.entries) != 1 || audit.entries[0].action != domain.AuditActionDelete {
		t.Fatalf("audit entries = %+v", audit.entries)
	}
}

func TestDeactivateAlreadyInactiveIsNoOp(t *testing.T) {
	id := uuid.MustParse("00000000-0000-0000-0000-000000000042")
	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, got uuid.UUID) (domain.Patient, error) {
			return domain.Patient{ID: id, ActiveStatus: false}, nil
		},
	}
	audit := &fakeAudit{}
	svc := NewService(repo, audit)

	if err := svc.Deactivate(context.Background(), "front-desk", id); err != nil {
		t.Fatalf("Deactivate error: %v", err)
	}
	if len(audit.entries) != 0 {
		t.Fatalf("audit entries = %d, want 0", len(audit.entries))
	}
}
