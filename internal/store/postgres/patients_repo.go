package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/BrettNon/EHR-System-for-PIES-Holistic-Yoga/internal/domain"
	"github.com/BrettNon/EHR-System-for-PIES-Holistic-Yoga/internal/store"
)

type PatientRepo struct {
	db *bun.DB
}

func NewPatientRepo(db *bun.DB) *PatientRepo {
	return &PatientRepo{db: db}
}

func (r *PatientRepo) Create(ctx context.Context, p domain.Patient) (domain.Patient, error) {
	_, err := r.db.NewInsert().Model(&p).Exec(ctx)
	if err != nil {
		return domain.Patient{}, err
	}
	return p, nil
}

func (r *PatientRepo) FindByID(ctx context.Context, id uuid.UUID) (domain.Patient, error) {
	var m domain.Patient
	err := r.db.NewSelect().
		Model(&m).
		Where("id = ?", id).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Patient{}, store.ErrNotFound
	}
	if err != nil {
		return domain.Patient{}, err
	}
	return m, nil
}

func (r *PatientRepo) ListActive(ctx context.Context) ([]domain.Patient, error) {
	var rows []domain.Patient
	err := r.db.NewSelect().
		Model(&rows).
		Where("active_status").
		OrderExpr("last_name ASC, first_name ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *PatientRepo) ListByTherapist(ctx context.Context, therapistID uuid.UUID) ([]domain.Patient, error) {
	var rows []domain.Patient
	err := r.db.NewSelect().
		Model(&rows).
		Where("therapist_id = ?", therapistID).
		Where("active_status").
		OrderExpr("last_name ASC, first_name ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *PatientRepo) Update(ctx context.Context, p domain.Patient) (domain.Patient, error) {
	res, err := r.db.NewUpdate().
		Model(&p).
		WherePK().
		Exec(ctx)
	if err != nil {
		return domain.Patient{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return domain.Patient{}, err
	}
	if affected == 0 {
		return domain.Patient{}, store.ErrNotFound
	}
	return p, nil
}
