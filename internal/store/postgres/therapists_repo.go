package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/uptrace/bun"

	"github.com/BrettNon/EHR-System-for-PIES-Holistic-Yoga/internal/domain"
	"github.com/BrettNon/EHR-System-for-PIES-Holistic-Yoga/internal/store"
)

type TherapistRepo struct {
	db *bun.DB
}

func NewTherapistRepo(db *bun.DB) *TherapistRepo {
	return &TherapistRepo{db: db}
}

func (r *TherapistRepo) Create(ctx context.Context, t domain.Therapist) (domain.Therapist, error) {
	_, err := r.db.NewInsert().Model(&t).Exec(ctx)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.Therapist{}, store.ErrConflict
		}
		return domain.Therapist{}, err
	}
	return t, nil
}

func (r *TherapistRepo) FindByID(ctx context.Context, id uuid.UUID) (domain.Therapist, error) {
	var m domain.Therapist
	err := r.db.NewSelect().
		Model(&m).
		Where("id = ?", id).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Therapist{}, store.ErrNotFound
	}
	if err != nil {
		return domain.Therapist{}, err
	}
	return m, nil
}

func (r *TherapistRepo) FindByUsername(ctx context.Context, username string) (domain.Therapist, error) {
	var m domain.Therapist
	err := r.db.NewSelect().
		Model(&m).
		Where("username = ?", username).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Therapist{}, store.ErrNotFound
	}
	if err != nil {
		return domain.Therapist{}, err
	}
	return m, nil
}

func (r *TherapistRepo) ListActive(ctx context.Context) ([]domain.Therapist, error) {
	var rows []domain.Therapist
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

func (r *TherapistRepo) Update(ctx context.Context, t domain.Therapist) (domain.Therapist, error) {
	res, err := r.db.NewUpdate().
		Model(&t).
		WherePK().
		Exec(ctx)
	if err != nil {
		return domain.Therapist{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return domain.Therapist{}, err
	}
	if affected == 0 {
		return domain.Therapist{}, store.ErrNotFound
	}
	return t, nil
}
