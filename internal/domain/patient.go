package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type Patient struct {
	bun.BaseModel `bun:"table:patients"`

	ID                    uuid.UUID  `bun:"id,pk,type:uuid" json:"id"`
	FirstName             string     `bun:"first_name,notnull" json:"first_name"`
	LastName              string     `bun:"last_name,notnull" json:"last_name"`
	DateOfBirth           *time.Time `bun:"date_of_birth" json:"date_of_birth,omitempty"`
	Address               string     `bun:"address" json:"address"`
	City                  string     `bun:"city" json:"city"`
	State                 string     `bun:"state" json:"state"`
	ZipCode               string     `bun:"zip_code" json:"zip_code"`
	Email                 string     `bun:"email" json:"email"`
	HomePhoneNumber       string     `bun:"home_phone_number" json:"home_phone_number"`
	CellPhoneNumber       string     `bun:"cell_phone_number" json:"cell_phone_number"`
	WorkPhoneNumber       string     `bun:"work_phone_number" json:"work_phone_number"`
	EmergencyContactName  string     `bun:"emergency_contact_name" json:"emergency_contact_name"`
	EmergencyContactPhone string     `bun:"emergency_contact_phone" json:"emergency_contact_phone"`
	ReferredBy            string     `bun:"referred_by" json:"referred_by"`
	TherapistID           uuid.UUID  `bun:"therapist_id,notnull,type:uuid" json:"therapist_id"`
	ActiveStatus          bool       `bun:"active_status,notnull" json:"active_status"`
	CreatedAt             time.Time  `bun:"created_at,notnull" json:"created_at"`
	UpdatedAt             time.Time  `bun:"updated_at,notnull" json:"updated_at"`
}

func (p *Patient) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	now := time.Now().UTC()
	switch query.(type) {
	case *bun.InsertQuery:
		if p.ID == uuid.Nil {
			id, err := uuid.NewV7()
			if err != nil {
				return err
			}
			p.ID = id
		}
		if p.CreatedAt.IsZero() {
			p.CreatedAt = now
		}
		if p.UpdatedAt.IsZero() {
			p.UpdatedAt = now
		}
	case *bun.UpdateQuery:
		p.UpdatedAt = now
	}
	return nil
}
