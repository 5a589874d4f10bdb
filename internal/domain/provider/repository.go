package provider

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines groomer profile database operations
type Repository interface {
	Create(ctx context.Context, p *Profile) error
	GetByID(ctx context.Context, id uuid.UUID) (*Profile, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*Profile, error)
	Update(ctx context.Context, p *Profile) error
	UpdateVerification(ctx context.Context, id uuid.UUID, status VerificationStatus, reason sql.NullString) error
	ListApproved(ctx context.Context, city string, limit, offset int) ([]Profile, error)
	CountApproved(ctx context.Context, city string) (int, error)
	ListByStatus(ctx context.Context, status VerificationStatus, limit, offset int) ([]Profile, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates a new groomer profile repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, p *Profile) error {
	query := `
		INSERT INTO groomer_profiles (
			id, user_id, business_name, description, city, address, phone,
			document_key, verification_status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.UserID, p.BusinessName, p.Description, p.City, p.Address, p.Phone,
		p.DocumentKey, p.VerificationStatus, p.CreatedAt, p.UpdatedAt,
	)
	return err
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Profile, error) {
	query := `SELECT * FROM groomer_profiles WHERE id = $1`
	var p Profile
	err := r.db.GetContext(ctx, &p, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *repository) GetByUserID(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	query := `SELECT * FROM groomer_profiles WHERE user_id = $1`
	var p Profile
	err := r.db.GetContext(ctx, &p, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *repository) Update(ctx context.Context, p *Profile) error {
	query := `
		UPDATE groomer_profiles SET
			business_name = $2, description = $3, city = $4, address = $5, phone = $6,
			updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query, p.ID, p.BusinessName, p.Description, p.City, p.Address, p.Phone)
	return err
}

func (r *repository) UpdateVerification(ctx context.Context, id uuid.UUID, status VerificationStatus, reason sql.NullString) error {
	query := `
		UPDATE groomer_profiles SET verification_status = $2, rejection_reason = $3, updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query, id, status, reason)
	return err
}

func (r *repository) ListApproved(ctx context.Context, city string, limit, offset int) ([]Profile, error) {
	query := `
		SELECT * FROM groomer_profiles
		WHERE verification_status = 'approved' AND ($1 = '' OR city ILIKE $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	var profiles []Profile
	err := r.db.SelectContext(ctx, &profiles, query, city, limit, offset)
	return profiles, err
}

func (r *repository) CountApproved(ctx context.Context, city string) (int, error) {
	query := `
		SELECT COUNT(*) FROM groomer_profiles
		WHERE verification_status = 'approved' AND ($1 = '' OR city ILIKE $1)
	`
	var count int
	err := r.db.GetContext(ctx, &count, query, city)
	return count, err
}

func (r *repository) ListByStatus(ctx context.Context, status VerificationStatus, limit, offset int) ([]Profile, error) {
	query := `
		SELECT * FROM groomer_profiles
		WHERE verification_status = $1
		ORDER BY created_at ASC
		LIMIT $2 OFFSET $3
	`
	var profiles []Profile
	err := r.db.SelectContext(ctx, &profiles, query, status, limit, offset)
	return profiles, err
}
