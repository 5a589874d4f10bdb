package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines catalog data access
type Repository interface {
	CreateService(ctx context.Context, svc *Service) error
	GetService(ctx context.Context, id uuid.UUID) (*Service, error)
	ListServicesByProvider(ctx context.Context, providerID uuid.UUID) ([]Service, error)
	UpdateService(ctx context.Context, svc *Service) error
	DeleteService(ctx context.Context, id uuid.UUID) error

	CreateOption(ctx context.Context, opt *PricingOption) error
	GetOption(ctx context.Context, id uuid.UUID) (*PricingOption, error)
	ListOptions(ctx context.Context, serviceID uuid.UUID) ([]PricingOption, error)
	UpdateOption(ctx context.Context, opt *PricingOption) error
	DeleteOption(ctx context.Context, id uuid.UUID) error

	SubmitDraft(ctx context.Context, services []DraftService) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates catalog repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateService(ctx context.Context, svc *Service) error {
	query := `
		INSERT INTO services (id, provider_id, kind, name, description, notes, created_at, updated_at)
		VALUES (:id, :provider_id, :kind, :name, :description, :notes, :created_at, :updated_at)
	`
	_, err := r.db.NamedExecContext(ctx, query, svc)
	if err != nil {
		return fmt.Errorf("create service: %w", err)
	}
	return nil
}

func (r *repository) GetService(ctx context.Context, id uuid.UUID) (*Service, error) {
	var svc Service
	query := `SELECT * FROM services WHERE id = $1`
	err := r.db.GetContext(ctx, &svc, query, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get service: %w", err)
	}
	return &svc, nil
}

func (r *repository) ListServicesByProvider(ctx context.Context, providerID uuid.UUID) ([]Service, error) {
	var services []Service
	query := `SELECT * FROM services WHERE provider_id = $1 ORDER BY created_at`
	err := r.db.SelectContext(ctx, &services, query, providerID)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	return services, nil
}

func (r *repository) UpdateService(ctx context.Context, svc *Service) error {
	query := `
		UPDATE services
		SET name = :name, description = :description, notes = :notes, updated_at = NOW()
		WHERE id = :id
	`
	_, err := r.db.NamedExecContext(ctx, query, svc)
	if err != nil {
		return fmt.Errorf("update service: %w", err)
	}
	return nil
}

// DeleteService removes a service and cascades its pricing options
func (r *repository) DeleteService(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("delete service: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM pricing_options WHERE service_id = $1`, id); err != nil {
		return fmt.Errorf("delete service options: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM services WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete service: %w", err)
	}
	return tx.Commit()
}

func (r *repository) CreateOption(ctx context.Context, opt *PricingOption) error {
	query := `
		INSERT INTO pricing_options (id, service_id, pet_type, size_key, weight_min, weight_max, price, created_at)
		VALUES (:id, :service_id, :pet_type, :size_key, :weight_min, :weight_max, :price, :created_at)
	`
	_, err := r.db.NamedExecContext(ctx, query, opt)
	if err != nil {
		return fmt.Errorf("create pricing option: %w", err)
	}
	return nil
}

func (r *repository) GetOption(ctx context.Context, id uuid.UUID) (*PricingOption, error) {
	var opt PricingOption
	query := `SELECT * FROM pricing_options WHERE id = $1`
	err := r.db.GetContext(ctx, &opt, query, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get pricing option: %w", err)
	}
	return &opt, nil
}

func (r *repository) ListOptions(ctx context.Context, serviceID uuid.UUID) ([]PricingOption, error) {
	var options []PricingOption
	query := `SELECT * FROM pricing_options WHERE service_id = $1 ORDER BY pet_type, size_key`
	err := r.db.SelectContext(ctx, &options, query, serviceID)
	if err != nil {
		return nil, fmt.Errorf("list pricing options: %w", err)
	}
	return options, nil
}

func (r *repository) UpdateOption(ctx context.Context, opt *PricingOption) error {
	query := `
		UPDATE pricing_options
		SET pet_type = :pet_type, size_key = :size_key, weight_min = :weight_min,
		    weight_max = :weight_max, price = :price
		WHERE id = :id
	`
	_, err := r.db.NamedExecContext(ctx, query, opt)
	if err != nil {
		return fmt.Errorf("update pricing option: %w", err)
	}
	return nil
}

func (r *repository) DeleteOption(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM pricing_options WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete pricing option: %w", err)
	}
	return nil
}

// SubmitDraft persists a finished draft in one transaction
func (r *repository) SubmitDraft(ctx context.Context, services []DraftService) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("submit draft: %w", err)
	}
	defer tx.Rollback()

	svcQuery := `
		INSERT INTO services (id, provider_id, kind, name, description, notes, created_at, updated_at)
		VALUES (:id, :provider_id, :kind, :name, :description, :notes, NOW(), NOW())
	`
	optQuery := `
		INSERT INTO pricing_options (id, service_id, pet_type, size_key, weight_min, weight_max, price, created_at)
		VALUES (:id, :service_id, :pet_type, :size_key, :weight_min, :weight_max, :price, NOW())
	`
	for i := range services {
		if _, err := tx.NamedExecContext(ctx, svcQuery, &services[i].Service); err != nil {
			return fmt.Errorf("submit draft service: %w", err)
		}
		for j := range services[i].Options {
			if _, err := tx.NamedExecContext(ctx, optQuery, &services[i].Options[j]); err != nil {
				return fmt.Errorf("submit draft option: %w", err)
			}
		}
	}
	return tx.Commit()
}
