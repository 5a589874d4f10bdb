package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines operating-hours data access
type Repository interface {
	ListByProvider(ctx context.Context, providerID uuid.UUID) ([]OperatingHours, error)
	ReplaceDay(ctx context.Context, providerID uuid.UUID, weekday time.Weekday, windows []Window) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates schedule repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListByProvider(ctx context.Context, providerID uuid.UUID) ([]OperatingHours, error) {
	var hours []OperatingHours
	query := `SELECT * FROM operating_hours WHERE provider_id = $1 ORDER BY weekday, start_time`
	err := r.db.SelectContext(ctx, &hours, query, providerID)
	if err != nil {
		return nil, fmt.Errorf("list operating hours: %w", err)
	}
	return hours, nil
}

// ReplaceDay swaps out all of one weekday's windows in a transaction.
// An empty windows slice closes the day.
func (r *repository) ReplaceDay(ctx context.Context, providerID uuid.UUID, weekday time.Weekday, windows []Window) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("replace day: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`DELETE FROM operating_hours WHERE provider_id = $1 AND weekday = $2`,
		providerID, weekday)
	if err != nil {
		return fmt.Errorf("replace day: %w", err)
	}

	query := `
		INSERT INTO operating_hours (id, provider_id, weekday, start_time, end_time)
		VALUES ($1, $2, $3, $4, $5)
	`
	for _, w := range windows {
		if _, err := tx.ExecContext(ctx, query, uuid.New(), providerID, weekday, w.Start, w.End); err != nil {
			return fmt.Errorf("replace day: %w", err)
		}
	}
	return tx.Commit()
}
