package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/groomspot/groomspot-api/internal/domain/schedule"
)

// activeSlotIndex is the partial unique index on
// (provider_id, date, time_slot) WHERE status IN (active-hold set).
// It closes the double-booking race that CheckSlot alone cannot: two
// owners may both pass the check before either insert commits, and the
// second insert then fails here.
const activeSlotIndex = "bookings_active_slot_idx"

// Repository defines booking data access
type Repository interface {
	Create(ctx context.Context, b *Booking, pets []Pet) error
	GetByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	ListPets(ctx context.Context, bookingID uuid.UUID) ([]Pet, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]Booking, int, error)
	ListByProvider(ctx context.Context, providerID uuid.UUID, status *Status, limit, offset int) ([]Booking, int, error)

	// The Update* methods are compare-and-swap on the stored status:
	// they report false when the booking was no longer in the expected
	// source state, leaving the row untouched.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to Status) (bool, error)
	UpdateStatusWithReason(ctx context.Context, id uuid.UUID, from, to Status, reason string) (bool, error)
	UpdateStatusWithProof(ctx context.Context, id uuid.UUID, from, to Status, proofKey, reference string) (bool, error)
	UpdateSlot(ctx context.Context, id uuid.UUID, current Status, date, timeSlot string) (bool, error)

	ActiveHolds(ctx context.Context, providerID uuid.UUID, date string) ([]schedule.SlotHold, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates booking repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func isActiveSlotViolation(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == "23505" && pqErr.Constraint == activeSlotIndex
}

func (r *repository) Create(ctx context.Context, b *Booking, pets []Pet) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("create booking: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO bookings (id, provider_id, owner_id, service_id, pricing_option_id,
			pet_type, size_key, date, time_slot, price, status, created_at, updated_at)
		VALUES (:id, :provider_id, :owner_id, :service_id, :pricing_option_id,
			:pet_type, :size_key, :date, :time_slot, :price, :status, :created_at, :updated_at)
	`
	if _, err := tx.NamedExecContext(ctx, query, b); err != nil {
		if isActiveSlotViolation(err) {
			return schedule.ErrSlotTaken
		}
		return fmt.Errorf("create booking: %w", err)
	}

	petQuery := `
		INSERT INTO booking_pets (id, booking_id, name, pet_type, weight, service_name, notes)
		VALUES (:id, :booking_id, :name, :pet_type, :weight, :service_name, :notes)
	`
	for i := range pets {
		if _, err := tx.NamedExecContext(ctx, petQuery, &pets[i]); err != nil {
			return fmt.Errorf("create booking pet: %w", err)
		}
	}
	return tx.Commit()
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var b Booking
	query := `SELECT * FROM bookings WHERE id = $1`
	err := r.db.GetContext(ctx, &b, query, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}
	return &b, nil
}

func (r *repository) ListPets(ctx context.Context, bookingID uuid.UUID) ([]Pet, error) {
	var pets []Pet
	query := `SELECT * FROM booking_pets WHERE booking_id = $1 ORDER BY name`
	err := r.db.SelectContext(ctx, &pets, query, bookingID)
	if err != nil {
		return nil, fmt.Errorf("list booking pets: %w", err)
	}
	return pets, nil
}

func (r *repository) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]Booking, int, error) {
	var bookings []Booking
	query := `SELECT * FROM bookings WHERE owner_id = $1 ORDER BY date DESC, time_slot DESC LIMIT $2 OFFSET $3`
	if err := r.db.SelectContext(ctx, &bookings, query, ownerID, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("list owner bookings: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM bookings WHERE owner_id = $1`, ownerID); err != nil {
		return nil, 0, fmt.Errorf("count owner bookings: %w", err)
	}
	return bookings, total, nil
}

func (r *repository) ListByProvider(ctx context.Context, providerID uuid.UUID, status *Status, limit, offset int) ([]Booking, int, error) {
	var bookings []Booking
	var total int

	if status != nil {
		query := `SELECT * FROM bookings WHERE provider_id = $1 AND status = $2 ORDER BY date DESC, time_slot DESC LIMIT $3 OFFSET $4`
		if err := r.db.SelectContext(ctx, &bookings, query, providerID, *status, limit, offset); err != nil {
			return nil, 0, fmt.Errorf("list provider bookings: %w", err)
		}
		if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM bookings WHERE provider_id = $1 AND status = $2`, providerID, *status); err != nil {
			return nil, 0, fmt.Errorf("count provider bookings: %w", err)
		}
		return bookings, total, nil
	}

	query := `SELECT * FROM bookings WHERE provider_id = $1 ORDER BY date DESC, time_slot DESC LIMIT $2 OFFSET $3`
	if err := r.db.SelectContext(ctx, &bookings, query, providerID, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("list provider bookings: %w", err)
	}
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM bookings WHERE provider_id = $1`, providerID); err != nil {
		return nil, 0, fmt.Errorf("count provider bookings: %w", err)
	}
	return bookings, total, nil
}

func (r *repository) cas(ctx context.Context, query string, args ...interface{}) (bool, error) {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isActiveSlotViolation(err) {
			return false, schedule.ErrSlotTaken
		}
		return false, fmt.Errorf("update booking: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update booking: %w", err)
	}
	return n > 0, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to Status) (bool, error) {
	return r.cas(ctx,
		`UPDATE bookings SET status = $1, updated_at = NOW() WHERE id = $2 AND status = $3`,
		to, id, from)
}

func (r *repository) UpdateStatusWithReason(ctx context.Context, id uuid.UUID, from, to Status, reason string) (bool, error) {
	return r.cas(ctx,
		`UPDATE bookings SET status = $1, rejection_reason = $2, updated_at = NOW() WHERE id = $3 AND status = $4`,
		to, reason, id, from)
}

func (r *repository) UpdateStatusWithProof(ctx context.Context, id uuid.UUID, from, to Status, proofKey, reference string) (bool, error) {
	return r.cas(ctx,
		`UPDATE bookings SET status = $1, payment_proof_key = $2, reference_number = $3, updated_at = NOW() WHERE id = $4 AND status = $5`,
		to, proofKey, reference, id, from)
}

// UpdateSlot moves a booking to a new slot without changing its status.
// The status guard keeps a concurrent transition from racing the move,
// and the partial unique index rejects a slot grabbed in between.
func (r *repository) UpdateSlot(ctx context.Context, id uuid.UUID, current Status, date, timeSlot string) (bool, error) {
	return r.cas(ctx,
		`UPDATE bookings SET date = $1, time_slot = $2, updated_at = NOW() WHERE id = $3 AND status = $4`,
		date, timeSlot, id, current)
}

// ActiveHolds implements schedule.HoldSource
func (r *repository) ActiveHolds(ctx context.Context, providerID uuid.UUID, date string) ([]schedule.SlotHold, error) {
	rows := []struct {
		ID         uuid.UUID `db:"id"`
		ProviderID uuid.UUID `db:"provider_id"`
		Date       string    `db:"date"`
		TimeSlot   string    `db:"time_slot"`
	}{}
	query := `
		SELECT id, provider_id, date, time_slot FROM bookings
		WHERE provider_id = $1 AND date = $2 AND status = ANY($3)
	`
	statuses := make([]string, len(ActiveHoldStatuses))
	for i, s := range ActiveHoldStatuses {
		statuses[i] = string(s)
	}
	if err := r.db.SelectContext(ctx, &rows, query, providerID, date, pq.Array(statuses)); err != nil {
		return nil, fmt.Errorf("list active holds: %w", err)
	}

	holds := make([]schedule.SlotHold, 0, len(rows))
	for _, row := range rows {
		holds = append(holds, schedule.SlotHold{
			BookingID:  row.ID,
			ProviderID: row.ProviderID,
			Date:       row.Date,
			TimeSlot:   row.TimeSlot,
		})
	}
	return holds, nil
}
