package booking

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/groomspot/groomspot-api/internal/domain/catalog"
)

// Status is the canonical booking status set. Completed is derived from
// wall-clock time at read, never stored.
type Status string

const (
	StatusPending              Status = "pending"
	StatusApproved             Status = "approved"
	StatusDeclined             Status = "declined"
	StatusAwaitingVerification Status = "awaiting_verification"
	StatusPaid                 Status = "paid"
	StatusVoided               Status = "voided"
	StatusCompleted            Status = "completed"
	StatusCancelled            Status = "cancelled"
)

// ActiveHoldStatuses are the stored statuses that reserve a provider
// timeslot against new bookings
var ActiveHoldStatuses = []Status{
	StatusPending,
	StatusApproved,
	StatusAwaitingVerification,
	StatusPaid,
}

// HoldsSlot reports whether a stored status reserves its timeslot
func (s Status) HoldsSlot() bool {
	for _, a := range ActiveHoldStatuses {
		if s == a {
			return true
		}
	}
	return false
}

// Terminal reports whether a status admits no further transitions
func (s Status) Terminal() bool {
	switch s {
	case StatusDeclined, StatusVoided, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// Booking is one appointment. Price is snapshotted from the catalog at
// creation so later catalog edits never change booking history.
type Booking struct {
	ID              uuid.UUID       `db:"id" json:"id"`
	ProviderID      uuid.UUID       `db:"provider_id" json:"provider_id"`
	OwnerID         uuid.UUID       `db:"owner_id" json:"owner_id"`
	ServiceID       uuid.UUID       `db:"service_id" json:"service_id"`
	PricingOptionID uuid.NullUUID   `db:"pricing_option_id" json:"-"`
	PetType         catalog.PetType `db:"pet_type" json:"pet_type"`
	SizeKey         catalog.SizeKey `db:"size_key" json:"size_key"`
	Date            string          `db:"date" json:"date"`
	TimeSlot        string          `db:"time_slot" json:"time_slot"`
	Price           float64         `db:"price" json:"price"`
	Status          Status          `db:"status" json:"status"`
	RejectionReason sql.NullString  `db:"rejection_reason" json:"-"`
	PaymentProofKey sql.NullString  `db:"payment_proof_key" json:"-"`
	ProofThumbKey   sql.NullString  `db:"proof_thumb_key" json:"-"`
	ProofAttempts   int             `db:"proof_attempts" json:"-"`
	ProofError      sql.NullString  `db:"proof_error" json:"-"`
	ReferenceNumber sql.NullString  `db:"reference_number" json:"-"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at" json:"updated_at"`
}

// Pet is one descriptive line item of a booking. ServiceName is free
// text for per-pet notes like "bath only"; pricing ignores it.
type Pet struct {
	ID          uuid.UUID       `db:"id" json:"id"`
	BookingID   uuid.UUID       `db:"booking_id" json:"booking_id"`
	Name        string          `db:"name" json:"name"`
	PetType     catalog.PetType `db:"pet_type" json:"pet_type"`
	Weight      sql.NullFloat64 `db:"weight" json:"-"`
	ServiceName sql.NullString  `db:"service_name" json:"-"`
	Notes       sql.NullString  `db:"notes" json:"-"`
}

// Response is the API shape for a booking. Status carries the derived
// classification, not necessarily the stored one.
type Response struct {
	ID              uuid.UUID       `json:"id"`
	ProviderID      uuid.UUID       `json:"provider_id"`
	OwnerID         uuid.UUID       `json:"owner_id"`
	ServiceID       uuid.UUID       `json:"service_id"`
	PetType         catalog.PetType `json:"pet_type"`
	SizeKey         catalog.SizeKey `json:"size_key"`
	Date            string          `json:"date"`
	TimeSlot        string          `json:"time_slot"`
	Price           float64         `json:"price"`
	Status          Status          `json:"status"`
	RejectionReason string          `json:"rejection_reason,omitempty"`
	ReferenceNumber string          `json:"reference_number,omitempty"`
	PaymentProofURL string          `json:"payment_proof_url,omitempty"`
	Pets            []PetResponse   `json:"pets,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// PetResponse is the API shape for a booking pet
type PetResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	PetType     catalog.PetType `json:"pet_type"`
	Weight      *float64        `json:"weight,omitempty"`
	ServiceName string          `json:"service_name,omitempty"`
	Notes       string          `json:"notes,omitempty"`
}

// ToResponse converts a booking to the API shape, classifying it at now
func (b *Booking) ToResponse(now time.Time, proofURL string, pets []Pet) *Response {
	resp := &Response{
		ID:              b.ID,
		ProviderID:      b.ProviderID,
		OwnerID:         b.OwnerID,
		ServiceID:       b.ServiceID,
		PetType:         b.PetType,
		SizeKey:         b.SizeKey,
		Date:            b.Date,
		TimeSlot:        b.TimeSlot,
		Price:           b.Price,
		Status:          Classify(b, now),
		PaymentProofURL: proofURL,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
	if b.RejectionReason.Valid {
		resp.RejectionReason = b.RejectionReason.String
	}
	if b.ReferenceNumber.Valid {
		resp.ReferenceNumber = b.ReferenceNumber.String
	}
	for i := range pets {
		resp.Pets = append(resp.Pets, pets[i].ToResponse())
	}
	return resp
}

// ToResponse converts a booking pet to the API shape
func (p *Pet) ToResponse() PetResponse {
	resp := PetResponse{
		ID:      p.ID,
		Name:    p.Name,
		PetType: p.PetType,
	}
	if p.Weight.Valid {
		w := p.Weight.Float64
		resp.Weight = &w
	}
	if p.ServiceName.Valid {
		resp.ServiceName = p.ServiceName.String
	}
	if p.Notes.Valid {
		resp.Notes = p.Notes.String
	}
	return resp
}
