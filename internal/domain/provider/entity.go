package provider

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// VerificationStatus represents groomer application review state
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationApproved VerificationStatus = "approved"
	VerificationRejected VerificationStatus = "rejected"
)

// Profile represents a grooming provider (matches groomer_profiles table)
type Profile struct {
	ID     uuid.UUID `db:"id"`
	UserID uuid.UUID `db:"user_id"`

	BusinessName string         `db:"business_name"`
	Description  sql.NullString `db:"description"`
	City         string         `db:"city"`
	Address      sql.NullString `db:"address"`
	Phone        sql.NullString `db:"phone"`

	// Business permit or ID uploaded with the application; opaque storage key
	DocumentKey sql.NullString `db:"document_key"`
	DocThumbKey sql.NullString `db:"doc_thumb_key"`
	DocAttempts int            `db:"doc_attempts"`
	DocError    sql.NullString `db:"doc_error"`

	VerificationStatus VerificationStatus `db:"verification_status"`
	RejectionReason    sql.NullString     `db:"rejection_reason"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// IsApproved reports whether the provider may appear in public listings
// and accept bookings
func (p *Profile) IsApproved() bool {
	return p.VerificationStatus == VerificationApproved
}

// ProfileResponse for API responses
type ProfileResponse struct {
	ID                 string `json:"id"`
	UserID             string `json:"user_id"`
	BusinessName       string `json:"business_name"`
	Description        string `json:"description,omitempty"`
	City               string `json:"city"`
	Address            string `json:"address,omitempty"`
	Phone              string `json:"phone,omitempty"`
	DocumentURL        string `json:"document_url,omitempty"`
	VerificationStatus string `json:"verification_status"`
	RejectionReason    string `json:"rejection_reason,omitempty"`
	CreatedAt          string `json:"created_at"`
}

// ToResponse converts entity to response. documentURL is resolved by the
// caller from the storage key (empty hides the field, e.g. public listings).
func (p *Profile) ToResponse(documentURL string) *ProfileResponse {
	resp := &ProfileResponse{
		ID:                 p.ID.String(),
		UserID:             p.UserID.String(),
		BusinessName:       p.BusinessName,
		City:               p.City,
		DocumentURL:        documentURL,
		VerificationStatus: string(p.VerificationStatus),
		CreatedAt:          p.CreatedAt.Format(time.RFC3339),
	}
	if p.Description.Valid {
		resp.Description = p.Description.String
	}
	if p.Address.Valid {
		resp.Address = p.Address.String
	}
	if p.Phone.Valid {
		resp.Phone = p.Phone.String
	}
	if p.RejectionReason.Valid {
		resp.RejectionReason = p.RejectionReason.String
	}
	return resp
}
