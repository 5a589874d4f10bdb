package user

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Role represents user role (matches user_role enum)
type Role string

const (
	RoleOwner   Role = "owner"
	RoleGroomer Role = "groomer"
	RoleAdmin   Role = "admin"
)

// Status represents user account status
type Status string

const (
	StatusActive    Status = "active"
	StatusSuspended Status = "suspended"
	StatusDeleted   Status = "deleted"
)

// User represents an account on the platform
type User struct {
	ID           uuid.UUID      `db:"id"`
	Email        string         `db:"email"`
	PasswordHash string         `db:"password_hash"`
	FullName     string         `db:"full_name"`
	Phone        sql.NullString `db:"phone"`
	Role         Role           `db:"role"`
	Status       Status         `db:"status"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

// IsActive reports whether the account can use the platform
func (u *User) IsActive() bool {
	return u.Status == StatusActive
}

// CanProvideServices reports whether the account may own a groomer profile
func (u *User) CanProvideServices() bool {
	return u.Role == RoleGroomer
}

// UserResponse for API responses (no password hash)
type UserResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	Phone     string `json:"phone,omitempty"`
	Role      string `json:"role"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

// ToResponse converts entity to response
func (u *User) ToResponse() *UserResponse {
	resp := &UserResponse{
		ID:        u.ID.String(),
		Email:     u.Email,
		FullName:  u.FullName,
		Role:      string(u.Role),
		Status:    string(u.Status),
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
	if u.Phone.Valid {
		resp.Phone = u.Phone.String
	}
	return resp
}
