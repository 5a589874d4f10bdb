package auth

import (
	"errors"

	"github.com/lib/pq"
)

const sqlStateUniqueViolation = "23505"

// isEmailAlreadyExistsError reports whether err is the users.email unique
// violation, either pre-checked or raced at insert time.
func isEmailAlreadyExistsError(err error) bool {
	if errors.Is(err, ErrEmailAlreadyExists) {
		return true
	}

	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	if string(pqErr.Code) != sqlStateUniqueViolation {
		return false
	}
	if pqErr.Constraint == "users_email_key" {
		return true
	}
	return pqErr.Table == "users" && pqErr.Column == "email"
}
