package booking

import "errors"

var (
	ErrBookingNotFound   = errors.New("booking not found")
	ErrNotBookingActor   = errors.New("booking belongs to someone else")
	ErrInvalidTransition = errors.New("invalid booking transition")
	ErrReasonRequired    = errors.New("reason is required")
	ErrProofRequired     = errors.New("payment proof is required")
)
