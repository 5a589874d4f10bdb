package provider

import "errors"

var (
	ErrProfileNotFound     = errors.New("groomer profile not found")
	ErrProfileExists       = errors.New("user already has a groomer profile")
	ErrOnlyGroomersCanApply = errors.New("only groomer accounts can apply")
	ErrNotPending          = errors.New("application is not pending review")
	ErrReasonRequired      = errors.New("rejection reason is required")
	ErrNotApproved         = errors.New("groomer profile is not approved")
)
