package roster

import "errors"

var (
	ErrValidation       = errors.New("validation error")
	ErrNotFound         = errors.New("booking not found")
	ErrForbidden        = errors.New("forbidden")
	ErrPaymentRequired  = errors.New("booking payment not verified")
	ErrBookingCancelled = errors.New("booking is cancelled")
	ErrCapacityExceeded = errors.New("roster capacity exceeded")
	ErrDuplicatePlayer  = errors.New("player email already in roster")
)
