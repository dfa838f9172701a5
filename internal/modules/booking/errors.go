package booking

import "errors"

var (
	ErrValidation       = errors.New("validation error")
	ErrNotFound         = errors.New("booking not found")
	ErrForbidden        = errors.New("forbidden")
	ErrSlotUnavailable  = errors.New("slot unavailable")
	ErrAlreadyCancelled = errors.New("booking already cancelled")
)
