package repository

import "errors"

// Sentinels returned by guarded transactional operations. Services translate
// these into their module-level errors.
var (
	ErrSlotUnavailable   = errors.New("slot unavailable")
	ErrDuplicateSlot     = errors.New("slot already exists")
	ErrAlreadyCancelled  = errors.New("booking already cancelled")
	ErrCapacityExceeded  = errors.New("roster capacity exceeded")
	ErrDuplicatePlayer   = errors.New("player email already in booking")
	ErrDuplicateBlackout = errors.New("blackout date already exists")
	ErrStaleCounter      = errors.New("check-in counter changed concurrently")
)
