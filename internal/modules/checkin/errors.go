package checkin

import "errors"

// Scan failure taxonomy. Every failed scan maps to exactly one of these.
var (
	ErrInvalidToken    = errors.New("invalid token")
	ErrTokenExpired    = errors.New("token expired")
	ErrWrongDate       = errors.New("scan date does not match booking date")
	ErrMaxScansReached = errors.New("check-in and check-out already completed")
	ErrEntityNotFound  = errors.New("referenced entity not found")
	ErrConflict        = errors.New("concurrent scan in progress")
)
