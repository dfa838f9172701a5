package catalog

import "errors"

var (
	ErrValidation        = errors.New("validation error")
	ErrNotFound          = errors.New("not found")
	ErrDuplicateBlackout = errors.New("blackout date already exists")
)
