package discourseerr

import "errors"

// Sentinel errors for common cases
var (
	ErrEmptyText     = errors.New("text is required")
	ErrTextTooLong   = errors.New("text too long")
	ErrMissingAPIKey = errors.New("api key is required")
	ErrNotFound      = errors.New("not found")
	ErrInvalidConfig = errors.New("invalid configuration")
)
