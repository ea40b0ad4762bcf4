package services

import "errors"

// Sentinel errors shared across services. Handlers map these onto HTTP status
// codes; anything else surfaces as a generic internal error.
var (
	ErrValidation         = errors.New("invalid input")
	ErrNotFound           = errors.New("not found")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("access denied")
	ErrConflict           = errors.New("conflict")
	ErrAlreadyAnswered    = errors.New("question already answered")
	ErrSuspiciousActivity = errors.New("suspicious activity detected")
)
