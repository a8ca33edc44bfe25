package services

import "errors"

// Sentinel errors returned by the booking and session services. Callers
// distinguish them with errors.Is; the wrapped message names the offending
// resource and rule.
var (
	ErrValidation             = errors.New("validation failed")
	ErrMentorNotFound         = errors.New("mentor not found")
	ErrBookingNotFound        = errors.New("booking not found")
	ErrSessionNotFound        = errors.New("session not found")
	ErrSlotUnavailable        = errors.New("slot unavailable")
	ErrConflict               = errors.New("slot conflict")
	ErrUnauthorized           = errors.New("unauthorized")
	ErrInvalidStateTransition = errors.New("invalid state transition")
)
