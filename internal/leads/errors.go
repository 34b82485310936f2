package leads

import "errors"

var (
	// ErrMissingContact is returned when name, phone and email are all empty
	ErrMissingContact = errors.New("at least one of name, phone, or email is required")

	// ErrLeadNotFound is returned when a lead is not found
	ErrLeadNotFound = errors.New("lead not found")
)
