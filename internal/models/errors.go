package models

import "errors"

// Common errors used throughout the application
var (
	ErrInvalidCategory  = errors.New("invalid ticket category")
	ErrMissingPrice     = errors.New("missing ticket price")
	ErrNegativePrice    = errors.New("ticket price cannot be negative")
	ErrIndexOutOfRange  = errors.New("cart index out of range")
	ErrLineItemNotFound = errors.New("movie not in cart")
	ErrMovieNotFound    = errors.New("movie not found")
	ErrInvalidSnapshot  = errors.New("invalid cart snapshot")
	ErrTicketLimit      = errors.New("ticket limit reached")
)
