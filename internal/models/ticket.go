package models

import (
	"fmt"
	"strings"
)

// TicketCategory represents the class of a ticket
type TicketCategory string

const (
	TicketChild TicketCategory = "Child"
	TicketAdult TicketCategory = "Adult"
)

// MaxTicketQuantity caps the tickets of one category on a single cart row
const MaxTicketQuantity = 1000

// TicketCategories lists every category in display order
var TicketCategories = []TicketCategory{TicketAdult, TicketChild}

// Valid reports whether c is a known category
func (c TicketCategory) Valid() bool {
	return c == TicketChild || c == TicketAdult
}

func (c TicketCategory) String() string {
	return string(c)
}

// ParseTicketCategory maps form input onto a category.
// Matching ignores case and surrounding whitespace.
func ParseTicketCategory(s string) (TicketCategory, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "child":
		return TicketChild, nil
	case "adult":
		return TicketAdult, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
}
