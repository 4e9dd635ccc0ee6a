package models

import (
	"fmt"
	"math"
)

// Default unit prices in cents
const (
	DefaultChildPrice = 800
	DefaultAdultPrice = 1200
)

// PricingTable maps a ticket category to its unit price in cents.
// A table is treated as a value: it is replaced as a whole, never edited in place.
type PricingTable map[TicketCategory]int

// DefaultPricing returns {Child: $8, Adult: $12}
func DefaultPricing() PricingTable {
	return PricingTable{
		TicketChild: DefaultChildPrice,
		TicketAdult: DefaultAdultPrice,
	}
}

// NewPricingTable builds a table from dollar amounts, rounding to the nearest cent
func NewPricingTable(child, adult float64) (PricingTable, error) {
	table := PricingTable{
		TicketChild: dollarsToCents(child),
		TicketAdult: dollarsToCents(adult),
	}
	if err := table.Validate(); err != nil {
		return nil, err
	}
	return table, nil
}

// Price returns the unit price for a category
func (p PricingTable) Price(category TicketCategory) (int, error) {
	if !category.Valid() {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCategory, category)
	}
	price, ok := p[category]
	if !ok {
		return 0, fmt.Errorf("%w for %s tickets", ErrMissingPrice, category)
	}
	return price, nil
}

// Validate checks that every category has a non-negative price
func (p PricingTable) Validate() error {
	for _, category := range TicketCategories {
		if _, err := p.Price(category); err != nil {
			return err
		}
	}
	return p.CheckNonNegative()
}

// CheckNonNegative checks the prices present in the table, allowing gaps
func (p PricingTable) CheckNonNegative() error {
	for _, category := range TicketCategories {
		if price, ok := p[category]; ok && price < 0 {
			return fmt.Errorf("%w: %s price is %d", ErrNegativePrice, category, price)
		}
	}
	return nil
}

// Clone returns an independent copy of the table
func (p PricingTable) Clone() PricingTable {
	if p == nil {
		return nil
	}
	clone := make(PricingTable, len(p))
	for category, price := range p {
		clone[category] = price
	}
	return clone
}

// LineTotal returns child*price(Child) + adult*price(Adult).
// Missing prices count as zero.
func (p PricingTable) LineTotal(child, adult int) int {
	return child*p[TicketChild] + adult*p[TicketAdult]
}

func dollarsToCents(amount float64) int {
	return int(math.Round(amount * 100))
}
