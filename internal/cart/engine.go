// Package cart holds the ticket cart engine: the line items of one user's cart
// and the rules for adding, decrementing and removing tickets.
package cart

import (
	"fmt"

	"movie-ticket-cart/internal/models"

	"go.uber.org/zap"
)

// LineItem is one cart row aggregating the tickets for a single movie
type LineItem struct {
	Movie         models.MovieRef
	ChildQuantity int
	AdultQuantity int
	Subtotal      int // in cents
}

// Quantity returns the number of tickets of the given category
func (li LineItem) Quantity(category models.TicketCategory) int {
	switch category {
	case models.TicketChild:
		return li.ChildQuantity
	case models.TicketAdult:
		return li.AdultQuantity
	}
	return 0
}

// Tickets returns the total number of tickets on the row
func (li LineItem) Tickets() int {
	return li.ChildQuantity + li.AdultQuantity
}

// Totals groups the aggregates shown under the cart table
type Totals struct {
	Adult   int
	Child   int
	Grand   int
	Tickets int
}

// Engine owns the line items of a single cart.
// It is not safe for concurrent use; each session drives its own engine.
type Engine struct {
	pricing models.PricingTable
	items   []LineItem
	logger  *zap.Logger
}

// Option configures an Engine
type Option func(*Engine)

// WithLogger sets the logger used to report rejected operations
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewEngine creates an empty cart priced with the given table.
// A nil or partial table is allowed; adds for unpriced categories fail with
// ErrMissingPrice. Negative prices are rejected.
func NewEngine(pricing models.PricingTable, opts ...Option) (*Engine, error) {
	if err := pricing.CheckNonNegative(); err != nil {
		return nil, err
	}
	e := &Engine{
		pricing: pricing.Clone(),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// AddTicket adds one ticket of the given category for a movie.
// The first ticket for a movie appends a new row; later ones increment it.
func (e *Engine) AddTicket(movie models.MovieRef, category models.TicketCategory) error {
	if !category.Valid() {
		return e.reject("add_ticket", fmt.Errorf("%w: %q", models.ErrInvalidCategory, category),
			zap.Int64("movie_id", movie.ID))
	}
	price, err := e.pricing.Price(category)
	if err != nil {
		return e.reject("add_ticket", err, zap.Int64("movie_id", movie.ID), zap.String("category", category.String()))
	}

	if i := e.indexOf(movie.ID); i >= 0 {
		item := &e.items[i]
		if item.Quantity(category) >= models.MaxTicketQuantity {
			return e.reject("add_ticket", fmt.Errorf("%w: %d %s tickets for movie %d",
				models.ErrTicketLimit, models.MaxTicketQuantity, category, movie.ID),
				zap.Int64("movie_id", movie.ID), zap.String("category", category.String()))
		}
		switch category {
		case models.TicketChild:
			item.ChildQuantity++
		case models.TicketAdult:
			item.AdultQuantity++
		}
		item.Subtotal = e.lineTotal(*item)
		return nil
	}

	item := LineItem{Movie: movie, Subtotal: price}
	if category == models.TicketChild {
		item.ChildQuantity = 1
	} else {
		item.AdultQuantity = 1
	}
	e.items = append(e.items, item)
	return nil
}

// DecrementTicket takes one ticket of the given category off a movie's row.
// Decrementing a category already at zero is a no-op. A row left with no
// tickets at all is removed from the cart.
func (e *Engine) DecrementTicket(movieID int64, category models.TicketCategory) error {
	if !category.Valid() {
		return e.reject("decrement_ticket", fmt.Errorf("%w: %q", models.ErrInvalidCategory, category),
			zap.Int64("movie_id", movieID))
	}
	i := e.indexOf(movieID)
	if i < 0 {
		return e.reject("decrement_ticket", fmt.Errorf("%w: movie %d", models.ErrLineItemNotFound, movieID),
			zap.Int64("movie_id", movieID), zap.String("category", category.String()))
	}

	item := &e.items[i]
	switch {
	case category == models.TicketChild && item.ChildQuantity > 0:
		item.ChildQuantity--
	case category == models.TicketAdult && item.AdultQuantity > 0:
		item.AdultQuantity--
	}
	item.Subtotal = e.lineTotal(*item)

	if item.ChildQuantity == 0 && item.AdultQuantity == 0 {
		return e.RemoveTicket(i)
	}
	return nil
}

// RemoveTicket removes the row at index. Rows after it shift down by one,
// so indices must not be reused across mutations.
func (e *Engine) RemoveTicket(index int) error {
	if index < 0 || index >= len(e.items) {
		return e.reject("remove_ticket", fmt.Errorf("%w: %d not in [0,%d)", models.ErrIndexOutOfRange, index, len(e.items)),
			zap.Int("index", index))
	}
	e.items = append(e.items[:index], e.items[index+1:]...)
	return nil
}

// RemoveMovie removes the row for a movie regardless of its position
func (e *Engine) RemoveMovie(movieID int64) error {
	i := e.indexOf(movieID)
	if i < 0 {
		return e.reject("remove_movie", fmt.Errorf("%w: movie %d", models.ErrLineItemNotFound, movieID),
			zap.Int64("movie_id", movieID))
	}
	return e.RemoveTicket(i)
}

// Reset empties the cart, keeping the pricing
func (e *Engine) Reset() {
	e.items = nil
}

// SetPricing swaps in a whole new pricing table and re-derives every subtotal
func (e *Engine) SetPricing(pricing models.PricingTable) error {
	if err := pricing.Validate(); err != nil {
		return e.reject("set_pricing", err)
	}
	e.pricing = pricing.Clone()
	for i := range e.items {
		e.items[i].Subtotal = e.lineTotal(e.items[i])
	}
	return nil
}

// Pricing returns a copy of the current pricing table
func (e *Engine) Pricing() models.PricingTable {
	return e.pricing.Clone()
}

// Items returns a copy of the cart rows in the order they were first added
func (e *Engine) Items() []LineItem {
	items := make([]LineItem, len(e.items))
	copy(items, e.items)
	return items
}

// Len returns the number of rows
func (e *Engine) Len() int {
	return len(e.items)
}

// IsEmpty reports whether the cart has no rows
func (e *Engine) IsEmpty() bool {
	return len(e.items) == 0
}

// Find returns the row for a movie and its current index
func (e *Engine) Find(movieID int64) (LineItem, int, bool) {
	i := e.indexOf(movieID)
	if i < 0 {
		return LineItem{}, -1, false
	}
	return e.items[i], i, true
}

// AdultTotal is the cost of all adult tickets, 0 without pricing
func (e *Engine) AdultTotal() int {
	return e.categoryTotal(models.TicketAdult)
}

// ChildTotal is the cost of all child tickets, 0 without pricing
func (e *Engine) ChildTotal() int {
	return e.categoryTotal(models.TicketChild)
}

// GrandTotal is the sum of all row subtotals
func (e *Engine) GrandTotal() int {
	total := 0
	for _, item := range e.items {
		total += item.Subtotal
	}
	return total
}

// Totals computes every aggregate for display
func (e *Engine) Totals() Totals {
	var t Totals
	for _, item := range e.items {
		t.Grand += item.Subtotal
		t.Tickets += item.Tickets()
	}
	t.Adult = e.AdultTotal()
	t.Child = e.ChildTotal()
	return t
}

func (e *Engine) categoryTotal(category models.TicketCategory) int {
	if e.pricing == nil {
		return 0
	}
	price := e.pricing[category]
	total := 0
	for _, item := range e.items {
		total += item.Quantity(category) * price
	}
	return total
}

func (e *Engine) lineTotal(item LineItem) int {
	return e.pricing.LineTotal(item.ChildQuantity, item.AdultQuantity)
}

func (e *Engine) indexOf(movieID int64) int {
	for i := range e.items {
		if e.items[i].Movie.ID == movieID {
			return i
		}
	}
	return -1
}

func (e *Engine) reject(op string, err error, fields ...zap.Field) error {
	fields = append(fields, zap.String("op", op), zap.Error(err))
	e.logger.Warn("cart operation rejected", fields...)
	return err
}
