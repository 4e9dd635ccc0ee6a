package cart

import (
	"encoding/json"
	"fmt"

	"movie-ticket-cart/internal/models"
)

// Snapshot captures the rows of the cart without their subtotals
func (e *Engine) Snapshot() models.CartSnapshot {
	snap := models.CartSnapshot{Items: make([]models.CartSnapshotItem, 0, len(e.items))}
	for _, item := range e.items {
		snap.Items = append(snap.Items, models.CartSnapshotItem{
			Movie:         item.Movie,
			ChildQuantity: item.ChildQuantity,
			AdultQuantity: item.AdultQuantity,
		})
	}
	return snap
}

// Restore replaces the cart rows with those of a snapshot, pricing them with
// the engine's current table. Rows without tickets are dropped and quantities
// above MaxTicketQuantity are rejected. On error the
// cart is left untouched.
func (e *Engine) Restore(snap models.CartSnapshot) error {
	items := make([]LineItem, 0, len(snap.Items))
	seen := make(map[int64]bool, len(snap.Items))
	for _, row := range snap.Items {
		if row.ChildQuantity < 0 || row.AdultQuantity < 0 {
			return e.reject("restore", fmt.Errorf("%w: negative quantity for movie %d", models.ErrInvalidSnapshot, row.Movie.ID))
		}
		if row.ChildQuantity > models.MaxTicketQuantity || row.AdultQuantity > models.MaxTicketQuantity {
			return e.reject("restore", fmt.Errorf("%w: quantity above %d for movie %d",
				models.ErrInvalidSnapshot, models.MaxTicketQuantity, row.Movie.ID))
		}
		if seen[row.Movie.ID] {
			return e.reject("restore", fmt.Errorf("%w: duplicate movie %d", models.ErrInvalidSnapshot, row.Movie.ID))
		}
		seen[row.Movie.ID] = true
		if row.ChildQuantity == 0 && row.AdultQuantity == 0 {
			continue
		}
		item := LineItem{
			Movie:         row.Movie,
			ChildQuantity: row.ChildQuantity,
			AdultQuantity: row.AdultQuantity,
		}
		item.Subtotal = e.lineTotal(item)
		items = append(items, item)
	}
	e.items = items
	return nil
}

// MarshalSnapshot encodes the cart for storage in a session
func (e *Engine) MarshalSnapshot() (string, error) {
	data, err := json.Marshal(e.Snapshot())
	if err != nil {
		return "", fmt.Errorf("failed to encode cart: %w", err)
	}
	return string(data), nil
}

// UnmarshalSnapshot decodes a stored cart and restores it
func (e *Engine) UnmarshalSnapshot(data string) error {
	var snap models.CartSnapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		return e.reject("restore", fmt.Errorf("%w: %v", models.ErrInvalidSnapshot, err))
	}
	return e.Restore(snap)
}
