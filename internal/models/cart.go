package models

// CartSnapshot is the serialised form of a cart kept in the user session.
// Subtotals are not stored; restoring re-derives them from the current pricing.
type CartSnapshot struct {
	Items []CartSnapshotItem `json:"items"`
}

// CartSnapshotItem represents one cart row in a snapshot
type CartSnapshotItem struct {
	Movie         MovieRef `json:"movie"`
	ChildQuantity int      `json:"child_quantity"`
	AdultQuantity int      `json:"adult_quantity"`
}
