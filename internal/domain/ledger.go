package domain

import "time"

// PriceObservation is one immutable entry in a trip's price history.
// RecordedAt is metadata only — it does not affect ordering, which is always
// append order.
type PriceObservation struct {
	Price      float64   `json:"price"`
	RecordedAt time.Time `json:"recordedAt"`
	Notes      string    `json:"notes,omitempty"`
}

// PriceHistory is the append-only ledger of prices observed for one trip.
// Entries are never edited, reordered, or removed; the only way to change a
// history is to Append, which returns a new slice.
type PriceHistory []PriceObservation

// InitialPriceNote annotates the observation seeded when a trip is created.
const InitialPriceNote = "Initial price"

// NewPriceHistory builds a single-element history for a freshly created trip.
// Returns ErrInvalidPrice if price is not positive.
func NewPriceHistory(price float64, notes string, at time.Time) (PriceHistory, error) {
	if price <= 0 {
		return nil, ErrInvalidPrice
	}
	return PriceHistory{{Price: price, RecordedAt: at, Notes: notes}}, nil
}

// Append returns a new history with an observation added at the end.
// The result uses a fresh backing array, so appending can never write into a
// slice still held by a caller.
// Returns ErrInvalidPrice if price is not positive.
func (h PriceHistory) Append(price float64, notes string, at time.Time) (PriceHistory, error) {
	if price <= 0 {
		return nil, ErrInvalidPrice
	}
	out := make(PriceHistory, len(h), len(h)+1)
	copy(out, h)
	return append(out, PriceObservation{Price: price, RecordedAt: at, Notes: notes}), nil
}

// Latest returns the most recently appended observation.
// ok is false for an empty history, which never occurs for a persisted trip.
func (h PriceHistory) Latest() (PriceObservation, bool) {
	if len(h) == 0 {
		return PriceObservation{}, false
	}
	return h[len(h)-1], true
}
