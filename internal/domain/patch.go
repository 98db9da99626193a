package domain

import "time"

// TripPatch is a partial update to a trip. Nil fields are left untouched.
// The field set is a deliberate allow-list: structural fields (ID, PriceHistory,
// CreatedAt, UpdatedAt) cannot be patched from the outside.
//
// PriceChangeNotes annotates the ledger entry written when CurrentPrice
// changes. It is consumed by ApplyPatch and never stored on the trip itself.
type TripPatch struct {
	Destination   *string    `json:"destination"`
	Hotel         *string    `json:"hotel"`
	Provider      *Provider  `json:"provider"`
	DepartureDate *time.Time `json:"departureDate"`
	ReturnDate    *time.Time `json:"returnDate"`
	Adults        *int       `json:"adults"`
	Children      *int       `json:"children"`
	CurrentPrice  *float64   `json:"currentPrice"`
	URL           *string    `json:"url"`
	Notes         *string    `json:"notes"`

	PriceChangeNotes *string `json:"priceChangeNotes"`
}

// ApplyPatch merges a partial update into a trip and returns the result.
// The input trip is not modified.
//
// When the patch carries a CurrentPrice that differs from the stored one, a
// new observation is appended to the price history before the field overwrite,
// annotated with PriceChangeNotes or "Price updated". A patch that omits the
// price, or repeats the current value, leaves the history untouched.
func ApplyPatch(trip Trip, patch TripPatch, now time.Time) (Trip, error) {
	if patch.CurrentPrice != nil && *patch.CurrentPrice != trip.CurrentPrice {
		note := "Price updated"
		if patch.PriceChangeNotes != nil && *patch.PriceChangeNotes != "" {
			note = *patch.PriceChangeNotes
		}
		history, err := trip.PriceHistory.Append(*patch.CurrentPrice, note, now)
		if err != nil {
			return Trip{}, err
		}
		trip.PriceHistory = history
	}

	if patch.Destination != nil {
		trip.Destination = *patch.Destination
	}
	if patch.Hotel != nil {
		trip.Hotel = *patch.Hotel
	}
	if patch.Provider != nil {
		trip.Provider = *patch.Provider
	}
	if patch.DepartureDate != nil {
		trip.DepartureDate = *patch.DepartureDate
	}
	if patch.ReturnDate != nil {
		trip.ReturnDate = *patch.ReturnDate
	}
	if patch.Adults != nil {
		trip.Adults = *patch.Adults
	}
	if patch.Children != nil {
		trip.Children = *patch.Children
	}
	if patch.CurrentPrice != nil {
		trip.CurrentPrice = *patch.CurrentPrice
	}
	if patch.URL != nil {
		trip.URL = *patch.URL
	}
	if patch.Notes != nil {
		trip.Notes = *patch.Notes
	}

	return trip, nil
}
