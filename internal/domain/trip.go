// Package domain contains the core data types for the Holiday Tracker application.
// This package has no dependencies beyond uuid and is imported by every other
// internal package (repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Provider identifies the travel operator a trip was booked with.
// The set is closed; anything unrecognized fails validation on input but maps
// to the "other" marker category on output (see service.MarkerColor).
type Provider string

const (
	ProviderSunweb   Provider = "sunweb"
	ProviderTUI      Provider = "tui"
	ProviderCorendon Provider = "corendon"
	ProviderOther    Provider = "other"
)

// Valid reports whether p is one of the known provider values.
func (p Provider) Valid() bool {
	switch p {
	case ProviderSunweb, ProviderTUI, ProviderCorendon, ProviderOther:
		return true
	}
	return false
}

// Trip represents a single tracked vacation booking.
// A trip is the top-level aggregate; its price history is embedded and has no
// independent lifecycle — deleting the trip deletes the history with it.
type Trip struct {
	ID            uuid.UUID    `json:"id"`
	Destination   string       `json:"destination"`
	Hotel         string       `json:"hotel,omitempty"`
	Provider      Provider     `json:"provider"`
	DepartureDate time.Time    `json:"departureDate"`
	ReturnDate    time.Time    `json:"returnDate"`
	Adults        int          `json:"adults"`
	Children      int          `json:"children"`
	CurrentPrice  float64      `json:"currentPrice"`
	URL           string       `json:"url,omitempty"`
	Notes         string       `json:"notes,omitempty"`
	PriceHistory  PriceHistory `json:"priceHistory"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}
