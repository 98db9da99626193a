package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pkordes/holiday-tracker/internal/domain"
)

// tripRequest is the JSON body for POST /api/trips.
// Dates are accepted as "2006-01-02" (what a date input submits) or full
// RFC 3339 timestamps. Adults and children are pointers so an explicit zero
// can be told apart from an omitted field.
type tripRequest struct {
	Destination   string   `json:"destination"`
	Hotel         string   `json:"hotel"`
	Provider      string   `json:"provider"`
	DepartureDate string   `json:"departureDate"`
	ReturnDate    string   `json:"returnDate"`
	Adults        *int     `json:"adults"`
	Children      *int     `json:"children"`
	CurrentPrice  *float64 `json:"currentPrice"`
	URL           string   `json:"url"`
	Notes         string   `json:"notes"`
}

// tripPatchRequest is the JSON body for PUT /api/trips/{id}.
// Every field is optional; absent fields leave the trip untouched.
// priceChangeNotes only annotates the ledger entry for a price change.
type tripPatchRequest struct {
	Destination      *string  `json:"destination"`
	Hotel            *string  `json:"hotel"`
	Provider         *string  `json:"provider"`
	DepartureDate    *string  `json:"departureDate"`
	ReturnDate       *string  `json:"returnDate"`
	Adults           *int     `json:"adults"`
	Children         *int     `json:"children"`
	CurrentPrice     *float64 `json:"currentPrice"`
	URL              *string  `json:"url"`
	Notes            *string  `json:"notes"`
	PriceChangeNotes *string  `json:"priceChangeNotes"`
}

// priceRequest is the JSON body for POST /api/trips/{id}/price-history.
type priceRequest struct {
	Price *float64 `json:"price"`
	Notes string   `json:"notes"`
}

// CreateTrip handles POST /api/trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var req tripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", "invalid request body")
		return
	}

	trip, err := requestToTrip(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	created, err := s.trips.Create(r.Context(), trip)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// ListTrips handles GET /api/trips. Trips are returned newest-created first.
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	trips, err := s.trips.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, trips)
}

// GetTrip handles GET /api/trips/{id}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := tripID(r)
	if !ok {
		writeNotFound(w, "trip not found")
		return
	}

	trip, err := s.trips.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, trip)
}

// UpdateTrip handles PUT /api/trips/{id}.
// The body is a partial field map; a changed currentPrice extends the price
// history (see domain.ApplyPatch).
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := tripID(r)
	if !ok {
		writeNotFound(w, "trip not found")
		return
	}

	var req tripPatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", "invalid request body")
		return
	}

	patch, err := requestToPatch(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	updated, err := s.trips.Update(r.Context(), id, patch)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// DeleteTrip handles DELETE /api/trips/{id}.
// Responds 200 with a confirmation body rather than 204, matching the
// original API this backend replaces.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := tripID(r)
	if !ok {
		writeNotFound(w, "trip not found")
		return
	}

	if err := s.trips.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "trip deleted"})
}

// RecordPrice handles POST /api/trips/{id}/price-history.
// It appends an observation and makes it the trip's current price.
func (s *Server) RecordPrice(w http.ResponseWriter, r *http.Request) {
	id, ok := tripID(r)
	if !ok {
		writeNotFound(w, "trip not found")
		return
	}

	var req priceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", "invalid request body")
		return
	}
	if req.Price == nil {
		writeError(w, http.StatusBadRequest, "validation_error", "price is required")
		return
	}

	updated, err := s.trips.RecordPrice(r.Context(), id, *req.Price, req.Notes)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// --- mapping helpers --------------------------------------------------------

// dateLayouts are the accepted wire formats for travel dates.
var dateLayouts = []string{"2006-01-02", time.RFC3339}

// parseDate parses a travel date in any accepted layout.
// An empty string parses to the zero time; the service treats that as missing.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
}

// requestToTrip converts a create request into a domain.Trip.
// Omitted adults/children stay zero; the service applies defaults.
func requestToTrip(req tripRequest) (domain.Trip, error) {
	dep, err := parseDate(req.DepartureDate)
	if err != nil {
		return domain.Trip{}, err
	}
	ret, err := parseDate(req.ReturnDate)
	if err != nil {
		return domain.Trip{}, err
	}

	t := domain.Trip{
		Destination:   req.Destination,
		Hotel:         req.Hotel,
		Provider:      domain.Provider(req.Provider),
		DepartureDate: dep,
		ReturnDate:    ret,
		URL:           req.URL,
		Notes:         req.Notes,
	}
	if req.Adults != nil {
		t.Adults = *req.Adults
	}
	if req.Children != nil {
		t.Children = *req.Children
	}
	if req.CurrentPrice != nil {
		t.CurrentPrice = *req.CurrentPrice
	}
	return t, nil
}

// requestToPatch converts an update request into a domain.TripPatch.
func requestToPatch(req tripPatchRequest) (domain.TripPatch, error) {
	patch := domain.TripPatch{
		Destination:      req.Destination,
		Hotel:            req.Hotel,
		Adults:           req.Adults,
		Children:         req.Children,
		CurrentPrice:     req.CurrentPrice,
		URL:              req.URL,
		Notes:            req.Notes,
		PriceChangeNotes: req.PriceChangeNotes,
	}
	if req.Provider != nil {
		p := domain.Provider(*req.Provider)
		patch.Provider = &p
	}
	if req.DepartureDate != nil {
		d, err := parseDate(*req.DepartureDate)
		if err != nil {
			return domain.TripPatch{}, err
		}
		patch.DepartureDate = &d
	}
	if req.ReturnDate != nil {
		d, err := parseDate(*req.ReturnDate)
		if err != nil {
			return domain.TripPatch{}, err
		}
		patch.ReturnDate = &d
	}
	return patch, nil
}
