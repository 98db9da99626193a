// Package service contains the business logic for the Holiday Tracker API.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here — services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/holiday-tracker/internal/domain"
	"github.com/pkordes/holiday-tracker/internal/repo"
)

// TripService implements business logic for Trip operations.
//
// Updates are read-modify-write cycles against the repo with last-write-wins
// semantics; the design assumes at most one in-flight update per trip.
type TripService struct {
	repo repo.TripRepo
	now  func() time.Time
}

// NewTripService constructs a TripService backed by the provided TripRepo.
func NewTripService(r repo.TripRepo) *TripService {
	return &TripService{repo: r, now: time.Now}
}

// Create validates and persists a new trip. The price history is seeded with
// a single observation equal to the initial price, so every persisted trip
// has a non-empty ledger from the moment it exists.
func (s *TripService) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	applyDefaults(&trip)
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}

	history, err := domain.NewPriceHistory(trip.CurrentPrice, domain.InitialPriceNote, s.now())
	if err != nil {
		return domain.Trip{}, err
	}
	trip.PriceHistory = history

	result, err := s.repo.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single trip by ID.
// Returns domain.ErrNotFound if no trip with that ID exists.
func (s *TripService) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	result, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return result, nil
}

// List returns all trips, newest-created first.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) List(ctx context.Context) ([]domain.Trip, error) {
	trips, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.List: %w", err)
	}
	if trips == nil {
		return []domain.Trip{}, nil
	}
	return trips, nil
}

// Update applies a partial update to an existing trip.
// If the patch changes the current price, a new observation is appended to the
// price history before the field overwrite (see domain.ApplyPatch). The merged
// trip is re-validated, so a patch cannot move a trip into an invalid state.
func (s *TripService) Update(ctx context.Context, id uuid.UUID, patch domain.TripPatch) (domain.Trip, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}

	merged, err := domain.ApplyPatch(existing, patch, s.now())
	if err != nil {
		return domain.Trip{}, err
	}
	if err := validateTrip(merged); err != nil {
		return domain.Trip{}, err
	}

	result, err := s.repo.Update(ctx, merged)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	return result, nil
}

// RecordPrice appends a new price observation and makes it the current price.
// Unlike Update, it appends unconditionally — recording the same price twice
// is a legitimate observation ("still €1199 this week").
func (s *TripService) RecordPrice(ctx context.Context, id uuid.UUID, price float64, notes string) (domain.Trip, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.RecordPrice: %w", err)
	}

	history, err := existing.PriceHistory.Append(price, notes, s.now())
	if err != nil {
		return domain.Trip{}, err
	}
	existing.PriceHistory = history
	existing.CurrentPrice = price

	result, err := s.repo.Update(ctx, existing)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.RecordPrice: %w", err)
	}
	return result, nil
}

// Delete removes a trip and its embedded price history by ID.
// Returns domain.ErrNotFound if the trip does not exist.
func (s *TripService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

// applyDefaults fills party-size defaults on a new trip before validation.
// Adults defaults to 2, matching the most common booking.
func applyDefaults(trip *domain.Trip) {
	if trip.Adults == 0 {
		trip.Adults = 2
	}
}

// validateTrip enforces business rules common to Create and Update.
//   - Destination must be non-empty (whitespace-only is rejected).
//   - Provider must be one of the known values.
//   - Both travel dates are required, and the return must not precede departure.
//   - Adults must be at least 1; children may not be negative.
//   - The current price must be positive.
func validateTrip(trip domain.Trip) error {
	if strings.TrimSpace(trip.Destination) == "" {
		return fmt.Errorf("%w: destination is required", domain.ErrValidation)
	}
	if !trip.Provider.Valid() {
		return fmt.Errorf("%w: provider must be one of sunweb, tui, corendon, other", domain.ErrValidation)
	}
	if trip.DepartureDate.IsZero() {
		return fmt.Errorf("%w: departureDate is required", domain.ErrValidation)
	}
	if trip.ReturnDate.IsZero() {
		return fmt.Errorf("%w: returnDate is required", domain.ErrValidation)
	}
	if trip.ReturnDate.Before(trip.DepartureDate) {
		return fmt.Errorf("%w: returnDate must not be before departureDate", domain.ErrValidation)
	}
	if trip.Adults < 1 {
		return fmt.Errorf("%w: adults must be at least 1", domain.ErrValidation)
	}
	if trip.Children < 0 {
		return fmt.Errorf("%w: children must not be negative", domain.ErrValidation)
	}
	if trip.CurrentPrice <= 0 {
		return domain.ErrInvalidPrice
	}
	return nil
}
