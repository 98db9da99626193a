// Package handler implements the HTTP handlers for the Holiday Tracker API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (trip.go, mapview.go, health.go) but all share the same Server struct
// so they can access its dependencies.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/holiday-tracker/internal/domain"
	"github.com/pkordes/holiday-tracker/internal/service"
)

// TripServicer defines the business operations the trip handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type TripServicer interface {
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	List(ctx context.Context) ([]domain.Trip, error)
	Update(ctx context.Context, id uuid.UUID, patch domain.TripPatch) (domain.Trip, error)
	RecordPrice(ctx context.Context, id uuid.UUID, price float64, notes string) (domain.Trip, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// MapServicer defines the map-view operation the map handler depends on.
type MapServicer interface {
	BuildView(ctx context.Context) (service.MapView, error)
}

// Server holds the dependencies for all API endpoints.
type Server struct {
	trips   TripServicer
	mapView MapServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(trips TripServicer, mapView MapServicer) *Server {
	return &Server{trips: trips, mapView: mapView}
}

// Routes returns the chi router with every API route mounted.
// The /api prefix matches the original frontend's expectations.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)

	r.Route("/api", func(r chi.Router) {
		r.Route("/trips", func(r chi.Router) {
			r.Get("/", s.ListTrips)
			r.Post("/", s.CreateTrip)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.GetTrip)
				r.Put("/", s.UpdateTrip)
				r.Delete("/", s.DeleteTrip)
				r.Post("/price-history", s.RecordPrice)
			})
		})
		r.Get("/map", s.GetMapView)
	})

	return r
}

// tripID extracts and parses the {id} URL parameter.
// A malformed UUID cannot name any trip, so it reports ok=false and the
// caller responds 404 — the same as a well-formed but unknown id.
func tripID(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.UUID{}, false
	}
	return id, true
}
