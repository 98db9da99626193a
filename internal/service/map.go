package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pkordes/holiday-tracker/internal/domain"
	"github.com/pkordes/holiday-tracker/internal/geocode"
	"github.com/pkordes/holiday-tracker/internal/repo"
)

// Geocoder resolves a free-text destination to ranked coordinate candidates.
// Satisfied by *geocode.Client; defined here so tests can inject a fake
// without real network calls.
type Geocoder interface {
	Search(ctx context.Context, query string) ([]geocode.Candidate, error)
}

// Coordinate is a latitude/longitude pair in decimal degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// EnrichedTrip is a trip annotated with the coordinates of its destination
// and the marker color for its provider.
type EnrichedTrip struct {
	domain.Trip
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	MarkerColor string  `json:"markerColor"`
}

// MapView is the render-ready aggregate for the map page.
// Center is nil when no destination could be located; Enriched/Total lets the
// UI show partial coverage ("Showing 3 of 5 trips").
type MapView struct {
	Trips    []EnrichedTrip `json:"trips"`
	Center   *Coordinate    `json:"center,omitempty"`
	Enriched int            `json:"enriched"`
	Total    int            `json:"total"`
}

// MapService builds the map view: it lists all trips, geocodes their
// destinations one at a time, and aggregates the result.
type MapService struct {
	repo     repo.TripRepo
	geocoder Geocoder
	log      *slog.Logger
}

// NewMapService constructs a MapService backed by the provided repo and geocoder.
func NewMapService(r repo.TripRepo, g Geocoder, log *slog.Logger) *MapService {
	if log == nil {
		log = slog.Default()
	}
	return &MapService{repo: r, geocoder: g, log: log}
}

// BuildView lists all trips and enriches them with coordinates.
// It fails only when the listing itself fails; geocoding failures degrade to
// trips missing from the view.
func (s *MapService) BuildView(ctx context.Context) (MapView, error) {
	trips, err := s.repo.List(ctx)
	if err != nil {
		return MapView{}, fmt.Errorf("service.MapService.BuildView: %w", err)
	}

	enriched, err := s.enrich(ctx, trips)
	if err != nil {
		return MapView{}, err
	}

	view := MapView{
		Trips:    enriched,
		Enriched: len(enriched),
		Total:    len(trips),
	}
	if center, ok := Centroid(enriched); ok {
		view.Center = &center
	}
	return view, nil
}

// enrich geocodes each trip's destination strictly one at a time, preserving
// input order. Sequential execution is not an implementation convenience: the
// upstream service forbids parallel requests, and the client's rate limiter
// spaces consecutive lookups to the allowed one per second.
//
// A lookup that errors or returns no candidates drops that trip from the
// output and moves on. The only error returned is context cancellation, so a
// superseded run abandons cleanly and its partial results are discarded.
func (s *MapService) enrich(ctx context.Context, trips []domain.Trip) ([]EnrichedTrip, error) {
	enriched := make([]EnrichedTrip, 0, len(trips))
	for _, trip := range trips {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("service.MapService.enrich: %w", err)
		}

		candidates, err := s.geocoder.Search(ctx, trip.Destination)
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("service.MapService.enrich: %w", ctx.Err())
			}
			s.log.WarnContext(ctx, "geocode lookup failed",
				"destination", trip.Destination, "error", err)
			continue
		}
		if len(candidates) == 0 {
			s.log.InfoContext(ctx, "no geocode match", "destination", trip.Destination)
			continue
		}

		// The first candidate is the service's best match and is authoritative here.
		best := candidates[0]
		enriched = append(enriched, EnrichedTrip{
			Trip:        trip,
			Lat:         best.Lat,
			Lon:         best.Lon,
			MarkerColor: MarkerColor(trip.Provider),
		})
	}
	return enriched, nil
}

// Centroid returns the arithmetic mean position of the enriched trips.
// ok is false for an empty set — there is no meaningful center to return.
func Centroid(trips []EnrichedTrip) (Coordinate, bool) {
	if len(trips) == 0 {
		return Coordinate{}, false
	}
	var sumLat, sumLon float64
	for _, t := range trips {
		sumLat += t.Lat
		sumLon += t.Lon
	}
	n := float64(len(trips))
	return Coordinate{Lat: sumLat / n, Lon: sumLon / n}, true
}

// markerColors maps each provider to the hex color of its map marker.
var markerColors = map[domain.Provider]string{
	domain.ProviderSunweb:   "#d63031",
	domain.ProviderTUI:      "#0984e3",
	domain.ProviderCorendon: "#6c5ce7",
	domain.ProviderOther:    "#2d3436",
}

// MarkerColor returns the marker color for a provider. Unknown values fall
// back to the "other" color, so this is total over all inputs.
func MarkerColor(p domain.Provider) string {
	if c, ok := markerColors[p]; ok {
		return c
	}
	return markerColors[domain.ProviderOther]
}
