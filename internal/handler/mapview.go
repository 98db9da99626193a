package handler

import "net/http"

// GetMapView handles GET /api/map.
// It returns the enriched trip set with a centroid and coverage counts.
// Geocoding runs one lookup per second, so with many trips the response
// takes several seconds; cancelling the request abandons the run.
func (s *Server) GetMapView(w http.ResponseWriter, r *http.Request) {
	view, err := s.mapView.BuildView(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
