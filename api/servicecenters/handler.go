// Package servicecenters exposes the nearby service-center endpoint.
package servicecenters

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/vigilstack/vigil/core/location"
)

// Ranker returns service centers ordered by distance.
type Ranker interface {
	Rank(ctx context.Context, lat, lng float64, radiusM, maxResults int) []location.ServiceCenter
}

// NewHandler returns an HTTP handler serving GET /api/service-centers.
func NewHandler(ranker Ranker, defaultRadiusM, maxResults int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed", "only GET is supported")
			return
		}
		q := r.URL.Query()
		lat, latErr := strconv.ParseFloat(q.Get("lat"), 64)
		lng, lngErr := strconv.ParseFloat(q.Get("lng"), 64)
		if latErr != nil || lngErr != nil {
			writeError(w, http.StatusBadRequest, "missing parameters", "both lat and lng parameters are required")
			return
		}
		if lat < -90 || lat > 90 {
			writeError(w, http.StatusBadRequest, "invalid latitude", "latitude must be between -90 and 90")
			return
		}
		if lng < -180 || lng > 180 {
			writeError(w, http.StatusBadRequest, "invalid longitude", "longitude must be between -180 and 180")
			return
		}
		radius := defaultRadiusM
		if raw := q.Get("radius"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed <= 0 {
				writeError(w, http.StatusBadRequest, "invalid radius", "radius must be a positive integer")
				return
			}
			radius = parsed
		}

		centers := ranker.Rank(r.Context(), lat, lng, radius, maxResults)
		writeJSON(w, http.StatusOK, map[string]any{
			"success":         true,
			"count":           len(centers),
			"service_centers": centers,
		})
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, kind, msg string) {
	writeJSON(w, status, map[string]string{"error": kind, "message": msg})
}
