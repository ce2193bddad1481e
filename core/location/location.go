// Package location ranks candidate service centers by distance from the
// vehicle. The place lookup is an external collaborator; when it is absent or
// failing, a fixed mock list keeps the feature usable and deterministic.
package location

import (
	"context"
	"sort"

	"github.com/vigilstack/vigil/core/geo"
	"github.com/vigilstack/vigil/core/logger"
)

// Place is a raw record returned by the lookup collaborator.
type Place struct {
	ID           string
	Name         string
	Address      string
	Latitude     float64
	Longitude    float64
	Rating       float64
	TotalRatings int
	IsOpen       *bool
}

// ServiceCenter is a ranked candidate returned to callers.
type ServiceCenter struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Address      string  `json:"address"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	DistanceKm   float64 `json:"distance_km"`
	Rating       float64 `json:"rating"`
	TotalRatings int     `json:"total_ratings"`
	IsOpen       *bool   `json:"is_open"`
	Phone        *string `json:"phone"`
	Website      *string `json:"website"`
}

// Lookup finds raw place records near a coordinate.
type Lookup interface {
	FindNearby(ctx context.Context, lat, lng float64, radiusM int) ([]Place, error)
}

// Ranker turns lookup results into distance-ordered service centers.
type Ranker struct {
	lookup Lookup
	log    logger.Logger
}

// NewRanker creates a Ranker. A nil lookup means the collaborator is not
// configured and the mock list is always used.
func NewRanker(lookup Lookup, log logger.Logger) *Ranker {
	return &Ranker{lookup: lookup, log: log}
}

// Rank returns up to maxResults service centers sorted by ascending distance
// from the given coordinate. Lookup failures degrade to the mock list.
func (r *Ranker) Rank(ctx context.Context, lat, lng float64, radiusM, maxResults int) []ServiceCenter {
	if r.lookup == nil {
		return mockServiceCenters(lat, lng)
	}
	places, err := r.lookup.FindNearby(ctx, lat, lng, radiusM)
	if err != nil {
		r.log.Warnf("place lookup failed, serving mock centers: %v", err)
		return mockServiceCenters(lat, lng)
	}

	centers := make([]ServiceCenter, 0, len(places))
	for _, p := range places {
		centers = append(centers, ServiceCenter{
			ID:           p.ID,
			Name:         p.Name,
			Address:      p.Address,
			Latitude:     p.Latitude,
			Longitude:    p.Longitude,
			DistanceKm:   round2(geo.Distance(lat, lng, p.Latitude, p.Longitude)),
			Rating:       p.Rating,
			TotalRatings: p.TotalRatings,
			IsOpen:       p.IsOpen,
		})
	}
	sort.Slice(centers, func(i, j int) bool { return centers[i].DistanceKm < centers[j].DistanceKm })
	if maxResults > 0 && len(centers) > maxResults {
		centers = centers[:maxResults]
	}
	return centers
}
