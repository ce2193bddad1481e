package location

import "math"

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func ptr[T any](v T) *T { return &v }

// mockServiceCenters returns four fixed candidates offset from the query
// point. Offsets, distances and ratings are fixed so tests stay deterministic.
func mockServiceCenters(lat, lng float64) []ServiceCenter {
	return []ServiceCenter{
		{
			ID:           "mock_1",
			Name:         "Downtown Service Center",
			Address:      "123 Main Street, City Center",
			Latitude:     lat + 0.01,
			Longitude:    lng + 0.01,
			DistanceKm:   1.2,
			Rating:       4.5,
			TotalRatings: 234,
			IsOpen:       ptr(true),
			Phone:        ptr("+1-555-0100"),
			Website:      ptr("https://example.com/service-downtown"),
		},
		{
			ID:           "mock_2",
			Name:         "Premium Service Hub",
			Address:      "456 Oak Avenue, Business District",
			Latitude:     lat + 0.02,
			Longitude:    lng - 0.01,
			DistanceKm:   2.5,
			Rating:       4.7,
			TotalRatings: 412,
			IsOpen:       ptr(true),
			Phone:        ptr("+1-555-0200"),
			Website:      ptr("https://example.com/service-premium"),
		},
		{
			ID:           "mock_3",
			Name:         "Authorized Service Garage",
			Address:      "789 Industrial Blvd, Tech Park",
			Latitude:     lat - 0.03,
			Longitude:    lng + 0.02,
			DistanceKm:   4.8,
			Rating:       4.3,
			TotalRatings: 189,
			IsOpen:       ptr(false),
			Phone:        ptr("+1-555-0300"),
			Website:      ptr("https://example.com/service-authorized"),
		},
		{
			ID:           "mock_4",
			Name:         "Express Service Station",
			Address:      "321 Highway Road, Suburb",
			Latitude:     lat + 0.05,
			Longitude:    lng + 0.03,
			DistanceKm:   6.3,
			Rating:       4.6,
			TotalRatings: 321,
			IsOpen:       ptr(true),
			Phone:        ptr("+1-555-0400"),
			Website:      ptr("https://example.com/service-express"),
		},
	}
}
