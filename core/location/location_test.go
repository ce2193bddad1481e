package location

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/vigilstack/vigil/infra/logger"
)

type stubLookup struct {
	places []Place
	err    error
}

func (s stubLookup) FindNearby(context.Context, float64, float64, int) ([]Place, error) {
	return s.places, s.err
}

func TestRank_Unconfigured(t *testing.T) {
	r := NewRanker(nil, logger.NopLogger{})
	centers := r.Rank(context.Background(), 40.0, -74.0, 10000, 10)
	if len(centers) != 4 {
		t.Fatalf("expected 4 mock centers, got %d", len(centers))
	}
	if !sort.SliceIsSorted(centers, func(i, j int) bool { return centers[i].DistanceKm < centers[j].DistanceKm }) {
		t.Fatalf("mock centers not sorted by distance")
	}
	if centers[0].ID != "mock_1" || centers[0].DistanceKm != 1.2 {
		t.Fatalf("unexpected first mock center %+v", centers[0])
	}
	if centers[0].Latitude != 40.01 || centers[0].Longitude != -73.99 {
		t.Fatalf("mock offsets not applied: %+v", centers[0])
	}
}

func TestRank_LookupError(t *testing.T) {
	r := NewRanker(stubLookup{err: errors.New("quota exceeded")}, logger.NopLogger{})
	centers := r.Rank(context.Background(), 10, 10, 10000, 10)
	if len(centers) != 4 {
		t.Fatalf("expected mock fallback, got %d centers", len(centers))
	}
}

func TestRank_SortsAndTruncates(t *testing.T) {
	places := []Place{
		{ID: "far", Name: "Far", Latitude: 41.0, Longitude: -74.0},
		{ID: "near", Name: "Near", Latitude: 40.01, Longitude: -74.0},
		{ID: "mid", Name: "Mid", Latitude: 40.5, Longitude: -74.0},
	}
	r := NewRanker(stubLookup{places: places}, logger.NopLogger{})
	centers := r.Rank(context.Background(), 40.0, -74.0, 10000, 2)
	if len(centers) != 2 {
		t.Fatalf("expected truncation to 2, got %d", len(centers))
	}
	if centers[0].ID != "near" || centers[1].ID != "mid" {
		t.Fatalf("unexpected order: %s, %s", centers[0].ID, centers[1].ID)
	}
	if centers[0].DistanceKm <= 0 {
		t.Fatalf("expected positive distance, got %f", centers[0].DistanceKm)
	}
}

func TestRank_EmptyLookupResult(t *testing.T) {
	r := NewRanker(stubLookup{}, logger.NopLogger{})
	centers := r.Rank(context.Background(), 0, 0, 10000, 10)
	if len(centers) != 0 {
		t.Fatalf("expected empty result, got %d", len(centers))
	}
}
