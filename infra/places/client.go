// Package places implements the service-center lookup against the Google
// Places nearby-search API.
package places

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/vigilstack/vigil/core/location"
)

const (
	defaultBaseURL = "https://maps.googleapis.com"
	searchKeyword  = "EV service center"
	searchType     = "car_repair"
)

// Client queries the Places API for nearby service centers.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewClient creates a Client using the given API key.
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// NewClientWithBaseURL creates a Client against a non-default endpoint. Used
// by tests to point at a stub server.
func NewClientWithBaseURL(apiKey, baseURL string) *Client {
	c := NewClient(apiKey)
	c.baseURL = strings.TrimSuffix(baseURL, "/")
	return c
}

type nearbyResponse struct {
	Status  string        `json:"status"`
	Results []placeResult `json:"results"`
}

type placeResult struct {
	PlaceID  string `json:"place_id"`
	Name     string `json:"name"`
	Vicinity string `json:"vicinity"`
	Geometry struct {
		Location struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"location"`
	} `json:"geometry"`
	Rating           float64 `json:"rating"`
	UserRatingsTotal int     `json:"user_ratings_total"`
	OpeningHours     *struct {
		OpenNow *bool `json:"open_now"`
	} `json:"opening_hours"`
}

// FindNearby returns raw place records around the coordinate.
func (c *Client) FindNearby(ctx context.Context, lat, lng float64, radiusM int) ([]location.Place, error) {
	q := url.Values{}
	q.Set("location", fmt.Sprintf("%f,%f", lat, lng))
	q.Set("radius", strconv.Itoa(radiusM))
	q.Set("keyword", searchKeyword)
	q.Set("type", searchType)
	q.Set("key", c.apiKey)

	endpoint := c.baseURL + "/maps/api/place/nearbysearch/json?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("places call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	var body nearbyResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if body.Status != "OK" && body.Status != "ZERO_RESULTS" {
		return nil, fmt.Errorf("places status: %s", body.Status)
	}

	out := make([]location.Place, 0, len(body.Results))
	for _, r := range body.Results {
		p := location.Place{
			ID:           r.PlaceID,
			Name:         r.Name,
			Address:      r.Vicinity,
			Latitude:     r.Geometry.Location.Lat,
			Longitude:    r.Geometry.Location.Lng,
			Rating:       r.Rating,
			TotalRatings: r.UserRatingsTotal,
		}
		if r.OpeningHours != nil {
			p.IsOpen = r.OpeningHours.OpenNow
		}
		out = append(out, p)
	}
	return out, nil
}
