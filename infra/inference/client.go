// Package inference implements the prediction collaborator against a remote
// model-serving endpoint.
package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/vigilstack/vigil/core/model"
)

// Client calls a model server exposing the failure and anomaly models on two
// endpoints. Each call fails independently.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a Client for the given base URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

type predictRequest struct {
	Features []float64 `json:"features"`
}

type predictResponse struct {
	FailureProbability  *float64 `json:"failure_probability"`
	RemainingUsefulLife *float64 `json:"remaining_useful_life"`
}

type anomalyResponse struct {
	AnomalyScore *float64 `json:"anomaly_score"`
}

// PredictFailure queries the failure model.
func (c *Client) PredictFailure(ctx context.Context, features model.FeatureVector) (float64, float64, error) {
	var resp predictResponse
	if err := c.post(ctx, "/v1/predict", features, &resp); err != nil {
		return 0, 0, err
	}
	if resp.FailureProbability == nil || resp.RemainingUsefulLife == nil {
		return 0, 0, fmt.Errorf("malformed predict response: missing fields")
	}
	return *resp.FailureProbability, *resp.RemainingUsefulLife, nil
}

// AnomalyScore queries the reconstruction model.
func (c *Client) AnomalyScore(ctx context.Context, features model.FeatureVector) (float64, error) {
	var resp anomalyResponse
	if err := c.post(ctx, "/v1/anomaly", features, &resp); err != nil {
		return 0, err
	}
	if resp.AnomalyScore == nil {
		return 0, fmt.Errorf("malformed anomaly response: missing score")
	}
	return *resp.AnomalyScore, nil
}

func (c *Client) post(ctx context.Context, path string, features model.FeatureVector, out any) error {
	payload, err := json.Marshal(predictRequest{Features: features})
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("inference call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("unexpected status code: %d, body: %s", resp.StatusCode, body)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
