// Package twilio implements the alert notifier against the Twilio Messages
// REST API.
package twilio

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.twilio.com"

// Config holds the Twilio credentials and sender number. All three fields are
// required to enable delivery.
type Config struct {
	AccountSID string `json:"account_sid"`
	AuthToken  string `json:"auth_token"`
	FromNumber string `json:"from_number"`
}

// Configured reports whether the credentials are complete.
func (c Config) Configured() bool {
	return c.AccountSID != "" && c.AuthToken != "" && c.FromNumber != ""
}

// Client sends SMS messages through the Twilio REST API.
type Client struct {
	cfg     Config
	baseURL string
	client  *http.Client
}

// NewClient creates a Client with a bounded HTTP timeout.
func NewClient(cfg Config) *Client {
	return &Client{
		cfg:     cfg,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// NewClientWithBaseURL creates a Client against a non-default endpoint. Used
// by tests to point at a stub server.
func NewClientWithBaseURL(cfg Config, baseURL string) *Client {
	c := NewClient(cfg)
	c.baseURL = strings.TrimSuffix(baseURL, "/")
	return c
}

type messageResponse struct {
	SID          string `json:"sid"`
	ErrorMessage string `json:"error_message"`
}

// Send posts the message and returns the provider-assigned SID.
func (c *Client) Send(ctx context.Context, recipient, body string) (string, error) {
	form := url.Values{}
	form.Set("To", recipient)
	form.Set("From", c.cfg.FromNumber)
	form.Set("Body", body)

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", c.baseURL, c.cfg.AccountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.SetBasicAuth(c.cfg.AccountSID, c.cfg.AuthToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("twilio call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(resp.Body)
		var msg messageResponse
		if json.Unmarshal(payload, &msg) == nil && msg.ErrorMessage != "" {
			return "", fmt.Errorf("twilio error: %s", msg.ErrorMessage)
		}
		return "", fmt.Errorf("unexpected status code: %d, body: %s", resp.StatusCode, payload)
	}

	var msg messageResponse
	if err := json.NewDecoder(resp.Body).Decode(&msg); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	return msg.SID, nil
}

// Ping fetches the account resource to verify the credentials.
func (c *Client) Ping(ctx context.Context) error {
	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s.json", c.baseURL, c.cfg.AccountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.SetBasicAuth(c.cfg.AccountSID, c.cfg.AuthToken)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("twilio call: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	return nil
}
