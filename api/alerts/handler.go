// Package alerts exposes the SMS alert endpoint.
package alerts

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/vigilstack/vigil/core/alert"
	"github.com/vigilstack/vigil/core/location"
	"github.com/vigilstack/vigil/core/model"
)

// Gate is the rate-limited alert sender.
type Gate interface {
	Send(ctx context.Context, recipient string, failureProb, rul float64, severity model.Severity, nearest *location.ServiceCenter) alert.SendResult
}

type sendRequest struct {
	Phone         string                  `json:"phone"`
	FailureProb   *float64                `json:"failure_prob"`
	RUL           *float64                `json:"rul"`
	Severity      string                  `json:"severity"`
	NearestCenter *location.ServiceCenter `json:"nearest_center"`
}

// NewHandler returns an HTTP handler serving POST /api/alerts/send.
func NewHandler(gate Gate) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed", "only POST is supported")
			return
		}
		var req sendRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request", "request body must be JSON")
			return
		}
		if req.Phone == "" {
			writeError(w, http.StatusBadRequest, "missing phone number", "phone number is required")
			return
		}
		if req.FailureProb == nil || req.RUL == nil {
			writeError(w, http.StatusBadRequest, "missing data", "failure_prob and rul are required")
			return
		}
		severity := model.Severity(req.Severity)
		if severity == "" {
			severity = model.SeverityNormal
		}

		res := gate.Send(r.Context(), req.Phone, *req.FailureProb, *req.RUL, severity, req.NearestCenter)
		status := http.StatusOK
		if !res.Success {
			status = http.StatusBadRequest
		}
		writeJSON(w, status, res)
	})
}

// Pinger checks connectivity to the delivery provider.
type Pinger interface {
	Ping(ctx context.Context) error
}

// NewTestHandler returns an HTTP handler serving GET /api/alerts/test, the
// delivery-provider connectivity check.
func NewTestHandler(gate Pinger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed", "only GET is supported")
			return
		}
		if err := gate.Ping(r.Context()); err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]any{
				"success": false,
				"message": err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"message": "delivery provider reachable",
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
