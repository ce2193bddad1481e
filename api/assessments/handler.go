// Package assessments exposes the health-assessment endpoint.
package assessments

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vigilstack/vigil/core/model"
)

// Assessor produces a health assessment for a feature vector.
type Assessor interface {
	Assess(ctx context.Context, features model.FeatureVector) (model.AssessmentResult, error)
}

type predictRequest struct {
	Features []float64 `json:"features"`
}

// NewHandler returns an HTTP handler serving POST /api/predict.
func NewHandler(assessor Assessor) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed", "only POST is supported")
			return
		}
		var req predictRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request", "request body must be JSON with a \"features\" array of numbers")
			return
		}
		if req.Features == nil {
			writeError(w, http.StatusBadRequest, "missing features", "request must include \"features\" array")
			return
		}

		result, err := assessor.Assess(r.Context(), req.Features)
		if err != nil {
			var verr *model.ValidationError
			if errors.As(err, &verr) {
				writeError(w, http.StatusBadRequest, "invalid features length", verr.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, "prediction failed", err.Error())
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": result})
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
