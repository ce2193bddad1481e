package assessments

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/vigilstack/vigil/core/prediction"
	"github.com/vigilstack/vigil/infra/logger"
)

func testHandler() http.Handler {
	pred := prediction.MockPredictor{FailureProb: 0.8, RUL: 20, Anomaly: 0.6}
	return NewHandler(prediction.NewAssessor(pred, logger.NopLogger{}, 0, nil))
}

func TestHandler_Predict(t *testing.T) {
	body := `{"features": [0.8, 0.9, 360, -25, 32, 65, 0.6, 2200, 0.25, 8, 45, 0.85]}`
	req := httptest.NewRequest(http.MethodPost, "/api/predict", strings.NewReader(body))
	rec := httptest.NewRecorder()
	testHandler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			KPIs struct {
				FailureProbability float64 `json:"failure_probability"`
			} `json:"kpis"`
			ShouldAlert   bool   `json:"should_alert"`
			AlertSeverity string `json:"alert_severity"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success || resp.Data.KPIs.FailureProbability != 80.0 {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if !resp.Data.ShouldAlert || resp.Data.AlertSeverity != "critical" {
		t.Fatalf("unexpected alert fields: %+v", resp.Data)
	}
}

func TestHandler_WrongLength(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/predict", strings.NewReader(`{"features": [1, 2, 3]}`))
	rec := httptest.NewRecorder()
	testHandler().ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "expected 12 features, got 3") {
		t.Fatalf("missing detail: %s", rec.Body.String())
	}
}

func TestHandler_MissingFeatures(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/predict", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	testHandler().ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHandler_InvalidJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/predict", strings.NewReader(`not json`))
	rec := httptest.NewRecorder()
	testHandler().ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHandler_MethodNotAllowed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/predict", nil)
	rec := httptest.NewRecorder()
	testHandler().ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}
