package app

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/vigilstack/vigil/config"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Server.SetDefaults()
	cfg.Server.CORSOrigins = []string{"http://localhost:5173"}
	cfg.Predictor.SetDefaults()
	cfg.Alerts.SetDefaults()
	cfg.Location.SetDefaults()
	cfg.Metrics.SetDefaults()
	return cfg
}

func TestService_HealthEndpoint(t *testing.T) {
	svc, err := New(testConfig())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	defer func() {
		if err := svc.Close(); err != nil {
			t.Fatalf("close: %v", err)
		}
	}()

	rec := httptest.NewRecorder()
	svc.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "healthy") {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestService_PredictRoute(t *testing.T) {
	svc, err := New(testConfig())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	defer func() { _ = svc.Close() }()

	body := `{"features": [85, 95, 360, -25, 32, 65, 0.6, 2200, 0.25, 8, 45, 0.85]}`
	req := httptest.NewRequest(http.MethodPost, "/api/predict", strings.NewReader(body))
	rec := httptest.NewRecorder()
	svc.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestService_AlertsUnconfigured(t *testing.T) {
	svc, err := New(testConfig())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	defer func() { _ = svc.Close() }()

	body := `{"phone": "+15550001", "failure_prob": 80, "rul": 20, "severity": "critical"}`
	req := httptest.NewRequest(http.MethodPost, "/api/alerts/send", strings.NewReader(body))
	rec := httptest.NewRecorder()
	svc.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unconfigured notifier, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "not configured") {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestService_AlertsTestRoute(t *testing.T) {
	svc, err := New(testConfig())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	defer func() { _ = svc.Close() }()

	rec := httptest.NewRecorder()
	svc.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/alerts/test", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 for unconfigured notifier, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "not configured") {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestService_CORSHeaders(t *testing.T) {
	svc, err := New(testConfig())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	defer func() { _ = svc.Close() }()

	req := httptest.NewRequest(http.MethodOptions, "/api/predict", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	svc.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 preflight, got %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "http://localhost:5173" {
		t.Fatalf("missing CORS header")
	}

	req = httptest.NewRequest(http.MethodOptions, "/api/predict", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec = httptest.NewRecorder()
	svc.Handler().ServeHTTP(rec, req)
	if rec.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Fatalf("CORS header leaked to unknown origin")
	}
}
