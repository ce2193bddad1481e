package decision

import (
	"testing"

	"github.com/vigilstack/vigil/core/model"
)

func TestClassifyMaintenance(t *testing.T) {
	cases := []struct {
		name        string
		failureProb float64
		rul         float64
		want        model.MaintenanceLevel
	}{
		{"high failure prob", 0.8, 10, model.MaintenanceImmediate},
		{"low rul only", 0.1, 25, model.MaintenanceImmediate},
		{"boundary failure prob", 0.7, 200, model.MaintenanceImmediate},
		{"boundary rul", 0.1, 30, model.MaintenanceImmediate},
		{"moderate", 0.5, 45, model.MaintenanceSoon},
		{"rul soon only", 0.1, 55, model.MaintenanceSoon},
		{"boundary soon", 0.4, 200, model.MaintenanceSoon},
		{"nominal", 0.1, 200, model.MaintenanceNormal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dec := ClassifyMaintenance(tc.failureProb, tc.rul)
			if dec.Level != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, dec.Level)
			}
			if dec.Message == "" || dec.Description == "" || dec.Color == "" {
				t.Fatalf("decision text incomplete: %+v", dec)
			}
		})
	}
}

func TestShouldAlert_AnomalyOnlyTrigger(t *testing.T) {
	if !ShouldAlert(0.2, 200, 0.6) {
		t.Fatalf("expected anomaly-only alert to fire")
	}
	// The severity ladder ignores the anomaly score.
	if sev := AlertSeverity(0.2, 200); sev != model.SeverityNormal {
		t.Fatalf("expected normal severity, got %s", sev)
	}
}

func TestShouldAlert(t *testing.T) {
	cases := []struct {
		failureProb, rul, anomaly float64
		want                      bool
	}{
		{0.7, 200, 0, true},
		{0.1, 30, 0, true},
		{0.1, 200, 0.51, true},
		{0.1, 200, 0.5, false},
		{0.69, 31, 0.49, false},
	}
	for _, tc := range cases {
		if got := ShouldAlert(tc.failureProb, tc.rul, tc.anomaly); got != tc.want {
			t.Fatalf("ShouldAlert(%f, %f, %f): expected %v, got %v",
				tc.failureProb, tc.rul, tc.anomaly, tc.want, got)
		}
	}
}

func TestAlertSeverity(t *testing.T) {
	if sev := AlertSeverity(0.8, 100); sev != model.SeverityCritical {
		t.Fatalf("expected critical, got %s", sev)
	}
	if sev := AlertSeverity(0.5, 100); sev != model.SeverityWarning {
		t.Fatalf("expected warning, got %s", sev)
	}
	if sev := AlertSeverity(0.1, 100); sev != model.SeverityNormal {
		t.Fatalf("expected normal, got %s", sev)
	}
}
