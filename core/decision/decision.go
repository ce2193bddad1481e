// Package decision maps raw model signals to maintenance urgency, alert
// severity, and the alert-trigger verdict.
package decision

import "github.com/vigilstack/vigil/core/model"

// Thresholds for the maintenance ladder.
const (
	failureProbImmediate = 0.7
	failureProbSoon      = 0.4
	rulImmediate         = 30
	rulSoon              = 60
	anomalyAlert         = 0.5
)

// ClassifyMaintenance derives the maintenance recommendation from the failure
// probability and remaining useful life.
func ClassifyMaintenance(failureProb, rul float64) model.MaintenanceDecision {
	switch {
	case failureProb >= failureProbImmediate || rul <= rulImmediate:
		return model.MaintenanceDecision{
			Level:       model.MaintenanceImmediate,
			Message:     "Immediate Maintenance Required",
			Description: "Critical condition detected. Schedule service immediately.",
			Color:       "red",
		}
	case failureProb >= failureProbSoon || rul <= rulSoon:
		return model.MaintenanceDecision{
			Level:       model.MaintenanceSoon,
			Message:     "Schedule Maintenance Soon",
			Description: "Degradation detected. Plan maintenance within the next week.",
			Color:       "yellow",
		}
	default:
		return model.MaintenanceDecision{
			Level:       model.MaintenanceNormal,
			Message:     "Vehicle Operating Normally",
			Description: "All systems functioning within normal parameters.",
			Color:       "green",
		}
	}
}

// ShouldAlert reports whether an alert should fire. The anomaly branch is
// evaluated independently of the maintenance ladder: a high reconstruction
// error triggers an alert even when failure probability and RUL are nominal.
func ShouldAlert(failureProb, rul, anomalyScore float64) bool {
	return failureProb >= failureProbImmediate || rul <= rulImmediate || anomalyScore > anomalyAlert
}

// AlertSeverity returns the severity tier for an alert. It uses the same
// two-threshold ladder as ClassifyMaintenance and deliberately ignores the
// anomaly score.
func AlertSeverity(failureProb, rul float64) model.Severity {
	switch {
	case failureProb >= failureProbImmediate || rul <= rulImmediate:
		return model.SeverityCritical
	case failureProb >= failureProbSoon || rul <= rulSoon:
		return model.SeverityWarning
	default:
		return model.SeverityNormal
	}
}
