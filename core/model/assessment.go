package model

// ComponentStatus classifies a component health score.
type ComponentStatus string

const (
	StatusHealthy   ComponentStatus = "healthy"
	StatusDegrading ComponentStatus = "degrading"
	StatusCritical  ComponentStatus = "critical"
)

// ComponentHealth is the scored state of one monitored subsystem.
type ComponentHealth struct {
	Name   string          `json:"name"`
	Score  float64         `json:"score"`
	Status ComponentStatus `json:"status"`
}

// DegradationContributor is a feature ranked by its contribution to degradation.
type DegradationContributor struct {
	Feature    string  `json:"feature"`
	Value      float64 `json:"value"`
	Importance float64 `json:"importance"`
}

// MaintenanceLevel is the urgency of the recommended maintenance action.
type MaintenanceLevel string

const (
	MaintenanceImmediate MaintenanceLevel = "immediate"
	MaintenanceSoon      MaintenanceLevel = "soon"
	MaintenanceNormal    MaintenanceLevel = "normal"
)

// Severity tags an alert with its urgency tier.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityNormal   Severity = "normal"
)

// MaintenanceDecision is the recommendation derived from failure probability and RUL.
type MaintenanceDecision struct {
	Level       MaintenanceLevel `json:"level"`
	Message     string           `json:"message"`
	Description string           `json:"description"`
	Color       string           `json:"color"`
}

// KPIs are the headline numbers of an assessment. FailureProbability is a
// percentage; the other fields keep their natural units.
type KPIs struct {
	FailureProbability  float64 `json:"failure_probability"`
	RemainingUsefulLife float64 `json:"remaining_useful_life"`
	AnomalyScore        float64 `json:"anomaly_score"`
	OverallHealth       float64 `json:"overall_health"`
}

// AssessmentResult is the full health assessment for one feature vector.
type AssessmentResult struct {
	KPIs                    KPIs                     `json:"kpis"`
	ComponentHealth         []ComponentHealth        `json:"component_health"`
	DegradationContributors []DegradationContributor `json:"degradation_contributors"`
	MaintenanceDecision     MaintenanceDecision      `json:"maintenance_decision"`
	ShouldAlert             bool                     `json:"should_alert"`
	AlertSeverity           Severity                 `json:"alert_severity"`
}
