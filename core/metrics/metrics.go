package metrics

import "time"

// AssessmentEvent captures the raw signals and outcome of one assessment.
type AssessmentEvent struct {
	FailureProbability  float64
	RemainingUsefulLife float64
	AnomalyScore        float64
	OverallHealth       float64
	MaintenanceLevel    string
	ShouldAlert         bool
	Time                time.Time
}

// Alert outcome labels recorded by sinks.
const (
	AlertOutcomeSent          = "sent"
	AlertOutcomeFailed        = "failed"
	AlertOutcomeRateLimited   = "rate_limited"
	AlertOutcomeNotConfigured = "not_configured"
)

// AlertEvent captures one pass through the alert gate.
type AlertEvent struct {
	Severity string
	Outcome  string
	Time     time.Time
}

// MetricsSink records assessment and alert events for observability purposes.
type MetricsSink interface {
	RecordAssessment(ev AssessmentEvent) error
	RecordAlert(ev AlertEvent) error
}

// NopSink discards all events.
type NopSink struct{}

func (NopSink) RecordAssessment(AssessmentEvent) error { return nil }
func (NopSink) RecordAlert(AlertEvent) error           { return nil }

// Config selects the enabled metrics sinks.
type Config struct {
	PrometheusEnabled bool         `json:"prometheus_enabled"`
	PrometheusPort    string       `json:"prometheus_port"`
	InfluxEnabled     bool         `json:"influx_enabled"`
	Influx            InfluxConfig `json:"influx"`
}

// InfluxConfig holds the InfluxDB connection settings.
type InfluxConfig struct {
	URL    string `json:"url"`
	Token  string `json:"token"`
	Org    string `json:"org"`
	Bucket string `json:"bucket"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.PrometheusPort == "" {
		c.PrometheusPort = ":9090"
	}
}
