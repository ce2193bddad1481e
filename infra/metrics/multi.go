package metrics

import coremetrics "github.com/vigilstack/vigil/core/metrics"

// MultiSink fans events out to multiple sinks.
type MultiSink struct {
	Sinks []coremetrics.MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordAssessment forwards the event to all sinks, returning the first error encountered.
func (m *MultiSink) RecordAssessment(ev coremetrics.AssessmentEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordAssessment(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordAlert forwards the event to all sinks, returning the first error encountered.
func (m *MultiSink) RecordAlert(ev coremetrics.AlertEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordAlert(ev); err != nil {
			return err
		}
	}
	return nil
}
