package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/vigilstack/vigil/core/metrics"
)

// PromSink records assessment and alert events in Prometheus metrics.
type PromSink struct {
	assessments *prometheus.CounterVec
	health      prometheus.Histogram
	failure     prometheus.Histogram
	alerts      *prometheus.CounterVec
}

// NewPromSink registers the metrics on the default Prometheus registerer.
// The metrics server should be started separately using the configured port.
func NewPromSink() (coremetrics.MetricsSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (coremetrics.MetricsSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	assessments := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "assessments_total",
		Help: "Total number of health assessments",
	}, []string{"maintenance_level", "should_alert"})
	health := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "assessment_overall_health",
		Help:    "Distribution of overall health scores",
		Buckets: prometheus.LinearBuckets(0, 10, 11),
	})
	failure := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "assessment_failure_probability",
		Help:    "Distribution of predicted failure probabilities",
		Buckets: prometheus.LinearBuckets(0, 0.1, 11),
	})
	alerts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "alerts_total",
		Help: "Total number of alert gate outcomes",
	}, []string{"severity", "outcome"})

	collectors := []prometheus.Collector{assessments, health, failure, alerts}
	for i, c := range collectors {
		if err := reg.Register(c); err != nil {
			are, ok := err.(prometheus.AlreadyRegisteredError)
			if !ok {
				return nil, err
			}
			collectors[i] = are.ExistingCollector
		}
	}
	return &PromSink{
		assessments: collectors[0].(*prometheus.CounterVec),
		health:      collectors[1].(prometheus.Histogram),
		failure:     collectors[2].(prometheus.Histogram),
		alerts:      collectors[3].(*prometheus.CounterVec),
	}, nil
}

// RecordAssessment increments the counter and observes the score histograms.
func (s *PromSink) RecordAssessment(ev coremetrics.AssessmentEvent) error {
	s.assessments.WithLabelValues(ev.MaintenanceLevel, strconv.FormatBool(ev.ShouldAlert)).Inc()
	s.health.Observe(ev.OverallHealth)
	s.failure.Observe(ev.FailureProbability)
	return nil
}

// RecordAlert increments the alert outcome counter.
func (s *PromSink) RecordAlert(ev coremetrics.AlertEvent) error {
	s.alerts.WithLabelValues(ev.Severity, ev.Outcome).Inc()
	return nil
}
