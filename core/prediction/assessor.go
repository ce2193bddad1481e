package prediction

import (
	"context"
	"math"
	"time"

	"github.com/vigilstack/vigil/core/decision"
	"github.com/vigilstack/vigil/core/health"
	"github.com/vigilstack/vigil/core/logger"
	coremetrics "github.com/vigilstack/vigil/core/metrics"
	"github.com/vigilstack/vigil/core/model"
	"github.com/vigilstack/vigil/internal/eventbus"
)

// Fallback signals substituted when a model collaborator fails. The two
// models fail independently, so each fallback is applied on its own.
const (
	fallbackFailureProb = 0.3
	fallbackRUL         = 100.0
	fallbackAnomaly     = 0.01
)

const topContributors = 3

// Assessor composes the predictor, health scorer and decision engine into a
// single assessment pipeline.
type Assessor struct {
	predictor Predictor
	log       logger.Logger
	timeout   time.Duration
	bus       *eventbus.TypedBus[coremetrics.AssessmentEvent]
}

// NewAssessor creates an Assessor. The timeout bounds each inference call;
// zero disables the bound. The bus may be nil when no observer is interested
// in assessment events.
func NewAssessor(p Predictor, log logger.Logger, timeout time.Duration, bus *eventbus.TypedBus[coremetrics.AssessmentEvent]) *Assessor {
	return &Assessor{predictor: p, log: log, timeout: timeout, bus: bus}
}

// Assess validates the feature vector, gathers raw signals and produces the
// full assessment. Only the length validation can fail; inference errors
// degrade to fallback signals.
func (a *Assessor) Assess(ctx context.Context, features model.FeatureVector) (model.AssessmentResult, error) {
	if err := features.Validate(); err != nil {
		return model.AssessmentResult{}, err
	}

	signals := a.gatherSignals(ctx, features)

	overall := health.OverallHealth(features)
	components := health.ComponentScores(features)
	contributors := health.TopContributors(features, topContributors)
	maintenance := decision.ClassifyMaintenance(signals.FailureProbability, signals.RemainingUsefulLife)
	shouldAlert := decision.ShouldAlert(signals.FailureProbability, signals.RemainingUsefulLife, signals.AnomalyScore)
	severity := decision.AlertSeverity(signals.FailureProbability, signals.RemainingUsefulLife)

	result := model.AssessmentResult{
		KPIs: model.KPIs{
			FailureProbability:  round2(signals.FailureProbability * 100),
			RemainingUsefulLife: round1(signals.RemainingUsefulLife),
			AnomalyScore:        round4(signals.AnomalyScore),
			OverallHealth:       round1(overall),
		},
		ComponentHealth:         components,
		DegradationContributors: contributors,
		MaintenanceDecision:     maintenance,
		ShouldAlert:             shouldAlert,
		AlertSeverity:           severity,
	}

	if a.bus != nil {
		a.bus.Publish(coremetrics.AssessmentEvent{
			FailureProbability:  signals.FailureProbability,
			RemainingUsefulLife: signals.RemainingUsefulLife,
			AnomalyScore:        signals.AnomalyScore,
			OverallHealth:       overall,
			MaintenanceLevel:    string(maintenance.Level),
			ShouldAlert:         shouldAlert,
			Time:                time.Now(),
		})
	}
	return result, nil
}

// gatherSignals queries both models, substituting the fallback for whichever
// call fails. Each call gets its own timeout so one model exhausting its
// deadline never suppresses the other's output.
func (a *Assessor) gatherSignals(ctx context.Context, features model.FeatureVector) model.RawSignals {
	signals := model.RawSignals{
		FailureProbability:  fallbackFailureProb,
		RemainingUsefulLife: fallbackRUL,
		AnomalyScore:        fallbackAnomaly,
	}
	if failureProb, rul, err := a.predictFailure(ctx, features); err != nil {
		a.log.Warnf("failure model unavailable, using fallback signals: %v", err)
	} else {
		signals.FailureProbability = failureProb
		signals.RemainingUsefulLife = rul
	}
	if anomaly, err := a.anomalyScore(ctx, features); err != nil {
		a.log.Warnf("anomaly model unavailable, using fallback score: %v", err)
	} else {
		signals.AnomalyScore = anomaly
	}
	return signals
}

func (a *Assessor) predictFailure(ctx context.Context, features model.FeatureVector) (float64, float64, error) {
	ctx, cancel := a.callContext(ctx)
	defer cancel()
	return a.predictor.PredictFailure(ctx, features)
}

func (a *Assessor) anomalyScore(ctx context.Context, features model.FeatureVector) (float64, error) {
	ctx, cancel := a.callContext(ctx)
	defer cancel()
	return a.predictor.AnomalyScore(ctx, features)
}

func (a *Assessor) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, a.timeout)
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round4(v float64) float64 { return math.Round(v*10000) / 10000 }
