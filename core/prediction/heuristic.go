package prediction

import (
	"context"

	"github.com/vigilstack/vigil/core/model"
)

// HeuristicPredictor is a rule-based model used when no inference endpoint is
// configured. It derives coarse signals from state of charge, state of health
// and battery temperature.
type HeuristicPredictor struct{}

// PredictFailure estimates failure probability and RUL from simple thresholds.
func (HeuristicPredictor) PredictFailure(_ context.Context, f model.FeatureVector) (float64, float64, error) {
	soc := f[model.IdxStateOfCharge]
	soh := f[model.IdxStateOfHealth]
	temp := f[model.IdxBatteryTemp]

	failureProb := 0.1
	if soh < 80 {
		failureProb += 0.3
	}
	if temp > 40 {
		failureProb += 0.2
	}
	if soc < 20 {
		failureProb += 0.1
	}
	rul := soh * 2.5
	return failureProb, rul, nil
}

// AnomalyScore estimates the anomaly score from state-of-health degradation.
func (HeuristicPredictor) AnomalyScore(_ context.Context, f model.FeatureVector) (float64, error) {
	soh := f[model.IdxStateOfHealth]
	return 0.01 + (100-soh)/1000, nil
}
