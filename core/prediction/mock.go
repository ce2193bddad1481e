package prediction

import (
	"context"

	"github.com/vigilstack/vigil/core/model"
)

// MockPredictor returns fixed signals and optional per-method errors.
type MockPredictor struct {
	FailureProb float64
	RUL         float64
	Anomaly     float64
	FailureErr  error
	AnomalyErr  error
}

// PredictFailure returns the configured failure probability and RUL.
func (m MockPredictor) PredictFailure(context.Context, model.FeatureVector) (float64, float64, error) {
	if m.FailureErr != nil {
		return 0, 0, m.FailureErr
	}
	return m.FailureProb, m.RUL, nil
}

// AnomalyScore returns the configured anomaly score.
func (m MockPredictor) AnomalyScore(context.Context, model.FeatureVector) (float64, error) {
	if m.AnomalyErr != nil {
		return 0, m.AnomalyErr
	}
	return m.Anomaly, nil
}
