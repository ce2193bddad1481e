package prediction

import (
	"context"

	"github.com/vigilstack/vigil/core/model"
)

// Predictor exposes the two model collaborators behind one interface. The
// methods fail independently: a failure-model error says nothing about the
// anomaly model and vice versa.
type Predictor interface {
	// PredictFailure returns the failure probability in [0,1] and the
	// remaining useful life in cycles.
	PredictFailure(ctx context.Context, features model.FeatureVector) (failureProb, rul float64, err error)

	// AnomalyScore returns the reconstruction anomaly score (>= 0).
	AnomalyScore(ctx context.Context, features model.FeatureVector) (float64, error)
}
