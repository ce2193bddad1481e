package model

import "fmt"

// FeatureCount is the fixed length of a telemetry feature vector.
const FeatureCount = 12

// Feature vector indices. Values are pre-normalized by the caller.
const (
	IdxStateOfCharge = iota
	IdxStateOfHealth
	IdxBatteryVoltage
	IdxBatteryCurrent
	IdxBatteryTemp
	IdxMotorTemp
	IdxMotorVibration
	IdxMotorRPM
	IdxBrakePadWear
	IdxPowerStress
	IdxUsageIntensity
	IdxHealthTrend
)

// FeatureNames holds the canonical display name for each feature index.
var FeatureNames = [FeatureCount]string{
	"State of Charge",
	"State of Health",
	"Battery Voltage",
	"Battery Current",
	"Battery Temperature",
	"Motor Temperature",
	"Motor Vibration",
	"Motor RPM",
	"Brake Pad Wear",
	"Power Stress",
	"Usage Intensity",
	"Health Trend",
}

// FeatureVector is a normalized telemetry snapshot of exactly FeatureCount values.
type FeatureVector []float64

// ValidationError reports a feature vector of the wrong length.
type ValidationError struct {
	Expected int
	Got      int
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("expected %d features, got %d", e.Expected, e.Got)
}

// Validate checks the vector length. All finite values are accepted.
func (f FeatureVector) Validate() error {
	if len(f) != FeatureCount {
		return &ValidationError{Expected: FeatureCount, Got: len(f)}
	}
	return nil
}

// RawSignals are the outputs of the failure and anomaly models for one snapshot.
type RawSignals struct {
	FailureProbability  float64
	RemainingUsefulLife float64
	AnomalyScore        float64
}
