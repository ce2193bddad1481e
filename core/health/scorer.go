// Package health derives component health scores and degradation rankings
// from a normalized telemetry feature vector. All functions are pure.
package health

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/vigilstack/vigil/core/model"
)

// Status thresholds for component scores.
const (
	healthyThreshold   = 80
	degradingThreshold = 50
)

// OverallHealth computes the weighted vehicle health score on a 0-100 scale.
// The result is intentionally not clamped: out-of-range inputs produce
// out-of-range scores rather than being masked.
func OverallHealth(f model.FeatureVector) float64 {
	soc := f[model.IdxStateOfCharge]
	soh := f[model.IdxStateOfHealth]
	trend := f[model.IdxHealthTrend]
	return (soc*0.25 + soh*0.35 + trend*0.40) * 100
}

// ComponentScores computes the health of each monitored subsystem. Entries
// are returned in a fixed order so responses are deterministic.
func ComponentScores(f model.FeatureVector) []model.ComponentHealth {
	battery := stat.Mean([]float64{f[model.IdxStateOfCharge], f[model.IdxStateOfHealth]}, nil) * 100
	thermal := stat.Mean([]float64{
		1 - f[model.IdxBatteryTemp]/70,
		1 - f[model.IdxMotorTemp]/110,
	}, nil) * 100
	motor := stat.Mean([]float64{
		1 - f[model.IdxMotorVibration]/3,
		f[model.IdxMotorRPM] / 6000,
	}, nil) * 100
	braking := (1 - f[model.IdxBrakePadWear]) * 100
	usage := (1 - f[model.IdxUsageIntensity]/100) * 100

	components := []model.ComponentHealth{
		{Name: "Battery System", Score: round1(battery)},
		{Name: "Thermal System", Score: round1(thermal)},
		{Name: "Motor System", Score: round1(motor)},
		{Name: "Braking System", Score: round1(braking)},
		{Name: "Usage Stress", Score: round1(usage)},
	}
	for i := range components {
		components[i].Status = statusFor(components[i].Score)
	}
	return components
}

func statusFor(score float64) model.ComponentStatus {
	switch {
	case score >= healthyThreshold:
		return model.StatusHealthy
	case score >= degradingThreshold:
		return model.StatusDegrading
	default:
		return model.StatusCritical
	}
}

// TopContributors ranks all features by absolute magnitude and returns the
// top n. Ties keep the original index order, so the ranking is deterministic.
func TopContributors(f model.FeatureVector, n int) []model.DegradationContributor {
	idx := make([]int, len(f))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return math.Abs(f[idx[a]]) > math.Abs(f[idx[b]])
	})
	if n > len(idx) {
		n = len(idx)
	}
	contributors := make([]model.DegradationContributor, 0, n)
	for _, i := range idx[:n] {
		contributors = append(contributors, model.DegradationContributor{
			Feature:    model.FeatureNames[i],
			Value:      round3(f[i]),
			Importance: round3(math.Abs(f[i])),
		})
	}
	return contributors
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
