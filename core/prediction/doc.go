// Package prediction turns telemetry feature vectors into health assessments.
// The failure and anomaly models are external collaborators behind the
// Predictor interface; inference failures degrade to fixed fallback signals
// so a valid input always yields an assessment.
package prediction
