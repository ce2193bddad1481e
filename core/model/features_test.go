package model

import "testing"

func TestFeatureVector_Validate(t *testing.T) {
	ok := make(FeatureVector, FeatureCount)
	if err := ok.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	short := FeatureVector{1, 2, 3}
	err := short.Validate()
	if err == nil {
		t.Fatalf("expected error for short vector")
	}
	verr, ok2 := err.(*ValidationError)
	if !ok2 {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if verr.Expected != FeatureCount || verr.Got != 3 {
		t.Fatalf("unexpected detail: %+v", verr)
	}
	if verr.Error() != "expected 12 features, got 3" {
		t.Fatalf("unexpected message: %s", verr.Error())
	}
}

func TestFeatureNames_Count(t *testing.T) {
	if len(FeatureNames) != FeatureCount {
		t.Fatalf("feature names out of sync with FeatureCount")
	}
	if FeatureNames[IdxStateOfCharge] != "State of Charge" || FeatureNames[IdxHealthTrend] != "Health Trend" {
		t.Fatalf("unexpected name mapping")
	}
}
