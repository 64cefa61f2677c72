package recommend

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadCalibrationEmptyPath(t *testing.T) {
	weights, tuning, err := LoadCalibration("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if weights != DefaultWeights() {
		t.Errorf("expected default weights, got %+v", weights)
	}
	if tuning != DefaultTuning() {
		t.Errorf("expected default tuning, got %+v", tuning)
	}
}

func TestLoadCalibrationMissingFile(t *testing.T) {
	weights, tuning, err := LoadCalibration(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	// Defaults still come back so the caller can degrade gracefully.
	if weights != DefaultWeights() || tuning != DefaultTuning() {
		t.Error("expected defaults alongside the error")
	}
}

func TestLoadCalibrationMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calibration.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	weights, tuning, err := LoadCalibration(path)
	if err == nil {
		t.Fatal("expected error for malformed file")
	}
	if weights != DefaultWeights() || tuning != DefaultTuning() {
		t.Error("expected defaults alongside the error")
	}
}

// TestLoadCalibrationPartialOverride verifies a partial file overrides only
// the values it names.
func TestLoadCalibrationPartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calibration.json")
	content := `{
		"version": "2026-02",
		"weights": {"price": 0.30, "location": 0.10},
		"tuning": {"perturbation": 0.01, "result_size": 10}
	}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	weights, tuning, err := LoadCalibration(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if math.Abs(weights.Price-0.30) > epsilon {
		t.Errorf("expected price weight 0.30, got %f", weights.Price)
	}
	if math.Abs(weights.Location-0.10) > epsilon {
		t.Errorf("expected location weight 0.10, got %f", weights.Location)
	}
	if math.Abs(weights.PropertyType-0.25) > epsilon {
		t.Errorf("expected property type weight untouched, got %f", weights.PropertyType)
	}

	if math.Abs(tuning.Perturbation-0.01) > epsilon {
		t.Errorf("expected perturbation 0.01, got %f", tuning.Perturbation)
	}
	if tuning.ResultSize != 10 {
		t.Errorf("expected result size 10, got %d", tuning.ResultSize)
	}
	if math.Abs(tuning.LocationNoPreference-0.7) > epsilon {
		t.Errorf("expected location no-preference untouched, got %f", tuning.LocationNoPreference)
	}
}

func TestMergeWeightsIgnoresZeroes(t *testing.T) {
	base := DefaultWeights()
	merged := mergeWeights(base, Weights{Gender: 0.2})
	if math.Abs(merged.Gender-0.2) > epsilon {
		t.Errorf("expected gender weight 0.2, got %f", merged.Gender)
	}
	merged.Gender = base.Gender
	if merged != base {
		t.Errorf("zero overrides changed other weights: %+v", merged)
	}
}
