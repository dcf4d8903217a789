package mlmodel

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func writeArtifact(t *testing.T, name string, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatal(err)
	}

	return path
}

func TestLoadModelLinear(t *testing.T) {
	path := writeArtifact(t, "delay_model.json", `{
		"schema_version": "1",
		"model_version": "2026.03.01",
		"model_type": "linear",
		"feature_order": ["Distance_KM", "Is_Peak_Hour"],
		"coefficients": [0.5, 10],
		"intercept": 2,
		"training_median_delay": 8
	}`)

	model, err := LoadModel(path)
	if err != nil {
		t.Fatal(err)
	}

	if model.Version() != "2026.03.01" {
		t.Errorf("model version is %q", model.Version())
	}

	score, err := model.Predict([]float64{20, 1})
	if err != nil {
		t.Fatal(err)
	}

	// 0.5*20 + 10*1 + 2
	if math.Abs(score-22) > 1e-9 {
		t.Errorf("linear score is %f, expected 22", score)
	}
}

func TestLoadModelBoostedTrees(t *testing.T) {
	path := writeArtifact(t, "delay_model.json", `{
		"schema_version": "1",
		"model_version": "2026.03.01",
		"model_type": "boosted_trees",
		"feature_order": ["Distance_KM", "Is_Peak_Hour"],
		"base_score": 5,
		"trees": [
			{"nodes": [
				{"feature": 1, "threshold": 0.5, "left": 1, "right": 2},
				{"feature": 0, "threshold": 0, "left": -1, "right": -1, "leaf": 1},
				{"feature": 0, "threshold": 0, "left": -1, "right": -1, "leaf": 9}
			]}
		],
		"training_median_delay": 8
	}`)

	model, err := LoadModel(path)
	if err != nil {
		t.Fatal(err)
	}

	offPeak, _ := model.Predict([]float64{20, 0})
	peak, _ := model.Predict([]float64{20, 1})

	if offPeak != 6 {
		t.Errorf("off peak score is %f, expected 6", offPeak)
	}
	if peak != 14 {
		t.Errorf("peak score is %f, expected 14", peak)
	}
}

func TestLoadModelRejectsInvalidArtifacts(t *testing.T) {
	testCases := []struct {
		name     string
		contents string
	}{
		{"not json", `{{`},
		{"missing schema version", `{
			"model_type": "linear",
			"feature_order": ["Distance_KM"],
			"coefficients": [1]
		}`},
		{"unknown model type", `{
			"schema_version": "1",
			"model_type": "random_forest",
			"feature_order": ["Distance_KM"]
		}`},
		{"coefficient count mismatch", `{
			"schema_version": "1",
			"model_type": "linear",
			"feature_order": ["Distance_KM", "Is_Peak_Hour"],
			"coefficients": [1]
		}`},
		{"no trees", `{
			"schema_version": "1",
			"model_type": "boosted_trees",
			"feature_order": ["Distance_KM"]
		}`},
		{"tree child out of range", `{
			"schema_version": "1",
			"model_type": "boosted_trees",
			"feature_order": ["Distance_KM"],
			"trees": [{"nodes": [{"feature": 0, "threshold": 1, "left": 1, "right": 5}]}]
		}`},
		{"tree feature out of range", `{
			"schema_version": "1",
			"model_type": "boosted_trees",
			"feature_order": ["Distance_KM"],
			"trees": [{"nodes": [
				{"feature": 3, "threshold": 1, "left": 1, "right": 1},
				{"feature": 0, "threshold": 0, "left": -1, "right": -1, "leaf": 1}
			]}]
		}`},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			path := writeArtifact(t, "delay_model.json", testCase.contents)

			_, err := LoadModel(path)
			if !errors.Is(err, ErrArtifactInvalid) {
				t.Errorf("expected ErrArtifactInvalid, got %v", err)
			}
		})
	}
}

func TestLoadModelMissingFile(t *testing.T) {
	_, err := LoadModel(filepath.Join(t.TempDir(), "missing.json"))
	if err == nil {
		t.Error("expected an error for a missing artifact")
	}
}

func TestPredictVectorLengthCheck(t *testing.T) {
	path := writeArtifact(t, "delay_model.json", `{
		"schema_version": "1",
		"model_type": "linear",
		"feature_order": ["Distance_KM", "Is_Peak_Hour"],
		"coefficients": [0.5, 10],
		"training_median_delay": 8
	}`)

	model, err := LoadModel(path)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := model.Predict([]float64{1}); !errors.Is(err, ErrArtifactInvalid) {
		t.Errorf("expected ErrArtifactInvalid for short vector, got %v", err)
	}
}

func TestFeatureMedian(t *testing.T) {
	path := writeArtifact(t, "delay_model.json", `{
		"schema_version": "1",
		"model_type": "linear",
		"feature_order": ["Distance_KM"],
		"coefficients": [1],
		"feature_medians": {"Distance_KM": 12.5},
		"training_median_delay": 8
	}`)

	model, err := LoadModel(path)
	if err != nil {
		t.Fatal(err)
	}

	if median, present := model.FeatureMedian("Distance_KM"); !present || median != 12.5 {
		t.Errorf("Distance_KM median is %f (present %t)", median, present)
	}
	if _, present := model.FeatureMedian("Humidity_Pct"); present {
		t.Error("expected no median for an unknown feature")
	}
}
