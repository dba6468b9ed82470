package predictions_test

import (
	"errors"
	"testing"

	"github.com/JaimeStill/rookery/internal/model"
	"github.com/JaimeStill/rookery/internal/predictions"
)

var adelieRecord = predictions.FeatureRecord{
	CulmenLengthMM:  36.7,
	CulmenDepthMM:   19.3,
	FlipperLengthMM: 193.0,
	BodyMassG:       3450.0,
	Sex:             1,
	IslandTorgersen: 1,
}

func TestInfer(t *testing.T) {
	predictor := newStubPredictor("Adelie")

	result, err := predictions.Infer(predictor, adelieRecord)
	if err != nil {
		t.Fatalf("infer failed: %v", err)
	}
	if result.Species != "Adelie" {
		t.Errorf("species: got %s, want Adelie", result.Species)
	}

	frame := predictor.frame
	if len(frame.Rows) != 1 {
		t.Fatalf("rows: got %d, want 1", len(frame.Rows))
	}
	got := make(map[string]float64, len(frame.Columns))
	for i, col := range frame.Columns {
		got[col] = frame.Rows[0][i]
	}
	want := map[string]float64{
		"culmen_length_mm":  36.7,
		"culmen_depth_mm":   19.3,
		"flipper_length_mm": 193.0,
		"body_mass_g":       3450.0,
		"sex":               1,
		"island_Biscoe":     0,
		"island_Dream":      0,
		"island_Torgersen":  1,
	}
	if len(got) != len(want) {
		t.Fatalf("columns: got %v", frame.Columns)
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("%s: got %v, want %v", k, got[k], v)
		}
	}
}

func TestInferFailures(t *testing.T) {
	tests := []struct {
		name      string
		predictor *stubPredictor
	}{
		{"no labels", newStubPredictor()},
		{"predictor error", &stubPredictor{features: predictions.FeatureNames[:], err: model.ErrColumnMismatch}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := predictions.Infer(tt.predictor, adelieRecord)
			if !errors.Is(err, predictions.ErrInference) {
				t.Errorf("error: got %v, want ErrInference", err)
			}
		})
	}
}

func TestInferWithTreeArtifact(t *testing.T) {
	predictor, err := model.Load(t.Context(), "../model/testdata/penguins.yaml", nil)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	result, err := predictions.Infer(predictor, adelieRecord)
	if err != nil {
		t.Fatalf("infer failed: %v", err)
	}
	if result.Species != "Adelie" {
		t.Errorf("species: got %s, want Adelie", result.Species)
	}
}
