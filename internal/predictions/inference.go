package predictions

import (
	"fmt"

	"github.com/JaimeStill/rookery/internal/model"
)

// Result is the prediction response body.
type Result struct {
	Species string `json:"species"`
}

// Infer runs predictor on a single record and wraps the first label.
func Infer(predictor model.Predictor, record FeatureRecord) (*Result, error) {
	labels, err := predictor.Predict(record.Frame())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInference, err)
	}
	if len(labels) == 0 {
		return nil, fmt.Errorf("%w: predictor returned no labels", ErrInference)
	}
	return &Result{Species: labels[0]}, nil
}
