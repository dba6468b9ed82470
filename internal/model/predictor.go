package model

import (
	"fmt"
	"slices"
)

// Predictor maps rows of numeric features to class labels.
// Implementations are immutable and safe for concurrent use.
type Predictor interface {
	// Features returns the ordered column names the predictor was trained on.
	Features() []string
	// Predict returns one label per row of frame.
	Predict(frame Frame) ([]string, error)
}

// Frame is a table of numeric rows with named columns.
type Frame struct {
	Columns []string
	Rows    [][]float64
}

// check verifies frame matches features exactly, in name and order.
func (f Frame) check(features []string) error {
	if !slices.Equal(f.Columns, features) {
		return fmt.Errorf("%w: got %v, want %v", ErrColumnMismatch, f.Columns, features)
	}
	for i, row := range f.Rows {
		if len(row) != len(features) {
			return fmt.Errorf("%w: row %d has %d values, want %d", ErrColumnMismatch, i, len(row), len(features))
		}
	}
	return nil
}
