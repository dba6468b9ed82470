package model

import "fmt"

// Linear holds a multinomial linear classifier: one coefficient row and
// intercept per class. The predicted class has the highest score.
type Linear struct {
	Coefficients [][]float64 `yaml:"coefficients"`
	Intercepts   []float64   `yaml:"intercepts"`
}

type linear struct {
	features []string
	classes  []string
	weights  [][]float64
	bias     []float64
}

func newLinear(features, classes []string, l *Linear) (*linear, error) {
	if l == nil {
		return nil, fmt.Errorf("%w: linear parameters missing", ErrInvalidArtifact)
	}
	if len(l.Coefficients) != len(classes) {
		return nil, fmt.Errorf("%w: %d coefficient rows for %d classes", ErrInvalidArtifact, len(l.Coefficients), len(classes))
	}
	if len(l.Intercepts) != len(classes) {
		return nil, fmt.Errorf("%w: %d intercepts for %d classes", ErrInvalidArtifact, len(l.Intercepts), len(classes))
	}
	for i, row := range l.Coefficients {
		if len(row) != len(features) {
			return nil, fmt.Errorf("%w: class %s has %d coefficients, want %d", ErrInvalidArtifact, classes[i], len(row), len(features))
		}
	}

	return &linear{
		features: features,
		classes:  classes,
		weights:  l.Coefficients,
		bias:     l.Intercepts,
	}, nil
}

func (m *linear) Features() []string {
	return m.features
}

func (m *linear) Predict(frame Frame) ([]string, error) {
	if err := frame.check(m.features); err != nil {
		return nil, err
	}

	labels := make([]string, len(frame.Rows))
	for i, row := range frame.Rows {
		best := 0
		bestScore := m.score(0, row)
		for c := 1; c < len(m.classes); c++ {
			if s := m.score(c, row); s > bestScore {
				best, bestScore = c, s
			}
		}
		labels[i] = m.classes[best]
	}
	return labels, nil
}

func (m *linear) score(class int, row []float64) float64 {
	s := m.bias[class]
	for j, w := range m.weights[class] {
		s += w * row[j]
	}
	return s
}
