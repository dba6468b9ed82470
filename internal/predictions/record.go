package predictions

import (
	"encoding/json"
	"math"

	"github.com/JaimeStill/rookery/internal/model"
)

// FeatureNames is the ordered column schema the classifier is trained on.
var FeatureNames = [...]string{
	"culmen_length_mm",
	"culmen_depth_mm",
	"flipper_length_mm",
	"body_mass_g",
	"sex",
	"island_Biscoe",
	"island_Dream",
	"island_Torgersen",
}

const featureCount = len(FeatureNames)

// FeatureRecord holds one penguin's measurements and indicator flags.
type FeatureRecord struct {
	CulmenLengthMM  float64 `json:"culmen_length_mm"`
	CulmenDepthMM   float64 `json:"culmen_depth_mm"`
	FlipperLengthMM float64 `json:"flipper_length_mm"`
	BodyMassG       float64 `json:"body_mass_g"`
	Sex             int     `json:"sex"`
	IslandBiscoe    int     `json:"island_Biscoe"`
	IslandDream     int     `json:"island_Dream"`
	IslandTorgersen int     `json:"island_Torgersen"`
}

// fields returns pointers to the record's fields in FeatureNames order.
// The array length ties the two lists together at compile time.
func (r *FeatureRecord) fields() [featureCount]any {
	return [...]any{
		&r.CulmenLengthMM,
		&r.CulmenDepthMM,
		&r.FlipperLengthMM,
		&r.BodyMassG,
		&r.Sex,
		&r.IslandBiscoe,
		&r.IslandDream,
		&r.IslandTorgersen,
	}
}

// Values returns the record as an ordered numeric vector.
func (r FeatureRecord) Values() [featureCount]float64 {
	var out [featureCount]float64
	for i, f := range r.fields() {
		switch v := f.(type) {
		case *float64:
			out[i] = *v
		case *int:
			out[i] = float64(*v)
		}
	}
	return out
}

// Frame returns the record as a single-row model frame.
func (r FeatureRecord) Frame() model.Frame {
	values := r.Values()
	return model.Frame{
		Columns: FeatureNames[:],
		Rows:    [][]float64{values[:]},
	}
}

func parseFeatures(raw map[string]json.RawMessage) (FeatureRecord, error) {
	var record FeatureRecord
	var problems []FieldProblem

	for i, f := range record.fields() {
		name := FeatureNames[i]

		value, ok := raw[name]
		if !ok || isNull(value) {
			problems = append(problems, FieldProblem{Field: name, Reason: "field required"})
			continue
		}

		var number float64
		if err := json.Unmarshal(value, &number); err != nil {
			problems = append(problems, FieldProblem{Field: name, Reason: "must be a number"})
			continue
		}

		switch dst := f.(type) {
		case *float64:
			*dst = number
		case *int:
			if number != math.Trunc(number) || math.Abs(number) > math.MaxInt32 {
				problems = append(problems, FieldProblem{Field: name, Reason: "must be an integer"})
				continue
			}
			*dst = int(number)
		}
	}

	if len(problems) > 0 {
		return FeatureRecord{}, &ValidationError{Problems: problems}
	}
	return record, nil
}

func isNull(value json.RawMessage) bool {
	return string(value) == "null"
}
