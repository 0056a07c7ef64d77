package series

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// Scaler standardizes values to zero mean and unit variance. It is
// fitted on the training segment only, so the test segment never leaks
// into the statistics, and its state serializes with a checkpoint so
// inference reverses the transform exactly.
type Scaler struct {
	Mean float64 `json:"mean"`
	Std  float64 `json:"std"`
}

// Fit computes mean and standard deviation over the given values.
// A constant segment has zero deviation; Fit substitutes 1 so
// Transform stays defined (the values all map to 0).
func (s *Scaler) Fit(values []float64) error {
	if len(values) == 0 {
		return fmt.Errorf("cannot fit scaler on an empty segment")
	}

	mean, std := stat.MeanStdDev(values, nil)
	if !(std > 0) {
		std = 1
	}
	s.Mean, s.Std = mean, std
	return nil
}

// Transform maps values into standardized units.
func (s *Scaler) Transform(values []float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = s.TransformValue(v)
	}
	return out
}

// Inverse maps standardized values back to original units.
func (s *Scaler) Inverse(values []float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = s.InverseValue(v)
	}
	return out
}

// TransformValue standardizes a single value.
func (s *Scaler) TransformValue(v float64) float64 {
	s.mustBeFitted()
	return (v - s.Mean) / s.Std
}

// InverseValue restores a single value to original units.
func (s *Scaler) InverseValue(v float64) float64 {
	s.mustBeFitted()
	return v*s.Std + s.Mean
}

func (s *Scaler) mustBeFitted() {
	if s.Std == 0 {
		panic("scaler used before Fit")
	}
}
