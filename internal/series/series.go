// Package series loads and prepares univariate time series for
// forecasting: CSV ingestion, chronological splitting, standardization,
// and sliding-window example construction.
package series

import (
	"fmt"
	"time"
)

// Point is one timestamped observation.
type Point struct {
	Time  time.Time
	Value float64
}

// Series is an ordered run of observations. Timestamps are strictly
// increasing; constructors enforce it so downstream code can assume
// chronology.
type Series struct {
	points []Point
}

// New creates a Series from points, which must be in strictly
// increasing time order.
func New(points []Point) (*Series, error) {
	for i := 1; i < len(points); i++ {
		if !points[i].Time.After(points[i-1].Time) {
			return nil, fmt.Errorf("timestamps not strictly increasing at index %d: %s then %s",
				i, points[i-1].Time.Format(time.RFC3339), points[i].Time.Format(time.RFC3339))
		}
	}
	return &Series{points: points}, nil
}

// Len returns the number of observations.
func (s *Series) Len() int {
	return len(s.points)
}

// At returns the i-th observation.
func (s *Series) At(i int) Point {
	return s.points[i]
}

// Values returns the observation values in order.
func (s *Series) Values() []float64 {
	values := make([]float64, len(s.points))
	for i, p := range s.points {
		values[i] = p.Value
	}
	return values
}

// Times returns the observation timestamps in order.
func (s *Series) Times() []time.Time {
	times := make([]time.Time, len(s.points))
	for i, p := range s.points {
		times[i] = p.Time
	}
	return times
}

// Slice returns the sub-series [lo, hi).
func (s *Series) Slice(lo, hi int) *Series {
	return &Series{points: s.points[lo:hi]}
}

// Split holds out the final n observations as the test segment and
// returns (train, test). The split is chronological: the test segment
// is strictly later than every training observation.
func (s *Series) Split(n int) (*Series, *Series, error) {
	if n <= 0 {
		return nil, nil, fmt.Errorf("test size must be positive, got %d", n)
	}
	if n >= s.Len() {
		return nil, nil, fmt.Errorf("test size %d leaves no training data (series has %d observations)", n, s.Len())
	}
	cut := s.Len() - n
	return s.Slice(0, cut), s.Slice(cut, s.Len()), nil
}

// Extend returns timestamps for steps future observations, continuing
// the cadence of the final two points. Calendar-shaped cadences are
// recognized so monthly data lands on month boundaries instead of
// drifting with 28/31-day arithmetic.
func (s *Series) Extend(steps int) ([]time.Time, error) {
	if s.Len() < 2 {
		return nil, fmt.Errorf("need at least 2 observations to infer cadence, have %d", s.Len())
	}

	last := s.points[len(s.points)-1].Time
	delta := last.Sub(s.points[len(s.points)-2].Time)

	next := func(t time.Time) time.Time {
		days := delta.Hours() / 24
		switch {
		case days >= 28 && days <= 31:
			return t.AddDate(0, 1, 0)
		case days >= 365 && days <= 366:
			return t.AddDate(1, 0, 0)
		default:
			return t.Add(delta)
		}
	}

	times := make([]time.Time, 0, steps)
	t := last
	for i := 0; i < steps; i++ {
		t = next(t)
		times = append(times, t)
	}
	return times, nil
}
