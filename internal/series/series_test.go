package series_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/augur-ml/augur/internal/series"
)

func monthly(t *testing.T, start string, values ...float64) *series.Series {
	t.Helper()
	first, err := time.Parse("2006-01", start)
	require.NoError(t, err)

	points := make([]series.Point, len(values))
	for i, v := range values {
		points[i] = series.Point{Time: first.AddDate(0, i, 0), Value: v}
	}
	s, err := series.New(points)
	require.NoError(t, err)
	return s
}

func TestNew_RejectsUnorderedTimestamps(t *testing.T) {
	base := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

	_, err := series.New([]series.Point{
		{Time: base, Value: 1},
		{Time: base.AddDate(0, 0, -1), Value: 2},
	})
	assert.Error(t, err, "descending timestamps should be rejected")

	_, err = series.New([]series.Point{
		{Time: base, Value: 1},
		{Time: base, Value: 2},
	})
	assert.Error(t, err, "duplicate timestamps should be rejected")
}

func TestSeries_Accessors(t *testing.T) {
	s := monthly(t, "2023-01", 10, 20, 30)

	assert.Equal(t, 3, s.Len())
	assert.Equal(t, []float64{10, 20, 30}, s.Values())
	assert.Equal(t, 20.0, s.At(1).Value)

	times := s.Times()
	require.Len(t, times, 3)
	assert.Equal(t, time.Month(2), times[1].Month())

	sub := s.Slice(1, 3)
	assert.Equal(t, []float64{20, 30}, sub.Values())
}

func TestSplit_HoldsOutFinalObservations(t *testing.T) {
	s := monthly(t, "2023-01", 1, 2, 3, 4, 5)

	train, test, err := s.Split(2)
	require.NoError(t, err)

	assert.Equal(t, []float64{1, 2, 3}, train.Values())
	assert.Equal(t, []float64{4, 5}, test.Values())

	// The test segment starts strictly after the training segment ends.
	assert.True(t, test.At(0).Time.After(train.At(train.Len()-1).Time))
}

func TestSplit_Errors(t *testing.T) {
	s := monthly(t, "2023-01", 1, 2, 3)

	_, _, err := s.Split(0)
	assert.Error(t, err, "non-positive test size")

	_, _, err = s.Split(3)
	assert.Error(t, err, "test size equal to series length")

	_, _, err = s.Split(5)
	assert.Error(t, err, "test size beyond series length")
}

func TestExtend_MonthlyCadence(t *testing.T) {
	s := monthly(t, "2023-11", 1, 2, 3) // Nov, Dec, Jan

	future, err := s.Extend(3)
	require.NoError(t, err)
	require.Len(t, future, 3)

	assert.Equal(t, "2024-02", future[0].Format("2006-01"))
	assert.Equal(t, "2024-03", future[1].Format("2006-01"))
	assert.Equal(t, "2024-04", future[2].Format("2006-01"))
}

func TestExtend_DailyCadence(t *testing.T) {
	base := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	s, err := series.New([]series.Point{
		{Time: base, Value: 1},
		{Time: base.AddDate(0, 0, 1), Value: 2},
	})
	require.NoError(t, err)

	future, err := s.Extend(2)
	require.NoError(t, err)
	assert.Equal(t, base.AddDate(0, 0, 2), future[0])
	assert.Equal(t, base.AddDate(0, 0, 3), future[1])
}

func TestExtend_NeedsTwoObservations(t *testing.T) {
	s, err := series.New([]series.Point{
		{Time: time.Now(), Value: 1},
	})
	require.NoError(t, err)

	_, err = s.Extend(1)
	assert.Error(t, err)
}
