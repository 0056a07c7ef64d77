package series_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/augur-ml/augur/internal/series"
)

func TestScaler_RoundTrip(t *testing.T) {
	values := []float64{6550, 7237, 8514, 7986, 7105, 6873}

	var s series.Scaler
	require.NoError(t, s.Fit(values))

	scaled := s.Transform(values)
	restored := s.Inverse(scaled)

	for i := range values {
		assert.InDelta(t, values[i], restored[i], 1e-9, "round trip should recover the original value")
	}
}

func TestScaler_StandardizesToZeroMeanUnitStd(t *testing.T) {
	values := []float64{2, 4, 6, 8}

	var s series.Scaler
	require.NoError(t, s.Fit(values))
	assert.Equal(t, 5.0, s.Mean)

	scaled := s.Transform(values)

	var sum float64
	for _, v := range scaled {
		sum += v
	}
	assert.InDelta(t, 0.0, sum/float64(len(scaled)), 1e-12, "scaled mean")

	var ss float64
	for _, v := range scaled {
		ss += v * v
	}
	std := math.Sqrt(ss / float64(len(scaled)-1))
	assert.InDelta(t, 1.0, std, 1e-12, "scaled sample std")
}

func TestScaler_ConstantSeries(t *testing.T) {
	values := []float64{5, 5, 5, 5}

	var s series.Scaler
	require.NoError(t, s.Fit(values))

	assert.Equal(t, 1.0, s.Std, "degenerate std falls back to 1")
	assert.Equal(t, []float64{0, 0, 0, 0}, s.Transform(values))
	assert.Equal(t, values, s.Inverse([]float64{0, 0, 0, 0}))
}

func TestScaler_SingleValue(t *testing.T) {
	var s series.Scaler
	require.NoError(t, s.Fit([]float64{42}))

	assert.Equal(t, 1.0, s.Std, "sample std of one value is undefined, falls back to 1")
	assert.Equal(t, 0.0, s.TransformValue(42))
}

func TestScaler_EmptyFit(t *testing.T) {
	var s series.Scaler
	assert.Error(t, s.Fit(nil))
}

func TestScaler_PanicsBeforeFit(t *testing.T) {
	var s series.Scaler
	assert.Panics(t, func() { s.Transform([]float64{1}) })
	assert.Panics(t, func() { s.InverseValue(1) })
}
