package forecast

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/augur-ml/augur/internal/series"
	"github.com/augur-ml/augur/internal/tensor"
)

// Metrics summarizes prediction error in original units.
type Metrics struct {
	RMSE float64 `json:"rmse"`
	MAE  float64 `json:"mae"`
	MAPE float64 `json:"mape"` // percent; observations with a zero actual are skipped
}

// Report is the outcome of evaluating a model against the naive
// persistence baseline on a held-out test segment.
type Report struct {
	Model Metrics `json:"model"`
	Naive Metrics `json:"naive"`

	// Skill is 1 - RMSE_model/RMSE_naive: positive exactly when the
	// model beats persistence.
	Skill float64 `json:"skill"`

	// Correlation is the Pearson correlation between predictions and
	// actuals.
	Correlation float64 `json:"correlation"`

	// Per-observation detail over the test segment, in original units,
	// for charting and inspection.
	Times       []time.Time `json:"-"`
	Actuals     []float64   `json:"-"`
	Predictions []float64   `json:"-"`
	Baseline    []float64   `json:"-"`
}

// Evaluate runs one-step-ahead predictions over the final testSize
// observations of history and scores them against the actuals and the
// persistence baseline (tomorrow = today).
//
// Every prediction's window is drawn from real history, never from
// earlier predictions, so each test point is an honest one-step
// forecast. The scaler must already be fitted on the training segment.
func Evaluate[B tensor.Backend](model *Model[B], scaler *series.Scaler, history *series.Series, testSize int) (*Report, error) {
	if testSize <= 0 {
		return nil, fmt.Errorf("test size must be positive, got %d", testSize)
	}
	n := history.Len()
	if testSize >= n {
		return nil, fmt.Errorf("test size %d leaves no history (series has %d observations)", testSize, n)
	}

	window := model.WindowSize()
	start := n - testSize
	if start < window {
		return nil, fmt.Errorf("series too short: first test point has %d prior observations, model window needs %d", start, window)
	}

	values := history.Values()
	scaled := scaler.Transform(values)
	times := history.Times()

	actuals := make([]float64, testSize)
	predictions := make([]float64, testSize)
	baseline := make([]float64, testSize)

	for i := 0; i < testSize; i++ {
		at := start + i
		predicted := predictNext(model, scaled[at-window:at])

		actuals[i] = values[at]
		predictions[i] = scaler.InverseValue(predicted)
		baseline[i] = values[at-1]
	}

	modelMetrics := computeMetrics(actuals, predictions)
	naiveMetrics := computeMetrics(actuals, baseline)

	skill := 0.0
	if naiveMetrics.RMSE > 0 {
		skill = 1 - modelMetrics.RMSE/naiveMetrics.RMSE
	}

	correlation := stat.Correlation(actuals, predictions, nil)
	if math.IsNaN(correlation) {
		correlation = 0
	}

	return &Report{
		Model:       modelMetrics,
		Naive:       naiveMetrics,
		Skill:       skill,
		Correlation: correlation,
		Times:       times[start:],
		Actuals:     actuals,
		Predictions: predictions,
		Baseline:    baseline,
	}, nil
}

// computeMetrics scores predictions against actuals. MAPE terms with a
// zero actual are skipped rather than dividing by zero.
func computeMetrics(actuals, predictions []float64) Metrics {
	var sumSq, sumAbs, sumPct float64
	pctTerms := 0

	for i := range actuals {
		diff := predictions[i] - actuals[i]
		sumSq += diff * diff
		sumAbs += math.Abs(diff)
		if actuals[i] != 0 {
			sumPct += math.Abs(diff / actuals[i])
			pctTerms++
		}
	}

	n := float64(len(actuals))
	m := Metrics{
		RMSE: math.Sqrt(sumSq / n),
		MAE:  sumAbs / n,
	}
	if pctTerms > 0 {
		m.MAPE = 100 * sumPct / float64(pctTerms)
	}
	return m
}
