// Copyright 2025 Augur ML Toolkit. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package series

import (
	"math/rand"

	"github.com/augur-ml/augur/internal/series"
	"github.com/augur-ml/augur/internal/tensor"
)

// Point is one observation: a timestamp and its value.
type Point = series.Point

// Series is an ordered sequence of observations. Construction rejects
// out-of-order timestamps; forecasting assumes chronology.
type Series = series.Series

// New creates a Series from points, validating chronological order.
func New(points []Point) (*Series, error) {
	return series.New(points)
}

// LoadOptions configures CSV ingestion. Zero values fall back to the
// defaults: columns "Month"/"Sales", date layouts "2006-01",
// "2006-01-02", "2006" tried in order.
type LoadOptions = series.LoadOptions

// LoadCSV reads a series from a CSV file with a header row.
//
// Example:
//
//	s, err := series.LoadCSV("sales.csv", series.LoadOptions{
//	    DateColumn:  "Month",
//	    ValueColumn: "Sales",
//	})
func LoadCSV(path string, opts LoadOptions) (*Series, error) {
	return series.LoadCSV(path, opts)
}

// Scaler standardizes values to zero mean and unit variance. Fit it on
// the training segment only; its state serializes with a checkpoint so
// inference reverses the transform exactly.
type Scaler = series.Scaler

// Example is one supervised training example: a window of consecutive
// values and the value that follows it.
type Example = series.Example

// Window builds sliding supervised examples: each run of size
// consecutive values is paired with the next value as target.
//
// Example:
//
//	examples, err := series.Window(scaled, 12)
func Window(values []float64, size int) ([]Example, error) {
	return series.Window(values, size)
}

// Batch is one mini-batch of training examples as tensors: windows
// shaped [batch, size, 1] with targets [batch, 1].
type Batch[B tensor.Backend] = series.Batch[B]

// Batches splits examples into mini-batches. A non-nil rng shuffles
// the examples first; the final batch may be short.
//
// Example:
//
//	rng := rand.New(rand.NewSource(42))
//	batches, err := series.Batches(examples, 16, rng, backend)
func Batches[B tensor.Backend](examples []Example, batchSize int, rng *rand.Rand, backend B) ([]*Batch[B], error) {
	return series.Batches(examples, batchSize, rng, backend)
}
