// Copyright 2025 Augur ML Toolkit. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package series loads and prepares univariate time series for forecasting.
//
// # Overview
//
// This package covers the data side of a forecasting run:
//   - LoadCSV: CSV ingestion with configurable date/value columns
//   - Series: ordered (time, value) observations with chronological Split
//   - Scaler: z-score standardization fitted on the training segment only
//   - Window: sliding supervised examples (window of values -> next value)
//   - Batches: mini-batch tensors with seeded shuffling
//
// # Basic Usage
//
//	import (
//	    "github.com/augur-ml/augur/backend/cpu"
//	    "github.com/augur-ml/augur/series"
//	)
//
//	func main() {
//	    s, err := series.LoadCSV("sales.csv", series.LoadOptions{})
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    // Hold out the final 12 observations for testing
//	    train, test, err := s.Split(12)
//
//	    // Fit the scaler on the training segment only
//	    var scaler series.Scaler
//	    if err := scaler.Fit(train.Values()); err != nil {
//	        log.Fatal(err)
//	    }
//	    scaled := scaler.Transform(train.Values())
//
//	    // Sliding windows of 12 values, each paired with its successor
//	    examples, err := series.Window(scaled, 12)
//
//	    // Mini-batches as tensors
//	    batches, err := series.Batches(examples, 16, nil, cpu.New())
//	    _, _, _ = test, scaled, batches
//	}
//
// # Leakage
//
// The split is strictly chronological and the scaler is fitted on the
// training segment alone. Test observations never influence the
// statistics the model trains against.
package series
