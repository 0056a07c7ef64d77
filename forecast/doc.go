// Copyright 2025 Augur ML Toolkit. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package forecast trains and applies recurrent forecasting models.
//
// # Overview
//
// This package ties the framework core to time series work:
//   - Model: an RNN stack plus a Linear head reading the last time step
//   - Config: hyperparameters with small-series defaults
//   - Trainer: the seeded training loop with structured logging
//   - Evaluate: one-step-ahead test metrics against a naive baseline
//   - Forecast: rolling multi-step prediction beyond the series
//
// # Basic Usage
//
//	import (
//	    "github.com/augur-ml/augur/autodiff"
//	    "github.com/augur-ml/augur/backend/cpu"
//	    "github.com/augur-ml/augur/forecast"
//	    "github.com/augur-ml/augur/series"
//	)
//
//	func main() {
//	    backend := autodiff.New(cpu.New())
//	    cfg := forecast.Defaults()
//
//	    model, err := forecast.NewModel(cfg, backend)
//	    trainer, err := forecast.NewTrainer(model, cfg, backend, nil)
//
//	    losses, err := trainer.Train(examples)
//
//	    report, err := forecast.Evaluate(model, &scaler, s, cfg.TestSize)
//	    fmt.Printf("RMSE %.2f vs naive %.2f (skill %.2f)\n",
//	        report.Model.RMSE, report.Naive.RMSE, report.Skill)
//
//	    future, err := forecast.Forecast(model, &scaler, s.Values(), 6)
//	    _ = future
//	}
//
// # Evaluation
//
// Evaluate predicts each held-out observation from the real history
// preceding it, inverse-transforms to original units, and compares the
// model against the persistence baseline (tomorrow equals today) with
// RMSE, MAE, MAPE, Pearson correlation, and a skill score
// 1 - RMSE/RMSEnaive. A model only has skill when it beats persistence.
//
// # Determinism
//
// Config.Seed seeds both weight initialization and batch shuffling.
// Two runs with the same seed over the same data produce identical
// parameter trajectories.
package forecast
