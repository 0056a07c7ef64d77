// Copyright 2025 Augur ML Toolkit. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package forecast

import (
	"github.com/augur-ml/augur/internal/autodiff"
	"github.com/augur-ml/augur/internal/forecast"
	"github.com/augur-ml/augur/internal/series"
	"github.com/augur-ml/augur/internal/tensor"
)

// Config holds the hyperparameters of a forecasting run.
type Config = forecast.Config

// Optimizer names accepted by Config.Optimizer.
const (
	OptimizerAdam = forecast.OptimizerAdam
	OptimizerSGD  = forecast.OptimizerSGD
)

// Defaults returns the configuration tuned for small monthly series:
// window 12, hidden 32, 1 layer, 200 epochs, batch 16, Adam with
// lr 0.01, test size 12, seed 42.
func Defaults() Config {
	return forecast.Defaults()
}

// Model is a recurrent forecasting network: an RNN stack with a Linear
// head applied to the last time step's top-layer output. It satisfies
// nn.Module.
type Model[B tensor.Backend] = forecast.Model[B]

// NewModel validates the config, seeds weight initialization, and
// builds the network.
//
// Example:
//
//	backend := autodiff.New(cpu.New())
//	model, err := forecast.NewModel(forecast.Defaults(), backend)
func NewModel[B tensor.Backend](cfg Config, backend B) (*Model[B], error) {
	return forecast.NewModel(cfg, backend)
}

// Logger is the structured logging surface the trainer needs. Satisfied
// by zap's SugaredLogger.
type Logger = forecast.Logger

// NewStdLogger returns a development-mode zap logger.
func NewStdLogger() (Logger, error) {
	return forecast.NewStdLogger()
}

// Trainer runs the training loop over windowed examples.
type Trainer[B tensor.Backend] = forecast.Trainer[B]

// NewTrainer wires a model to the optimizer named by the config. A nil
// logger disables logging.
//
// Example:
//
//	trainer, err := forecast.NewTrainer(model, cfg, backend, logger)
//	losses, err := trainer.Train(examples)
func NewTrainer[B tensor.Backend](model *Model[*autodiff.AutodiffBackend[B]], cfg Config, backend *autodiff.AutodiffBackend[B], logger Logger) (*Trainer[B], error) {
	return forecast.NewTrainer(model, cfg, backend, logger)
}

// Metrics holds the error statistics of a prediction series.
type Metrics = forecast.Metrics

// Report compares model predictions against the persistence baseline
// over the held-out test segment.
type Report = forecast.Report

// Evaluate runs one-step-ahead predictions over the final testSize
// observations, in original units, against the naive baseline.
//
// Example:
//
//	report, err := forecast.Evaluate(model, &scaler, s, 12)
func Evaluate[B tensor.Backend](model *Model[B], scaler *series.Scaler, history *series.Series, testSize int) (*Report, error) {
	return forecast.Evaluate(model, scaler, history, testSize)
}

// Forecast rolls the model forward steps predictions past the end of
// history, feeding each prediction back into the input window.
//
// Example:
//
//	future, err := forecast.Forecast(model, &scaler, s.Values(), 6)
func Forecast[B tensor.Backend](model *Model[B], scaler *series.Scaler, history []float64, steps int) ([]float64, error) {
	return forecast.Forecast(model, scaler, history, steps)
}
