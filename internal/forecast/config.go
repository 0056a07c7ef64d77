package forecast

import (
	"fmt"

	"github.com/augur-ml/augur/internal/series"
)

// Config holds everything that shapes a training run. It travels with
// the model: checkpoints embed it so a saved model can be evaluated
// and extended without re-specifying hyperparameters.
type Config struct {
	// WindowSize is the number of past observations each training
	// example sees.
	WindowSize int `json:"window_size"`

	// HiddenSize is the width of each recurrent layer.
	HiddenSize int `json:"hidden_size"`

	// NumLayers is the number of stacked recurrent layers.
	NumLayers int `json:"num_layers"`

	Epochs    int     `json:"epochs"`
	BatchSize int     `json:"batch_size"`
	LR        float64 `json:"learning_rate"`

	// Optimizer selects the update rule: "adam" or "sgd".
	Optimizer string `json:"optimizer"`

	// Momentum only applies to SGD.
	Momentum float64 `json:"momentum"`

	// TestSize is the number of trailing observations held out for
	// evaluation. The scaler never sees them.
	TestSize int `json:"test_size"`

	// Seed drives weight initialization and batch shuffling. Two runs
	// with the same seed and data produce the same model.
	Seed int64 `json:"seed"`

	// CSV column names for loading datasets.
	DateColumn  string `json:"date_column"`
	ValueColumn string `json:"value_column"`
}

// Defaults returns the configuration tuned for small monthly series
// like the car sales dataset: a 12-month window into 32 hidden units,
// trained with Adam.
func Defaults() Config {
	return Config{
		WindowSize:  12,
		HiddenSize:  32,
		NumLayers:   1,
		Epochs:      200,
		BatchSize:   16,
		LR:          0.01,
		Optimizer:   OptimizerAdam,
		Momentum:    0,
		TestSize:    12,
		Seed:        42,
		DateColumn:  series.DefaultDateColumn,
		ValueColumn: series.DefaultValueColumn,
	}
}

// Optimizer names accepted by Config.
const (
	OptimizerAdam = "adam"
	OptimizerSGD  = "sgd"
)

// Validate rejects configurations that cannot train.
func (c Config) Validate() error {
	if c.WindowSize <= 0 {
		return fmt.Errorf("window size must be positive, got %d", c.WindowSize)
	}
	if c.HiddenSize <= 0 {
		return fmt.Errorf("hidden size must be positive, got %d", c.HiddenSize)
	}
	if c.NumLayers <= 0 {
		return fmt.Errorf("num layers must be positive, got %d", c.NumLayers)
	}
	if c.Epochs <= 0 {
		return fmt.Errorf("epochs must be positive, got %d", c.Epochs)
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("batch size must be positive, got %d", c.BatchSize)
	}
	if c.LR <= 0 {
		return fmt.Errorf("learning rate must be positive, got %g", c.LR)
	}
	if c.Optimizer != OptimizerAdam && c.Optimizer != OptimizerSGD {
		return fmt.Errorf("unknown optimizer %q (want %q or %q)", c.Optimizer, OptimizerAdam, OptimizerSGD)
	}
	if c.Momentum < 0 || c.Momentum >= 1 {
		return fmt.Errorf("momentum must be in [0, 1), got %g", c.Momentum)
	}
	if c.TestSize <= 0 {
		return fmt.Errorf("test size must be positive, got %d", c.TestSize)
	}
	return nil
}
