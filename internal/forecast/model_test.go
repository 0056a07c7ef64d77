package forecast_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/augur-ml/augur/internal/autodiff"
	"github.com/augur-ml/augur/internal/backend/cpu"
	"github.com/augur-ml/augur/internal/forecast"
	"github.com/augur-ml/augur/internal/series"
	"github.com/augur-ml/augur/internal/tensor"
)

type adBackend = *autodiff.AutodiffBackend[*cpu.CPUBackend]

func newBackend() adBackend {
	return autodiff.New(cpu.New())
}

// testConfig keeps training in tests fast: a small window into a small
// hidden layer, few epochs.
func testConfig() forecast.Config {
	cfg := forecast.Defaults()
	cfg.WindowSize = 4
	cfg.HiddenSize = 8
	cfg.Epochs = 30
	cfg.BatchSize = 8
	cfg.TestSize = 4
	return cfg
}

// sineValues generates a smooth periodic series, the easiest pattern a
// recurrent model can pick up.
func sineValues(n int) []float64 {
	values := make([]float64, n)
	for i := range values {
		values[i] = 100 + 20*math.Sin(2*math.Pi*float64(i)/12)
	}
	return values
}

func TestNewModel_RejectsInvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.HiddenSize = 0

	_, err := forecast.NewModel(cfg, newBackend())
	assert.Error(t, err)
}

func TestModel_ForwardShape(t *testing.T) {
	backend := newBackend()
	model, err := forecast.NewModel(testConfig(), backend)
	require.NoError(t, err)

	input := tensor.Zeros[float32](tensor.Shape{3, 4, 1}, backend)
	output := model.Forward(input)

	assert.Equal(t, tensor.Shape{3, 1}, output.Shape(), "one prediction per batch row")
}

func TestModel_ParameterCount(t *testing.T) {
	cfg := testConfig()
	cfg.NumLayers = 2

	model, err := forecast.NewModel(cfg, newBackend())
	require.NoError(t, err)

	// 4 tensors per recurrent layer plus the head's weight and bias.
	assert.Len(t, model.Parameters(), 4*2+2)
}

func TestModel_StateDictKeys(t *testing.T) {
	model, err := forecast.NewModel(testConfig(), newBackend())
	require.NoError(t, err)

	stateDict := model.StateDict()
	assert.Len(t, stateDict, 6)
	assert.Contains(t, stateDict, "rnn.weight_ih_l0")
	assert.Contains(t, stateDict, "rnn.weight_hh_l0")
	assert.Contains(t, stateDict, "rnn.bias_ih_l0")
	assert.Contains(t, stateDict, "rnn.bias_hh_l0")
	assert.Contains(t, stateDict, "head.weight")
	assert.Contains(t, stateDict, "head.bias")
}

func TestModel_StateDictRoundTrip(t *testing.T) {
	backend := newBackend()

	cfg := testConfig()
	source, err := forecast.NewModel(cfg, backend)
	require.NoError(t, err)

	cfg2 := cfg
	cfg2.Seed = 99 // different init, same architecture
	target, err := forecast.NewModel(cfg2, backend)
	require.NoError(t, err)

	require.NoError(t, target.LoadStateDict(source.StateDict()))

	input := tensor.Ones[float32](tensor.Shape{2, 4, 1}, backend)
	want := source.Forward(input).Data()
	got := target.Forward(input).Data()
	assert.Equal(t, want, got, "loaded model should predict identically")
}

func TestModel_LoadStateDictRejectsMissingKey(t *testing.T) {
	model, err := forecast.NewModel(testConfig(), newBackend())
	require.NoError(t, err)

	stateDict := model.StateDict()
	delete(stateDict, "head.weight")

	err = model.LoadStateDict(stateDict)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "head")
}

func TestModel_SameSeedSameInit(t *testing.T) {
	backend := newBackend()
	cfg := testConfig()

	a, err := forecast.NewModel(cfg, backend)
	require.NoError(t, err)
	b, err := forecast.NewModel(cfg, backend)
	require.NoError(t, err)

	dictA, dictB := a.StateDict(), b.StateDict()
	for name, raw := range dictA {
		assert.Equal(t, raw.AsFloat32(), dictB[name].AsFloat32(), "parameter %s differs between same-seed models", name)
	}
}

func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, forecast.Defaults().Validate())

	tests := map[string]func(*forecast.Config){
		"zero window":       func(c *forecast.Config) { c.WindowSize = 0 },
		"negative hidden":   func(c *forecast.Config) { c.HiddenSize = -1 },
		"zero layers":       func(c *forecast.Config) { c.NumLayers = 0 },
		"zero epochs":       func(c *forecast.Config) { c.Epochs = 0 },
		"zero batch":        func(c *forecast.Config) { c.BatchSize = 0 },
		"zero lr":           func(c *forecast.Config) { c.LR = 0 },
		"bad optimizer":     func(c *forecast.Config) { c.Optimizer = "rmsprop" },
		"momentum over one": func(c *forecast.Config) { c.Momentum = 1.5 },
		"zero test size":    func(c *forecast.Config) { c.TestSize = 0 },
	}

	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := forecast.Defaults()
			mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestDefaults(t *testing.T) {
	cfg := forecast.Defaults()

	assert.Equal(t, 12, cfg.WindowSize)
	assert.Equal(t, 32, cfg.HiddenSize)
	assert.Equal(t, 1, cfg.NumLayers)
	assert.Equal(t, 200, cfg.Epochs)
	assert.Equal(t, 16, cfg.BatchSize)
	assert.Equal(t, 0.01, cfg.LR)
	assert.Equal(t, forecast.OptimizerAdam, cfg.Optimizer)
	assert.Equal(t, 12, cfg.TestSize)
	assert.Equal(t, "Month", cfg.DateColumn)
	assert.Equal(t, "Sales", cfg.ValueColumn)
}

// windowedExamples standardizes values and windows them the way the
// training pipeline does.
func windowedExamples(t *testing.T, values []float64, windowSize int) ([]series.Example, *series.Scaler) {
	t.Helper()

	var scaler series.Scaler
	require.NoError(t, scaler.Fit(values))

	examples, err := series.Window(scaler.Transform(values), windowSize)
	require.NoError(t, err)
	return examples, &scaler
}
