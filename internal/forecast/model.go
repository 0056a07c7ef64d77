package forecast

import (
	"fmt"
	"strings"

	"github.com/augur-ml/augur/internal/nn"
	"github.com/augur-ml/augur/internal/tensor"
)

// Model is the forecasting network: a stacked Elman RNN over the input
// window followed by a Linear head that reads only the final time
// step's hidden state.
//
//	window [batch, steps, 1] -> RNN -> [batch, steps, hidden]
//	                         -> last step [batch, hidden]
//	                         -> Linear -> [batch, 1]
//
// The RNN emits every step's hidden state; forecasting one value ahead
// only needs the last, so the head discards the rest. Gradients flow
// through the kept step and back through the whole recurrence.
type Model[B tensor.Backend] struct {
	rnn     *nn.RNN[B]
	head    *nn.Linear[B]
	config  Config
	backend B
}

// NewModel builds a model for the given configuration. The config's
// seed is applied to the shared generator first, so identical configs
// produce identical initial weights.
func NewModel[B tensor.Backend](cfg Config, backend B) (*Model[B], error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	tensor.Seed(cfg.Seed)

	return &Model[B]{
		rnn:     nn.NewRNN(1, cfg.HiddenSize, cfg.NumLayers, backend),
		head:    nn.NewLinear(cfg.HiddenSize, 1, backend),
		config:  cfg,
		backend: backend,
	}, nil
}

// Forward maps a batch of windows to one prediction each.
//
// Input shape: [batch_size, steps, 1].
// Output shape: [batch_size, 1].
func (m *Model[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	shape := input.Shape()
	if len(shape) != 3 {
		panic(fmt.Sprintf("Model.Forward: expected 3D input [batch, steps, 1], got shape %v", shape))
	}

	batch, steps := shape[0], shape[1]

	sequence := m.rnn.Forward(input) // [batch, steps, hidden]

	stepOutputs := sequence.Chunk(steps, 1)
	last := stepOutputs[steps-1].Reshape(batch, m.config.HiddenSize)

	return m.head.Forward(last) // [batch, 1]
}

// Parameters returns the RNN's parameters followed by the head's.
func (m *Model[B]) Parameters() []*nn.Parameter[B] {
	return append(m.rnn.Parameters(), m.head.Parameters()...)
}

// Config returns the configuration the model was built with.
func (m *Model[B]) Config() Config {
	return m.config
}

// WindowSize returns the number of observations the model expects per
// window.
func (m *Model[B]) WindowSize() int {
	return m.config.WindowSize
}

// StateDict returns all parameters keyed by submodule prefix, e.g.
// "rnn.weight_ih_l0" and "head.weight".
func (m *Model[B]) StateDict() map[string]*tensor.RawTensor {
	stateDict := make(map[string]*tensor.RawTensor)
	for name, raw := range m.rnn.StateDict() {
		stateDict["rnn."+name] = raw
	}
	for name, raw := range m.head.StateDict() {
		stateDict["head."+name] = raw
	}
	return stateDict
}

// LoadStateDict copies parameter values from a state dictionary using
// the same prefix scheme as StateDict.
func (m *Model[B]) LoadStateDict(stateDict map[string]*tensor.RawTensor) error {
	if err := m.rnn.LoadStateDict(subDict(stateDict, "rnn.")); err != nil {
		return fmt.Errorf("rnn: %w", err)
	}
	if err := m.head.LoadStateDict(subDict(stateDict, "head.")); err != nil {
		return fmt.Errorf("head: %w", err)
	}
	return nil
}

// subDict strips a prefix, keeping only the entries that carry it.
func subDict(stateDict map[string]*tensor.RawTensor, prefix string) map[string]*tensor.RawTensor {
	sub := make(map[string]*tensor.RawTensor)
	for name, raw := range stateDict {
		if strings.HasPrefix(name, prefix) {
			sub[strings.TrimPrefix(name, prefix)] = raw
		}
	}
	return sub
}
