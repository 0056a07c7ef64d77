package nn

import (
	"fmt"
	"math"

	"github.com/augur-ml/augur/internal/tensor"
)

// RNN implements a stack of Elman recurrent layers with tanh
// recurrence:
//
//	h_t = tanh(x_t @ W_ih.T + b_ih + h_{t-1} @ W_hh.T + b_hh)
//
// The layer consumes a whole window of time steps and returns the
// hidden state sequence of the final layer, so callers choose which
// steps to read. A forecasting head keeps only the last step; a
// sequence tagger would keep all of them.
//
//   - input:  [batch_size, steps, input_size]
//   - output: [batch_size, steps, hidden_size]
//
// Weights and biases are initialized from U(-k, k) with
// k = 1/sqrt(hidden_size). The initial hidden state is zero.
//
// Example:
//
//	rnn := nn.NewRNN(1, 32, 1, backend)
//	sequence := rnn.Forward(window) // [batch, steps, 32]
type RNN[B tensor.Backend] struct {
	inputSize  int
	hiddenSize int
	numLayers  int

	// One entry per layer. weightIH[0] is [hidden, input_size];
	// deeper layers consume the previous layer's hidden sequence, so
	// weightIH[l>0] is [hidden, hidden].
	weightIH []*Parameter[B]
	weightHH []*Parameter[B]
	biasIH   []*Parameter[B]
	biasHH   []*Parameter[B]

	tanh    *Tanh[B]
	backend B
}

// NewRNN creates a stacked Elman RNN.
func NewRNN[B tensor.Backend](inputSize, hiddenSize, numLayers int, backend B) *RNN[B] {
	if inputSize <= 0 || hiddenSize <= 0 {
		panic(fmt.Sprintf("NewRNN: sizes must be positive, got input=%d hidden=%d", inputSize, hiddenSize))
	}
	if numLayers <= 0 {
		panic(fmt.Sprintf("NewRNN: need at least one layer, got %d", numLayers))
	}

	bound := 1.0 / math.Sqrt(float64(hiddenSize))

	r := &RNN[B]{
		inputSize:  inputSize,
		hiddenSize: hiddenSize,
		numLayers:  numLayers,
		weightIH:   make([]*Parameter[B], numLayers),
		weightHH:   make([]*Parameter[B], numLayers),
		biasIH:     make([]*Parameter[B], numLayers),
		biasHH:     make([]*Parameter[B], numLayers),
		tanh:       NewTanh[B](),
		backend:    backend,
	}

	for l := 0; l < numLayers; l++ {
		inFeatures := inputSize
		if l > 0 {
			inFeatures = hiddenSize
		}

		r.weightIH[l] = NewParameter(fmt.Sprintf("weight_ih_l%d", l),
			Uniform(bound, tensor.Shape{hiddenSize, inFeatures}, backend))
		r.weightHH[l] = NewParameter(fmt.Sprintf("weight_hh_l%d", l),
			Uniform(bound, tensor.Shape{hiddenSize, hiddenSize}, backend))
		r.biasIH[l] = NewParameter(fmt.Sprintf("bias_ih_l%d", l),
			Uniform(bound, tensor.Shape{hiddenSize}, backend))
		r.biasHH[l] = NewParameter(fmt.Sprintf("bias_hh_l%d", l),
			Uniform(bound, tensor.Shape{hiddenSize}, backend))
	}

	return r
}

// Forward runs the recurrence over every step of the window.
//
// Input shape: [batch_size, steps, input_size].
// Output shape: [batch_size, steps, hidden_size].
func (r *RNN[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	shape := input.Shape()
	if len(shape) != 3 {
		panic(fmt.Sprintf("RNN.Forward: expected 3D input [batch, steps, features], got shape %v", shape))
	}
	if shape[2] != r.inputSize {
		panic(fmt.Sprintf("RNN.Forward: expected %d input features, got %d", r.inputSize, shape[2]))
	}

	batch, steps := shape[0], shape[1]
	sequence := input

	for l := 0; l < r.numLayers; l++ {
		features := sequence.Shape()[2]

		wIH := r.weightIH[l].Tensor().T() // [features, hidden]
		wHH := r.weightHH[l].Tensor().T() // [hidden, hidden]
		bIH := r.biasIH[l].Tensor().Reshape(1, r.hiddenSize)
		bHH := r.biasHH[l].Tensor().Reshape(1, r.hiddenSize)

		h := Zeros(tensor.Shape{batch, r.hiddenSize}, r.backend)

		xs := sequence.Chunk(steps, 1)
		hiddens := make([]*tensor.Tensor[float32, B], steps)
		for t := 0; t < steps; t++ {
			xt := xs[t].Reshape(batch, features)

			fromInput := xt.MatMul(wIH).Add(bIH)
			fromState := h.MatMul(wHH).Add(bHH)
			h = r.tanh.Forward(fromInput.Add(fromState))

			hiddens[t] = h.Reshape(batch, 1, r.hiddenSize)
		}

		sequence = tensor.Cat(hiddens, 1)
	}

	return sequence
}

// Parameters returns all weights and biases, layer by layer.
func (r *RNN[B]) Parameters() []*Parameter[B] {
	params := make([]*Parameter[B], 0, 4*r.numLayers)
	for l := 0; l < r.numLayers; l++ {
		params = append(params, r.weightIH[l], r.weightHH[l], r.biasIH[l], r.biasHH[l])
	}
	return params
}

// InputSize returns the number of features per time step.
func (r *RNN[B]) InputSize() int {
	return r.inputSize
}

// HiddenSize returns the width of the hidden state.
func (r *RNN[B]) HiddenSize() int {
	return r.hiddenSize
}

// NumLayers returns the number of stacked layers.
func (r *RNN[B]) NumLayers() int {
	return r.numLayers
}

// StateDict returns parameter names mapped to raw tensors, using the
// conventional weight_ih_l0 / weight_hh_l0 / bias_ih_l0 / bias_hh_l0
// key scheme.
func (r *RNN[B]) StateDict() map[string]*tensor.RawTensor {
	stateDict := make(map[string]*tensor.RawTensor, 4*r.numLayers)
	for l := 0; l < r.numLayers; l++ {
		stateDict[r.weightIH[l].Name()] = r.weightIH[l].Tensor().Raw()
		stateDict[r.weightHH[l].Name()] = r.weightHH[l].Tensor().Raw()
		stateDict[r.biasIH[l].Name()] = r.biasIH[l].Tensor().Raw()
		stateDict[r.biasHH[l].Name()] = r.biasHH[l].Tensor().Raw()
	}
	return stateDict
}

// LoadStateDict copies parameter values from a state dictionary,
// validating shapes and dtypes first.
func (r *RNN[B]) LoadStateDict(stateDict map[string]*tensor.RawTensor) error {
	for l := 0; l < r.numLayers; l++ {
		inFeatures := r.inputSize
		if l > 0 {
			inFeatures = r.hiddenSize
		}

		if err := loadParam(stateDict, r.weightIH[l].Name(), r.weightIH[l],
			tensor.Shape{r.hiddenSize, inFeatures}); err != nil {
			return err
		}
		if err := loadParam(stateDict, r.weightHH[l].Name(), r.weightHH[l],
			tensor.Shape{r.hiddenSize, r.hiddenSize}); err != nil {
			return err
		}
		if err := loadParam(stateDict, r.biasIH[l].Name(), r.biasIH[l],
			tensor.Shape{r.hiddenSize}); err != nil {
			return err
		}
		if err := loadParam(stateDict, r.biasHH[l].Name(), r.biasHH[l],
			tensor.Shape{r.hiddenSize}); err != nil {
			return err
		}
	}
	return nil
}
