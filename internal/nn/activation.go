package nn

import (
	"github.com/augur-ml/augur/internal/tensor"
)

// TanhBackend is satisfied by backends that implement the hyperbolic
// tangent. The autodiff decorator does; the bare CPU backend does not,
// which keeps activations flowing through the tape during training.
type TanhBackend interface {
	Tanh(*tensor.RawTensor) *tensor.RawTensor
}

// Tanh applies the element-wise hyperbolic tangent, squashing values
// into (-1, 1). It is the recurrence nonlinearity of the RNN layer and
// pairs naturally with standardized inputs.
type Tanh[B tensor.Backend] struct{}

// NewTanh creates a Tanh activation module.
func NewTanh[B tensor.Backend]() *Tanh[B] {
	return &Tanh[B]{}
}

// Forward applies tanh(x).
func (a *Tanh[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	backend := input.Backend()

	if tanhBackend, ok := any(backend).(TanhBackend); ok {
		return tensor.New[float32, B](tanhBackend.Tanh(input.Raw()), backend)
	}

	panic("Tanh: backend must implement Tanh (use autodiff.AutodiffBackend)")
}

// Parameters returns an empty slice, tanh has no trainable state.
func (a *Tanh[B]) Parameters() []*Parameter[B] {
	return nil
}

// ReLUBackend is satisfied by backends that implement the rectified
// linear unit.
type ReLUBackend interface {
	ReLU(*tensor.RawTensor) *tensor.RawTensor
}

// ReLU applies max(0, x) element-wise.
type ReLU[B tensor.Backend] struct{}

// NewReLU creates a ReLU activation module.
func NewReLU[B tensor.Backend]() *ReLU[B] {
	return &ReLU[B]{}
}

// Forward applies max(0, x).
func (a *ReLU[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	backend := input.Backend()

	if reluBackend, ok := any(backend).(ReLUBackend); ok {
		return tensor.New[float32, B](reluBackend.ReLU(input.Raw()), backend)
	}

	panic("ReLU: backend must implement ReLU (use autodiff.AutodiffBackend)")
}

// Parameters returns an empty slice, relu has no trainable state.
func (a *ReLU[B]) Parameters() []*Parameter[B] {
	return nil
}
