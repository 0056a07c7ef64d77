// Package nn implements the neural network layers of Augur.
//
// The building blocks:
//   - Module interface: base contract for all layers
//   - Parameter: trainable tensor with its gradient
//   - Linear: fully connected layer
//   - RNN: stacked Elman recurrence over a window of time steps
//   - Tanh, ReLU: activations
//   - MSELoss: mean squared error criterion
//
// Design follows PyTorch's nn.Module, adapted for Go generics.
package nn

import (
	"github.com/augur-ml/augur/internal/tensor"
)

// Module is the base interface for all neural network components.
//
// Modules compose: a forecasting model holds an RNN and a Linear head
// and is itself a Module.
//
// Type parameter B must satisfy the tensor.Backend interface.
type Module[B tensor.Backend] interface {
	// Forward computes the output of the module for an input tensor.
	// Each module documents the input shape it expects.
	Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B]

	// Parameters returns all trainable parameters of this module,
	// including those of nested modules. Modules without parameters
	// return an empty slice.
	Parameters() []*Parameter[B]
}
