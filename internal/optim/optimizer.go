// Package optim implements the optimizers used to train Augur models.
//
// Two algorithms are provided:
//   - SGD: stochastic gradient descent with optional momentum
//   - Adam: adaptive moment estimation, the default for forecasting
//
// Design follows PyTorch's torch.optim, adapted for Go generics.
//
// Example:
//
//	optimizer := optim.NewAdam(model.Parameters(), optim.AdamConfig{LR: 0.01}, backend)
//
//	for epoch := 0; epoch < epochs; epoch++ {
//	    backend.Tape().StartRecording()
//	    loss := criterion.Forward(model.Forward(input), targets)
//	    backend.Tape().StopRecording()
//
//	    grads := autodiff.Backward(loss, backend)
//	    optimizer.Step(grads)
//	    optimizer.ZeroGrad()
//	    backend.Tape().Clear()
//	}
package optim

import (
	"github.com/augur-ml/augur/internal/nn"
	"github.com/augur-ml/augur/internal/tensor"
)

// Optimizer updates model parameters from the gradients of a backward
// pass.
type Optimizer interface {
	// Step applies one update to every parameter that has a gradient
	// in the map. Parameters absent from the map are skipped.
	Step(grads map[*tensor.RawTensor]*tensor.RawTensor)

	// ZeroGrad clears the gradients attached to all parameters.
	// Called before each backward pass so updates never see stale
	// gradients.
	ZeroGrad()

	// GetLR returns the current learning rate.
	GetLR() float32
}

// getGradient finds the gradient recorded for a parameter's tensor.
// Returns nil when the parameter took no part in the forward pass.
func getGradient[B tensor.Backend](param *nn.Parameter[B], grads map[*tensor.RawTensor]*tensor.RawTensor) *tensor.RawTensor {
	if param == nil {
		return nil
	}
	return grads[param.Tensor().Raw()]
}
