package nn

import (
	"github.com/augur-ml/augur/internal/tensor"
)

// MSELoss computes mean squared error:
//
//	Loss = mean((predictions - targets)²)
//
// The criterion of choice for regression on continuous values, which
// is exactly what one-step-ahead forecasting is.
//
// Example:
//
//	criterion := nn.NewMSELoss(backend)
//	loss := criterion.Forward(predictions, targets)
type MSELoss[B tensor.Backend] struct {
	backend B
}

// NewMSELoss creates an MSE criterion.
func NewMSELoss[B tensor.Backend](backend B) *MSELoss[B] {
	return &MSELoss[B]{
		backend: backend,
	}
}

// Forward computes the loss as a single-element tensor.
//
// Predictions and targets must share a shape. With an autodiff-aware
// backend the loss lands on the tape and gradients flow to the
// predictions; targets are always treated as constants.
func (m *MSELoss[B]) Forward(predictions, targets *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	if !predictions.Shape().Equal(targets.Shape()) {
		panic("MSELoss: predictions and targets must have the same shape")
	}

	// Fused path for backends that know the loss as one operation.
	type MSEBackend interface {
		MSE(predictions, targets *tensor.RawTensor) *tensor.RawTensor
	}

	if adBackend, ok := any(m.backend).(MSEBackend); ok {
		return tensor.New[float32, B](adBackend.MSE(predictions.Raw(), targets.Raw()), m.backend)
	}

	// Manual computation for plain backends.
	preds := predictions.Raw().AsFloat32()
	targs := targets.Raw().AsFloat32()

	var sum float32
	for i := range preds {
		diff := preds[i] - targs[i]
		sum += diff * diff
	}

	lossRaw, err := tensor.NewRaw(tensor.Shape{1}, tensor.Float32, m.backend.Device())
	if err != nil {
		panic(err)
	}
	lossRaw.AsFloat32()[0] = sum / float32(len(preds))

	return tensor.New[float32, B](lossRaw, m.backend)
}

// Parameters returns an empty slice, loss functions have no trainable
// state.
func (m *MSELoss[B]) Parameters() []*Parameter[B] {
	return nil
}
