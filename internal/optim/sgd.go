package optim

import (
	"github.com/augur-ml/augur/internal/nn"
	"github.com/augur-ml/augur/internal/tensor"
)

// SGD implements stochastic gradient descent with optional momentum.
//
// Without momentum:
//
//	param = param - lr * gradient
//
// With momentum:
//
//	velocity = momentum * velocity + gradient
//	param    = param - lr * velocity
//
// Example:
//
//	optimizer := optim.NewSGD(model.Parameters(), optim.SGDConfig{
//	    LR:       0.01,
//	    Momentum: 0.9,
//	}, backend)
type SGD[B tensor.Backend] struct {
	params     []*nn.Parameter[B]
	lr         float32
	momentum   float32
	velocities map[*nn.Parameter[B]]*tensor.Tensor[float32, B]
	backend    B
}

// SGDConfig configures an SGD optimizer.
type SGDConfig struct {
	// LR is the learning rate. Defaults to 0.01.
	LR float32

	// Momentum in [0, 1). Zero disables the velocity buffers.
	Momentum float32
}

// NewSGD creates an SGD optimizer over the given parameters.
func NewSGD[B tensor.Backend](params []*nn.Parameter[B], config SGDConfig, backend B) *SGD[B] {
	if config.LR == 0 {
		config.LR = 0.01
	}

	return &SGD[B]{
		params:     params,
		lr:         config.LR,
		momentum:   config.Momentum,
		velocities: make(map[*nn.Parameter[B]]*tensor.Tensor[float32, B]),
		backend:    backend,
	}
}

// Step applies one gradient descent update to every parameter with a
// gradient.
func (s *SGD[B]) Step(grads map[*tensor.RawTensor]*tensor.RawTensor) {
	for _, param := range s.params {
		grad := getGradient(param, grads)
		if grad == nil {
			continue
		}

		gradTensor := tensor.New[float32, B](grad, s.backend)
		if s.momentum == 0 {
			s.apply(param, gradTensor)
		} else {
			s.applyWithMomentum(param, gradTensor)
		}
	}
}

// apply performs the plain update: param -= lr * grad.
func (s *SGD[B]) apply(param *nn.Parameter[B], grad *tensor.Tensor[float32, B]) {
	lr := tensor.Full[float32](tensor.Shape{1}, s.lr, s.backend)
	updated := param.Tensor().Sub(grad.Mul(lr))

	// The backend may have produced a fresh tensor; the parameter
	// keeps its storage, so copy the values back.
	copy(param.Tensor().Raw().AsFloat32(), updated.Raw().AsFloat32())
}

// applyWithMomentum folds the gradient into the velocity buffer first.
func (s *SGD[B]) applyWithMomentum(param *nn.Parameter[B], grad *tensor.Tensor[float32, B]) {
	velocity, ok := s.velocities[param]
	if !ok {
		velocity = tensor.Zeros[float32](param.Tensor().Shape(), s.backend)
		s.velocities[param] = velocity
	}

	// velocity = momentum * velocity + grad
	momentum := tensor.Full[float32](tensor.Shape{1}, s.momentum, s.backend)
	newVelocity := velocity.Mul(momentum).Add(grad)
	copy(velocity.Raw().AsFloat32(), newVelocity.Raw().AsFloat32())

	// param -= lr * velocity
	lr := tensor.Full[float32](tensor.Shape{1}, s.lr, s.backend)
	updated := param.Tensor().Sub(velocity.Mul(lr))
	copy(param.Tensor().Raw().AsFloat32(), updated.Raw().AsFloat32())
}

// ZeroGrad clears gradients for all parameters.
func (s *SGD[B]) ZeroGrad() {
	for _, param := range s.params {
		param.ZeroGrad()
	}
}

// GetLR returns the current learning rate.
func (s *SGD[B]) GetLR() float32 {
	return s.lr
}
