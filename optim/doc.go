// Copyright 2025 Augur ML Toolkit. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides optimization algorithms for training neural networks.
//
// # Overview
//
// This package contains:
//   - SGD: Stochastic Gradient Descent with momentum
//   - Adam: Adaptive Moment Estimation with bias correction
//   - Optimizer interface for custom optimizers
//
// # Basic Usage
//
//	import (
//	    "github.com/augur-ml/augur/autodiff"
//	    "github.com/augur-ml/augur/backend/cpu"
//	    "github.com/augur-ml/augur/nn"
//	    "github.com/augur-ml/augur/optim"
//	)
//
//	func main() {
//	    backend := autodiff.New(cpu.New())
//	    model := nn.NewLinear(12, 1, backend)
//	    criterion := nn.NewMSELoss(backend)
//
//	    // Create optimizer
//	    optimizer := optim.NewAdam(
//	        model.Parameters(),
//	        optim.AdamConfig{
//	            LR:    0.001,
//	            Betas: [2]float32{0.9, 0.999},
//	        },
//	        backend,
//	    )
//
//	    // Training loop
//	    for epoch := range 10 {
//	        backend.Tape().StartRecording()
//	        loss := criterion.Forward(model.Forward(x), y)
//	        backend.Tape().StopRecording()
//
//	        grads := autodiff.Backward(loss, backend)
//	        optimizer.Step(grads)
//	        optimizer.ZeroGrad()
//	        backend.Tape().Clear()
//	    }
//	}
//
// # Optimizers
//
// SGD (Stochastic Gradient Descent):
//
//	optimizer := optim.NewSGD(
//	    model.Parameters(),
//	    optim.SGDConfig{
//	        LR:       0.01,
//	        Momentum: 0.9,
//	    },
//	    backend,
//	)
//
// Adam (Adaptive Moment Estimation):
//
//	optimizer := optim.NewAdam(
//	    model.Parameters(),
//	    optim.AdamConfig{
//	        LR:    0.001,
//	        Betas: [2]float32{0.9, 0.999},
//	        Eps:   1e-8,
//	    },
//	    backend,
//	)
//
// Zero-valued config fields fall back to the PyTorch defaults: SGD
// lr 0.01; Adam lr 0.001, betas (0.9, 0.999), eps 1e-8.
package optim
