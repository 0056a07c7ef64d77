// Copyright 2025 Augur ML Toolkit. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides neural network layers and building blocks.
//
// # Overview
//
// This package contains:
//   - Layers: Linear, RNN
//   - Activations: Tanh, ReLU
//   - Loss functions: MSELoss
//   - Utilities: Module interface, Parameter
//   - Initialization: Xavier, Uniform, Zeros, Ones
//
// # Basic Usage
//
//	import (
//	    "github.com/augur-ml/augur/backend/cpu"
//	    "github.com/augur-ml/augur/nn"
//	)
//
//	func main() {
//	    backend := cpu.New()
//
//	    // A recurrent layer over windows of 12 time steps
//	    rnn := nn.NewRNN(1, 32, 1, backend)
//	    head := nn.NewLinear(32, 1, backend)
//
//	    // Forward pass: [batch, steps, features] -> [batch, steps, hidden]
//	    hidden := rnn.Forward(input)
//	    _ = head
//	    _ = hidden
//	}
//
// # Layers
//
// Linear: Fully connected layer with Xavier initialization
//
//	layer := nn.NewLinear(inFeatures, outFeatures, backend)
//
// RNN: Stacked Elman recurrence with tanh cells
//
//	rnn := nn.NewRNN(inputSize, hiddenSize, numLayers, backend)
//
// # Activations
//
// Activation modules reach the backend through type assertions, so they
// work on any backend that provides the corresponding op:
//
//	tanh := nn.NewTanh[B]()
//	relu := nn.NewReLU[B]()
//
// # Loss Functions
//
// MSELoss: For regression tasks; fused forward and backward on the
// autodiff backend
//
//	criterion := nn.NewMSELoss(backend)
//	loss := criterion.Forward(predictions, targets)
//
// # Parameter Management
//
// Access model parameters for optimization:
//
//	params := model.Parameters()
//	for _, param := range params {
//	    fmt.Println(param.Name(), param.Tensor().Shape())
//	}
//
// Concrete layers also provide StateDict and LoadStateDict for
// checkpointing; keys follow PyTorch naming (weight_ih_l0, ...) so
// saved models are self-describing.
package nn
