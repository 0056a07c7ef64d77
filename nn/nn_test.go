// Copyright 2025 Augur ML Toolkit. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn_test

import (
	"testing"

	"github.com/augur-ml/augur/internal/autodiff"
	"github.com/augur-ml/augur/internal/backend/cpu"
	"github.com/augur-ml/augur/internal/tensor"
	"github.com/augur-ml/augur/nn"
)

type adBackend = *autodiff.AutodiffBackend[*cpu.CPUBackend]

// TestModuleInterface verifies that concrete types implement Module interface.
func TestModuleInterface(t *testing.T) {
	backend := autodiff.New(cpu.New())

	tests := []struct {
		name   string
		module nn.Module[adBackend]
		shape  tensor.Shape
	}{
		{
			name:   "Linear",
			module: nn.NewLinear(10, 5, backend),
			shape:  tensor.Shape{2, 10},
		},
		{
			name:   "RNN",
			module: nn.NewRNN(1, 8, 1, backend),
			shape:  tensor.Shape{2, 5, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Verify Forward works
			input := tensor.Randn[float32](tt.shape, backend)
			output := tt.module.Forward(input)
			if output == nil {
				t.Fatal("Forward() returned nil")
			}

			// Verify Parameters works
			params := tt.module.Parameters()
			if len(params) == 0 {
				t.Error("Parameters() returned no parameters for a trainable layer")
			}
		})
	}
}

// TestActivationModules verifies activation facades forward through the backend.
func TestActivationModules(t *testing.T) {
	backend := autodiff.New(cpu.New())
	input := tensor.Randn[float32](tensor.Shape{2, 4}, backend)

	tanh := nn.NewTanh[adBackend]()
	out := tanh.Forward(input)
	if !out.Shape().Equal(input.Shape()) {
		t.Errorf("Tanh changed shape: %v -> %v", input.Shape(), out.Shape())
	}
	if len(tanh.Parameters()) != 0 {
		t.Error("Tanh reported trainable parameters")
	}

	relu := nn.NewReLU[adBackend]()
	out = relu.Forward(input)
	if !out.Shape().Equal(input.Shape()) {
		t.Errorf("ReLU changed shape: %v -> %v", input.Shape(), out.Shape())
	}
}

// TestParameterAccessors verifies the Parameter facade surface.
func TestParameterAccessors(t *testing.T) {
	backend := cpu.New()
	weight := tensor.Randn[float32](tensor.Shape{3, 3}, backend)

	param := nn.NewParameter("weight", weight)
	if param.Name() != "weight" {
		t.Errorf("Name() = %q, want %q", param.Name(), "weight")
	}
	if param.Tensor() != weight {
		t.Error("Tensor() did not return the wrapped tensor")
	}
	if param.Grad() != nil {
		t.Error("Grad() non-nil before any backward pass")
	}

	grad := tensor.Zeros[float32](tensor.Shape{3, 3}, backend)
	param.SetGrad(grad)
	if param.Grad() != grad {
		t.Error("Grad() did not return the set gradient")
	}

	param.ZeroGrad()
	if param.Grad() != nil {
		t.Error("Grad() non-nil after ZeroGrad()")
	}
}

// TestLossFacade verifies MSELoss through the public surface.
func TestLossFacade(t *testing.T) {
	backend := autodiff.New(cpu.New())
	criterion := nn.NewMSELoss(backend)

	pred, err := tensor.FromSlice([]float32{1, 2, 3}, tensor.Shape{3, 1}, backend)
	if err != nil {
		t.Fatalf("FromSlice failed: %v", err)
	}
	target, err := tensor.FromSlice([]float32{1, 2, 5}, tensor.Shape{3, 1}, backend)
	if err != nil {
		t.Fatalf("FromSlice failed: %v", err)
	}

	loss := criterion.Forward(pred, target)
	if got := loss.Item(); got < 1.3 || got > 1.4 {
		t.Errorf("MSE = %v, want 4/3", got)
	}
}
