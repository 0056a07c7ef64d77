package optim_test

import (
	"math"
	"testing"

	"github.com/augur-ml/augur/internal/autodiff"
	"github.com/augur-ml/augur/internal/backend/cpu"
	"github.com/augur-ml/augur/internal/nn"
	"github.com/augur-ml/augur/internal/optim"
	"github.com/augur-ml/augur/internal/tensor"
)

type testBackend = *autodiff.AutodiffBackend[*cpu.CPUBackend]

func floatEqual(a, b, eps float32) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff < eps
}

func newParam(t *testing.T, backend testBackend, values ...float32) *nn.Parameter[testBackend] {
	t.Helper()
	data, err := tensor.FromSlice(values, tensor.Shape{len(values)}, backend)
	if err != nil {
		t.Fatalf("FromSlice: %v", err)
	}
	return nn.NewParameter("x", data)
}

func gradFor(t *testing.T, param *nn.Parameter[testBackend], values ...float32) map[*tensor.RawTensor]*tensor.RawTensor {
	t.Helper()
	grad, err := tensor.NewRaw(tensor.Shape{len(values)}, tensor.Float32, tensor.CPU)
	if err != nil {
		t.Fatalf("NewRaw: %v", err)
	}
	copy(grad.AsFloat32(), values)
	return map[*tensor.RawTensor]*tensor.RawTensor{param.Tensor().Raw(): grad}
}

func TestSGD_SimpleUpdate(t *testing.T) {
	backend := autodiff.New(cpu.New())
	param := newParam(t, backend, 2.0)

	optimizer := optim.NewSGD([]*nn.Parameter[testBackend]{param},
		optim.SGDConfig{LR: 0.1}, backend)

	optimizer.Step(gradFor(t, param, 1.0))

	// x = 2.0 - 0.1 * 1.0
	got := param.Tensor().Raw().AsFloat32()[0]
	if !floatEqual(got, 1.9, 1e-6) {
		t.Errorf("SGD update: got %f, want 1.9", got)
	}
}

func TestSGD_WithMomentum(t *testing.T) {
	backend := autodiff.New(cpu.New())
	param := newParam(t, backend, 1.0)

	optimizer := optim.NewSGD([]*nn.Parameter[testBackend]{param},
		optim.SGDConfig{LR: 0.1, Momentum: 0.9}, backend)

	// v1 = 1.0, x1 = 1.0 - 0.1*1.0 = 0.9
	optimizer.Step(gradFor(t, param, 1.0))
	got := param.Tensor().Raw().AsFloat32()[0]
	if !floatEqual(got, 0.9, 1e-6) {
		t.Errorf("momentum step 1: got %f, want 0.9", got)
	}

	// v2 = 0.9*1.0 + 1.0 = 1.9, x2 = 0.9 - 0.1*1.9 = 0.71
	optimizer.Step(gradFor(t, param, 1.0))
	got = param.Tensor().Raw().AsFloat32()[0]
	if !floatEqual(got, 0.71, 1e-5) {
		t.Errorf("momentum step 2: got %f, want 0.71", got)
	}
}

func TestSGD_DefaultLR(t *testing.T) {
	backend := autodiff.New(cpu.New())
	param := newParam(t, backend, 1.0)

	optimizer := optim.NewSGD([]*nn.Parameter[testBackend]{param},
		optim.SGDConfig{}, backend)

	if optimizer.GetLR() != 0.01 {
		t.Errorf("default LR = %f, want 0.01", optimizer.GetLR())
	}
}

func TestSGD_SkipsParameterWithoutGradient(t *testing.T) {
	backend := autodiff.New(cpu.New())
	updated := newParam(t, backend, 1.0)
	untouched := newParam(t, backend, 5.0)

	optimizer := optim.NewSGD([]*nn.Parameter[testBackend]{updated, untouched},
		optim.SGDConfig{LR: 0.5}, backend)

	optimizer.Step(gradFor(t, updated, 1.0))

	if got := untouched.Tensor().Raw().AsFloat32()[0]; got != 5.0 {
		t.Errorf("parameter without gradient moved to %f", got)
	}
	if got := updated.Tensor().Raw().AsFloat32()[0]; !floatEqual(got, 0.5, 1e-6) {
		t.Errorf("parameter with gradient = %f, want 0.5", got)
	}
}

func TestSGD_ZeroGrad(t *testing.T) {
	backend := autodiff.New(cpu.New())
	param := newParam(t, backend, 1.0)

	grad, _ := tensor.FromSlice([]float32{5.0}, tensor.Shape{1}, backend)
	param.SetGrad(grad)

	optimizer := optim.NewSGD([]*nn.Parameter[testBackend]{param},
		optim.SGDConfig{LR: 0.1}, backend)
	optimizer.ZeroGrad()

	if param.Grad() != nil {
		t.Error("Grad should be nil after ZeroGrad")
	}
}

func TestAdam_FirstStep(t *testing.T) {
	backend := autodiff.New(cpu.New())
	param := newParam(t, backend, 1.0)

	optimizer := optim.NewAdam([]*nn.Parameter[testBackend]{param},
		optim.AdamConfig{LR: 0.001}, backend)

	optimizer.Step(gradFor(t, param, 1.0))

	// m1 = 0.1, v1 = 0.001; after bias correction both hats are 1.0,
	// so x = 1.0 - 0.001 * 1.0 / (1.0 + eps).
	got := param.Tensor().Raw().AsFloat32()[0]
	if !floatEqual(got, 0.999, 1e-5) {
		t.Errorf("Adam first step: got %f, want 0.999", got)
	}
}

func TestAdam_Defaults(t *testing.T) {
	backend := autodiff.New(cpu.New())
	param := newParam(t, backend, 1.0)

	optimizer := optim.NewAdam([]*nn.Parameter[testBackend]{param},
		optim.AdamConfig{}, backend)

	if optimizer.GetLR() != 0.001 {
		t.Errorf("default LR = %f, want 0.001", optimizer.GetLR())
	}
}

func TestAdam_ParameterDecreasesWithPositiveGradient(t *testing.T) {
	backend := autodiff.New(cpu.New())
	param := newParam(t, backend, 1.0)

	optimizer := optim.NewAdam([]*nn.Parameter[testBackend]{param},
		optim.AdamConfig{LR: 0.01}, backend)

	for i := 0; i < 3; i++ {
		optimizer.Step(gradFor(t, param, 1.0))
	}

	if got := param.Tensor().Raw().AsFloat32()[0]; got >= 1.0 {
		t.Errorf("after 3 steps with positive gradient, parameter should decrease: got %f", got)
	}
}

func TestAdam_ZeroGrad(t *testing.T) {
	backend := autodiff.New(cpu.New())
	param := newParam(t, backend, 1.0)

	grad, _ := tensor.FromSlice([]float32{5.0}, tensor.Shape{1}, backend)
	param.SetGrad(grad)

	optimizer := optim.NewAdam([]*nn.Parameter[testBackend]{param},
		optim.AdamConfig{}, backend)
	optimizer.ZeroGrad()

	if param.Grad() != nil {
		t.Error("Grad should be nil after ZeroGrad")
	}
}

// TestConvergence_SimpleQuadratic verifies both optimizers minimize
// f(x) = x², feeding the analytic gradient df/dx = 2x each step.
func TestConvergence_SimpleQuadratic(t *testing.T) {
	run := func(t *testing.T, makeOpt func(p *nn.Parameter[testBackend], backend testBackend) optim.Optimizer, steps int, tolerance float64) {
		t.Helper()
		backend := autodiff.New(cpu.New())
		param := newParam(t, backend, 3.0)
		optimizer := makeOpt(param, backend)

		for i := 0; i < steps; i++ {
			x := param.Tensor().Raw().AsFloat32()[0]
			optimizer.Step(gradFor(t, param, 2.0*x))
		}

		final := float64(param.Tensor().Raw().AsFloat32()[0])
		if math.Abs(final) > tolerance {
			t.Errorf("x = %f after %d steps, expected within %v of 0", final, steps, tolerance)
		}
	}

	t.Run("SGD", func(t *testing.T) {
		run(t, func(p *nn.Parameter[testBackend], backend testBackend) optim.Optimizer {
			return optim.NewSGD([]*nn.Parameter[testBackend]{p}, optim.SGDConfig{LR: 0.1, Momentum: 0.9}, backend)
		}, 100, 0.1)
	})

	t.Run("Adam", func(t *testing.T) {
		run(t, func(p *nn.Parameter[testBackend], backend testBackend) optim.Optimizer {
			return optim.NewAdam([]*nn.Parameter[testBackend]{p}, optim.AdamConfig{LR: 0.1}, backend)
		}, 300, 0.25)
	})
}
