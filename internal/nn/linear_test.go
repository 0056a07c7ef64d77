package nn_test

import (
	"testing"

	"github.com/augur-ml/augur/internal/autodiff"
	"github.com/augur-ml/augur/internal/backend/cpu"
	"github.com/augur-ml/augur/internal/nn"
	"github.com/augur-ml/augur/internal/tensor"
)

func TestLinear_ForwardShape(t *testing.T) {
	backend := autodiff.New(cpu.New())
	layer := nn.NewLinear(3, 2, backend)

	input, _ := tensor.FromSlice([]float32{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}, tensor.Shape{4, 3}, backend)
	output := layer.Forward(input)

	if !output.Shape().Equal(tensor.Shape{4, 2}) {
		t.Errorf("output shape = %v, want [4 2]", output.Shape())
	}
	if layer.InFeatures() != 3 || layer.OutFeatures() != 2 {
		t.Errorf("feature sizes = (%d, %d), want (3, 2)", layer.InFeatures(), layer.OutFeatures())
	}
}

func TestLinear_KnownValues(t *testing.T) {
	backend := autodiff.New(cpu.New())
	layer := nn.NewLinear(2, 2, backend)

	// W = [[1, 2], [3, 4]], b = [10, 20]
	copy(layer.Weight().Tensor().Raw().AsFloat32(), []float32{1, 2, 3, 4})
	copy(layer.Bias().Tensor().Raw().AsFloat32(), []float32{10, 20})

	input, _ := tensor.FromSlice([]float32{1, 1, 2, 0}, tensor.Shape{2, 2}, backend)
	output := layer.Forward(input)

	// y = x @ W.T + b
	want := []float32{13, 27, 12, 26}
	got := output.Raw().AsFloat32()
	for i := range want {
		if !floatEqual(got[i], want[i], 1e-5) {
			t.Errorf("output[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLinear_Parameters(t *testing.T) {
	backend := autodiff.New(cpu.New())
	layer := nn.NewLinear(3, 2, backend)

	params := layer.Parameters()
	if len(params) != 2 {
		t.Fatalf("got %d parameters, want 2", len(params))
	}
	if params[0].Name() != "weight" || params[1].Name() != "bias" {
		t.Errorf("parameter names = %s, %s", params[0].Name(), params[1].Name())
	}
	if !params[0].Tensor().Shape().Equal(tensor.Shape{2, 3}) {
		t.Errorf("weight shape = %v, want [2 3]", params[0].Tensor().Shape())
	}
	if !params[1].Tensor().Shape().Equal(tensor.Shape{2}) {
		t.Errorf("bias shape = %v, want [2]", params[1].Tensor().Shape())
	}
}

func TestLinear_InputValidation(t *testing.T) {
	backend := autodiff.New(cpu.New())
	layer := nn.NewLinear(3, 2, backend)

	input, _ := tensor.FromSlice([]float32{1, 2}, tensor.Shape{1, 2}, backend)

	defer func() {
		if recover() == nil {
			t.Error("wrong feature count did not panic")
		}
	}()
	layer.Forward(input)
}

func TestLinear_StateDictRoundTrip(t *testing.T) {
	backend := autodiff.New(cpu.New())

	source := nn.NewLinear(3, 2, backend)
	target := nn.NewLinear(3, 2, backend)

	if err := target.LoadStateDict(source.StateDict()); err != nil {
		t.Fatalf("LoadStateDict: %v", err)
	}

	input, _ := tensor.FromSlice([]float32{0.1, 0.2, 0.3}, tensor.Shape{1, 3}, backend)
	wantOut := source.Forward(input).Raw().AsFloat32()
	gotOut := target.Forward(input).Raw().AsFloat32()

	for i := range wantOut {
		if !floatEqual(gotOut[i], wantOut[i], 1e-6) {
			t.Errorf("output[%d] = %v, want %v after round trip", i, gotOut[i], wantOut[i])
		}
	}
}

func TestLinear_LoadStateDict_Errors(t *testing.T) {
	backend := autodiff.New(cpu.New())
	layer := nn.NewLinear(3, 2, backend)

	if err := layer.LoadStateDict(map[string]*tensor.RawTensor{}); err == nil {
		t.Error("missing weight did not error")
	}

	wrong, _ := tensor.NewRaw(tensor.Shape{5, 5}, tensor.Float32, backend.Device())
	err := layer.LoadStateDict(map[string]*tensor.RawTensor{"weight": wrong})
	if err == nil {
		t.Error("shape mismatch did not error")
	}
}

func TestLinear_GradientFlow(t *testing.T) {
	backend := autodiff.New(cpu.New())
	backend.Tape().StartRecording()

	layer := nn.NewLinear(3, 1, backend)
	criterion := nn.NewMSELoss(backend)

	input, _ := tensor.FromSlice([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, backend)
	targets, _ := tensor.FromSlice([]float32{1, 0}, tensor.Shape{2, 1}, backend)

	loss := criterion.Forward(layer.Forward(input), targets)
	grads := autodiff.Backward(loss, backend)

	weightGrad := grads[layer.Weight().Tensor().Raw()]
	if weightGrad == nil {
		t.Fatal("weight received no gradient")
	}
	if !weightGrad.Shape().Equal(tensor.Shape{1, 3}) {
		t.Errorf("weight grad shape = %v, want [1 3]", weightGrad.Shape())
	}

	biasGrad := grads[layer.Bias().Tensor().Raw()]
	if biasGrad == nil {
		t.Fatal("bias received no gradient")
	}
	if !biasGrad.Shape().Equal(tensor.Shape{1}) {
		t.Errorf("bias grad shape = %v, want [1]", biasGrad.Shape())
	}
}
