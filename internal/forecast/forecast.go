// Package forecast trains and applies recurrent forecasting models:
// the RNN-plus-head network, its training loop, evaluation against the
// naive persistence baseline, and rolling multi-step forecasts.
package forecast

import (
	"fmt"

	"github.com/augur-ml/augur/internal/series"
	"github.com/augur-ml/augur/internal/tensor"
)

// Forecast rolls the model forward steps observations past the end of
// history. Each prediction is appended to the window for the next one,
// so errors compound the way real multi-step forecasts do. Values go in
// and come out in original units; steps <= 0 returns an empty forecast.
func Forecast[B tensor.Backend](model *Model[B], scaler *series.Scaler, history []float64, steps int) ([]float64, error) {
	window := model.WindowSize()
	if len(history) < window {
		return nil, fmt.Errorf("history has %d observations, model window needs %d", len(history), window)
	}
	if steps <= 0 {
		return []float64{}, nil
	}

	current := scaler.Transform(history[len(history)-window:])
	forecasts := make([]float64, 0, steps)

	for i := 0; i < steps; i++ {
		predicted := predictNext(model, current)
		forecasts = append(forecasts, scaler.InverseValue(predicted))

		current = append(current[1:], predicted)
	}

	return forecasts, nil
}

// predictNext runs the model on one scaled window and returns the
// scaled prediction.
func predictNext[B tensor.Backend](model *Model[B], window []float64) float64 {
	input := windowTensor(window, model.backend)
	output := model.Forward(input)
	return float64(output.Item())
}

// windowTensor lifts a scaled window into a [1, len, 1] tensor.
func windowTensor[B tensor.Backend](window []float64, backend B) *tensor.Tensor[float32, B] {
	raw, err := tensor.NewRaw(tensor.Shape{1, len(window), 1}, tensor.Float32, backend.Device())
	if err != nil {
		panic(err)
	}

	data := raw.AsFloat32()
	for i, v := range window {
		data[i] = float32(v)
	}

	return tensor.New[float32, B](raw, backend)
}
