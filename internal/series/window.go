package series

import "fmt"

// Example is one supervised training pair: a window of consecutive
// values and the observation that immediately follows it.
type Example struct {
	Window []float64
	Target float64
}

// Window slides a window of size consecutive values over the segment,
// pairing each with the next value as its target. The examples come
// out in chronological order: example i covers values[i : i+size] and
// targets values[i+size].
func Window(values []float64, size int) ([]Example, error) {
	if size <= 0 {
		return nil, fmt.Errorf("window size must be positive, got %d", size)
	}
	if len(values) < size+1 {
		return nil, fmt.Errorf("series too short: %d observations cannot fill a window of %d plus a target", len(values), size)
	}

	examples := make([]Example, 0, len(values)-size)
	for i := 0; i+size < len(values); i++ {
		examples = append(examples, Example{
			Window: values[i : i+size],
			Target: values[i+size],
		})
	}
	return examples, nil
}
