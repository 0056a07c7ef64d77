package series

import (
	"fmt"
	"math/rand"

	"github.com/augur-ml/augur/internal/tensor"
)

// Batch is one mini-batch of training examples as tensors: windows
// shaped [batch, size, 1] with targets [batch, 1].
type Batch[B tensor.Backend] struct {
	Windows *tensor.Tensor[float32, B]
	Targets *tensor.Tensor[float32, B]
	Size    int
}

// Batches splits examples into mini-batches. A non-nil rng shuffles
// the examples first (Fisher-Yates), so a run-scoped seeded generator
// gives a different order each epoch while staying reproducible across
// runs. The final batch keeps whatever examples remain, so it may be
// short.
func Batches[B tensor.Backend](examples []Example, batchSize int, rng *rand.Rand, backend B) ([]*Batch[B], error) {
	if batchSize <= 0 {
		return nil, fmt.Errorf("batch size must be positive, got %d", batchSize)
	}
	if len(examples) == 0 {
		return nil, fmt.Errorf("no examples to batch")
	}

	size := len(examples[0].Window)
	for i, ex := range examples {
		if len(ex.Window) != size {
			return nil, fmt.Errorf("example %d has window length %d, want %d", i, len(ex.Window), size)
		}
	}

	indices := make([]int, len(examples))
	for i := range indices {
		indices[i] = i
	}
	if rng != nil {
		for i := len(indices) - 1; i > 0; i-- {
			j := rng.Intn(i + 1)
			indices[i], indices[j] = indices[j], indices[i]
		}
	}

	numBatches := (len(examples) + batchSize - 1) / batchSize
	batches := make([]*Batch[B], 0, numBatches)

	for start := 0; start < len(examples); start += batchSize {
		end := min(start+batchSize, len(examples))
		n := end - start

		windowsRaw, err := tensor.NewRaw(tensor.Shape{n, size, 1}, tensor.Float32, backend.Device())
		if err != nil {
			return nil, fmt.Errorf("allocating windows tensor: %w", err)
		}
		targetsRaw, err := tensor.NewRaw(tensor.Shape{n, 1}, tensor.Float32, backend.Device())
		if err != nil {
			return nil, fmt.Errorf("allocating targets tensor: %w", err)
		}

		windows := windowsRaw.AsFloat32()
		targets := targetsRaw.AsFloat32()
		for row := 0; row < n; row++ {
			ex := examples[indices[start+row]]
			for col, v := range ex.Window {
				windows[row*size+col] = float32(v)
			}
			targets[row] = float32(ex.Target)
		}

		batches = append(batches, &Batch[B]{
			Windows: tensor.New[float32, B](windowsRaw, backend),
			Targets: tensor.New[float32, B](targetsRaw, backend),
			Size:    n,
		})
	}

	return batches, nil
}
