package series_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/augur-ml/augur/internal/backend/cpu"
	"github.com/augur-ml/augur/internal/series"
	"github.com/augur-ml/augur/internal/tensor"
)

func examplesFrom(values []float64, size int) []series.Example {
	examples, err := series.Window(values, size)
	if err != nil {
		panic(err)
	}
	return examples
}

func TestBatches_Shapes(t *testing.T) {
	backend := cpu.New()
	examples := examplesFrom([]float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 3) // 7 examples

	batches, err := series.Batches(examples, 3, nil, backend)
	require.NoError(t, err)
	require.Len(t, batches, 3, "7 examples in batches of 3")

	assert.Equal(t, tensor.Shape{3, 3, 1}, batches[0].Windows.Shape())
	assert.Equal(t, tensor.Shape{3, 1}, batches[0].Targets.Shape())
	assert.Equal(t, 3, batches[0].Size)

	// Final batch keeps the single leftover example.
	assert.Equal(t, tensor.Shape{1, 3, 1}, batches[2].Windows.Shape())
	assert.Equal(t, 1, batches[2].Size)
}

func TestBatches_PreservesOrderWithoutRNG(t *testing.T) {
	backend := cpu.New()
	examples := examplesFrom([]float64{1, 2, 3, 4, 5}, 2)

	batches, err := series.Batches(examples, 2, nil, backend)
	require.NoError(t, err)

	first := batches[0]
	assert.Equal(t, []float32{1, 2, 2, 3}, first.Windows.Data())
	assert.Equal(t, []float32{3, 4}, first.Targets.Data())

	last := batches[1]
	assert.Equal(t, []float32{3, 4}, last.Windows.Data())
	assert.Equal(t, []float32{5}, last.Targets.Data())
}

func TestBatches_ShuffleIsSeedDeterministic(t *testing.T) {
	backend := cpu.New()
	values := make([]float64, 40)
	for i := range values {
		values[i] = float64(i)
	}
	examples := examplesFrom(values, 4)

	collect := func(seed int64) []float32 {
		rng := rand.New(rand.NewSource(seed))
		batches, err := series.Batches(examples, 8, rng, backend)
		require.NoError(t, err)

		var targets []float32
		for _, b := range batches {
			targets = append(targets, b.Targets.Data()...)
		}
		return targets
	}

	a := collect(7)
	b := collect(7)
	assert.Equal(t, a, b, "same seed, same order")

	c := collect(8)
	assert.NotEqual(t, a, c, "different seed should reorder")
}

func TestBatches_ShuffleKeepsWindowTargetPairs(t *testing.T) {
	backend := cpu.New()
	examples := examplesFrom([]float64{0, 1, 2, 3, 4, 5, 6, 7}, 2)

	rng := rand.New(rand.NewSource(1))
	batches, err := series.Batches(examples, 3, rng, backend)
	require.NoError(t, err)

	// Whatever the order, each target must still be its window's successor.
	for _, b := range batches {
		windows := b.Windows.Data()
		targets := b.Targets.Data()
		for row := 0; row < b.Size; row++ {
			lastInWindow := windows[row*2+1]
			assert.Equal(t, lastInWindow+1, targets[row], "pair broken by shuffle")
		}
	}
}

func TestBatches_Errors(t *testing.T) {
	backend := cpu.New()
	examples := examplesFrom([]float64{1, 2, 3}, 2)

	_, err := series.Batches(examples, 0, nil, backend)
	assert.Error(t, err, "non-positive batch size")

	_, err = series.Batches(nil, 4, nil, backend)
	assert.Error(t, err, "no examples")

	ragged := []series.Example{
		{Window: []float64{1, 2}, Target: 3},
		{Window: []float64{1}, Target: 2},
	}
	_, err = series.Batches(ragged, 4, nil, backend)
	assert.Error(t, err, "inconsistent window lengths")
}
