package tensor

import (
	"math/rand"
	"sync"
	"time"
)

// rng is the generator behind Randn, Rand, and Uniform. A dedicated
// source, rather than the global one, lets Seed make weight draws
// reproducible: two runs that seed identically and create tensors in
// the same order see identical values.
var rng = struct {
	sync.Mutex
	*rand.Rand
}{
	//nolint:gosec // G404: tensor initialization does not need crypto randomness
	Rand: rand.New(rand.NewSource(time.Now().UnixNano())),
}

// Seed reseeds the shared random generator used by tensor creation.
func Seed(seed int64) {
	rng.Lock()
	//nolint:gosec // G404: intentional deterministic seed for reproducibility
	rng.Rand = rand.New(rand.NewSource(seed))
	rng.Unlock()
}

// randFloat64 draws the next value in [0, 1) from the shared generator.
func randFloat64() float64 {
	rng.Lock()
	v := rng.Float64()
	rng.Unlock()
	return v
}
