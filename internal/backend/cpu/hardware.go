package cpu

import (
	"fmt"
	"strings"

	"github.com/klauspost/cpuid/v2"
)

// matmulBlock is the cache-block edge used by the float matmul
// kernels, sized so three float64 blocks fit in the L1 data cache.
var matmulBlock = 64

func init() {
	if l1 := cpuid.CPU.Cache.L1D; l1 > 0 {
		edge := 8
		for (edge+8)*(edge+8)*3*8 <= l1 {
			edge += 8
		}
		matmulBlock = edge
	}
}

// Hardware describes the detected CPU for logs and run records.
func Hardware() string {
	brand := cpuid.CPU.BrandName
	if brand == "" {
		brand = "unknown CPU"
	}

	var features []string
	for _, f := range []cpuid.FeatureID{cpuid.AVX2, cpuid.AVX512F, cpuid.FMA3} {
		if cpuid.CPU.Supports(f) {
			features = append(features, f.String())
		}
	}

	desc := fmt.Sprintf("%s (%d cores", brand, cpuid.CPU.LogicalCores)
	if len(features) > 0 {
		desc += ", " + strings.Join(features, "/")
	}
	return desc + ")"
}
