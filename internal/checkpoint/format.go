package checkpoint

import (
	"time"

	"github.com/augur-ml/augur/internal/forecast"
	"github.com/augur-ml/augur/internal/series"
	"github.com/augur-ml/augur/internal/tensor"
)

// Format constants for the .augur file layout:
//
//	0x00  magic "AUGR"
//	0x04  format version (uint32 LE)
//	0x08  reserved (zeros)
//	0x10  header size (uint64 LE)
//	0x18  data size (uint64 LE)
//	0x20  SHA-256 over header JSON + tensor data
//	0x40  header JSON, padded to a 64-byte boundary, then tensor data
const (
	Magic           = "AUGR"
	FormatVersion   = 1
	fixedHeaderSize = 64
	headerAlignment = 64
	checksumOffset  = 0x20
	checksumSize    = 32
	maxHeaderSize   = 100 * 1024 * 1024
)

// ToolkitVersion is stamped into every checkpoint header.
const ToolkitVersion = "0.3.0"

// Header is the JSON header of a .augur file. It carries everything
// needed to rebuild the model and run it on new data: the training
// configuration, the fitted scaler, and the tensor table.
type Header struct {
	FormatVersion int             `json:"format_version"`
	AugurVersion  string          `json:"augur_version"`
	CreatedAt     time.Time       `json:"created_at"`
	Config        forecast.Config `json:"config"`
	Scaler        series.Scaler   `json:"scaler"`
	Tensors       []TensorMeta    `json:"tensors"`
}

// TensorMeta describes one tensor in the data section.
type TensorMeta struct {
	Name   string `json:"name"`
	DType  string `json:"dtype"`
	Shape  []int  `json:"shape"`
	Offset int64  `json:"offset"` // bytes from the start of the data section
	Size   int64  `json:"size"`
}

// Data type names used in the tensor table.
const (
	dtypeFloat32 = "float32"
	dtypeFloat64 = "float64"
	dtypeInt32   = "int32"
)

func dtypeToString(dt tensor.DataType) string {
	switch dt {
	case tensor.Float32:
		return dtypeFloat32
	case tensor.Float64:
		return dtypeFloat64
	case tensor.Int32:
		return dtypeInt32
	default:
		return "unknown"
	}
}

func stringToDtype(s string) (tensor.DataType, bool) {
	switch s {
	case dtypeFloat32:
		return tensor.Float32, true
	case dtypeFloat64:
		return tensor.Float64, true
	case dtypeInt32:
		return tensor.Int32, true
	default:
		return 0, false
	}
}

// padding returns the bytes needed to align pos to the next
// headerAlignment boundary.
func padding(pos int64) int64 {
	return (headerAlignment - (pos % headerAlignment)) % headerAlignment
}
