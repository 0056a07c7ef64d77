package tensor

import "fmt"

// DType is the type constraint for tensor element types.
//
// Augur keeps the set small on purpose: float32 for network parameters,
// float64 for series arithmetic, int32 for index data.
type DType interface {
	~float32 | ~float64 | ~int32
}

// DataType identifies the element type of a RawTensor at runtime.
type DataType int

// Supported data types.
const (
	Float32 DataType = iota
	Float64
	Int32
)

// Size returns the size of a single element in bytes.
func (dt DataType) Size() int {
	switch dt {
	case Float32, Int32:
		return 4
	case Float64:
		return 8
	default:
		panic(fmt.Sprintf("unknown data type: %d", dt))
	}
}

// String returns the name of the data type.
func (dt DataType) String() string {
	switch dt {
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case Int32:
		return "int32"
	default:
		return fmt.Sprintf("DataType(%d)", int(dt))
	}
}

// inferDataType resolves the runtime DataType for a generic element type.
func inferDataType[T DType](dummy T) DataType {
	switch any(dummy).(type) {
	case float32:
		return Float32
	case float64:
		return Float64
	case int32:
		return Int32
	default:
		panic(fmt.Sprintf("unsupported element type: %T", dummy))
	}
}
