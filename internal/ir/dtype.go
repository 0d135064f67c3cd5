// Package ir defines the micro-op intermediate representation consumed by
// the cost estimator, the program descriptor and the renderer backends.
package ir

import "strconv"

// Kind represents the scalar base type of an IR value.
type Kind int

// Supported scalar kinds.
const (
	KindFloat16 Kind = iota
	KindBFloat16
	KindFloat32
	KindFloat64
	KindInt32
	KindInt64
	KindUint8
	KindBool
)

// Size returns the byte size of one scalar of this kind.
func (k Kind) Size() int {
	switch k {
	case KindFloat16, KindBFloat16:
		return 2
	case KindFloat32, KindInt32:
		return 4
	case KindFloat64, KindInt64:
		return 8
	case KindUint8, KindBool:
		return 1
	default:
		panic("unknown scalar kind")
	}
}

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindFloat16:
		return "half"
	case KindBFloat16:
		return "bfloat16"
	case KindFloat32:
		return "float"
	case KindFloat64:
		return "double"
	case KindInt32:
		return "int32"
	case KindInt64:
		return "int64"
	case KindUint8:
		return "uint8"
	case KindBool:
		return "bool"
	default:
		return "unknown"
	}
}

// DType is the result type of a micro-op: a scalar kind plus a vector
// element count. It is a comparable value type.
type DType struct {
	Kind  Kind
	Count int // number of elements, 1 for scalars
}

// Scalar dtypes used throughout the IR.
var (
	Float16  = DType{KindFloat16, 1}
	BFloat16 = DType{KindBFloat16, 1}
	Float32  = DType{KindFloat32, 1}
	Float64  = DType{KindFloat64, 1}
	Int32    = DType{KindInt32, 1}
	Int64    = DType{KindInt64, 1}
	Uint8    = DType{KindUint8, 1}
	Bool     = DType{KindBool, 1}
	Void     = DType{} // ops with no value (stores, loop markers)
)

// Vec returns the vector dtype with n elements of the same kind.
func (d DType) Vec(n int) DType { return DType{d.Kind, n} }

// ItemSize returns the total byte size of one value, vector width included.
func (d DType) ItemSize() int { return d.Kind.Size() * d.Count }

// String returns the dtype name, e.g. "float" or "float4".
func (d DType) String() string {
	if d.Count <= 1 {
		return d.Kind.String()
	}
	return d.Kind.String() + strconv.Itoa(d.Count)
}
