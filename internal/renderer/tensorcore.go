package renderer

import (
	"fmt"
	"strings"

	"github.com/chukwunonsoprosper/tinygrad/internal/ir"
)

// Axis pairs a logical tensor-core dimension with a size along it.
type Axis struct {
	Dim  int
	Size int
}

// SwizzlePattern remaps operand access so a fragment lands in the layout
// the hardware instruction expects. Each entry selects a source axis and a
// stride within it.
type SwizzlePattern struct {
	Shape  []Axis
	Stride []Axis
}

// TensorCore describes one fused multiply-accumulate unit: D = A*B + C,
// where A is MxK, B is KxN, and C and D are MxN. It is pure data with
// structural equality; the optimizer consults it when deciding whether a
// reduction can be lowered onto the unit, and the renderer uses String as
// a stable symbol for the generated intrinsic.
type TensorCore struct {
	Dims     [3]int   // N, M, K
	DTypeIn  ir.DType // element type of A and B
	DTypeOut ir.DType // element type of C and D

	// Threads is the warp layout: how hardware lanes are spread over the
	// M and N dimensions.
	Threads []Axis
	// ReduceAxes is the shape of the K dimension as software sees it.
	ReduceAxes []Axis
	// UpcastAxes lists, per operand (A, B, C), the axes software must
	// unroll because no hardware lane covers them.
	UpcastAxes [3][]Axis

	ST1Pattern    *SwizzlePattern // operand A access fix, if any
	ST2Pattern    *SwizzlePattern // operand B access fix, if any
	ExpandedShape []int           // explicit shape override, if any

	// OptsSeq is the two-step hint the optimizer applies when adopting
	// this unit. Zero value means the default sequence.
	OptsSeq [2]string
}

// DefaultOptsSeq upcasts the input first, then localizes the thread
// pattern.
var DefaultOptsSeq = [2]string{"UP", "LC"}

// Opts returns the optimization hint sequence, falling back to the default
// when the descriptor was built without one.
func (tc TensorCore) Opts() [2]string {
	if tc.OptsSeq == ([2]string{}) {
		return DefaultOptsSeq
	}
	return tc.OptsSeq
}

// EarlyUpcastAxes derives the upcast needed before hardware threading: for
// each of the first two dimensions, the part of the native size not covered
// by the product of thread-layout sizes on that dimension. Fully covered
// dimensions are omitted.
func (tc TensorCore) EarlyUpcastAxes() []Axis {
	var out []Axis
	for dim := 0; dim < 2; dim++ {
		sz := 1
		for _, th := range tc.Threads {
			if th.Dim == dim {
				sz *= th.Size
			}
		}
		if tc.Dims[dim] > sz {
			out = append(out, Axis{Dim: dim, Size: tc.Dims[dim] / sz})
		}
	}
	return out
}

// String returns the stable identifier for this unit, used both as a
// generated-code symbol and to deduplicate equivalent descriptors.
func (tc TensorCore) String() string {
	parts := []string{"WMMA"}
	for _, d := range tc.Dims {
		parts = append(parts, fmt.Sprintf("%d", d))
	}
	parts = append(parts, tc.DTypeIn.String(), tc.DTypeOut.String())
	return strings.Join(parts, "_")
}
