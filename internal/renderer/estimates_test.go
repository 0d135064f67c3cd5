package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chukwunonsoprosper/tinygrad/internal/ir"
	"github.com/chukwunonsoprosper/tinygrad/internal/sym"
)

// loopedLoad builds: for i in [0,n) { load f32 } with matching range ops.
func loopedLoad(n int64) []*ir.UOp {
	buf := ir.NewDefineGlobal(0, ir.Float32)
	rng := ir.NewRange(ir.NewConst(ir.Int32, 0), ir.NewConst(ir.Int32, n))
	addr := ir.NewIndex(buf, rng)
	ld := ir.NewLoad(ir.Float32, addr)
	return []*ir.UOp{buf, rng, addr, ld, ir.NewEndRange(rng)}
}

func evalConst(t *testing.T, e sym.Expr) int64 {
	t.Helper()
	v, err := e.Eval(nil)
	require.NoError(t, err)
	return v
}

// TestFlopsMemEmpty reports zero for an empty sequence.
func TestFlopsMemEmpty(t *testing.T) {
	ops, lds := FlopsMem(nil, false)
	assert.Equal(t, int64(0), evalConst(t, ops))
	assert.Equal(t, int64(0), evalConst(t, lds))
}

// TestFlopsMemLoopScaling charges one load n times inside a loop.
func TestFlopsMemLoopScaling(t *testing.T) {
	_, lds := FlopsMem(loopedLoad(16), false)
	assert.Equal(t, int64(16*4), evalConst(t, lds))
}

// TestFlopsMemNestedLoops multiplies trip counts of nested loops.
func TestFlopsMemNestedLoops(t *testing.T) {
	buf := ir.NewDefineGlobal(0, ir.Float32)
	outer := ir.NewRange(ir.NewConst(ir.Int32, 0), ir.NewConst(ir.Int32, 5))
	inner := ir.NewRange(ir.NewConst(ir.Int32, 0), ir.NewConst(ir.Int32, 7))
	addr := ir.NewIndex(buf, inner)
	ld := ir.NewLoad(ir.Float32, addr)
	uops := []*ir.UOp{buf, outer, inner, addr, ld,
		ir.NewEndRange(inner), ir.NewEndRange(outer)}

	_, lds := FlopsMem(uops, false)
	assert.Equal(t, int64(5*7*4), evalConst(t, lds))
}

// TestFlopsMemLoopRestoresMultiplier work after a closed loop is charged
// at the pre-loop multiplier.
func TestFlopsMemLoopRestoresMultiplier(t *testing.T) {
	a := ir.NewConst(ir.Float32, 1)
	b := ir.NewConst(ir.Float32, 2)
	rng := ir.NewRange(ir.NewConst(ir.Int32, 0), ir.NewConst(ir.Int32, 10))
	inLoop := ir.NewUOp(ir.OpAdd, ir.Float32, []*ir.UOp{a, b}, nil)
	after := ir.NewUOp(ir.OpMul, ir.Float32, []*ir.UOp{a, b}, nil)
	uops := []*ir.UOp{a, b, rng, inLoop, ir.NewEndRange(rng), after}

	ops, _ := FlopsMem(uops, false)
	assert.Equal(t, int64(10+1), evalConst(t, ops))
}

// TestFlopsMemMulAcc counts fused multiply-accumulate as two flops per
// element.
func TestFlopsMemMulAcc(t *testing.T) {
	v4 := ir.Float32.Vec(4)
	a := ir.NewConst(v4, 0)
	fma := ir.NewUOp(ir.OpMulAcc, v4, []*ir.UOp{a, a, a}, nil)

	ops, _ := FlopsMem([]*ir.UOp{a, fma}, false)
	assert.Equal(t, int64(2*4), evalConst(t, ops))
}

// TestFlopsMemSpecial scales by the dispatch extent without pushing a
// scope.
func TestFlopsMemSpecial(t *testing.T) {
	gidx := ir.NewSpecial("gidx0", sym.Const(64))
	a := ir.NewConst(ir.Float32, 1)
	add := ir.NewUOp(ir.OpAdd, ir.Float32, []*ir.UOp{a, a}, nil)

	ops, _ := FlopsMem([]*ir.UOp{gidx, a, add}, false)
	assert.Equal(t, int64(64), evalConst(t, ops))
}

// TestFlopsMemWMMA charges 2*prod(shape)/divisor per dispatch.
func TestFlopsMemWMMA(t *testing.T) {
	arg := ir.WMMAArg{Name: "WMMA_8_8_8", Shape: []int{8, 8, 8},
		DTypeIn: ir.Float16, DTypeOut: ir.Float32, Divisor: 32}
	w := ir.NewUOp(ir.OpWMMA, ir.Float32, nil, arg)

	ops, _ := FlopsMem([]*ir.UOp{w}, false)
	assert.Equal(t, int64(2*8*8*8/32), evalConst(t, ops))
}

// TestFlopsMemSymbolicTrip carries a symbolic trip count through the
// multiplier instead of evaluating it eagerly.
func TestFlopsMemSymbolicTrip(t *testing.T) {
	n := sym.NewVar("n", 1, 4096)
	buf := ir.NewDefineGlobal(0, ir.Float32)
	rng := ir.NewRange(ir.NewConst(ir.Int32, 0), ir.NewDefineVar(n))
	addr := ir.NewIndex(buf, rng)
	ld := ir.NewLoad(ir.Float32, addr)
	uops := []*ir.UOp{buf, rng, addr, ld, ir.NewEndRange(rng)}

	_, lds := FlopsMem(uops, false)
	got, err := lds.Eval(map[sym.Var]int64{n: 100})
	require.NoError(t, err)
	assert.Equal(t, int64(400), got)

	_, err = lds.Eval(nil)
	assert.ErrorIs(t, err, sym.ErrUnbound)
}

// TestFlopsMemIgnoreIndexing excludes address arithmetic from the count.
func TestFlopsMemIgnoreIndexing(t *testing.T) {
	buf := ir.NewDefineGlobal(0, ir.Float32)
	// index expression with real arithmetic in it: 2*i+1
	i := ir.NewConst(ir.Int32, 3)
	idx := ir.NewUOp(ir.OpAdd, ir.Int32,
		[]*ir.UOp{ir.NewUOp(ir.OpMul, ir.Int32, []*ir.UOp{i, ir.NewConst(ir.Int32, 2)}, nil),
			ir.NewConst(ir.Int32, 1)}, nil)
	addr := ir.NewIndex(buf, idx)
	ld := ir.NewLoad(ir.Float32, addr)
	uops := []*ir.UOp{buf, i, idx.Src[0], idx, addr, ld}

	ops, _ := FlopsMem(uops, false)
	assert.Equal(t, int64(2), evalConst(t, ops), "counted without the flag")

	ops, lds := FlopsMem(uops, true)
	assert.Equal(t, int64(0), evalConst(t, ops), "address math is not user compute")
	assert.Equal(t, int64(4), evalConst(t, lds), "the load itself still counts")
}

// TestFlopsMemIgnoreIndexingIf excludes conditional predicates too.
func TestFlopsMemIgnoreIndexingIf(t *testing.T) {
	a := ir.NewConst(ir.Int32, 1)
	pred := ir.NewUOp(ir.OpCmpLt, ir.Bool, []*ir.UOp{a, ir.NewConst(ir.Int32, 2)}, nil)
	iff := ir.NewUOp(ir.OpIf, ir.Void, []*ir.UOp{pred}, nil)
	uops := []*ir.UOp{a, pred.Src[1], pred, iff}

	ops, _ := FlopsMem(uops, true)
	assert.Equal(t, int64(0), evalConst(t, ops))
}

// TestFlopsMemAdditivity concatenating two regions sums their estimates.
func TestFlopsMemAdditivity(t *testing.T) {
	a, b := loopedLoad(8), loopedLoad(32)

	opsA, ldsA := FlopsMem(a, false)
	opsB, ldsB := FlopsMem(b, false)
	opsAB, ldsAB := FlopsMem(append(append([]*ir.UOp{}, a...), b...), false)

	assert.Equal(t, evalConst(t, opsA)+evalConst(t, opsB), evalConst(t, opsAB))
	assert.Equal(t, evalConst(t, ldsA)+evalConst(t, ldsB), evalConst(t, ldsAB))
}

// TestFlopsMemUnmatchedEnd panics on malformed nesting rather than
// reporting a silently wrong cost.
func TestFlopsMemUnmatchedEnd(t *testing.T) {
	rng := ir.NewRange(ir.NewConst(ir.Int32, 0), ir.NewConst(ir.Int32, 4))
	assert.Panics(t, func() {
		FlopsMem([]*ir.UOp{ir.NewEndRange(rng)}, false)
	})
}

// TestFlopsMemUnknownOpIgnored future opcodes contribute nothing.
func TestFlopsMemUnknownOpIgnored(t *testing.T) {
	weird := ir.NewUOp(ir.Op(9999), ir.Float32, nil, nil)
	ops, lds := FlopsMem([]*ir.UOp{weird}, false)
	assert.Equal(t, int64(0), evalConst(t, ops))
	assert.Equal(t, int64(0), evalConst(t, lds))
}

// TestEstimatesAddSimplify component-wise addition and simplification.
func TestEstimatesAddSimplify(t *testing.T) {
	a := NewEstimates(sym.Const(10), sym.Const(64), sym.Const(32))
	b := NewEstimates(sym.Const(5), sym.Const(16), sym.Const(8))

	sum := a.Add(b).Simplify()
	assert.Equal(t, sym.Expr(sym.Const(15)), sum.Ops)
	assert.Equal(t, sym.Expr(sym.Const(80)), sum.Lds)
	assert.Equal(t, sym.Expr(sym.Const(40)), sum.Mem)
}

// TestNewEstimatesDefaults nil components become zero.
func TestNewEstimatesDefaults(t *testing.T) {
	e := NewEstimates(nil, nil, nil)
	assert.Equal(t, sym.Expr(sym.Const(0)), e.Ops)
	assert.Equal(t, sym.Expr(sym.Const(0)), e.Lds)
	assert.Equal(t, sym.Expr(sym.Const(0)), e.Mem)
}
