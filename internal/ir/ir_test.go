package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chukwunonsoprosper/tinygrad/internal/sym"
)

// TestDTypeItemSize covers scalars and vectors.
func TestDTypeItemSize(t *testing.T) {
	assert.Equal(t, 4, Float32.ItemSize())
	assert.Equal(t, 2, Float16.ItemSize())
	assert.Equal(t, 16, Float32.Vec(4).ItemSize())
	assert.Equal(t, 1, Bool.ItemSize())
}

// TestDTypeString includes the vector width in the name.
func TestDTypeString(t *testing.T) {
	assert.Equal(t, "float", Float32.String())
	assert.Equal(t, "float4", Float32.Vec(4).String())
	assert.Equal(t, "half", Float16.String())
}

// TestIsALU checks group membership boundaries.
func TestIsALU(t *testing.T) {
	assert.True(t, OpAdd.IsALU())
	assert.True(t, OpMulAcc.IsALU())
	assert.True(t, OpWhere.IsALU())
	assert.False(t, OpCast.IsALU())
	assert.False(t, OpLoad.IsALU())
	assert.False(t, OpWMMA.IsALU())
	assert.False(t, OpIndex.IsALU())
}

// TestToposortSharedOperand visits a diamond-shaped graph once per node.
func TestToposortSharedOperand(t *testing.T) {
	// c is shared by both sides of the add
	c := NewConst(Int32, 3)
	l := NewUOp(OpMul, Int32, []*UOp{c, NewConst(Int32, 2)}, nil)
	r := NewUOp(OpMul, Int32, []*UOp{c, NewConst(Int32, 5)}, nil)
	root := NewUOp(OpAdd, Int32, []*UOp{l, r}, nil)

	order := root.Toposort()
	assert.Len(t, order, 6)

	seen := map[*UOp]int{}
	for i, u := range order {
		_, dup := seen[u]
		require.False(t, dup, "node visited twice")
		seen[u] = i
	}
	// dependencies come before their users
	for _, u := range order {
		for _, s := range u.Src {
			assert.Less(t, seen[s], seen[u])
		}
	}
	// the root comes last
	assert.Equal(t, root, order[len(order)-1])
}

// TestToposortDeepChain survives a chain far deeper than the goroutine
// stack would allow with naive recursion on a 1:1 basis.
func TestToposortDeepChain(t *testing.T) {
	const depth = 200000
	u := NewConst(Int32, 0)
	for i := 0; i < depth; i++ {
		u = NewUOp(OpAdd, Int32, []*UOp{u, NewConst(Int32, 1)}, nil)
	}
	order := u.Toposort()
	assert.Len(t, order, 2*depth+1)
	assert.Equal(t, u, order[len(order)-1])
}

// TestAsExpr lifts bound subtrees into symbolic expressions.
func TestAsExpr(t *testing.T) {
	n := sym.NewVar("n", 1, 1024)

	// 2*n - 4
	e := NewUOp(OpSub, Int32,
		[]*UOp{
			NewUOp(OpMul, Int32, []*UOp{NewConst(Int32, 2), NewDefineVar(n)}, nil),
			NewConst(Int32, 4),
		}, nil).AsExpr()

	got, err := e.Eval(map[sym.Var]int64{n: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(16), got)
}

// TestAsExprRejectsNonBound panics on ops that cannot form a bound.
func TestAsExprRejectsNonBound(t *testing.T) {
	addr := NewIndex(NewDefineGlobal(0, Float32), NewConst(Int32, 0))
	ld := NewLoad(Float32, addr)
	assert.Panics(t, func() { ld.AsExpr() })
}
