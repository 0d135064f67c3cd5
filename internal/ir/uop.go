package ir

import (
	"fmt"

	"github.com/chukwunonsoprosper/tinygrad/internal/sym"
)

// UOp is one micro-op in a linearized kernel. The optimizer emits a flat
// ordered sequence of these; operands reference earlier nodes, forming a
// DAG (operands may be shared). Analyses treat the structure as read-only.
type UOp struct {
	Op    Op
	DType DType
	Src   []*UOp
	Arg   any
}

// SpecialArg is the payload of an OpSpecial node. The tag names the
// hardware dispatch index ("gidx0", "lidx1", ...); its first letter routes
// the extent to the global or local grid, its trailing digit selects the
// axis. Tags starting with 'i' mark an implicit index with no sized local
// grid. The extent may be symbolic.
type SpecialArg struct {
	Tag    string
	Extent sym.Expr
}

// WMMAArg is the payload of an OpWMMA node: the per-dispatch shape of the
// accelerated multiply and the divisor normalizing for threads that
// cooperate on one fragment.
type WMMAArg struct {
	Name     string
	Shape    []int
	DTypeIn  DType
	DTypeOut DType
	Divisor  int
}

// NewUOp builds a generic micro-op.
func NewUOp(op Op, dtype DType, src []*UOp, arg any) *UOp {
	return &UOp{Op: op, DType: dtype, Src: src, Arg: arg}
}

// NewConst builds a literal integer node.
func NewConst(dtype DType, val int64) *UOp {
	return &UOp{Op: OpConst, DType: dtype, Arg: val}
}

// NewDefineVar builds a launch-time variable node.
func NewDefineVar(v sym.Var) *UOp {
	return &UOp{Op: OpDefineVar, DType: Int32, Arg: v}
}

// NewDefineGlobal builds a global-buffer declaration for a slot index.
func NewDefineGlobal(slot int, dtype DType) *UOp {
	return &UOp{Op: OpDefineGlobal, DType: dtype, Arg: slot}
}

// NewRange builds a loop-begin node over [lower, upper).
func NewRange(lower, upper *UOp) *UOp {
	return &UOp{Op: OpRange, DType: Int32, Src: []*UOp{lower, upper}}
}

// NewEndRange closes a loop opened by rng.
func NewEndRange(rng *UOp) *UOp {
	return &UOp{Op: OpEndRange, DType: Void, Src: []*UOp{rng}}
}

// NewSpecial builds a hardware dispatch index node.
func NewSpecial(tag string, extent sym.Expr) *UOp {
	return &UOp{Op: OpSpecial, DType: Int32, Arg: SpecialArg{Tag: tag, Extent: extent}}
}

// NewIndex builds an address node for buf at idx.
func NewIndex(buf, idx *UOp) *UOp {
	return &UOp{Op: OpIndex, DType: buf.DType, Src: []*UOp{buf, idx}}
}

// NewLoad builds a load through addr.
func NewLoad(dtype DType, addr *UOp) *UOp {
	return &UOp{Op: OpLoad, DType: dtype, Src: []*UOp{addr}}
}

// NewStore builds a store of val through addr.
func NewStore(addr, val *UOp) *UOp {
	return &UOp{Op: OpStore, DType: Void, Src: []*UOp{addr, val}}
}

// Toposort returns the full upstream dependency closure of u, u included,
// in a deterministic dependencies-first order. Operand graphs share nodes
// and kernels can nest deeply, so the walk is iterative with an explicit
// visited set rather than recursive.
func (u *UOp) Toposort() []*UOp {
	type frame struct {
		node *UOp
		next int // index of the next operand to visit
	}
	var order []*UOp
	visited := map[*UOp]bool{u: true}
	stack := []frame{{node: u}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next < len(top.node.Src) {
			child := top.node.Src[top.next]
			top.next++
			if !visited[child] {
				visited[child] = true
				stack = append(stack, frame{node: child})
			}
			continue
		}
		order = append(order, top.node)
		stack = stack[:len(stack)-1]
	}
	return order
}

// AsExpr lifts a scalar integer operand subtree into a symbolic expression.
// Loop bounds and dispatch extents are built from constants, launch-time
// variables and simple arithmetic on them; anything else is not a valid
// bound and panics.
func (u *UOp) AsExpr() sym.Expr {
	switch u.Op {
	case OpConst:
		return sym.Const(u.Arg.(int64))
	case OpDefineVar:
		return u.Arg.(sym.Var)
	case OpAdd:
		return sym.Add(u.Src[0].AsExpr(), u.Src[1].AsExpr())
	case OpSub:
		return sym.Sub(u.Src[0].AsExpr(), u.Src[1].AsExpr())
	case OpMul:
		return sym.Mul(u.Src[0].AsExpr(), u.Src[1].AsExpr())
	case OpIDiv:
		return sym.Div(u.Src[0].AsExpr(), u.Src[1].AsExpr())
	default:
		panic(fmt.Sprintf("ir: op %s cannot appear in a symbolic bound", u.Op))
	}
}
