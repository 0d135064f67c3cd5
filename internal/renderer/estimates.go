package renderer

import (
	"github.com/chukwunonsoprosper/tinygrad/internal/ir"
	"github.com/chukwunonsoprosper/tinygrad/internal/sym"
)

// Estimates is the static cost of a kernel. All three fields may be
// symbolic when trip counts depend on launch-time variables.
type Estimates struct {
	// Ops is the number of floating-point operations.
	Ops sym.Expr
	// Lds is the bytes touched by loads and stores, counting repeated
	// access every time.
	Lds sym.Expr
	// Mem is the bytes touched counting each distinct byte once. It is
	// supplied externally: deduplication needs alias analysis, which is
	// outside the estimator's scope.
	Mem sym.Expr
}

// NewEstimates builds an estimate from possibly-nil components, defaulting
// each to zero.
func NewEstimates(ops, lds, mem sym.Expr) Estimates {
	if ops == nil {
		ops = sym.Const(0)
	}
	if lds == nil {
		lds = sym.Const(0)
	}
	if mem == nil {
		mem = sym.Const(0)
	}
	return Estimates{Ops: ops, Lds: lds, Mem: mem}
}

// Add returns the component-wise sum of two estimates.
func (e Estimates) Add(o Estimates) Estimates {
	return Estimates{
		Ops: sym.Add(e.Ops, o.Ops),
		Lds: sym.Add(e.Lds, o.Lds),
		Mem: sym.Add(e.Mem, o.Mem),
	}
}

// Simplify collapses each component to its simplest equivalent form.
func (e Estimates) Simplify() Estimates {
	return Estimates{Ops: e.Ops.Simplify(), Lds: e.Lds.Simplify(), Mem: e.Mem.Simplify()}
}

// FlopsMem runs a single forward pass over the micro-op sequence and
// returns the floating-point operation count and the load/store byte
// count. Both may be symbolic. Loop nesting scales everything inside by
// the trip count; hardware dispatch indices scale the whole remainder and
// are never closed. With ignoreIndexing set, address computation feeding
// loads and stores and the predicates of conditionals are not charged,
// since they are not user-visible compute.
//
// Unrecognized opcodes contribute nothing. An unmatched loop end is a
// malformed sequence and panics: a silently wrong cost would corrupt the
// scheduling decisions built on top of it.
func FlopsMem(uops []*ir.UOp, ignoreIndexing bool) (ops, lds sym.Expr) {
	ops, lds = sym.Const(0), sym.Const(0)
	mults := sym.Expr(sym.Const(1))
	var multStack []sym.Expr

	dontCount := map[*ir.UOp]bool{}
	if ignoreIndexing {
		mark := func(u *ir.UOp) {
			for _, d := range u.Toposort() {
				dontCount[d] = true
			}
		}
		for _, u := range uops {
			switch u.Op {
			case ir.OpLoad, ir.OpStore:
				mark(u.Src[0])
				if len(u.Src) > 2 {
					mark(u.Src[2])
				}
			case ir.OpIf:
				mark(u.Src[0])
			}
		}
	}

	for _, u := range uops {
		switch u.Op {
		case ir.OpRange:
			multStack = append(multStack, mults)
			trip := sym.Sub(u.Src[1].AsExpr(), u.Src[0].AsExpr()).Simplify()
			mults = sym.Mul(mults, trip)
		case ir.OpEndRange:
			if len(multStack) == 0 {
				panic("renderer: loop end without a matching loop begin")
			}
			mults = multStack[len(multStack)-1]
			multStack = multStack[:len(multStack)-1]
		case ir.OpSpecial:
			// dispatch indices are flat scopes, they cannot be closed
			mults = sym.Mul(mults, u.Arg.(ir.SpecialArg).Extent)
		case ir.OpLoad:
			lds = sym.Add(lds, sym.Mul(sym.Const(int64(u.DType.ItemSize())), mults))
		case ir.OpStore:
			lds = sym.Add(lds, sym.Mul(sym.Const(int64(u.Src[1].DType.ItemSize())), mults))
		case ir.OpWMMA:
			if dontCount[u] {
				continue
			}
			arg := u.Arg.(ir.WMMAArg)
			n := int64(2)
			for _, s := range arg.Shape {
				n *= int64(s)
			}
			ops = sym.Add(ops, sym.Mul(sym.Const(n/int64(arg.Divisor)), mults))
		default:
			if u.Op.IsALU() && !dontCount[u] {
				per := int64(u.DType.Count)
				if u.Op == ir.OpMulAcc {
					per *= 2
				}
				ops = sym.Add(ops, sym.Mul(sym.Const(per), mults))
			}
		}
	}
	return ops, lds
}
