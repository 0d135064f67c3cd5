// Package sym provides integer-valued symbolic expressions.
//
// Kernel shapes are not always known at compile time: loop trip counts and
// launch-grid dimensions may depend on variables that only get concrete
// values at launch. Expressions built here carry those variables through
// cost estimation and launch-dimension templates, and resolve to plain
// integers once bindings are supplied.
package sym

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrUnbound is returned by Eval when an expression references a variable
// that has no binding.
var ErrUnbound = errors.New("unbound symbolic variable")

// Expr is an integer-valued expression that may reference variables.
// Implementations are immutable values.
type Expr interface {
	// Eval resolves the expression to a concrete integer. It fails with
	// ErrUnbound if a referenced variable is missing from bindings.
	Eval(bindings map[Var]int64) (int64, error)

	// Simplify returns the simplest equivalent expression. Fully constant
	// subtrees collapse to Const.
	Simplify() Expr

	fmt.Stringer
}

// Const is a literal integer expression.
type Const int64

// Eval returns the literal value.
func (c Const) Eval(map[Var]int64) (int64, error) { return int64(c), nil }

// Simplify returns the constant unchanged.
func (c Const) Simplify() Expr { return c }

func (c Const) String() string { return strconv.FormatInt(int64(c), 10) }

// Var is a named symbolic variable with an inclusive value range.
// It is a comparable value type, usable as a map key for bindings.
type Var struct {
	Name string
	Min  int64
	Max  int64
}

// NewVar creates a variable with the given name and range.
func NewVar(name string, min, max int64) Var {
	return Var{Name: name, Min: min, Max: max}
}

// Less reports the stable ordering of variables: by name, then range.
// Program descriptors sort their variable lists with this, so the order is
// deterministic across runs for identical variable sets.
func (v Var) Less(o Var) bool {
	if v.Name != o.Name {
		return v.Name < o.Name
	}
	if v.Min != o.Min {
		return v.Min < o.Min
	}
	return v.Max < o.Max
}

// Eval looks the variable up in bindings.
func (v Var) Eval(bindings map[Var]int64) (int64, error) {
	val, ok := bindings[v]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnbound, v.Name)
	}
	return val, nil
}

// Simplify returns the variable unchanged.
func (v Var) Simplify() Expr { return v }

func (v Var) String() string { return v.Name }

// binOp is an interior node of an expression tree. Only the smart
// constructors below build these, so a binOp never holds a foldable pair.
type binOp struct {
	op   byte // '+', '-', '*', '/'
	a, b Expr
}

func (e binOp) Eval(bindings map[Var]int64) (int64, error) {
	a, err := e.a.Eval(bindings)
	if err != nil {
		return 0, err
	}
	b, err := e.b.Eval(bindings)
	if err != nil {
		return 0, err
	}
	switch e.op {
	case '+':
		return a + b, nil
	case '-':
		return a - b, nil
	case '*':
		return a * b, nil
	default:
		if b == 0 {
			return 0, fmt.Errorf("symbolic division by zero in %s", e)
		}
		return a / b, nil
	}
}

// Simplify rebuilds the tree through the smart constructors, folding any
// subtrees that became constant.
func (e binOp) Simplify() Expr {
	a, b := e.a.Simplify(), e.b.Simplify()
	switch e.op {
	case '+':
		return Add(a, b)
	case '-':
		return Sub(a, b)
	case '*':
		return Mul(a, b)
	default:
		return Div(a, b)
	}
}

func (e binOp) String() string {
	return fmt.Sprintf("(%s%c%s)", e.a, e.op, e.b)
}

// Add returns a+b, folding constants and eliminating zero terms.
func Add(a, b Expr) Expr {
	ca, aok := a.(Const)
	cb, bok := b.(Const)
	switch {
	case aok && bok:
		return ca + cb
	case aok && ca == 0:
		return b
	case bok && cb == 0:
		return a
	}
	return binOp{'+', a, b}
}

// Sub returns a-b, folding constants.
func Sub(a, b Expr) Expr {
	ca, aok := a.(Const)
	cb, bok := b.(Const)
	switch {
	case aok && bok:
		return ca - cb
	case bok && cb == 0:
		return a
	}
	return binOp{'-', a, b}
}

// Mul returns a*b, folding constants and eliminating identity factors.
func Mul(a, b Expr) Expr {
	ca, aok := a.(Const)
	cb, bok := b.(Const)
	switch {
	case aok && bok:
		return ca * cb
	case aok && ca == 0, bok && cb == 0:
		return Const(0)
	case aok && ca == 1:
		return b
	case bok && cb == 1:
		return a
	}
	return binOp{'*', a, b}
}

// Div returns a/b (integer division), folding constants. Division by a
// constant zero is left unfolded and surfaces as an error at Eval time.
func Div(a, b Expr) Expr {
	ca, aok := a.(Const)
	cb, bok := b.(Const)
	switch {
	case aok && bok && cb != 0:
		return ca / cb
	case bok && cb == 1:
		return a
	}
	return binOp{'/', a, b}
}

// Prod multiplies a slice of expressions, returning 1 for an empty slice.
func Prod(exprs []Expr) Expr {
	out := Expr(Const(1))
	for _, e := range exprs {
		out = Mul(out, e)
	}
	return out
}
