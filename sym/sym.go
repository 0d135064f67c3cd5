// Copyright 2026 Tinygrad Go Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package sym re-exports integer-valued symbolic expressions: the
// variable contract kernels depend on at launch time.
package sym

import "github.com/chukwunonsoprosper/tinygrad/internal/sym"

// Expr is an integer-valued expression that may reference variables.
type Expr = sym.Expr

// Const is a literal integer expression.
type Const = sym.Const

// Var is a named symbolic variable with an inclusive value range.
type Var = sym.Var

// ErrUnbound is returned by Eval when a referenced variable has no
// binding.
var ErrUnbound = sym.ErrUnbound

// NewVar creates a variable with the given name and range.
func NewVar(name string, min, max int64) Var { return sym.NewVar(name, min, max) }

// Add returns a+b with constant folding.
func Add(a, b Expr) Expr { return sym.Add(a, b) }

// Sub returns a-b with constant folding.
func Sub(a, b Expr) Expr { return sym.Sub(a, b) }

// Mul returns a*b with constant folding.
func Mul(a, b Expr) Expr { return sym.Mul(a, b) }

// Div returns a/b (integer division) with constant folding.
func Div(a, b Expr) Expr { return sym.Div(a, b) }

// Prod multiplies a slice of expressions.
func Prod(exprs []Expr) Expr { return sym.Prod(exprs) }

// MarshalExpr encodes an expression to its JSON wire form.
func MarshalExpr(e Expr) ([]byte, error) { return sym.MarshalExpr(e) }

// UnmarshalExpr decodes an expression from its JSON wire form.
func UnmarshalExpr(data []byte) (Expr, error) { return sym.UnmarshalExpr(data) }
