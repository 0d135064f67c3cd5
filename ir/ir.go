// Copyright 2026 Tinygrad Go Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package ir re-exports the micro-op intermediate representation: the
// read-only node structure the optimizer emits and the analysis layer
// consumes.
package ir

import (
	"github.com/chukwunonsoprosper/tinygrad/internal/ir"
	"github.com/chukwunonsoprosper/tinygrad/internal/sym"
)

// UOp is one micro-op in a linearized kernel.
type UOp = ir.UOp

// Op is the opcode of a micro-op.
type Op = ir.Op

// Opcodes.
const (
	OpConst        = ir.OpConst
	OpDefineVar    = ir.OpDefineVar
	OpDefineGlobal = ir.OpDefineGlobal
	OpDefineLocal  = ir.OpDefineLocal
	OpRange        = ir.OpRange
	OpEndRange     = ir.OpEndRange
	OpSpecial      = ir.OpSpecial
	OpIf           = ir.OpIf
	OpEndIf        = ir.OpEndIf
	OpIndex        = ir.OpIndex
	OpLoad         = ir.OpLoad
	OpStore        = ir.OpStore
	OpAdd          = ir.OpAdd
	OpSub          = ir.OpSub
	OpMul          = ir.OpMul
	OpFDiv         = ir.OpFDiv
	OpIDiv         = ir.OpIDiv
	OpMod          = ir.OpMod
	OpNeg          = ir.OpNeg
	OpMax          = ir.OpMax
	OpMulAcc       = ir.OpMulAcc
	OpCmpLt        = ir.OpCmpLt
	OpCmpNe        = ir.OpCmpNe
	OpWhere        = ir.OpWhere
	OpExp2         = ir.OpExp2
	OpLog2         = ir.OpLog2
	OpSin          = ir.OpSin
	OpSqrt         = ir.OpSqrt
	OpRecip        = ir.OpRecip
	OpCast         = ir.OpCast
	OpWMMA         = ir.OpWMMA
)

// DType is the result type of a micro-op.
type DType = ir.DType

// Kind represents the scalar base type of an IR value.
type Kind = ir.Kind

// Scalar dtypes.
var (
	Float16  = ir.Float16
	BFloat16 = ir.BFloat16
	Float32  = ir.Float32
	Float64  = ir.Float64
	Int32    = ir.Int32
	Int64    = ir.Int64
	Uint8    = ir.Uint8
	Bool     = ir.Bool
	Void     = ir.Void
)

// SpecialArg is the payload of an OpSpecial node.
type SpecialArg = ir.SpecialArg

// WMMAArg is the payload of an OpWMMA node.
type WMMAArg = ir.WMMAArg

// Node constructors.

// NewUOp builds a generic micro-op.
func NewUOp(op Op, dtype DType, src []*UOp, arg any) *UOp { return ir.NewUOp(op, dtype, src, arg) }

// NewConst builds a literal integer node.
func NewConst(dtype DType, val int64) *UOp { return ir.NewConst(dtype, val) }

// NewDefineVar builds a launch-time variable node.
func NewDefineVar(v sym.Var) *UOp { return ir.NewDefineVar(v) }

// NewDefineGlobal builds a global-buffer declaration for a slot index.
func NewDefineGlobal(slot int, dtype DType) *UOp { return ir.NewDefineGlobal(slot, dtype) }

// NewRange builds a loop-begin node over [lower, upper).
func NewRange(lower, upper *UOp) *UOp { return ir.NewRange(lower, upper) }

// NewEndRange closes a loop opened by rng.
func NewEndRange(rng *UOp) *UOp { return ir.NewEndRange(rng) }

// NewSpecial builds a hardware dispatch index node.
func NewSpecial(tag string, extent sym.Expr) *UOp { return ir.NewSpecial(tag, extent) }

// NewIndex builds an address node for buf at idx.
func NewIndex(buf, idx *UOp) *UOp { return ir.NewIndex(buf, idx) }

// NewLoad builds a load through addr.
func NewLoad(dtype DType, addr *UOp) *UOp { return ir.NewLoad(dtype, addr) }

// NewStore builds a store of val through addr.
func NewStore(addr, val *UOp) *UOp { return ir.NewStore(addr, val) }
