// Copyright 2026 Tinygrad Go Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package renderer

import (
	"github.com/chukwunonsoprosper/tinygrad/internal/ir"
	"github.com/chukwunonsoprosper/tinygrad/internal/renderer"
	"github.com/chukwunonsoprosper/tinygrad/internal/sym"
)

// TensorCore describes one fused multiply-accumulate unit: D = A*B + C,
// where A is MxK, B is KxN, and C and D are MxN.
type TensorCore = renderer.TensorCore

// Axis pairs a logical tensor-core dimension with a size along it.
type Axis = renderer.Axis

// SwizzlePattern remaps operand access for a tensor-core fragment.
type SwizzlePattern = renderer.SwizzlePattern

// Estimates is the static cost of a kernel: flops, load/store bytes, and
// externally supplied distinct-byte traffic.
type Estimates = renderer.Estimates

// Program describes one compiled kernel: rendered source plus the
// structural metadata a runtime needs to launch it.
type Program = renderer.Program

// Capabilities declares what a device backend can do.
type Capabilities = renderer.Capabilities

// Renderer turns a named micro-op sequence into device source text.
type Renderer = renderer.Renderer

// ErrUnknownDevice is returned by Lookup for an unregistered device.
var ErrUnknownDevice = renderer.ErrUnknownDevice

// NewProgram builds a descriptor and runs the structural pass when a
// micro-op sequence is present.
func NewProgram(name, src, device string, uops []*ir.UOp, memEstimate sym.Expr) *Program {
	return renderer.NewProgram(name, src, device, uops, memEstimate)
}

// FromSnapshot rebuilds a descriptor from its cache wire form.
func FromSnapshot(data []byte) (*Program, error) { return renderer.FromSnapshot(data) }

// FlopsMem runs the single-pass cost estimate over a micro-op sequence.
func FlopsMem(uops []*ir.UOp, ignoreIndexing bool) (ops, lds sym.Expr) {
	return renderer.FlopsMem(uops, ignoreIndexing)
}

// NewEstimates builds an estimate from possibly-nil components.
func NewEstimates(ops, lds, mem sym.Expr) Estimates { return renderer.NewEstimates(ops, lds, mem) }

// ToFunctionName maps a kernel name to a device-safe identifier.
func ToFunctionName(name string) string { return renderer.ToFunctionName(name) }

// Register makes a backend available under its device identifier.
func Register(device string, factory func() Renderer) { renderer.Register(device, factory) }

// Lookup reconstructs a fresh renderer for the device.
func Lookup(device string) (Renderer, error) { return renderer.Lookup(device) }

// Devices returns the registered device identifiers.
func Devices() []string { return renderer.Devices() }
