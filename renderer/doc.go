// Copyright 2026 Tinygrad Go Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package renderer is the analysis and description layer between the
// kernel optimizer and the device code generators.
//
// # Overview
//
// The optimizer lowers a tensor computation to a flat sequence of
// micro-ops. This package answers three questions about such a sequence
// without executing it:
//
//   - What does it cost? FlopsMem walks the sequence once, carrying loop
//     trip counts (which may be symbolic) through a multiplier, and
//     reports floating-point operations and load/store bytes.
//   - What does the runtime need to launch it? Program extracts the
//     launch-time variables, buffer slots, output slots and grid
//     templates in a single structural pass, and resolves the grid to
//     concrete dimensions once variable bindings arrive.
//   - What can the hardware accelerate? TensorCore describes a fused
//     multiply-accumulate unit declaratively, including the upcast and
//     thread geometry the optimizer needs to target it.
//
// # Backends
//
// Device backends implement the Renderer interface and register a
// factory under their device identifier:
//
//	import _ "github.com/chukwunonsoprosper/tinygrad/internal/renderer/wgsl"
//
//	r, err := renderer.Lookup("WEBGPU")
//	src, err := r.Render(prog.FunctionName(), uops)
//
// Renderers hold no mutable state; a descriptor that crosses a process
// boundary reconstructs its backend from the registry.
//
// # Caching
//
// Program.Snapshot and FromSnapshot round-trip a descriptor through an
// opaque JSON form for external caches. Rehydrated descriptors carry no
// micro-ops: they still resolve launch dimensions and report the external
// memory estimate, but compute cost reads as zero.
package renderer
