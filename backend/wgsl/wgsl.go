// Copyright 2026 Tinygrad Go Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package wgsl exposes the WebGPU shader renderer. Importing it registers
// the backend under the "WEBGPU" device identifier.
package wgsl

import "github.com/chukwunonsoprosper/tinygrad/internal/renderer/wgsl"

// Renderer emits WGSL compute shaders from micro-op sequences.
type Renderer = wgsl.Renderer

// New returns a WGSL renderer.
func New() *Renderer { return wgsl.New() }
