// Package wgsl renders micro-op sequences to WGSL compute shaders for the
// WebGPU device.
package wgsl

import (
	"fmt"
	"strings"

	"github.com/chukwunonsoprosper/tinygrad/internal/ir"
	"github.com/chukwunonsoprosper/tinygrad/internal/renderer"
)

// workgroupSize is the default number of threads per workgroup when the
// kernel does not declare local dispatch indices.
const workgroupSize = 256

func init() {
	renderer.Register("WEBGPU", func() renderer.Renderer { return New() })
}

// Renderer emits WGSL source. It holds no state, so reconstructing one
// from the registry is free.
type Renderer struct{}

// New returns a WGSL renderer.
func New() *Renderer { return &Renderer{} }

// Device returns the backend identifier.
func (r *Renderer) Device() string { return "WEBGPU" }

// Capabilities declares the WebGPU feature set: sized workgroups with
// shared memory, no native float4 arithmetic, no tensor cores.
func (r *Renderer) Capabilities() renderer.Capabilities {
	return renderer.Capabilities{
		SupportsFloat4: false,
		HasLocal:       true,
		HasShared:      true,
		SharedMax:      16384,
		GlobalMax:      &[3]int64{65535, 65535, 65535},
		LocalMax:       &[3]int64{256, 256, 64},
	}
}

// codeForOp maps ALU opcodes to WGSL expression templates.
var codeForOp = map[ir.Op]func(args ...string) string{
	ir.OpAdd:    func(a ...string) string { return fmt.Sprintf("(%s+%s)", a[0], a[1]) },
	ir.OpSub:    func(a ...string) string { return fmt.Sprintf("(%s-%s)", a[0], a[1]) },
	ir.OpMul:    func(a ...string) string { return fmt.Sprintf("(%s*%s)", a[0], a[1]) },
	ir.OpFDiv:   func(a ...string) string { return fmt.Sprintf("(%s/%s)", a[0], a[1]) },
	ir.OpIDiv:   func(a ...string) string { return fmt.Sprintf("(%s/%s)", a[0], a[1]) },
	ir.OpMod:    func(a ...string) string { return fmt.Sprintf("(%s%%%s)", a[0], a[1]) },
	ir.OpNeg:    func(a ...string) string { return fmt.Sprintf("(-%s)", a[0]) },
	ir.OpMax:    func(a ...string) string { return fmt.Sprintf("max(%s,%s)", a[0], a[1]) },
	ir.OpMulAcc: func(a ...string) string { return fmt.Sprintf("fma(%s,%s,%s)", a[0], a[1], a[2]) },
	ir.OpCmpLt:  func(a ...string) string { return fmt.Sprintf("(%s<%s)", a[0], a[1]) },
	ir.OpCmpNe:  func(a ...string) string { return fmt.Sprintf("(%s!=%s)", a[0], a[1]) },
	ir.OpWhere:  func(a ...string) string { return fmt.Sprintf("select(%s,%s,%s)", a[2], a[1], a[0]) },
	ir.OpExp2:   func(a ...string) string { return fmt.Sprintf("exp2(%s)", a[0]) },
	ir.OpLog2:   func(a ...string) string { return fmt.Sprintf("log2(%s)", a[0]) },
	ir.OpSin:    func(a ...string) string { return fmt.Sprintf("sin(%s)", a[0]) },
	ir.OpSqrt:   func(a ...string) string { return fmt.Sprintf("sqrt(%s)", a[0]) },
	ir.OpRecip:  func(a ...string) string { return fmt.Sprintf("(1.0/%s)", a[0]) },
}

// wgslType maps an IR dtype to its WGSL scalar type.
func wgslType(d ir.DType) (string, error) {
	switch d.Kind {
	case ir.KindFloat32:
		return "f32", nil
	case ir.KindFloat16:
		return "f16", nil
	case ir.KindInt32:
		return "i32", nil
	case ir.KindBool:
		return "bool", nil
	default:
		return "", fmt.Errorf("wgsl: no device type for %s", d)
	}
}

// builtinIndex maps a dispatch tag to the WGSL builtin expression for it.
func builtinIndex(tag string) (string, error) {
	if tag == "" {
		return "", fmt.Errorf("wgsl: empty dispatch tag")
	}
	axes := [3]string{"x", "y", "z"}
	axis := int(tag[len(tag)-1] - '0')
	if axis < 0 || axis > 2 {
		return "", fmt.Errorf("wgsl: dispatch tag %q has no axis", tag)
	}
	if tag[0] == 'l' {
		return "i32(local_invocation_id." + axes[axis] + ")", nil
	}
	return "i32(global_invocation_id." + axes[axis] + ")", nil
}

// Render produces a complete compute shader for the sequence. Rendering
// is deterministic: names are assigned in sequence order and nothing
// depends on map iteration.
func (r *Renderer) Render(name string, uops []*ir.UOp) (string, error) {
	var decls, body strings.Builder
	names := map[*ir.UOp]string{}
	depth, nvars := 1, 0
	emit := func(format string, args ...any) {
		body.WriteString(strings.Repeat("  ", depth))
		fmt.Fprintf(&body, format, args...)
		body.WriteByte('\n')
	}

	for i, u := range uops {
		switch u.Op {
		case ir.OpDefineGlobal:
			slot := u.Arg.(int)
			ty, err := wgslType(ir.DType{Kind: u.DType.Kind, Count: 1})
			if err != nil {
				return "", err
			}
			fmt.Fprintf(&decls, "@group(0) @binding(%d) var<storage, read_write> data%d: array<%s>;\n", slot, slot, ty)
			names[u] = fmt.Sprintf("data%d", slot)
		case ir.OpDefineVar:
			// launch-time variables arrive through a uniform
			v := fmt.Sprintf("%v", u.Arg)
			fmt.Fprintf(&decls, "@group(1) @binding(%d) var<uniform> %s: i32;\n", nvars, v)
			nvars++
			names[u] = v
		case ir.OpConst:
			ty, err := wgslType(u.DType)
			if err != nil {
				return "", err
			}
			if ty == "f32" || ty == "f16" {
				names[u] = fmt.Sprintf("%s(%d.0)", ty, u.Arg.(int64))
			} else {
				names[u] = fmt.Sprintf("%d", u.Arg.(int64))
			}
		case ir.OpSpecial:
			idx, err := builtinIndex(u.Arg.(ir.SpecialArg).Tag)
			if err != nil {
				return "", err
			}
			names[u] = u.Arg.(ir.SpecialArg).Tag
			emit("let %s = %s;", names[u], idx)
		case ir.OpRange:
			v := fmt.Sprintf("ridx%d", i)
			names[u] = v
			emit("for (var %s = %s; %s < %s; %s++) {", v, names[u.Src[0]], v, names[u.Src[1]], v)
			depth++
		case ir.OpEndRange:
			depth--
			emit("}")
		case ir.OpIf:
			emit("if (%s) {", names[u.Src[0]])
			depth++
		case ir.OpEndIf:
			depth--
			emit("}")
		case ir.OpIndex:
			names[u] = fmt.Sprintf("%s[%s]", names[u.Src[0]], names[u.Src[1]])
		case ir.OpLoad:
			v := fmt.Sprintf("val%d", i)
			names[u] = v
			emit("let %s = %s;", v, names[u.Src[0]])
		case ir.OpStore:
			emit("%s = %s;", names[u.Src[0]], names[u.Src[1]])
		case ir.OpCast:
			ty, err := wgslType(u.DType)
			if err != nil {
				return "", err
			}
			names[u] = fmt.Sprintf("%s(%s)", ty, names[u.Src[0]])
		default:
			render, ok := codeForOp[u.Op]
			if !ok {
				return "", fmt.Errorf("wgsl: cannot render op %s", u.Op)
			}
			args := make([]string, len(u.Src))
			for j, s := range u.Src {
				args[j] = names[s]
			}
			v := fmt.Sprintf("alu%d", i)
			names[u] = v
			ty, err := wgslType(u.DType)
			if err != nil {
				return "", err
			}
			emit("let %s: %s = %s;", v, ty, render(args...))
		}
	}

	var src strings.Builder
	src.WriteString(decls.String())
	fmt.Fprintf(&src, "@compute @workgroup_size(%d)\n", workgroupSize)
	fmt.Fprintf(&src, "fn %s(@builtin(global_invocation_id) global_invocation_id: vec3<u32>,\n", name)
	src.WriteString("      @builtin(local_invocation_id) local_invocation_id: vec3<u32>) {\n")
	src.WriteString(body.String())
	src.WriteString("}\n")
	return src.String(), nil
}
