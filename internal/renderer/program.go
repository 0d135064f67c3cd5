package renderer

import (
	"fmt"
	"sort"

	"github.com/chukwunonsoprosper/tinygrad/internal/ir"
	"github.com/chukwunonsoprosper/tinygrad/internal/sym"
)

// Program describes one compiled kernel: its rendered source plus the
// structural metadata a runtime needs to launch it. The metadata is
// extracted from the micro-op sequence by a single pass that runs exactly
// once; after construction the descriptor is read-only apart from its
// cached derived properties.
type Program struct {
	Name   string
	Src    string
	Device string

	// UOps is the sequence the program was rendered from. Descriptors
	// rehydrated from a cache may not carry it.
	UOps []*ir.UOp

	// MemEstimate is the total bytes accessed, counting each distinct
	// byte once. It is computed externally (alias analysis is not this
	// layer's job) and passed through into Estimates.
	MemEstimate sym.Expr

	// GlobalSize and LocalSize are the launch-grid templates, filled by
	// the structural pass. Entries may be symbolic. A nil slice means no
	// explicit grid at that level.
	GlobalSize []sym.Expr
	LocalSize  []sym.Expr

	Vars    []sym.Var // launch-time variables, sorted by their ordering key
	Globals []int     // buffer slots the program touches, in declaration order
	Outs    []int     // buffer slots the program writes, deduplicated and sorted

	// ranInit guards the structural pass: a clone of a finalized
	// descriptor must not run it again and corrupt Vars/Outs.
	ranInit bool

	estimates    *Estimates
	functionName string
}

// NewProgram builds a descriptor and, when a micro-op sequence is present,
// runs the structural pass over it. memEstimate may be nil for kernels
// whose distinct-byte traffic is unknown.
func NewProgram(name, src, device string, uops []*ir.UOp, memEstimate sym.Expr) *Program {
	if memEstimate == nil {
		memEstimate = sym.Const(0)
	}
	p := &Program{Name: name, Src: src, Device: device, UOps: uops, MemEstimate: memEstimate}
	if uops != nil {
		one := sym.Expr(sym.Const(1))
		p.GlobalSize = []sym.Expr{one, one, one}
		p.LocalSize = []sym.Expr{one, one, one}
	}
	p.finalize()
	return p
}

// finalize is the single structural pass. It is a no-op on descriptors
// that already ran it (clones, cache rehydrations) and on descriptors
// without a sequence.
func (p *Program) finalize() {
	if p.ranInit || p.UOps == nil {
		return
	}
	for _, u := range p.UOps {
		switch u.Op {
		case ir.OpDefineVar:
			p.Vars = append(p.Vars, u.Arg.(sym.Var))
		case ir.OpDefineGlobal:
			p.Globals = append(p.Globals, u.Arg.(int))
		case ir.OpStore:
			for _, d := range u.Src[0].Toposort() {
				if d.Op == ir.OpDefineGlobal {
					p.Outs = append(p.Outs, d.Arg.(int))
				}
			}
		case ir.OpSpecial:
			arg := u.Arg.(ir.SpecialArg)
			if arg.Tag == "" {
				panic("renderer: dispatch index with empty tag")
			}
			if arg.Tag[0] == 'i' {
				// implicit index: the grid has no explicit local level
				p.LocalSize = nil
			}
			size := p.GlobalSize
			if arg.Tag[0] == 'l' {
				size = p.LocalSize
			}
			axis := int(arg.Tag[len(arg.Tag)-1] - '0')
			if size == nil || axis < 0 || axis >= len(size) {
				panic(fmt.Sprintf("renderer: dispatch index %q outside the declared grid", arg.Tag))
			}
			size[axis] = arg.Extent
		}
	}
	sort.SliceStable(p.Vars, func(i, j int) bool { return p.Vars[i].Less(p.Vars[j]) })
	p.Outs = dedupSorted(p.Outs)
	p.ranInit = true
}

// dedupSorted sorts slots numerically and drops duplicates.
func dedupSorted(xs []int) []int {
	if len(xs) == 0 {
		return xs
	}
	sort.Ints(xs)
	out := xs[:1]
	for _, x := range xs[1:] {
		if x != out[len(out)-1] {
			out = append(out, x)
		}
	}
	return out
}

// Clone returns a copy sharing the immutable parts. The copy keeps the
// finalized state, so rebuilding it with overridden fields (a new Src
// after rendering, say) never re-runs the structural pass.
func (p *Program) Clone() *Program {
	q := *p
	q.estimates = nil
	return &q
}

// WithSrc returns a clone carrying newly rendered source text.
func (p *Program) WithSrc(src string) *Program {
	q := p.Clone()
	q.Src = src
	return q
}

// Estimates returns the cost estimate, computing it on first access. A
// descriptor without a sequence reports zero compute and only the external
// memory figure.
func (p *Program) Estimates() Estimates {
	if p.estimates == nil {
		var est Estimates
		if p.UOps == nil {
			est = NewEstimates(nil, nil, p.MemEstimate)
		} else {
			ops, lds := FlopsMem(p.UOps, true)
			est = Estimates{Ops: ops, Lds: lds, Mem: p.MemEstimate}
		}
		p.estimates = &est
	}
	return *p.estimates
}

// FunctionName returns the sanitized device-language symbol for the
// kernel, computed on first access.
func (p *Program) FunctionName() string {
	if p.functionName == "" {
		p.functionName = ToFunctionName(p.Name)
	}
	return p.functionName
}

// LaunchDims resolves the launch-grid templates against concrete variable
// bindings. The stored templates are not mutated; fresh integer triples
// are returned, nil for a grid level that was never set. Resolution is
// total over the program's variables: a missing binding is an error.
func (p *Program) LaunchDims(bindings map[sym.Var]int64) (global, local []int64, err error) {
	if global, err = resolveDims(p.GlobalSize, bindings); err != nil {
		return nil, nil, fmt.Errorf("global size: %w", err)
	}
	if local, err = resolveDims(p.LocalSize, bindings); err != nil {
		return nil, nil, fmt.Errorf("local size: %w", err)
	}
	return global, local, nil
}

func resolveDims(dims []sym.Expr, bindings map[sym.Var]int64) ([]int64, error) {
	if dims == nil {
		return nil, nil
	}
	out := make([]int64, len(dims))
	for i, d := range dims {
		v, err := d.Eval(bindings)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
