package renderer

import (
	"fmt"

	"github.com/goccy/go-json"

	"github.com/chukwunonsoprosper/tinygrad/internal/sym"
)

// programJSON is the cache wire form of a Program. The micro-op sequence
// is deliberately absent: a rehydrated descriptor answers launch and
// memory questions but reports zero compute, per the Estimates contract.
type programJSON struct {
	Name        string            `json:"name"`
	Src         string            `json:"src"`
	Device      string            `json:"device"`
	MemEstimate json.RawMessage   `json:"mem_estimate"`
	GlobalSize  []json.RawMessage `json:"global_size,omitempty"`
	LocalSize   []json.RawMessage `json:"local_size,omitempty"`
	Vars        []sym.Var         `json:"vars,omitempty"`
	Globals     []int             `json:"globals,omitempty"`
	Outs        []int             `json:"outs,omitempty"`
}

func marshalDims(dims []sym.Expr) ([]json.RawMessage, error) {
	if dims == nil {
		return nil, nil
	}
	out := make([]json.RawMessage, len(dims))
	for i, d := range dims {
		enc, err := sym.MarshalExpr(d)
		if err != nil {
			return nil, err
		}
		out[i] = enc
	}
	return out, nil
}

func unmarshalDims(raw []json.RawMessage) ([]sym.Expr, error) {
	if raw == nil {
		return nil, nil
	}
	out := make([]sym.Expr, len(raw))
	for i, r := range raw {
		e, err := sym.UnmarshalExpr(r)
		if err != nil {
			return nil, err
		}
		out[i] = e
	}
	return out, nil
}

// Snapshot encodes the descriptor for an external cache. Symbolic launch
// templates survive the round trip.
func (p *Program) Snapshot() ([]byte, error) {
	mem, err := sym.MarshalExpr(p.MemEstimate)
	if err != nil {
		return nil, fmt.Errorf("snapshot %q: %w", p.Name, err)
	}
	gs, err := marshalDims(p.GlobalSize)
	if err != nil {
		return nil, fmt.Errorf("snapshot %q: %w", p.Name, err)
	}
	ls, err := marshalDims(p.LocalSize)
	if err != nil {
		return nil, fmt.Errorf("snapshot %q: %w", p.Name, err)
	}
	return json.Marshal(programJSON{
		Name: p.Name, Src: p.Src, Device: p.Device, MemEstimate: mem,
		GlobalSize: gs, LocalSize: ls,
		Vars: p.Vars, Globals: p.Globals, Outs: p.Outs,
	})
}

// FromSnapshot rebuilds a descriptor from its cache form. The result
// carries no micro-op sequence and is already finalized, so the structural
// pass never re-runs on it.
func FromSnapshot(data []byte) (*Program, error) {
	var j programJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, fmt.Errorf("decode program snapshot: %w", err)
	}
	mem, err := sym.UnmarshalExpr(j.MemEstimate)
	if err != nil {
		return nil, fmt.Errorf("decode program snapshot: %w", err)
	}
	gs, err := unmarshalDims(j.GlobalSize)
	if err != nil {
		return nil, fmt.Errorf("decode program snapshot: %w", err)
	}
	ls, err := unmarshalDims(j.LocalSize)
	if err != nil {
		return nil, fmt.Errorf("decode program snapshot: %w", err)
	}
	return &Program{
		Name: j.Name, Src: j.Src, Device: j.Device, MemEstimate: mem,
		GlobalSize: gs, LocalSize: ls,
		Vars: j.Vars, Globals: j.Globals, Outs: j.Outs,
		ranInit: true,
	}, nil
}
