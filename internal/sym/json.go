package sym

import (
	"fmt"

	"github.com/goccy/go-json"
)

// Expressions cross process boundaries inside cached program descriptors, so
// they need a stable wire form. The encoding is a tagged union: exactly one
// of the fields is set per node.
type exprJSON struct {
	Const *int64   `json:"const,omitempty"`
	Var   *varJSON `json:"var,omitempty"`
	Bin   *binJSON `json:"bin,omitempty"`
}

type varJSON struct {
	Name string `json:"name"`
	Min  int64  `json:"min"`
	Max  int64  `json:"max"`
}

type binJSON struct {
	Op string   `json:"op"` // "+", "-", "*", "/"
	A  exprJSON `json:"a"`
	B  exprJSON `json:"b"`
}

func toJSON(e Expr) exprJSON {
	switch e := e.(type) {
	case Const:
		v := int64(e)
		return exprJSON{Const: &v}
	case Var:
		return exprJSON{Var: &varJSON{Name: e.Name, Min: e.Min, Max: e.Max}}
	case binOp:
		return exprJSON{Bin: &binJSON{Op: string(e.op), A: toJSON(e.a), B: toJSON(e.b)}}
	default:
		panic(fmt.Sprintf("sym: unencodable expression type %T", e))
	}
}

func fromJSON(j exprJSON) (Expr, error) {
	switch {
	case j.Const != nil:
		return Const(*j.Const), nil
	case j.Var != nil:
		return Var{Name: j.Var.Name, Min: j.Var.Min, Max: j.Var.Max}, nil
	case j.Bin != nil:
		a, err := fromJSON(j.Bin.A)
		if err != nil {
			return nil, err
		}
		b, err := fromJSON(j.Bin.B)
		if err != nil {
			return nil, err
		}
		switch j.Bin.Op {
		case "+":
			return Add(a, b), nil
		case "-":
			return Sub(a, b), nil
		case "*":
			return Mul(a, b), nil
		case "/":
			return Div(a, b), nil
		default:
			return nil, fmt.Errorf("sym: unknown operator %q", j.Bin.Op)
		}
	default:
		return nil, fmt.Errorf("sym: empty expression node")
	}
}

// MarshalExpr encodes an expression to its JSON wire form.
func MarshalExpr(e Expr) ([]byte, error) {
	return json.Marshal(toJSON(e))
}

// UnmarshalExpr decodes an expression from its JSON wire form. Decoding
// goes through the smart constructors, so the result is already simplified.
func UnmarshalExpr(data []byte) (Expr, error) {
	var j exprJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, fmt.Errorf("sym: decode expression: %w", err)
	}
	return fromJSON(j)
}
