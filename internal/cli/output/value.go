package output

import (
	"math"

	"github.com/leapstack-labs/leaplisp/pkg/core"
	"github.com/leapstack-labs/leaplisp/pkg/symbol"
)

// Node is the structured form of a value used for JSON and YAML output.
type Node struct {
	Kind  string `json:"kind" yaml:"kind"`
	Value any    `json:"value,omitempty" yaml:"value,omitempty"`
	Items []Node `json:"items,omitempty" yaml:"items,omitempty"`
}

// NodeOf converts a value into a Node tree. Callables are reduced to
// their printed form.
func NodeOf(v core.Value) Node {
	kind := core.KindOf(v).String()
	switch x := v.(type) {
	case core.List:
		items := make([]Node, len(x))
		for i, item := range x {
			items[i] = NodeOf(item)
		}
		return Node{Kind: kind, Items: items}
	case *symbol.Symbol:
		return Node{Kind: kind, Value: x.Name()}
	case float64:
		// JSON has no encoding for NaN or infinities
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return Node{Kind: kind, Value: core.Repr(x)}
		}
		return Node{Kind: kind, Value: x}
	case int64, string:
		return Node{Kind: kind, Value: x}
	default:
		return Node{Kind: kind, Value: core.Repr(v)}
	}
}

// Result is the structured output of one evaluation.
type Result struct {
	Input string `json:"input,omitempty" yaml:"input,omitempty"`
	Repr  string `json:"repr" yaml:"repr"`
	Value Node   `json:"value" yaml:"value"`
}

// ResultOf builds the structured output for an evaluated value.
func ResultOf(input string, v core.Value) Result {
	return Result{Input: input, Repr: core.Repr(v), Value: NodeOf(v)}
}

// Value renders an evaluated value: its printed form in text mode, a
// Result in JSON or YAML mode.
func (r *Renderer) Value(input string, v core.Value) error {
	if ok, err := r.Encode(ResultOf(input, v)); ok {
		return err
	}
	r.Println(r.styles.Value.Render(core.Repr(v)))
	return nil
}
