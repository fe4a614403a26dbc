package core

import "github.com/leapstack-labs/leaplisp/pkg/symbol"

// Truthy reports whether v counts as true in a conditional. The empty
// List, Integer 0, Float 0 and the empty String are false; everything
// else is true.
func Truthy(v Value) bool {
	switch val := v.(type) {
	case List:
		return len(val) != 0
	case int64:
		return val != 0
	case float64:
		return val != 0
	case string:
		return val != ""
	}
	return true
}

// Equal compares two values: numbers numerically across Integer and
// Float, strings by content, symbols and callables by identity, lists
// element-wise.
func Equal(a, b Value) bool {
	switch x := a.(type) {
	case int64:
		switch y := b.(type) {
		case int64:
			return x == y
		case float64:
			return float64(x) == y
		}
		return false
	case float64:
		switch y := b.(type) {
		case int64:
			return x == float64(y)
		case float64:
			return x == y
		}
		return false
	case string:
		y, ok := b.(string)
		return ok && x == y
	case *symbol.Symbol:
		y, ok := b.(*symbol.Symbol)
		return ok && x == y
	case List:
		y, ok := b.(List)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if !Equal(x[i], y[i]) {
				return false
			}
		}
		return true
	case *Builtin:
		y, ok := b.(*Builtin)
		return ok && x == y
	case *Closure:
		y, ok := b.(*Closure)
		return ok && x == y
	}
	return false
}
