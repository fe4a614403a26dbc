package core

import "github.com/leapstack-labs/leaplisp/pkg/symbol"

// Value is a runtime value or an unevaluated expression.
//
// The set of concrete types is closed:
//
//	int64           Integer
//	float64         Float
//	string          String
//	*symbol.Symbol  Symbol
//	List            List (also the canonical "nothing" when empty)
//	*Builtin        native callable
//	*Closure        user-defined callable
type Value any

// Kind classifies a Value.
type Kind int

const (
	KindInvalid Kind = iota
	KindInt
	KindFloat
	KindString
	KindSymbol
	KindList
	KindBuiltin
	KindClosure
)

var kindNames = map[Kind]string{
	KindInvalid: "invalid",
	KindInt:     "integer",
	KindFloat:   "float",
	KindString:  "string",
	KindSymbol:  "symbol",
	KindList:    "list",
	KindBuiltin: "builtin",
	KindClosure: "closure",
}

func (k Kind) String() string {
	return kindNames[k]
}

// KindOf returns the kind of v, or KindInvalid for values outside the
// closed set.
func KindOf(v Value) Kind {
	switch v.(type) {
	case int64:
		return KindInt
	case float64:
		return KindFloat
	case string:
		return KindString
	case *symbol.Symbol:
		return KindSymbol
	case List:
		return KindList
	case *Builtin:
		return KindBuiltin
	case *Closure:
		return KindClosure
	default:
		return KindInvalid
	}
}

// List is an ordered sequence of values.
type List []Value

// Nil returns the empty List.
func Nil() List {
	return List{}
}

// IsNil reports whether v is the empty List.
func IsNil(v Value) bool {
	l, ok := v.(List)
	return ok && len(l) == 0
}

// Bool converts a Go boolean to Integer 1 or 0.
func Bool(b bool) Value {
	if b {
		return int64(1)
	}
	return int64(0)
}

// BuiltinFunc is the signature of a native function. env is the global
// frame of the calling session.
type BuiltinFunc func(env *Environment, args []Value) (Value, error)

// Builtin is a native callable.
type Builtin struct {
	Name string
	// Arity is the exact argument count, or -1 for variadic builtins.
	Arity int
	Fn    BuiltinFunc
}

// Call checks the argument count and invokes the native function. A nil
// result is normalized to the empty List.
func (b *Builtin) Call(env *Environment, args []Value) (Value, error) {
	if b.Arity >= 0 && len(args) != b.Arity {
		return nil, Errorf(ErrArityMismatch, "%s expects %d argument(s), got %d", b.Name, b.Arity, len(args))
	}
	v, err := b.Fn(env, args)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return Nil(), nil
	}
	return v, nil
}

// Closure is a user-defined callable: parameters, a body and the
// environment snapshot taken when the lambda expression was evaluated.
type Closure struct {
	Params []*symbol.Symbol
	Body   []Value
	Env    *Environment
}

// IsCallable reports whether v can appear in function position.
func IsCallable(v Value) bool {
	switch v.(type) {
	case *Builtin, *Closure:
		return true
	}
	return false
}
