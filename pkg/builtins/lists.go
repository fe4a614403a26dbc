package builtins

import (
	"github.com/leapstack-labs/leaplisp/pkg/core"
	"github.com/leapstack-labs/leaplisp/pkg/symbol"
)

func toList(op string, v core.Value) (core.List, error) {
	l, ok := v.(core.List)
	if !ok {
		return nil, core.Errorf(core.ErrType, "%s expects a list, got %s %s", op, core.KindOf(v), core.Repr(v))
	}
	return l, nil
}

func builtinCar(_ *core.Environment, args []core.Value) (core.Value, error) {
	l, err := toList("car", args[0])
	if err != nil {
		return nil, err
	}
	if len(l) == 0 {
		return nil, core.Errorf(core.ErrIndex, "car of empty list")
	}
	return l[0], nil
}

func builtinCdr(_ *core.Environment, args []core.Value) (core.Value, error) {
	l, err := toList("cdr", args[0])
	if err != nil {
		return nil, err
	}
	if len(l) == 0 {
		return nil, core.Errorf(core.ErrIndex, "cdr of empty list")
	}
	rest := make(core.List, len(l)-1)
	copy(rest, l[1:])
	return rest, nil
}

func builtinCons(_ *core.Environment, args []core.Value) (core.Value, error) {
	tail, err := toList("cons", args[1])
	if err != nil {
		return nil, err
	}
	out := make(core.List, 0, len(tail)+1)
	out = append(out, args[0])
	return append(out, tail...), nil
}

func builtinList(_ *core.Environment, args []core.Value) (core.Value, error) {
	out := make(core.List, len(args))
	copy(out, args)
	return out, nil
}

func builtinIsList(_ *core.Environment, args []core.Value) (core.Value, error) {
	_, ok := args[0].(core.List)
	return core.Bool(ok), nil
}

func builtinIsNil(_ *core.Environment, args []core.Value) (core.Value, error) {
	return core.Bool(core.IsNil(args[0])), nil
}

func builtinIsSymbol(_ *core.Environment, args []core.Value) (core.Value, error) {
	_, ok := args[0].(*symbol.Symbol)
	return core.Bool(ok), nil
}

func builtinEq(_ *core.Environment, args []core.Value) (core.Value, error) {
	return core.Bool(core.Equal(args[0], args[1])), nil
}
