package builtins

import (
	"github.com/leapstack-labs/leaplisp/pkg/core"
)

// number is an Integer or Float operand.
type number struct {
	i       int64
	f       float64
	isFloat bool
}

func toNumber(op string, v core.Value) (number, error) {
	switch n := v.(type) {
	case int64:
		return number{i: n}, nil
	case float64:
		return number{f: n, isFloat: true}, nil
	}
	return number{}, core.Errorf(core.ErrType, "%s expects numbers, got %s %s", op, core.KindOf(v), core.Repr(v))
}

func (n number) float() float64 {
	if n.isFloat {
		return n.f
	}
	return float64(n.i)
}

func (n number) value() core.Value {
	if n.isFloat {
		return n.f
	}
	return n.i
}

func operands(op string, args []core.Value) (number, number, error) {
	a, err := toNumber(op, args[0])
	if err != nil {
		return number{}, number{}, err
	}
	b, err := toNumber(op, args[1])
	if err != nil {
		return number{}, number{}, err
	}
	return a, b, nil
}

func builtinAdd(_ *core.Environment, args []core.Value) (core.Value, error) {
	sum := number{}
	for _, arg := range args {
		n, err := toNumber("+", arg)
		if err != nil {
			return nil, err
		}
		if sum.isFloat || n.isFloat {
			sum = number{f: sum.float() + n.float(), isFloat: true}
		} else {
			sum.i += n.i
		}
	}
	return sum.value(), nil
}

func builtinSub(_ *core.Environment, args []core.Value) (core.Value, error) {
	a, b, err := operands("-", args)
	if err != nil {
		return nil, err
	}
	if a.isFloat || b.isFloat {
		return a.float() - b.float(), nil
	}
	return a.i - b.i, nil
}

func builtinMul(_ *core.Environment, args []core.Value) (core.Value, error) {
	a, b, err := operands("*", args)
	if err != nil {
		return nil, err
	}
	if a.isFloat || b.isFloat {
		return a.float() * b.float(), nil
	}
	return a.i * b.i, nil
}

// builtinDiv truncates integer quotients; any float operand gives a float.
func builtinDiv(_ *core.Environment, args []core.Value) (core.Value, error) {
	a, b, err := operands("/", args)
	if err != nil {
		return nil, err
	}
	if a.isFloat || b.isFloat {
		return a.float() / b.float(), nil
	}
	if b.i == 0 {
		return nil, core.Errorf(core.ErrDivisionByZero, "%d / 0", a.i)
	}
	return a.i / b.i, nil
}
