package eval

import (
	"github.com/leapstack-labs/leaplisp/pkg/core"
	"github.com/leapstack-labs/leaplisp/pkg/symbol"
)

// specialForms is the reserved keyword set.
var specialForms = map[string]specialForm{
	"define": formDefine,
	"begin":  formBegin,
	"quote":  formQuote,
	"cond":   formCond,
	"lambda": formLambda,
}

// (define name expr) binds in the current frame, which is not
// necessarily the global one.
func formDefine(ev *Evaluator, env *core.Environment, args []core.Value) (core.Value, error) {
	if len(args) != 2 {
		return nil, core.Errorf(core.ErrSyntax, "define expects (define name expr), got %d argument(s)", len(args))
	}
	name, ok := args[0].(*symbol.Symbol)
	if !ok {
		return nil, core.Errorf(core.ErrSyntax, "define expects a symbol name, got %s", core.Repr(args[0]))
	}

	val, err := ev.Eval(env, args[1])
	if err != nil {
		return nil, err
	}
	env.Set(name, val)

	ev.logger.Debug("bound name", "name", name.Name(), "kind", core.KindOf(val).String(), "frame_depth", env.Depth())
	return core.Nil(), nil
}

// (begin expr...) returns the last value, or the empty List.
func formBegin(ev *Evaluator, env *core.Environment, args []core.Value) (core.Value, error) {
	var last core.Value = core.Nil()
	for _, expr := range args {
		v, err := ev.Eval(env, expr)
		if err != nil {
			return nil, err
		}
		last = v
	}
	return last, nil
}

// (quote expr) returns expr unevaluated.
func formQuote(_ *Evaluator, _ *core.Environment, args []core.Value) (core.Value, error) {
	if len(args) != 1 {
		return nil, core.Errorf(core.ErrSyntax, "quote expects exactly one expression, got %d", len(args))
	}
	return args[0], nil
}

// (cond (test expr)...) evaluates the expr of the first true test. Arms
// after the chosen one are neither evaluated nor checked.
func formCond(ev *Evaluator, env *core.Environment, args []core.Value) (core.Value, error) {
	for _, arm := range args {
		pair, ok := arm.(core.List)
		if !ok || len(pair) != 2 {
			return nil, core.Errorf(core.ErrSyntax, "cond arm must be a (condition expr) pair, got %s", core.Repr(arm))
		}

		test, err := ev.Eval(env, pair[0])
		if err != nil {
			return nil, err
		}
		if core.Truthy(test) {
			return ev.Eval(env, pair[1])
		}
	}
	return core.Nil(), nil
}

// (lambda (params...) body...) captures a snapshot of env.
func formLambda(_ *Evaluator, env *core.Environment, args []core.Value) (core.Value, error) {
	if len(args) == 0 {
		return nil, core.Errorf(core.ErrSyntax, "lambda expects a parameter list")
	}
	paramList, ok := args[0].(core.List)
	if !ok {
		return nil, core.Errorf(core.ErrSyntax, "lambda parameters must be a list, got %s", core.Repr(args[0]))
	}

	params := make([]*symbol.Symbol, len(paramList))
	for i, p := range paramList {
		sym, ok := p.(*symbol.Symbol)
		if !ok {
			return nil, core.Errorf(core.ErrSyntax, "lambda parameters must be symbols, got %s", core.Repr(p))
		}
		params[i] = sym
	}

	body := make([]core.Value, len(args)-1)
	copy(body, args[1:])

	return &core.Closure{
		Params: params,
		Body:   body,
		Env:    env.Snapshot(),
	}, nil
}
