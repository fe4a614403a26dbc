// Package eval reduces expressions to values.
//
// Dispatch order for a List expression:
//
//  1. the empty List evaluates to itself;
//  2. a Symbol head naming a reserved keyword runs that special form on
//     the raw, unevaluated arguments;
//  3. otherwise the head is evaluated to a callable, the arguments are
//     evaluated left to right, and the callable is applied.
//
// Keywords are checked before any environment lookup, so a program can
// bind a variable named "define" or "lambda" but can never reach it from
// function position. Builtins always receive the global frame; closures
// run in a child of the environment they captured.
//
// An Evaluator keeps a nesting counter and is not safe for concurrent use.
package eval

import (
	"log/slog"
	"sort"

	"github.com/leapstack-labs/leaplisp/pkg/core"
	"github.com/leapstack-labs/leaplisp/pkg/symbol"
)

// DefaultMaxDepth bounds nested Eval calls when Options.MaxDepth is zero.
const DefaultMaxDepth = 10000

// Options configures an Evaluator.
type Options struct {
	// MaxDepth is the nesting ceiling for Eval; zero means DefaultMaxDepth
	MaxDepth int
	// Logger is the structured logger (optional, uses discard if nil)
	Logger *slog.Logger
}

// specialForm runs a keyword on its unevaluated arguments.
type specialForm func(ev *Evaluator, env *core.Environment, args []core.Value) (core.Value, error)

// Evaluator evaluates expressions whose symbols come from one Table.
type Evaluator struct {
	syms     *symbol.Table
	keywords map[*symbol.Symbol]specialForm
	maxDepth int
	depth    int
	logger   *slog.Logger
}

// New creates an evaluator for programs interned in syms.
func New(syms *symbol.Table, opts Options) *Evaluator {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	maxDepth := opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	ev := &Evaluator{
		syms:     syms,
		keywords: make(map[*symbol.Symbol]specialForm, len(specialForms)),
		maxDepth: maxDepth,
		logger:   logger,
	}
	for name, form := range specialForms {
		ev.keywords[syms.Intern(name)] = form
	}
	return ev
}

// Symbols returns the symbol table the evaluator dispatches on.
func (ev *Evaluator) Symbols() *symbol.Table {
	return ev.syms
}

// IsKeyword reports whether sym names a special form.
func (ev *Evaluator) IsKeyword(sym *symbol.Symbol) bool {
	_, ok := ev.keywords[sym]
	return ok
}

// Keywords returns the special-form names, sorted.
func (ev *Evaluator) Keywords() []string {
	names := make([]string, 0, len(ev.keywords))
	for sym := range ev.keywords {
		names = append(names, sym.Name())
	}
	sort.Strings(names)
	return names
}

// Eval reduces expr in env.
func (ev *Evaluator) Eval(env *core.Environment, expr core.Value) (core.Value, error) {
	ev.depth++
	defer func() { ev.depth-- }()

	if ev.depth > ev.maxDepth {
		ev.logger.Debug("evaluation depth ceiling reached", "max_depth", ev.maxDepth)
		return nil, core.Errorf(core.ErrDepthExceeded, "more than %d nested evaluations", ev.maxDepth)
	}

	switch x := expr.(type) {
	case core.List:
		return ev.evalList(env, x)
	case *symbol.Symbol:
		return env.Lookup(x)
	default:
		// Integers, floats, strings and callables evaluate to themselves
		return expr, nil
	}
}

func (ev *Evaluator) evalList(env *core.Environment, list core.List) (core.Value, error) {
	if len(list) == 0 {
		return core.Nil(), nil
	}

	if head, ok := list[0].(*symbol.Symbol); ok {
		if form, ok := ev.keywords[head]; ok {
			return form(ev, env, list[1:])
		}
	}

	fn, err := ev.Eval(env, list[0])
	if err != nil {
		return nil, err
	}
	if !core.IsCallable(fn) {
		return nil, notCallable(fn)
	}

	args := make([]core.Value, 0, len(list)-1)
	for _, arg := range list[1:] {
		v, err := ev.Eval(env, arg)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}

	return ev.Apply(env.Global(), fn, args)
}

// Apply invokes fn on already evaluated args. global is handed to
// builtins; closures ignore it and run in their captured environment.
func (ev *Evaluator) Apply(global *core.Environment, fn core.Value, args []core.Value) (core.Value, error) {
	switch f := fn.(type) {
	case *core.Builtin:
		return f.Call(global, args)
	case *core.Closure:
		return ev.invoke(f, args)
	default:
		return nil, notCallable(fn)
	}
}

// invoke binds args in a fresh child of the closure's captured
// environment and evaluates the body as an implicit begin.
func (ev *Evaluator) invoke(c *core.Closure, args []core.Value) (core.Value, error) {
	if len(args) != len(c.Params) {
		return nil, core.Errorf(core.ErrArityMismatch, "%s expects %d argument(s), got %d", core.Repr(c), len(c.Params), len(args))
	}

	frame := core.NewChild(c.Env)
	for i, param := range c.Params {
		frame.Set(param, args[i])
	}
	return formBegin(ev, frame, c.Body)
}

func notCallable(v core.Value) error {
	if sym, ok := v.(*symbol.Symbol); ok {
		return core.Errorf(core.ErrNotCallable, "symbol %s is not callable", sym.Name())
	}
	return core.Errorf(core.ErrNotCallable, "%s %s is not callable", core.KindOf(v), core.Repr(v))
}
