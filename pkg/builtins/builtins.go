// Package builtins provides the native functions installed in every
// global frame.
package builtins

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/leapstack-labs/leaplisp/pkg/core"
	"github.com/leapstack-labs/leaplisp/pkg/symbol"
)

// Variadic marks a builtin that accepts any number of arguments.
const Variadic = -1

// EvalFunc evaluates a value as an expression in env. It backs the eval
// builtin.
type EvalFunc func(env *core.Environment, expr core.Value) (core.Value, error)

// Options configures Install.
type Options struct {
	// Out receives print output (defaults to os.Stdout)
	Out io.Writer
	// Eval backs the eval builtin; when nil, eval is not installed
	Eval EvalFunc
}

// Def describes one builtin.
type Def struct {
	Name  string
	Arity int
	Doc   string
}

type builtinDef struct {
	Def
	// build binds the implementation to the install options
	build func(opts Options) core.BuiltinFunc
}

func pure(fn core.BuiltinFunc) func(Options) core.BuiltinFunc {
	return func(Options) core.BuiltinFunc { return fn }
}

var builtinDefs = []builtinDef{
	{Def{"print", 1, "write the display form of a value and a newline"}, buildPrint},
	{Def{"repr", 1, "return the readable text of a value"}, pure(builtinRepr)},
	{Def{"+", Variadic, "sum of numbers"}, pure(builtinAdd)},
	{Def{"-", 2, "difference of two numbers"}, pure(builtinSub)},
	{Def{"*", 2, "product of two numbers"}, pure(builtinMul)},
	{Def{"/", 2, "quotient of two numbers"}, pure(builtinDiv)},
	{Def{"eq?", 2, "1 if two values are equal, else 0"}, pure(builtinEq)},
	{Def{"car", 1, "first element of a non-empty list"}, pure(builtinCar)},
	{Def{"cdr", 1, "a non-empty list without its first element"}, pure(builtinCdr)},
	{Def{"cons", 2, "prepend a value to a list"}, pure(builtinCons)},
	{Def{"list", Variadic, "collect the arguments into a list"}, pure(builtinList)},
	{Def{"list?", 1, "1 if the value is a list, else 0"}, pure(builtinIsList)},
	{Def{"nil?", 1, "1 if the value is the empty list, else 0"}, pure(builtinIsNil)},
	{Def{"symbol?", 1, "1 if the value is a symbol, else 0"}, pure(builtinIsSymbol)},
	{Def{"error", 1, "raise a user error with a message"}, pure(builtinError)},
	{Def{"eval", 1, "evaluate a value as an expression in the global frame"}, buildEval},
}

// Install binds every builtin into global. Symbols are interned in syms.
func Install(global *core.Environment, syms *symbol.Table, opts Options) {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	for _, def := range builtinDefs {
		if def.Name == "eval" && opts.Eval == nil {
			continue
		}
		global.Set(syms.Intern(def.Name), &core.Builtin{
			Name:  def.Name,
			Arity: def.Arity,
			Fn:    def.build(opts),
		})
	}
}

// Defs returns the builtin table, sorted by name.
func Defs() []Def {
	defs := make([]Def, len(builtinDefs))
	for i, d := range builtinDefs {
		defs[i] = d.Def
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })
	return defs
}

// Names returns the builtin names, sorted.
func Names() []string {
	defs := Defs()
	names := make([]string, len(defs))
	for i, d := range defs {
		names[i] = d.Name
	}
	return names
}

func buildPrint(opts Options) core.BuiltinFunc {
	return func(_ *core.Environment, args []core.Value) (core.Value, error) {
		if _, err := fmt.Fprintln(opts.Out, core.Display(args[0])); err != nil {
			return nil, fmt.Errorf("print: %w", err)
		}
		return nil, nil
	}
}

func buildEval(opts Options) core.BuiltinFunc {
	return func(env *core.Environment, args []core.Value) (core.Value, error) {
		return opts.Eval(env, args[0])
	}
}

func builtinRepr(_ *core.Environment, args []core.Value) (core.Value, error) {
	return core.Repr(args[0]), nil
}

func builtinError(_ *core.Environment, args []core.Value) (core.Value, error) {
	return nil, &core.UserError{Message: core.Display(args[0])}
}
