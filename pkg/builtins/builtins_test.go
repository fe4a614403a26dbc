package builtins_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leaplisp/pkg/builtins"
	"github.com/leapstack-labs/leaplisp/pkg/core"
	"github.com/leapstack-labs/leaplisp/pkg/symbol"
)

type fixture struct {
	global *core.Environment
	syms   *symbol.Table
	out    *bytes.Buffer
}

func newFixture(t *testing.T, evalFn builtins.EvalFunc) *fixture {
	t.Helper()
	f := &fixture{
		global: core.NewGlobal(),
		syms:   symbol.NewTable(),
		out:    &bytes.Buffer{},
	}
	builtins.Install(f.global, f.syms, builtins.Options{Out: f.out, Eval: evalFn})
	return f
}

func (f *fixture) call(t *testing.T, name string, args ...core.Value) (core.Value, error) {
	t.Helper()
	v, err := f.global.Lookup(f.syms.Intern(name))
	require.NoError(t, err)
	b, ok := v.(*core.Builtin)
	require.True(t, ok, "%s should be a builtin", name)
	return b.Call(f.global, args)
}

func TestArithmetic(t *testing.T) {
	f := newFixture(t, nil)

	tests := []struct {
		name string
		op   string
		args []core.Value
		want core.Value
	}{
		{"add none", "+", nil, int64(0)},
		{"add ints", "+", []core.Value{int64(1), int64(2), int64(3)}, int64(6)},
		{"add mixed", "+", []core.Value{int64(1), 0.5}, 1.5},
		{"add float first", "+", []core.Value{0.5, int64(1), int64(2)}, 3.5},
		{"sub", "-", []core.Value{int64(10), int64(4)}, int64(6)},
		{"sub negative", "-", []core.Value{int64(1), int64(4)}, int64(-3)},
		{"sub float", "-", []core.Value{1.5, int64(1)}, 0.5},
		{"mul", "*", []core.Value{int64(6), int64(7)}, int64(42)},
		{"mul float", "*", []core.Value{int64(2), 1.25}, 2.5},
		{"div truncates", "/", []core.Value{int64(7), int64(2)}, int64(3)},
		{"div negative truncates", "/", []core.Value{int64(-7), int64(2)}, int64(-3)},
		{"div float", "/", []core.Value{int64(7), 2.0}, 3.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.call(t, tt.op, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestArithmeticErrors(t *testing.T) {
	f := newFixture(t, nil)

	tests := []struct {
		name string
		op   string
		args []core.Value
		kind error
	}{
		{"add string", "+", []core.Value{int64(1), "x"}, core.ErrType},
		{"sub list", "-", []core.Value{core.Nil(), int64(1)}, core.ErrType},
		{"div by zero", "/", []core.Value{int64(1), int64(0)}, core.ErrDivisionByZero},
		{"sub one arg", "-", []core.Value{int64(1)}, core.ErrArityMismatch},
		{"mul three args", "*", []core.Value{int64(1), int64(2), int64(3)}, core.ErrArityMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.call(t, tt.op, tt.args...)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.kind)
		})
	}
}

func TestFloatDivisionByZero(t *testing.T) {
	f := newFixture(t, nil)

	got, err := f.call(t, "/", 1.0, int64(0))
	require.NoError(t, err)
	assert.Equal(t, "inf", core.Repr(got))
}

func TestListBuiltins(t *testing.T) {
	f := newFixture(t, nil)
	abc := core.List{int64(1), int64(2), int64(3)}

	got, err := f.call(t, "list", int64(1), int64(2), int64(3))
	require.NoError(t, err)
	assert.Equal(t, abc, got)

	got, err = f.call(t, "list")
	require.NoError(t, err)
	assert.True(t, core.IsNil(got))

	got, err = f.call(t, "car", abc)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got)

	got, err = f.call(t, "cdr", abc)
	require.NoError(t, err)
	assert.Equal(t, core.List{int64(2), int64(3)}, got)

	got, err = f.call(t, "cons", int64(0), abc)
	require.NoError(t, err)
	assert.Equal(t, core.List{int64(0), int64(1), int64(2), int64(3)}, got)

	// Arguments are never mutated
	assert.Equal(t, core.List{int64(1), int64(2), int64(3)}, abc)

	t.Run("cdr result does not alias", func(t *testing.T) {
		rest, err := f.call(t, "cdr", abc)
		require.NoError(t, err)
		rest.(core.List)[0] = int64(99)
		assert.Equal(t, int64(2), abc[1])
	})
}

func TestListBuiltinErrors(t *testing.T) {
	f := newFixture(t, nil)

	tests := []struct {
		name string
		op   string
		args []core.Value
		kind error
	}{
		{"car empty", "car", []core.Value{core.Nil()}, core.ErrIndex},
		{"cdr empty", "cdr", []core.Value{core.Nil()}, core.ErrIndex},
		{"car integer", "car", []core.Value{int64(1)}, core.ErrType},
		{"cdr string", "cdr", []core.Value{"abc"}, core.ErrType},
		{"cons onto integer", "cons", []core.Value{int64(1), int64(2)}, core.ErrType},
		{"car no args", "car", nil, core.ErrArityMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.call(t, tt.op, tt.args...)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.kind)
		})
	}
}

func TestPredicates(t *testing.T) {
	f := newFixture(t, nil)
	sym := f.syms.Intern("x")

	tests := []struct {
		name string
		op   string
		args []core.Value
		want core.Value
	}{
		{"list? list", "list?", []core.Value{core.List{int64(1)}}, int64(1)},
		{"list? empty", "list?", []core.Value{core.Nil()}, int64(1)},
		{"list? int", "list?", []core.Value{int64(1)}, int64(0)},
		{"nil? empty", "nil?", []core.Value{core.Nil()}, int64(1)},
		{"nil? list", "nil?", []core.Value{core.List{int64(1)}}, int64(0)},
		{"nil? zero", "nil?", []core.Value{int64(0)}, int64(0)},
		{"symbol? symbol", "symbol?", []core.Value{sym}, int64(1)},
		{"symbol? string", "symbol?", []core.Value{"x"}, int64(0)},
		{"eq? ints", "eq?", []core.Value{int64(2), int64(2)}, int64(1)},
		{"eq? int float", "eq?", []core.Value{int64(2), 2.0}, int64(1)},
		{"eq? strings", "eq?", []core.Value{"a", "a"}, int64(1)},
		{"eq? symbols", "eq?", []core.Value{sym, f.syms.Intern("x")}, int64(1)},
		{"eq? lists", "eq?", []core.Value{core.List{int64(1)}, core.List{int64(1)}}, int64(1)},
		{"eq? different", "eq?", []core.Value{int64(1), "1"}, int64(0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.call(t, tt.op, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPrintAndRepr(t *testing.T) {
	f := newFixture(t, nil)

	got, err := f.call(t, "print", "hello")
	require.NoError(t, err)
	assert.True(t, core.IsNil(got), "print returns the empty list")

	_, err = f.call(t, "print", core.List{int64(1), "a"})
	require.NoError(t, err)
	assert.Equal(t, "hello\n(1 \"a\")\n", f.out.String())

	got, err = f.call(t, "repr", "hi")
	require.NoError(t, err)
	assert.Equal(t, `"hi"`, got)
}

func TestErrorBuiltin(t *testing.T) {
	f := newFixture(t, nil)

	_, err := f.call(t, "error", "boom")
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrUser)

	var ue *core.UserError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, "boom", ue.Message)
}

func TestEvalBuiltin(t *testing.T) {
	var gotEnv *core.Environment
	var gotExpr core.Value
	stub := func(env *core.Environment, expr core.Value) (core.Value, error) {
		gotEnv, gotExpr = env, expr
		return int64(7), nil
	}
	f := newFixture(t, stub)

	expr := core.List{f.syms.Intern("+"), int64(3), int64(4)}
	got, err := f.call(t, "eval", expr)
	require.NoError(t, err)
	assert.Equal(t, int64(7), got)
	assert.Same(t, f.global, gotEnv)
	assert.Equal(t, expr, gotExpr)
}

func TestInstallWithoutEval(t *testing.T) {
	f := newFixture(t, nil)

	_, ok := f.global.Resolve(f.syms.Intern("eval"))
	assert.False(t, ok)

	_, ok = f.global.Resolve(f.syms.Intern("car"))
	assert.True(t, ok)
}

func TestDefsAndNames(t *testing.T) {
	names := builtins.Names()
	assert.IsIncreasing(t, names)
	assert.Contains(t, names, "car")
	assert.Contains(t, names, "eval")

	for _, d := range builtins.Defs() {
		assert.NotEmpty(t, d.Doc, d.Name)
		if d.Name == "+" || d.Name == "list" {
			assert.Equal(t, builtins.Variadic, d.Arity)
		}
	}
}
