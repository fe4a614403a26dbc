package eval_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leaplisp/internal/testutil"
	"github.com/leapstack-labs/leaplisp/pkg/builtins"
	"github.com/leapstack-labs/leaplisp/pkg/core"
	"github.com/leapstack-labs/leaplisp/pkg/eval"
	"github.com/leapstack-labs/leaplisp/pkg/parser"
	"github.com/leapstack-labs/leaplisp/pkg/symbol"
)

type harness struct {
	syms   *symbol.Table
	global *core.Environment
	ev     *eval.Evaluator
	out    *bytes.Buffer
}

func newHarness(t *testing.T, opts eval.Options) *harness {
	t.Helper()
	if opts.Logger == nil {
		opts.Logger = testutil.NewTestLogger(t)
	}
	h := &harness{
		syms:   symbol.NewTable(),
		global: core.NewGlobal(),
		out:    &bytes.Buffer{},
	}
	h.ev = eval.New(h.syms, opts)
	builtins.Install(h.global, h.syms, builtins.Options{Out: h.out, Eval: h.ev.Eval})
	return h
}

// run evaluates every form of src in the global frame and returns the
// last value.
func (h *harness) run(t *testing.T, src string) (core.Value, error) {
	t.Helper()
	forms, err := parser.Parse(src, h.syms)
	require.NoError(t, err)

	var last core.Value = core.Nil()
	for _, form := range forms {
		last, err = h.ev.Eval(h.global, form)
		if err != nil {
			return nil, err
		}
	}
	return last, nil
}

func TestEval(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"integer", "42", "42"},
		{"float", "3.5", "3.5"},
		{"string", `"hi"`, `"hi"`},
		{"empty list", "()", "()"},
		{"sum", "(+ 1 2 3)", "6"},
		{"car", "(car (list 1 2 3))", "1"},
		{"cdr", "(cdr (list 1 2 3))", "(2 3)"},
		{"lambda call", "((lambda (n) (* n n)) 5)", "25"},
		{"quote symbol", "(quote foo)", "foo"},
		{"quote list", "(quote (1 (2 x)))", "(1 (2 x))"},
		{"quote shorthand", "'(a b)", "(a b)"},
		{"define then lookup", "(define x 10) x", "10"},
		{"define returns empty list", "(define x 10)", "()"},
		{"begin", "(begin 1 2 3)", "3"},
		{"begin empty", "(begin)", "()"},
		{"cond first true", `(cond (0 "a") (1 "b"))`, `"b"`},
		{"cond none true", `(cond (0 "a"))`, "()"},
		{"cond empty list is falsy", `(cond (() "a") ("" "b") ("x" "c"))`, `"c"`},
		{"cond no arms", "(cond)", "()"},
		{"lambda value", "(lambda (a b) a)", "<lambda (a b)>"},
		{"builtin value", "car", "<builtin car>"},
		{"closure body is implicit begin", "((lambda () 1 2 3))", "3"},
		{"eval builtin", "(eval (quote (+ 1 2)))", "3"},
		{"recursion", `
			(define fact (lambda (n)
			  (cond ((eq? n 0) 1)
			        (1 (* n (fact (- n 1)))))))
			(fact 10)`, "3628800"},
		{"higher order", `
			(define twice (lambda (f x) (f (f x))))
			(twice (lambda (n) (* n 3)) 2)`, "18"},
		{"closure over parameter", `
			(define adder (lambda (a) (lambda (b) (+ a b))))
			((adder 4) 5)`, "9"},
		{"keyword name bindable as variable", "(define define 5) (+ define 1)", "6"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, eval.Options{})
			got, err := h.run(t, tt.src)
			require.NoError(t, err)
			assert.Equal(t, tt.want, core.Repr(got))
		})
	}
}

func TestEvalErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		kind error
	}{
		{"unbound symbol", "nope", core.ErrUnresolvedName},
		{"integer head", "(1 2)", core.ErrNotCallable},
		{"string head", `("f" 2)`, core.ErrNotCallable},
		{"quoted symbol head", "((quote f) 1)", core.ErrNotCallable},
		{"closure arity", "(define f (lambda (a b) a)) (f 1)", core.ErrArityMismatch},
		{"closure too many args", "((lambda () 1) 2)", core.ErrArityMismatch},
		{"builtin arity", "(car 1 2)", core.ErrArityMismatch},
		{"define non-symbol", "(define 1 2)", core.ErrSyntax},
		{"define missing value", "(define x)", core.ErrSyntax},
		{"quote no args", "(quote)", core.ErrSyntax},
		{"quote two args", "(quote a b)", core.ErrSyntax},
		{"cond bare arm", "(cond 1)", core.ErrSyntax},
		{"cond short arm", "(cond (1))", core.ErrSyntax},
		{"lambda non-symbol param", "(lambda (1) 1)", core.ErrSyntax},
		{"lambda params not list", "(lambda x x)", core.ErrSyntax},
		{"lambda no params", "(lambda)", core.ErrSyntax},
		{"user error", `(error "boom")`, core.ErrUser},
		{"error inside closure", `((lambda () (car ())))`, core.ErrIndex},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, eval.Options{})
			_, err := h.run(t, tt.src)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.kind)
		})
	}
}

func TestNotCallableBeforeArguments(t *testing.T) {
	h := newHarness(t, eval.Options{})

	_, err := h.run(t, `(1 (print "side effect"))`)
	require.ErrorIs(t, err, core.ErrNotCallable)
	assert.Empty(t, h.out.String())
}

func TestArgumentsEvaluatedLeftToRight(t *testing.T) {
	h := newHarness(t, eval.Options{})

	_, err := h.run(t, `(list (print "a") (print "b") (print "c"))`)
	require.NoError(t, err)
	assert.Equal(t, "a\nb\nc\n", h.out.String())
}

func TestCondShortCircuits(t *testing.T) {
	h := newHarness(t, eval.Options{})

	got, err := h.run(t, `(cond (1 "first") ((print "never") "second") (oops))`)
	require.NoError(t, err)
	assert.Equal(t, "first", got)
	assert.Empty(t, h.out.String())
}

func TestClosureCapture(t *testing.T) {
	t.Run("global binding added after capture is visible", func(t *testing.T) {
		h := newHarness(t, eval.Options{})
		got, err := h.run(t, `
			(define f (lambda () y))
			(define y 1)
			(f)`)
		require.NoError(t, err)
		assert.Equal(t, int64(1), got)
	})

	t.Run("global rebinding is visible", func(t *testing.T) {
		h := newHarness(t, eval.Options{})
		got, err := h.run(t, `
			(define y 1)
			(define f (lambda () y))
			(define y 2)
			(f)`)
		require.NoError(t, err)
		assert.Equal(t, int64(2), got)
	})

	t.Run("enclosing binding added after capture is invisible", func(t *testing.T) {
		h := newHarness(t, eval.Options{})
		_, err := h.run(t, `
			((lambda ()
			   (define f (lambda () y))
			   (define y 1)
			   (f)))`)
		require.ErrorIs(t, err, core.ErrUnresolvedName)
	})

	t.Run("enclosing binding made before capture is visible", func(t *testing.T) {
		h := newHarness(t, eval.Options{})
		got, err := h.run(t, `
			((lambda ()
			   (define y 1)
			   (define f (lambda () y))
			   (f)))`)
		require.NoError(t, err)
		assert.Equal(t, int64(1), got)
	})

	t.Run("enclosing rebinding after capture is invisible", func(t *testing.T) {
		h := newHarness(t, eval.Options{})
		got, err := h.run(t, `
			((lambda (y)
			   (define f (lambda () y))
			   (define y 2)
			   (f)) 1)`)
		require.NoError(t, err)
		assert.Equal(t, int64(1), got)
	})
}

func TestDefineInsideClosureIsLocal(t *testing.T) {
	h := newHarness(t, eval.Options{})

	_, err := h.run(t, `((lambda () (define z 3) z))`)
	require.NoError(t, err)

	_, err = h.run(t, "z")
	assert.ErrorIs(t, err, core.ErrUnresolvedName)
}

func TestClosureIgnoresCallerFrame(t *testing.T) {
	h := newHarness(t, eval.Options{})

	_, err := h.run(t, `
		(define show (lambda () secret))
		((lambda (secret) (show)) 42)`)
	require.ErrorIs(t, err, core.ErrUnresolvedName)
}

func TestDuplicateParamsLastWins(t *testing.T) {
	h := newHarness(t, eval.Options{})

	got, err := h.run(t, "((lambda (a a) a) 1 2)")
	require.NoError(t, err)
	assert.Equal(t, int64(2), got)
}

func TestKeywordsCannotBeShadowed(t *testing.T) {
	h := newHarness(t, eval.Options{})

	got, err := h.run(t, `
		(define quote (lambda (x) 99))
		(quote hello)`)
	require.NoError(t, err)
	assert.Equal(t, "hello", core.Repr(got))
}

func TestKeywords(t *testing.T) {
	h := newHarness(t, eval.Options{})

	assert.Equal(t, []string{"begin", "cond", "define", "lambda", "quote"}, h.ev.Keywords())
	assert.True(t, h.ev.IsKeyword(h.syms.Intern("cond")))
	assert.False(t, h.ev.IsKeyword(h.syms.Intern("car")))
	assert.Same(t, h.syms, h.ev.Symbols())

	// A keyword from another table is a different symbol
	other := symbol.NewTable()
	assert.False(t, h.ev.IsKeyword(other.Intern("cond")))
}

func TestDepthCeiling(t *testing.T) {
	h := newHarness(t, eval.Options{MaxDepth: 200})

	_, err := h.run(t, `
		(define loop (lambda (n) (loop n)))
		(loop 1)`)
	require.ErrorIs(t, err, core.ErrDepthExceeded)

	// The counter unwinds after a failure
	got, err := h.run(t, "(+ 1 2)")
	require.NoError(t, err)
	assert.Equal(t, int64(3), got)
}

func TestDepthDefault(t *testing.T) {
	h := newHarness(t, eval.Options{})

	got, err := h.run(t, `
		(define count (lambda (n) (cond ((eq? n 0) 0) (1 (+ 1 (count (- n 1)))))))
		(count 500)`)
	require.NoError(t, err)
	assert.Equal(t, int64(500), got)
}

func TestApply(t *testing.T) {
	h := newHarness(t, eval.Options{})

	sq, err := h.run(t, "(lambda (n) (* n n))")
	require.NoError(t, err)

	got, err := h.ev.Apply(h.global, sq, []core.Value{int64(6)})
	require.NoError(t, err)
	assert.Equal(t, int64(36), got)

	car, err := h.run(t, "car")
	require.NoError(t, err)
	got, err = h.ev.Apply(h.global, car, []core.Value{core.List{"x"}})
	require.NoError(t, err)
	assert.Equal(t, "x", got)

	_, err = h.ev.Apply(h.global, int64(1), nil)
	assert.ErrorIs(t, err, core.ErrNotCallable)
}
