// Package interp is the embedding surface of the interpreter.
//
// A Session owns one symbol table, one global frame pre-populated with
// the builtins, and one evaluator. Sessions share nothing, so a host can
// run several side by side; a single Session must not be used from more
// than one goroutine at a time.
//
//	v, err := interp.EvaluateSource("(+ 1 2 3)") // 6
package interp

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"

	"github.com/leapstack-labs/leaplisp/pkg/builtins"
	"github.com/leapstack-labs/leaplisp/pkg/core"
	"github.com/leapstack-labs/leaplisp/pkg/eval"
	"github.com/leapstack-labs/leaplisp/pkg/parser"
	"github.com/leapstack-labs/leaplisp/pkg/symbol"
	"github.com/leapstack-labs/leaplisp/pkg/token"
)

// Options configures a Session.
type Options struct {
	// Out receives print output (defaults to os.Stdout)
	Out io.Writer
	// MaxDepth bounds nested evaluation (zero uses eval.DefaultMaxDepth)
	MaxDepth int
	// Logger is the structured logger (optional, uses discard if nil)
	Logger *slog.Logger
}

// Session is an independent evaluation context.
type Session struct {
	syms   *symbol.Table
	global *core.Environment
	ev     *eval.Evaluator
	logger *slog.Logger
}

// NewSession creates a session whose global frame holds the builtins.
func NewSession(opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	syms := symbol.NewTable()
	ev := eval.New(syms, eval.Options{MaxDepth: opts.MaxDepth, Logger: logger})
	global := core.NewGlobal()
	builtins.Install(global, syms, builtins.Options{Out: out, Eval: ev.Eval})

	logger.Debug("session created", "builtins", global.Len(), "max_depth", opts.MaxDepth)

	return &Session{
		syms:   syms,
		global: global,
		ev:     ev,
		logger: logger,
	}
}

// EvaluateSource parses exactly one top-level form from text and
// evaluates it in a fresh session.
func EvaluateSource(text string) (core.Value, error) {
	return NewSession(Options{}).EvaluateOne(text)
}

// Global returns the session's global frame.
func (s *Session) Global() *core.Environment {
	return s.global
}

// Symbols returns the session's symbol table.
func (s *Session) Symbols() *symbol.Table {
	return s.syms
}

// Evaluator returns the session's evaluator.
func (s *Session) Evaluator() *eval.Evaluator {
	return s.ev
}

// Eval evaluates one expression in the global frame.
func (s *Session) Eval(expr core.Value) (core.Value, error) {
	return s.ev.Eval(s.global, expr)
}

// Parse reads every top-level form of src using the session's symbols.
func (s *Session) Parse(src string) ([]core.Value, error) {
	return parser.Parse(src, s.syms)
}

// Tokens lexes src.
func (s *Session) Tokens(src string) []token.Token {
	return token.Scan(src)
}

// EvaluateOne requires src to hold exactly one top-level form and
// evaluates it.
func (s *Session) EvaluateOne(src string) (core.Value, error) {
	forms, err := s.Parse(src)
	if err != nil {
		return nil, err
	}
	if len(forms) != 1 {
		return nil, core.Errorf(core.ErrSyntax, "expected exactly one top-level form, got %d", len(forms))
	}
	return s.Eval(forms[0])
}

// EvalString evaluates the forms of src in order, parsing each one only
// after the previous one has run. It returns the last value, or the
// empty List when src holds no forms.
func (s *Session) EvalString(src string) (core.Value, error) {
	var last core.Value = core.Nil()
	p := parser.New(parser.Tokens(src), s.syms)

	n := 0
	for form, err := range p.Forms() {
		if err != nil {
			return nil, err
		}
		n++
		s.logger.Debug("evaluating form", "index", n, "form", core.Repr(form))

		last, err = s.Eval(form)
		if err != nil {
			return nil, err
		}
	}
	return last, nil
}

// EvalFile evaluates every form of the file at path.
func (s *Session) EvalFile(path string) (core.Value, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	s.logger.Debug("evaluating file", "path", path, "bytes", len(src))

	v, err := s.EvalString(string(src))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}

// Names returns the keywords and global names, sorted, for completion.
func (s *Session) Names() []string {
	names := s.ev.Keywords()
	for _, sym := range s.global.Symbols() {
		if !s.ev.IsKeyword(sym) {
			names = append(names, sym.Name())
		}
	}
	sort.Strings(names)
	return names
}

// Incomplete reports whether src opens more lists than it closes, i.e.
// whether an interactive reader should ask for another line.
func Incomplete(src string) bool {
	toks := token.Scan(src)
	depth := 0
	for _, tok := range toks {
		switch tok.Type {
		case token.LPAREN:
			depth++
		case token.RPAREN:
			depth--
		}
	}
	if depth > 0 {
		return true
	}

	// A trailing quote still needs its expression
	return len(toks) > 0 && toks[len(toks)-1].Type == token.QUOTE
}
