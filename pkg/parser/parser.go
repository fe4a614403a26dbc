// Package parser turns a token stream into S-expression trees.
//
// # Grammar
//
//	form  → "(" form* ")"
//	      | "'" form          ; sugar for (quote form)
//	      | ATOM
//
// One token of lookahead is enough. Atoms resolve, first match wins, to a
// String (token wrapped in double quotes), an Integer, a Float, or an
// interned Symbol, so atom resolution never fails.
//
// # Usage
//
//	p := parser.New(parser.Tokens(src), syms)
//	for form, err := range p.Forms() {
//	    if err != nil {
//	        // handle error
//	    }
//	    // evaluate form
//	}
package parser

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"strconv"
	"strings"

	"github.com/leapstack-labs/leaplisp/pkg/core"
	"github.com/leapstack-labs/leaplisp/pkg/symbol"
	"github.com/leapstack-labs/leaplisp/pkg/token"
)

// Parser reads top-level forms from a shared Stream.
type Parser struct {
	stream *Stream
	syms   *symbol.Table
	quote  *symbol.Symbol
}

// New creates a parser that consumes stream and interns symbols in syms.
func New(stream *Stream, syms *symbol.Table) *Parser {
	return &Parser{
		stream: stream,
		syms:   syms,
		quote:  syms.Intern("quote"),
	}
}

// Parse reads every top-level form of src.
func Parse(src string, syms *symbol.Table) ([]core.Value, error) {
	p := New(Tokens(src), syms)
	var forms []core.Value
	for form, err := range p.Forms() {
		if err != nil {
			return nil, err
		}
		forms = append(forms, form)
	}
	return forms, nil
}

// Next parses one top-level form. It returns io.EOF once the stream is
// exhausted.
func (p *Parser) Next() (core.Value, error) {
	if p.stream.Len() == 0 {
		return nil, io.EOF
	}
	return p.parseForm()
}

// Forms returns the lazy sequence of top-level forms. Iteration stops
// after the first error, which is yielded with a nil form.
func (p *Parser) Forms() iter.Seq2[core.Value, error] {
	return func(yield func(core.Value, error) bool) {
		for {
			form, err := p.Next()
			if err == io.EOF {
				return
			}
			if !yield(form, err) || err != nil {
				return
			}
		}
	}
}

// Remaining returns the number of unconsumed tokens.
func (p *Parser) Remaining() int {
	return p.stream.Len()
}

func (p *Parser) parseForm() (core.Value, error) {
	tok, ok := p.stream.Next()
	if !ok {
		return nil, p.errorAt(tok.Pos, ErrUnexpectedEnd)
	}

	switch tok.Type {
	case token.LPAREN:
		return p.parseList(tok)
	case token.RPAREN:
		return nil, p.errorAt(tok.Pos, ErrUnexpectedClose)
	case token.QUOTE:
		if p.stream.Len() == 0 {
			return nil, p.errorAt(p.stream.End(), ErrDanglingQuote)
		}
		quoted, err := p.parseForm()
		if err != nil {
			return nil, err
		}
		return core.List{p.quote, quoted}, nil
	default:
		return Atom(tok.Literal, p.syms), nil
	}
}

// parseList parses children until the matching ")". open is the already
// consumed "(".
func (p *Parser) parseList(open token.Token) (core.Value, error) {
	list := core.List{}
	for {
		next, ok := p.stream.Peek()
		if !ok {
			return nil, p.errorAt(p.stream.End(), fmt.Sprintf(ErrUnclosedList, open.Pos))
		}
		if next.Type == token.RPAREN {
			p.stream.Next()
			return list, nil
		}

		child, err := p.parseForm()
		if err != nil {
			return nil, err
		}
		list = append(list, child)
	}
}

func (p *Parser) errorAt(pos token.Position, msg string) error {
	return &ParseError{Pos: pos, Message: msg}
}

// Atom resolves a token to a String, Integer, Float or Symbol, in that
// order of preference.
func Atom(lit string, syms *symbol.Table) core.Value {
	if len(lit) >= 2 && lit[0] == '"' && lit[len(lit)-1] == '"' {
		return lit[1 : len(lit)-1]
	}
	if i, ok := parseInt(lit); ok {
		return i
	}
	if f, ok := parseFloat(lit); ok {
		return f
	}
	return syms.Intern(lit)
}

func parseInt(lit string) (int64, bool) {
	digits, ok := stripDigitGroups(lit)
	if !ok {
		return 0, false
	}
	i, err := strconv.ParseInt(digits, 10, 64)
	return i, err == nil
}

// parseFloat accepts decimal floats only. A literal too large or too small
// for float64 resolves to ±Inf or zero rather than failing.
func parseFloat(lit string) (float64, bool) {
	digits, ok := stripDigitGroups(lit)
	if !ok || isHex(digits) {
		return 0, false
	}
	f, err := strconv.ParseFloat(digits, 64)
	if err == nil {
		return f, true
	}
	var numErr *strconv.NumError
	if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
		return f, true
	}
	return 0, false
}

// stripDigitGroups removes "_" separators from a numeric literal. Every
// underscore must sit between two digits.
func stripDigitGroups(lit string) (string, bool) {
	if !strings.Contains(lit, "_") {
		return lit, true
	}
	for i := 0; i < len(lit); i++ {
		if lit[i] != '_' {
			continue
		}
		if i == 0 || i == len(lit)-1 || !isDigit(lit[i-1]) || !isDigit(lit[i+1]) {
			return "", false
		}
	}
	return strings.ReplaceAll(lit, "_", ""), true
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isHex(lit string) bool {
	lit = strings.TrimLeft(lit, "+-")
	return len(lit) >= 2 && lit[0] == '0' && (lit[1] == 'x' || lit[1] == 'X')
}
