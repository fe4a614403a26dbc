package token

import (
	"unicode"
	"unicode/utf8"
)

// Lexer splits source text into tokens.
type Lexer struct {
	input string
	pos   int // byte offset of the next unread rune
	line  int // current line number (1-based)
	col   int // current column number (1-based)
}

// NewLexer creates a new Lexer for the given input.
func NewLexer(input string) *Lexer {
	return &Lexer{
		input: input,
		line:  1,
		col:   1,
	}
}

// peekRune returns the next rune and its width without advancing.
// Width is 0 at end of input.
func (l *Lexer) peekRune() (rune, int) {
	if l.pos >= len(l.input) {
		return 0, 0
	}
	return utf8.DecodeRuneInString(l.input[l.pos:])
}

// advance consumes one rune of the given width.
func (l *Lexer) advance(r rune, width int) {
	l.pos += width
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
}

func (l *Lexer) currentPos() Position {
	return Position{Line: l.line, Column: l.col, Offset: l.pos}
}

func (l *Lexer) skipWhitespace() {
	for {
		r, w := l.peekRune()
		if w == 0 || !unicode.IsSpace(r) {
			return
		}
		l.advance(r, w)
	}
}

// NextToken returns the next token. At end of input it returns an EOF
// token, and keeps returning it on subsequent calls.
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()
	pos := l.currentPos()

	r, w := l.peekRune()
	if w == 0 {
		return Token{Type: EOF, Pos: pos}
	}

	if typ, ok := delimiterType(r); ok {
		l.advance(r, w)
		return Token{Type: typ, Literal: string(r), Pos: pos}
	}

	start := l.pos
	for {
		r, w := l.peekRune()
		if w == 0 || unicode.IsSpace(r) {
			break
		}
		if _, ok := delimiterType(r); ok {
			break
		}
		l.advance(r, w)
	}

	return Token{Type: ATOM, Literal: l.input[start:l.pos], Pos: pos}
}

// Scan returns every token in src, in order, without the trailing EOF.
func Scan(src string) []Token {
	l := NewLexer(src)
	var toks []Token
	for {
		tok := l.NextToken()
		if tok.Type == EOF {
			return toks
		}
		toks = append(toks, tok)
	}
}

// Tokenize returns the token strings of src, in order.
func Tokenize(src string) []string {
	toks := Scan(src)
	out := make([]string, len(toks))
	for i, tok := range toks {
		out[i] = tok.Literal
	}
	return out
}
