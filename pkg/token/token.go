// Package token defines the lexical tokens of the language and the lexer
// that produces them.
//
// The token grammar is deliberately small: "(", ")" and "'" always stand
// alone, even when glued to other characters, and every other maximal run
// of non-whitespace characters is a single ATOM token. There is no comment
// syntax and string literals cannot contain whitespace.
package token

import "fmt"

// TokenType represents the type of a lexical token.
//
//nolint:revive // token.TokenType mirrors the naming used across the parser
type TokenType int

const (
	// Special tokens
	EOF TokenType = iota

	// Delimiters
	LPAREN // (
	RPAREN // )
	QUOTE  // '

	// Everything else: numbers, strings, symbols
	ATOM
)

var tokenNames = map[TokenType]string{
	EOF:    "EOF",
	LPAREN: "LPAREN",
	RPAREN: "RPAREN",
	QUOTE:  "QUOTE",
	ATOM:   "ATOM",
}

// String returns a human-readable representation of the token type.
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TOKEN(%d)", int(t))
}

// Token is a single lexeme with its source position.
type Token struct {
	Type    TokenType
	Literal string
	Pos     Position
}

func (t Token) String() string {
	if t.Type == EOF {
		return "EOF"
	}
	return fmt.Sprintf("%s %q", t.Pos, t.Literal)
}

// delimiterType returns the token type for a standalone delimiter rune.
func delimiterType(r rune) (TokenType, bool) {
	switch r {
	case '(':
		return LPAREN, true
	case ')':
		return RPAREN, true
	case '\'':
		return QUOTE, true
	}
	return ATOM, false
}
