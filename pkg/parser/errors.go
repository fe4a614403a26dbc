package parser

import (
	"fmt"

	"github.com/leapstack-labs/leaplisp/pkg/core"
	"github.com/leapstack-labs/leaplisp/pkg/token"
)

// ParseError represents a parsing error with position information.
type ParseError struct {
	Pos     token.Position
	Message string
}

func (e *ParseError) Error() string {
	if !e.Pos.IsValid() {
		return fmt.Sprintf("parse error: %s", e.Message)
	}
	return fmt.Sprintf("parse error at line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

// Unwrap makes errors.Is(err, core.ErrSyntax) hold for every parse error.
func (e *ParseError) Unwrap() error {
	return core.ErrSyntax
}

// Common error messages
const (
	ErrUnexpectedClose = "unexpected closing parenthesis"
	ErrUnclosedList    = "unexpected end of input, expected ')' to close list opened at %s"
	ErrDanglingQuote   = "expected expression after quote"
	ErrUnexpectedEnd   = "unexpected end of input"
)
