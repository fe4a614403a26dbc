package core

import (
	"errors"
	"fmt"
)

// Error kinds. Every error raised while reading or evaluating a program
// wraps exactly one of these; test with errors.Is.
var (
	ErrSyntax         = errors.New("syntax error")
	ErrUnresolvedName = errors.New("unresolved name")
	ErrNotCallable    = errors.New("not callable")
	ErrArityMismatch  = errors.New("arity mismatch")
	ErrUser           = errors.New("user error")
	ErrIndex          = errors.New("index error")
	ErrType           = errors.New("type error")
	ErrDivisionByZero = errors.New("division by zero")
	ErrDepthExceeded  = errors.New("recursion depth exceeded")
)

var errorKinds = []error{
	ErrSyntax,
	ErrUnresolvedName,
	ErrNotCallable,
	ErrArityMismatch,
	ErrUser,
	ErrIndex,
	ErrType,
	ErrDivisionByZero,
	ErrDepthExceeded,
}

// Errorf formats a message and wraps kind.
func Errorf(kind error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...))
}

// UserError is raised by the error builtin.
type UserError struct {
	Message string
}

func (e *UserError) Error() string {
	return fmt.Sprintf("%s: %s", ErrUser, e.Message)
}

// Unwrap makes errors.Is(err, ErrUser) hold.
func (e *UserError) Unwrap() error {
	return ErrUser
}

// ErrorKind returns the kind wrapped by err, or nil if err carries none.
func ErrorKind(err error) error {
	for _, kind := range errorKinds {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
