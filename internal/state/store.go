// Package state records interpreter transcripts in SQLite.
//
// Every CLI invocation that evaluates code opens a session; each top-level
// evaluation is stored with its printed result or error message so the
// history command can show it later.
package state

import (
	"context"
	"time"
)

// Session is one CLI invocation that evaluated code.
type Session struct {
	ID        string
	Source    string // "repl", "eval", or a file path
	StartedAt time.Time
}

// Evaluation is one recorded top-level evaluation.
type Evaluation struct {
	ID        int64
	SessionID string
	Source    string
	Input     string
	Result    string // printed value; empty when Error is set
	Error     string
	CreatedAt time.Time
}

// Failed reports whether the evaluation ended in an error.
func (e *Evaluation) Failed() bool {
	return e.Error != ""
}

// Store persists sessions and evaluations.
type Store interface {
	Open(path string) error
	Close() error
	Migrate(ctx context.Context) error
	StartSession(ctx context.Context, source string) (*Session, error)
	RecordEvaluation(ctx context.Context, sessionID, input, result, errMsg string) error
	ListEvaluations(ctx context.Context, limit int) ([]*Evaluation, error)
}
