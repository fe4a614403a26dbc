package state

import (
	"context"
	"log/slog"
)

// Recorder appends evaluations to one session. A nil *Recorder records
// nothing, so callers need not check whether recording is enabled.
type Recorder struct {
	store   Store
	session *Session
	logger  *slog.Logger
}

// NewRecorder starts a session for source in store.
func NewRecorder(ctx context.Context, store Store, source string, logger *slog.Logger) (*Recorder, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	sess, err := store.StartSession(ctx, source)
	if err != nil {
		return nil, err
	}
	logger.Debug("recording session", "session_id", sess.ID, "source", source)
	return &Recorder{store: store, session: sess, logger: logger}, nil
}

// Session returns the session being recorded, or nil.
func (r *Recorder) Session() *Session {
	if r == nil {
		return nil
	}
	return r.session
}

// Record stores input with either its printed result or evalErr. A
// failure to write is logged and otherwise ignored so that a broken
// history file never interrupts evaluation.
func (r *Recorder) Record(ctx context.Context, input, result string, evalErr error) {
	if r == nil {
		return
	}
	errMsg := ""
	if evalErr != nil {
		errMsg = evalErr.Error()
		result = ""
	}
	if err := r.store.RecordEvaluation(ctx, r.session.ID, input, result, errMsg); err != nil {
		r.logger.Warn("failed to record evaluation", "session_id", r.session.ID, "error", err)
	}
}
