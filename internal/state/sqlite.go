package state

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore creates a new SQLite state store instance.
// logger may be nil.
func NewSQLiteStore(logger *slog.Logger) *SQLiteStore {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &SQLiteStore{logger: logger}
}

// Open opens a connection to the SQLite database, creating the parent
// directory when needed. Use ":memory:" for an in-memory database.
func (s *SQLiteStore) Open(path string) error {
	var dsn string
	if path == MemoryPath {
		dsn = ":memory:?_pragma=foreign_keys(1)"
	} else {
		dir := filepath.Dir(path)
		if dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create state directory: %w", err)
			}
		}
		// Enable foreign keys and WAL mode
		dsn = fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("failed to open sqlite database: %w", err)
	}
	if path == MemoryPath {
		// Every connection would otherwise see its own empty database
		db.SetMaxOpenConns(1)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	s.db = db
	s.path = path
	return nil
}

// Close closes the SQLite database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Path returns the path the store was opened with.
func (s *SQLiteStore) Path() string {
	return s.path
}

// generateID creates a new UUID.
func generateID() string {
	return uuid.New().String()
}

// --- Session operations ---

// StartSession creates a new session for source.
func (s *SQLiteStore) StartSession(ctx context.Context, source string) (*Session, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	sess := &Session{
		ID:        generateID(),
		Source:    source,
		StartedAt: time.Now().UTC(),
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (id, source, started_at) VALUES (?, ?, ?)`,
		sess.ID, sess.Source, sess.StartedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}
	return sess, nil
}

// GetSession retrieves a session by ID.
func (s *SQLiteStore) GetSession(ctx context.Context, id string) (*Session, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	sess := &Session{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, source, started_at FROM sessions WHERE id = ?`, id,
	).Scan(&sess.ID, &sess.Source, &sess.StartedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("session not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return sess, nil
}

// --- Evaluation operations ---

// RecordEvaluation stores one evaluation. errMsg is empty on success.
func (s *SQLiteStore) RecordEvaluation(ctx context.Context, sessionID, input, result, errMsg string) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO evaluations (session_id, input, result, error, created_at) VALUES (?, ?, ?, ?, ?)`,
		sessionID, input, nullString(result), nullString(errMsg), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to record evaluation: %w", err)
	}
	return nil
}

// ListEvaluations returns the most recent evaluations, newest first.
// A limit of zero or less returns all of them.
func (s *SQLiteStore) ListEvaluations(ctx context.Context, limit int) ([]*Evaluation, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT e.id, e.session_id, s.source, e.input, e.result, e.error, e.created_at
		FROM evaluations e
		JOIN sessions s ON s.id = e.session_id
		ORDER BY e.id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list evaluations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var evals []*Evaluation
	for rows.Next() {
		ev := &Evaluation{}
		var result, errMsg sql.NullString
		if err := rows.Scan(&ev.ID, &ev.SessionID, &ev.Source, &ev.Input, &result, &errMsg, &ev.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan evaluation: %w", err)
		}
		ev.Result = result.String
		ev.Error = errMsg.String
		evals = append(evals, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate evaluations: %w", err)
	}
	return evals, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
