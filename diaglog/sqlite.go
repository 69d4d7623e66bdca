package diaglog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS diagnostic_entries (
	session_id TEXT    NOT NULL,
	seq        INTEGER NOT NULL,
	kind       TEXT    NOT NULL,
	depth      INTEGER NOT NULL,
	path       TEXT    NOT NULL,
	tag        TEXT    NOT NULL DEFAULT '',
	attr       TEXT    NOT NULL DEFAULT '',
	ref_value  TEXT    NOT NULL DEFAULT '',
	comp_value TEXT    NOT NULL DEFAULT '',
	message    TEXT    NOT NULL,
	created_at INTEGER NOT NULL,
	PRIMARY KEY (session_id, seq)
);`

const insertEntrySQL = `
INSERT INTO diagnostic_entries (
	session_id, seq, kind, depth, path, tag, attr, ref_value, comp_value, message, created_at
) VALUES (?,?,?,?,?,?,?,?,?,?,?)`

// NewSessionID returns a time-sortable UUIDv7 string.
func NewSessionID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// SQLiteOption customises OpenSQLite.
type SQLiteOption func(*sqliteConfig)

type sqliteConfig struct {
	sessionID   string
	busyTimeout int
}

// WithSessionID tags every row with id instead of a fresh UUIDv7.
func WithSessionID(id string) SQLiteOption {
	return func(c *sqliteConfig) { c.sessionID = id }
}

// WithBusyTimeout sets PRAGMA busy_timeout in milliseconds. Default: 10000.
func WithBusyTimeout(ms int) SQLiteOption {
	return func(c *sqliteConfig) { c.busyTimeout = ms }
}

// SQLiteSink records one row per entry in the diagnostic_entries table.
// All rows of a session are written inside one transaction that Close
// commits, so a session is either fully persisted or not at all.
type SQLiteSink struct {
	ctx       context.Context
	db        *sql.DB
	tx        *sql.Tx
	stmt      *sql.Stmt
	sessionID string
	seq       int
	closed    bool
}

// OpenSQLite opens (creating if needed) the database at path, ensures the
// schema and starts the session transaction.
func OpenSQLite(ctx context.Context, path string, opts ...SQLiteOption) (*SQLiteSink, error) {
	cfg := sqliteConfig{busyTimeout: 10_000}
	for _, o := range opts {
		o(&cfg)
	}
	if cfg.sessionID == "" {
		cfg.sessionID = NewSessionID()
	}

	db, err := openDB(ctx, path, cfg.busyTimeout)
	if err != nil {
		return nil, err
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("diaglog: sqlite begin: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, insertEntrySQL)
	if err != nil {
		tx.Rollback()
		db.Close()
		return nil, fmt.Errorf("diaglog: sqlite prepare: %w", err)
	}

	return &SQLiteSink{ctx: ctx, db: db, tx: tx, stmt: stmt, sessionID: cfg.sessionID}, nil
}

// SQLiteOpener returns an Opener producing an SQLiteSink on path.
func SQLiteOpener(ctx context.Context, path string, opts ...SQLiteOption) Opener {
	return func() (Sink, error) {
		s, err := OpenSQLite(ctx, path, opts...)
		if err != nil {
			return nil, err
		}

		return s, nil
	}
}

// SessionID returns the identifier stored with every row of this session.
func (s *SQLiteSink) SessionID() string {
	return s.sessionID
}

func (s *SQLiteSink) Write(e Entry) error {
	if s.closed {
		return ErrSinkClosed
	}
	s.seq++
	_, err := s.stmt.ExecContext(s.ctx,
		s.sessionID, s.seq, string(e.Kind), e.Depth, e.Path, e.Tag, e.Attr,
		e.Ref, e.Comp, e.Message, time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("diaglog: sqlite insert: %w", err)
	}

	return nil
}

// Close commits the session and closes the database.
func (s *SQLiteSink) Close() error {
	if s.closed {
		return ErrSinkClosed
	}
	s.closed = true
	errs := []error{s.stmt.Close()}
	if err := s.tx.Commit(); err != nil {
		errs = append(errs, fmt.Errorf("diaglog: sqlite commit: %w", err))
	}
	errs = append(errs, s.db.Close())

	return errors.Join(errs...)
}

// ReadSQLite loads the entries of one session in write order.
func ReadSQLite(ctx context.Context, path, sessionID string) ([]Entry, error) {
	db, err := openDB(ctx, path, 10_000)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `
		SELECT kind, depth, path, tag, attr, ref_value, comp_value, message
		FROM diagnostic_entries WHERE session_id = ? ORDER BY seq`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("diaglog: sqlite query: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var kind string
		if err := rows.Scan(&kind, &e.Depth, &e.Path, &e.Tag, &e.Attr, &e.Ref, &e.Comp, &e.Message); err != nil {
			return nil, fmt.Errorf("diaglog: sqlite scan: %w", err)
		}
		e.Kind = Kind(kind)
		out = append(out, e)
	}

	return out, rows.Err()
}

func openDB(ctx context.Context, path string, busyTimeout int) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("diaglog: sqlite open: %w", err)
	}
	// A session transaction pins the only connection; ":memory:" databases
	// are per-connection anyway.
	db.SetMaxOpenConns(1)

	stmts := []string{
		fmt.Sprintf("PRAGMA busy_timeout = %d", busyTimeout),
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		sqliteSchema,
	}
	for _, q := range stmts {
		if _, err := db.ExecContext(ctx, q); err != nil {
			db.Close()
			return nil, fmt.Errorf("diaglog: sqlite init: %w", err)
		}
	}

	return db, nil
}
