package audit

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// schema contains the SQL statements to create the audit database schema.
const schema = `
CREATE TABLE IF NOT EXISTS audit_records (
    id TEXT PRIMARY KEY,
    request_id TEXT,

    received_at TIMESTAMP NOT NULL,
    recorded_at TIMESTAMP NOT NULL,

    client_addr TEXT NOT NULL,
    session_id TEXT NOT NULL,
    identity TEXT NOT NULL,

    outcome TEXT NOT NULL,
    status INTEGER NOT NULL,
    error TEXT,

    upstream_latency INTEGER
);

CREATE INDEX IF NOT EXISTS idx_audit_received_at ON audit_records(received_at);
CREATE INDEX IF NOT EXISTS idx_audit_session_id ON audit_records(session_id);
CREATE INDEX IF NOT EXISTS idx_audit_outcome ON audit_records(outcome);
`

// SQLiteConfig contains configuration for the SQLite audit backend.
type SQLiteConfig struct {
	// Path is the database file path.
	Path string

	// MaxOpenConns is the maximum number of open connections.
	// Default: 10
	MaxOpenConns int

	// MaxIdleConns is the maximum number of idle connections.
	// Default: 5
	MaxIdleConns int

	// WALMode enables Write-Ahead Logging for better concurrency.
	// Default: true
	WALMode bool

	// BusyTimeout is the duration to wait when the database is locked.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// DefaultSQLiteConfig returns the default SQLite configuration.
func DefaultSQLiteConfig() *SQLiteConfig {
	return &SQLiteConfig{
		Path:         "data/audit.db",
		MaxOpenConns: 10,
		MaxIdleConns: 5,
		WALMode:      true,
		BusyTimeout:  5 * time.Second,
	}
}

// SQLiteStore implements the Store interface using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	config *SQLiteConfig
	insert *sql.Stmt
	logger *slog.Logger
}

// NewSQLiteStore opens the database, applies pragmas, and creates the schema.
func NewSQLiteStore(config *SQLiteConfig) (*SQLiteStore, error) {
	if config == nil {
		config = DefaultSQLiteConfig()
	}

	logger := slog.Default().With("component", "audit.sqlite")

	db, err := sql.Open("sqlite3", config.Path)
	if err != nil {
		return nil, NewStorageError("sqlite", "open", err)
	}

	db.SetMaxOpenConns(config.MaxOpenConns)
	db.SetMaxIdleConns(config.MaxIdleConns)

	s := &SQLiteStore{
		db:     db,
		config: config,
		logger: logger,
	}

	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("audit store initialized",
		"path", config.Path,
		"wal_mode", config.WALMode,
	)

	return s, nil
}

func (s *SQLiteStore) initialize() error {
	if s.config.WALMode {
		if _, err := s.db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			return NewStorageError("sqlite", "enable_wal", err)
		}
	}

	busyTimeoutMs := s.config.BusyTimeout.Milliseconds()
	if _, err := s.db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d;", busyTimeoutMs)); err != nil {
		return NewStorageError("sqlite", "set_busy_timeout", err)
	}

	if _, err := s.db.Exec(schema); err != nil {
		return NewStorageError("sqlite", "create_schema", err)
	}

	insert, err := s.db.Prepare(`
		INSERT INTO audit_records (
			id, request_id, received_at, recorded_at,
			client_addr, session_id, identity,
			outcome, status, error, upstream_latency
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return NewStorageError("sqlite", "prepare_insert", err)
	}
	s.insert = insert

	return nil
}

// Save persists an audit record.
func (s *SQLiteStore) Save(ctx context.Context, record *Record) error {
	_, err := s.insert.ExecContext(ctx,
		record.ID,
		record.RequestID,
		record.ReceivedAt,
		record.RecordedAt,
		record.ClientAddr,
		record.SessionID,
		record.Identity,
		record.Outcome,
		record.Status,
		record.Error,
		record.UpstreamLatency.Nanoseconds(),
	)
	if err != nil {
		return NewStorageError("sqlite", "save", err)
	}
	return nil
}

// List retrieves records matching the query, newest first.
func (s *SQLiteStore) List(ctx context.Context, query *Query) ([]*Record, error) {
	where, args := buildWhere(query)

	q := "SELECT id, request_id, received_at, recorded_at, client_addr, session_id, identity, outcome, status, error, upstream_latency FROM audit_records" +
		where + " ORDER BY received_at DESC"

	if query != nil && query.Limit > 0 {
		q += fmt.Sprintf(" LIMIT %d OFFSET %d", query.Limit, query.Offset)
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, NewStorageError("sqlite", "list", err)
	}
	defer rows.Close()

	records := make([]*Record, 0)
	for rows.Next() {
		var r Record
		var latencyNs int64
		err := rows.Scan(
			&r.ID, &r.RequestID, &r.ReceivedAt, &r.RecordedAt,
			&r.ClientAddr, &r.SessionID, &r.Identity,
			&r.Outcome, &r.Status, &r.Error, &latencyNs,
		)
		if err != nil {
			return nil, NewStorageError("sqlite", "scan", err)
		}
		r.UpstreamLatency = time.Duration(latencyNs)
		records = append(records, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, NewStorageError("sqlite", "list", err)
	}

	return records, nil
}

// Count returns the number of records matching the query.
func (s *SQLiteStore) Count(ctx context.Context, query *Query) (int64, error) {
	where, args := buildWhere(query)

	var n int64
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM audit_records"+where, args...).Scan(&n)
	if err != nil {
		return 0, NewStorageError("sqlite", "count", err)
	}
	return n, nil
}

// Purge removes records received before the cutoff.
func (s *SQLiteStore) Purge(ctx context.Context, before time.Time) (int64, error) {
	result, err := s.db.ExecContext(ctx, "DELETE FROM audit_records WHERE received_at < ?", before)
	if err != nil {
		return 0, NewStorageError("sqlite", "purge", err)
	}
	removed, err := result.RowsAffected()
	if err != nil {
		return 0, NewStorageError("sqlite", "purge", err)
	}
	return removed, nil
}

// Close closes the prepared statements and database connection.
func (s *SQLiteStore) Close() error {
	if s.insert != nil {
		s.insert.Close()
	}
	return s.db.Close()
}

func buildWhere(query *Query) (string, []interface{}) {
	if query == nil {
		return "", nil
	}

	var clauses []string
	var args []interface{}

	if query.StartTime != nil {
		clauses = append(clauses, "received_at >= ?")
		args = append(args, *query.StartTime)
	}
	if query.EndTime != nil {
		clauses = append(clauses, "received_at <= ?")
		args = append(args, *query.EndTime)
	}
	if query.SessionID != "" {
		clauses = append(clauses, "session_id = ?")
		args = append(args, query.SessionID)
	}
	if query.ClientAddr != "" {
		clauses = append(clauses, "client_addr = ?")
		args = append(args, query.ClientAddr)
	}
	if query.Outcome != "" {
		clauses = append(clauses, "outcome = ?")
		args = append(args, query.Outcome)
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}
