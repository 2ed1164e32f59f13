package backup

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const schema = `
CREATE TABLE IF NOT EXISTS backup_submissions (
	id         TEXT PRIMARY KEY,
	request_id TEXT NOT NULL,
	payload    TEXT NOT NULL,
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_backup_created_at ON backup_submissions(created_at);
`

// SQLiteStore persists backup records to a local SQLite file so they survive
// restarts. Payloads are stored as JSON text.
type SQLiteStore struct {
	db     *sql.DB
	logger *zap.Logger
	now    func() time.Time
}

// OpenSQLite opens (or creates) the backup database at path.
// The caller registers the driver by importing github.com/mattn/go-sqlite3.
func OpenSQLite(path string, logger *zap.Logger) (*SQLiteStore, error) {
	if path == "" {
		return nil, errors.New("sqlite path is required")
	}
	dsn := fmt.Sprintf("file:%s?cache=shared&_busy_timeout=5000", filepath.ToSlash(path))
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	return NewSQLiteStore(db, logger)
}

// NewSQLiteStore wraps an existing database handle.
func NewSQLiteStore(db *sql.DB, logger *zap.Logger) (*SQLiteStore, error) {
	if db == nil {
		return nil, errors.New("nil db")
	}
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
	}
	for _, stmt := range pragmas {
		if _, err := db.Exec(stmt); err != nil {
			return nil, fmt.Errorf("apply sqlite pragma %q: %w", stmt, err)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("create backup schema: %w", err)
	}
	return &SQLiteStore{
		db:     db,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}, nil
}

func (s *SQLiteStore) Close() error { return s.db.Close() }

func (s *SQLiteStore) Add(rec Record) (Record, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = s.now()
	}
	payload, err := json.Marshal(rec.Payload)
	if err != nil {
		return Record{}, fmt.Errorf("encode backup payload: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO backup_submissions (id, request_id, payload, created_at) VALUES (?, ?, ?, ?)`,
		rec.ID, rec.RequestID, string(payload), rec.Timestamp.UnixMilli(),
	)
	if err != nil {
		return Record{}, fmt.Errorf("insert backup record: %w", err)
	}
	return rec, nil
}

// List returns all stored records. Rows whose payload no longer parses are
// skipped and logged instead of failing the whole read.
func (s *SQLiteStore) List() ([]Record, error) {
	rows, err := s.db.Query(`SELECT id, request_id, payload, created_at FROM backup_submissions ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list backup records: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var (
			rec     Record
			payload string
			created int64
		)
		if err := rows.Scan(&rec.ID, &rec.RequestID, &payload, &created); err != nil {
			s.logger.Warn("skipping unreadable backup row", zap.Error(err))
			continue
		}
		if err := json.Unmarshal([]byte(payload), &rec.Payload); err != nil {
			s.logger.Warn("skipping corrupted backup payload", zap.String("id", rec.ID), zap.Error(err))
			continue
		}
		rec.Timestamp = time.UnixMilli(created).UTC()
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Purge(maxAge time.Duration) (int, error) {
	cutoff := s.now().Add(-maxAge).UnixMilli()
	res, err := s.db.Exec(`DELETE FROM backup_submissions WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("purge backup records: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, nil
	}
	return int(n), nil
}

var _ Store = (*SQLiteStore)(nil)
