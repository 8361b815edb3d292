// Package sqlite implements a persistent result cache on SQLite, for
// deployments where fetched content should survive process restarts.
// Only content samples are persisted; the output budget itself is
// process-lifetime by design.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver.

	"github.com/veldt-io/fingov"
)

// Store is a SQLite-backed result cache with TTL expiry.
type Store struct {
	db  *sql.DB
	ttl time.Duration
}

var _ fingov.Cache = (*Store)(nil)

// DefaultTTL matches the in-memory cache default.
const DefaultTTL = 2 * time.Hour

// Open opens or creates the cache database at path. A non-positive ttl
// falls back to DefaultTTL.
func Open(path string, ttl time.Duration) (*Store, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("cache/sqlite: open: %w", err)
	}

	s := &Store{db: db, ttl: ttl}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("cache/sqlite: init schema: %w", err)
	}
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) initSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS samples (
			session_id   TEXT NOT NULL,
			key          TEXT NOT NULL,
			source_label TEXT NOT NULL,
			raw_text     TEXT NOT NULL,
			expires_at   INTEGER NOT NULL,
			PRIMARY KEY (session_id, key)
		);
		CREATE INDEX IF NOT EXISTS idx_samples_expiry ON samples(expires_at);
	`)
	return err
}

// Get returns the cached sample if present and fresh.
func (s *Store) Get(ctx context.Context, sessionID, key string) (fingov.ContentSample, bool, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT source_label, raw_text, expires_at FROM samples WHERE session_id = ? AND key = ?`,
		sessionID, key)

	var sample fingov.ContentSample
	var expiresAt int64
	if err := row.Scan(&sample.SourceLabel, &sample.RawText, &expiresAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fingov.ContentSample{}, false, nil
		}
		return fingov.ContentSample{}, false, fmt.Errorf("cache/sqlite: get: %w", err)
	}

	if time.Now().Unix() > expiresAt {
		_, _ = s.db.ExecContext(ctx,
			`DELETE FROM samples WHERE session_id = ? AND key = ?`, sessionID, key)
		return fingov.ContentSample{}, false, nil
	}
	return sample, true, nil
}

// Put stores a sample under the session-scoped key, replacing any
// existing entry.
func (s *Store) Put(ctx context.Context, sessionID, key string, sample fingov.ContentSample) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO samples (session_id, key, source_label, raw_text, expires_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (session_id, key) DO UPDATE SET
			source_label = excluded.source_label,
			raw_text     = excluded.raw_text,
			expires_at   = excluded.expires_at`,
		sessionID, key, sample.SourceLabel, sample.RawText,
		time.Now().Add(s.ttl).Unix())
	if err != nil {
		return fmt.Errorf("cache/sqlite: put: %w", err)
	}
	return nil
}

// ClearSession drops every entry belonging to a session.
func (s *Store) ClearSession(ctx context.Context, sessionID string) (int, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM samples WHERE session_id = ?`, sessionID)
	if err != nil {
		return 0, fmt.Errorf("cache/sqlite: clear session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, nil
	}
	return int(n), nil
}

// Sweep removes all expired entries. Intended for a periodic janitor.
func (s *Store) Sweep(ctx context.Context) (int, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM samples WHERE expires_at < ?`, time.Now().Unix())
	if err != nil {
		return 0, fmt.Errorf("cache/sqlite: sweep: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, nil
	}
	return int(n), nil
}
