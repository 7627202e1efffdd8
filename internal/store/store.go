// Package store persists cached transcripts and user preferences in a
// SQLite database guarded by a directory lock.
package store

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"hushplay/internal/config"
	"hushplay/internal/prefs"
	"hushplay/internal/transcript"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump this when the schema
// changes; mismatched databases must be cleared.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database schema version doesn't match the
// expected version.
var ErrSchemaMismatch = errors.New("schema version mismatch")

// ErrLocked indicates another process holds the data directory lock.
var ErrLocked = errors.New("data directory locked by another process")

// Store manages persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
	lock *flock.Flock
}

// Open initializes or connects to the database, acquires the data directory
// lock, and applies the schema.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	lock := flock.New(filepath.Join(cfg.Paths.DataDir, "hushplay.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire data lock: %w", err)
	}
	if !locked {
		return nil, ErrLocked
	}

	dbPath := filepath.Join(cfg.Paths.DataDir, "hushplay.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			_ = lock.Unlock()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath, lock: lock}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, err
	}
	return store, nil
}

// Close closes the database and releases the directory lock.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	var closeErr error
	if s.db != nil {
		closeErr = s.db.Close()
	}
	if s.lock != nil {
		if err := s.lock.Unlock(); err != nil && closeErr == nil {
			closeErr = err
		}
	}
	return closeErr
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
		if _, err := s.db.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
			return fmt.Errorf("record schema version: %w", err)
		}
		return nil
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (clear the cache or delete %s)",
			ErrSchemaMismatch, version, schemaVersion, s.path)
	}
	return nil
}

// CachedTranscript summarizes one cache entry without its payload.
type CachedTranscript struct {
	VideoID   string
	WordCount int
	Duration  float64
	FetchedAt time.Time
}

// SaveTranscript upserts a transcript into the cache.
func (s *Store) SaveTranscript(ctx context.Context, tr *transcript.Transcript) error {
	if tr == nil || tr.VideoID == "" {
		return errors.New("save transcript: missing video id")
	}
	payload, err := tr.Marshal()
	if err != nil {
		return err
	}
	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO transcripts (video_id, payload, word_count, duration_seconds, fetched_at)
         VALUES (?, ?, ?, ?, ?)
         ON CONFLICT(video_id) DO UPDATE SET
            payload = excluded.payload,
            word_count = excluded.word_count,
            duration_seconds = excluded.duration_seconds,
            fetched_at = excluded.fetched_at`,
		tr.VideoID, payload, len(tr.Words), tr.Duration(), now,
	)
	if err != nil {
		return fmt.Errorf("save transcript: %w", err)
	}
	return nil
}

// GetTranscript returns the cached transcript for a video, if present.
func (s *Store) GetTranscript(ctx context.Context, videoID string) (*transcript.Transcript, bool, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		"SELECT payload FROM transcripts WHERE video_id = ?", videoID,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get transcript: %w", err)
	}
	tr, err := transcript.Unmarshal(payload)
	if err != nil {
		return nil, false, err
	}
	return tr, true, nil
}

// ListTranscripts returns cache entries ordered most recent first.
func (s *Store) ListTranscripts(ctx context.Context) ([]CachedTranscript, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT video_id, word_count, duration_seconds, fetched_at
         FROM transcripts ORDER BY fetched_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list transcripts: %w", err)
	}
	defer rows.Close()

	var entries []CachedTranscript
	for rows.Next() {
		var entry CachedTranscript
		var fetchedAt string
		if err := rows.Scan(&entry.VideoID, &entry.WordCount, &entry.Duration, &fetchedAt); err != nil {
			return nil, fmt.Errorf("scan transcript row: %w", err)
		}
		if parsed, parseErr := time.Parse(time.RFC3339Nano, fetchedAt); parseErr == nil {
			entry.FetchedAt = parsed
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// DeleteTranscript removes one cache entry and reports whether it existed.
func (s *Store) DeleteTranscript(ctx context.Context, videoID string) (bool, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM transcripts WHERE video_id = ?", videoID)
	if err != nil {
		return false, fmt.Errorf("delete transcript: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete transcript: %w", err)
	}
	return affected > 0, nil
}

// ClearTranscripts removes every cache entry and returns the count removed.
func (s *Store) ClearTranscripts(ctx context.Context) (int, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM transcripts")
	if err != nil {
		return 0, fmt.Errorf("clear transcripts: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("clear transcripts: %w", err)
	}
	return int(affected), nil
}

// Prune removes entries fetched before the cutoff and returns the count
// removed. A zero or negative maxAge disables pruning.
func (s *Store) Prune(ctx context.Context, maxAge time.Duration) (int, error) {
	if maxAge <= 0 {
		return 0, nil
	}
	cutoff := time.Now().UTC().Add(-maxAge).Format(time.RFC3339Nano)
	res, err := s.db.ExecContext(ctx, "DELETE FROM transcripts WHERE fetched_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune transcripts: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("prune transcripts: %w", err)
	}
	return int(affected), nil
}

// LoadPreferences returns the stored preferences, or defaults when none
// have been saved yet.
func (s *Store) LoadPreferences(ctx context.Context) (prefs.Preferences, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, "SELECT payload FROM preferences WHERE id = 1").Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return prefs.Default(), nil
	}
	if err != nil {
		return prefs.Preferences{}, fmt.Errorf("load preferences: %w", err)
	}
	return prefs.Unmarshal(payload)
}

// SavePreferences persists the preferences row.
func (s *Store) SavePreferences(ctx context.Context, p prefs.Preferences) error {
	p.Normalize()
	payload, err := p.Marshal()
	if err != nil {
		return err
	}
	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO preferences (id, payload, updated_at) VALUES (1, ?, ?)
         ON CONFLICT(id) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		payload, now,
	)
	if err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}
	return nil
}
