package journal

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// DBFileName is the journal database file created under the log directory.
const DBFileName = "journal.db"

// Store manages journal persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the journal database under dir.
func Open(ctx context.Context, dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure journal directory: %w", err)
	}

	dbPath := filepath.Join(dir, DBFileName)
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
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
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record inserts one journal entry. CreatedAt defaults to now.
func (s *Store) Record(ctx context.Context, entry Entry) error {
	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO conversions (
            session_id, path, outcome, reason, codec, bitrate_kbps, channels,
            original_bytes, final_bytes, backup_path, elapsed_seconds, created_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.SessionID,
		entry.Path,
		string(entry.Outcome),
		nullableString(entry.Reason),
		nullableString(entry.Codec),
		entry.BitrateKbps,
		entry.Channels,
		entry.OriginalBytes,
		entry.FinalBytes,
		nullableString(entry.BackupPath),
		entry.Elapsed.Seconds(),
		createdAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert journal entry: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, session_id, path, outcome, reason, codec, bitrate_kbps, channels,
                original_bytes, final_bytes, backup_path, elapsed_seconds, created_at
         FROM conversions ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query journal: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate journal: %w", err)
	}
	return entries, nil
}

// Clear removes all journal entries.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM conversions"); err != nil {
		return fmt.Errorf("clear journal: %w", err)
	}
	return nil
}

func scanEntry(rows *sql.Rows) (Entry, error) {
	var (
		entry          Entry
		outcome        string
		reason, codec  sql.NullString
		backupPath     sql.NullString
		elapsedSeconds float64
		createdAt      string
	)
	err := rows.Scan(
		&entry.ID,
		&entry.SessionID,
		&entry.Path,
		&outcome,
		&reason,
		&codec,
		&entry.BitrateKbps,
		&entry.Channels,
		&entry.OriginalBytes,
		&entry.FinalBytes,
		&backupPath,
		&elapsedSeconds,
		&createdAt,
	)
	if err != nil {
		return Entry{}, fmt.Errorf("scan journal entry: %w", err)
	}
	entry.Outcome = Outcome(outcome)
	entry.Reason = reason.String
	entry.Codec = codec.String
	entry.BackupPath = backupPath.String
	entry.Elapsed = time.Duration(elapsedSeconds * float64(time.Second))
	if parsed, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		entry.CreatedAt = parsed
	}
	return entry, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
