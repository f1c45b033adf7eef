package journal

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"filesort/internal/config"
	"filesort/internal/faults"
	"filesort/internal/mover"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump this when the schema changes.
const schemaVersion = 1

var (
	// ErrSchemaMismatch indicates the database schema version doesn't match the expected version.
	ErrSchemaMismatch = errors.New("schema version mismatch")
	// ErrRunNotFound is returned when no run matches an ID or prefix.
	ErrRunNotFound = errors.New("run not found")
	// ErrAmbiguousRun is returned when an ID prefix matches several runs.
	ErrAmbiguousRun = errors.New("run id prefix is ambiguous")
)

const (
	sqliteBusyCode          = 5
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
	lockRetryDelay          = 50 * time.Millisecond
	timeLayout              = "2006-01-02T15:04:05.000000000Z07:00"
)

// Store manages journal persistence backed by SQLite.
type Store struct {
	db          *sql.DB
	path        string
	lock        *flock.Flock
	lockTimeout time.Duration
}

// Open opens the journal configured in cfg.
func Open(ctx context.Context, cfg *config.Config) (*Store, error) {
	timeout := time.Duration(cfg.Journal.LockTimeoutSeconds) * time.Second
	return OpenPath(ctx, cfg.Journal.Path, timeout)
}

// OpenPath initializes or connects to the journal database at path.
func OpenPath(ctx context.Context, path string, lockTimeout time.Duration) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, faults.Wrap(faults.ErrConfiguration, "journal", "open", "journal path is empty", nil)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, faults.Wrap(faults.ErrJournal, "journal", "ensure directory", filepath.Dir(path), err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.ExecContext(ctx, pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if lockTimeout <= 0 {
		lockTimeout = 10 * time.Second
	}
	store := &Store{
		db:          db,
		path:        path,
		lock:        flock.New(path + ".lock"),
		lockTimeout: lockTimeout,
	}
	if err := store.initSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// NewRunID returns a fresh run identifier.
func NewRunID() string {
	return uuid.NewString()
}

// RecordRun stores a finished run together with every outcome, in input order.
// Moved and Failed are derived from outcomes.
func (s *Store) RecordRun(ctx context.Context, run Run, outcomes []mover.Outcome) error {
	if run.ID == "" {
		run.ID = NewRunID()
	}
	if run.FinishedAt.IsZero() {
		run.FinishedAt = time.Now()
	}
	run.Moved, run.Failed = 0, 0
	for _, o := range outcomes {
		switch o.Status {
		case mover.StatusMoved:
			run.Moved++
		case mover.StatusFailed:
			run.Failed++
		}
	}

	return s.withLock(ctx, func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin run tx: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO runs (id, strategy, source_dir, output_dir, started_at, finished_at, moved, failed)
             VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			run.ID, run.Strategy, run.SourceDir, run.OutputDir,
			run.StartedAt.UTC().Format(timeLayout), run.FinishedAt.UTC().Format(timeLayout),
			run.Moved, run.Failed,
		); err != nil {
			return fmt.Errorf("insert run: %w", err)
		}

		for _, e := range entriesFromOutcomes(run.ID, outcomes) {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO entries (run_id, seq, file, category, source, destination, status, error)
                 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				e.RunID, e.Seq, e.File, e.Category, e.Source, e.Destination, e.Status, nullableString(e.Error),
			); err != nil {
				return fmt.Errorf("insert entry %d: %w", e.Seq, err)
			}
		}
		return tx.Commit()
	})
}

// Runs lists the most recent runs first. A limit <= 0 returns every run.
func (s *Store) Runs(ctx context.Context, limit int) ([]Run, error) {
	query := `SELECT id, strategy, source_dir, output_dir, started_at, finished_at, moved, failed, undone_at
              FROM runs ORDER BY started_at DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Run resolves a run by full ID or unique prefix.
func (s *Store) Run(ctx context.Context, idOrPrefix string) (Run, error) {
	idOrPrefix = strings.TrimSpace(idOrPrefix)
	if idOrPrefix == "" {
		return Run{}, ErrRunNotFound
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, strategy, source_dir, output_dir, started_at, finished_at, moved, failed, undone_at
         FROM runs WHERE id = ? OR id LIKE ? ESCAPE '\'
         ORDER BY CASE WHEN id = ? THEN 0 ELSE 1 END LIMIT 2`,
		idOrPrefix, escapeLike(idOrPrefix)+"%", idOrPrefix,
	)
	if err != nil {
		return Run{}, fmt.Errorf("query run: %w", err)
	}
	defer rows.Close()

	var matches []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return Run{}, err
		}
		if run.ID == idOrPrefix {
			return run, nil
		}
		matches = append(matches, run)
	}
	if err := rows.Err(); err != nil {
		return Run{}, err
	}
	switch len(matches) {
	case 0:
		return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, idOrPrefix)
	case 1:
		return matches[0], nil
	default:
		return Run{}, fmt.Errorf("%w: %s", ErrAmbiguousRun, idOrPrefix)
	}
}

// Entries returns the recorded files of a run in dispatch order.
func (s *Store) Entries(ctx context.Context, runID string) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, seq, file, category, source, destination, status, error
         FROM entries WHERE run_id = ? ORDER BY seq`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var errText sql.NullString
		if err := rows.Scan(&e.RunID, &e.Seq, &e.File, &e.Category, &e.Source, &e.Destination, &e.Status, &errText); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		e.Error = errText.String
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// MarkUndone stamps a run as reverted.
func (s *Store) MarkUndone(ctx context.Context, runID string, at time.Time) error {
	return s.withLock(ctx, func() error {
		res, err := s.execWithRetry(ctx, `UPDATE runs SET undone_at = ? WHERE id = ?`, at.UTC().Format(timeLayout), runID)
		if err != nil {
			return fmt.Errorf("mark run undone: %w", err)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil
	})
}

func (s *Store) withLock(ctx context.Context, fn func() error) error {
	lockCtx, cancel := context.WithTimeout(ctx, s.lockTimeout)
	defer cancel()
	locked, err := s.lock.TryLockContext(lockCtx, lockRetryDelay)
	if err != nil {
		return faults.Wrap(faults.ErrJournal, "journal", "acquire lock", s.lock.Path(), err)
	}
	if !locked {
		return faults.Wrap(faults.ErrJournal, "journal", "acquire lock", "another filesort process holds the journal", nil)
	}
	defer func() { _ = s.lock.Unlock() }()
	return retryOnBusy(ctx, fn)
}

func (s *Store) execWithRetry(ctx context.Context, query string, args ...any) (sql.Result, error) {
	var (
		res     sql.Result
		execErr error
	)
	if err := retryOnBusy(ctx, func() error {
		res, execErr = s.db.ExecContext(ctx, query, args...)
		return execErr
	}); err != nil {
		return nil, err
	}
	return res, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var (
		run               Run
		started, finished string
		undone            sql.NullString
	)
	if err := row.Scan(&run.ID, &run.Strategy, &run.SourceDir, &run.OutputDir, &started, &finished, &run.Moved, &run.Failed, &undone); err != nil {
		return Run{}, fmt.Errorf("scan run: %w", err)
	}
	run.StartedAt = parseTime(started)
	run.FinishedAt = parseTime(finished)
	if undone.Valid && undone.String != "" {
		t := parseTime(undone.String)
		run.UndoneAt = &t
	}
	return run, nil
}

func parseTime(value string) time.Time {
	t, err := time.Parse(timeLayout, value)
	if err != nil {
		return time.Time{}
	}
	return t
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func escapeLike(value string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(value)
}

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code() == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func retryOnBusy(ctx context.Context, op func() error) error {
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}
	return lastErr
}
