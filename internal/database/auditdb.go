package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/allgoodman9/password-auditor/internal/model"
)

// AuditDB provides SQLite-based storage for audit runs and their
// per-password evaluations.
//
// Design decision: We use a single database file for all sources rather
// than one file per password file. This lets the history command compare
// runs and list sources with plain SQL instead of directory walks.
type AuditDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures AuditDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent performance.
	// This is recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates an AuditDB at the specified path.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*AuditDB, error) {
	dbPath := filepath.Join(dbDir, "password-auditor.db")

	// Check if we should create the database or require it to exist
	if !opts.CreateIfNotExists {
		// Check if database file exists
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		// Ensure directory exists
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// Build connection string
	// We use modernc.org/sqlite which uses a different connection string format.
	// When CreateIfNotExists is false, we use mode=rw to prevent creating new files.
	// When CreateIfNotExists is true, we use mode=rwc to allow creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool
	// SQLite doesn't benefit from multiple connections for writes,
	// but multiple readers can improve performance
	db.SetMaxOpenConns(1) // SQLite only supports one writer
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	adb := &AuditDB{
		db:     db,
		dbPath: dbPath,
	}

	// Enable WAL mode if requested
	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	// Create tables
	if err := adb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return adb, nil
}

// Close closes the database connection.
func (adb *AuditDB) Close() error {
	return adb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (adb *AuditDB) createTables() error {
	schema := `
	-- Audit runs store one row per audited password file
	CREATE TABLE IF NOT EXISTS audit_runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		source TEXT NOT NULL,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
		total INTEGER NOT NULL DEFAULT 0,
		weak_count INTEGER NOT NULL DEFAULT 0,
		medium_count INTEGER NOT NULL DEFAULT 0,
		strong_count INTEGER NOT NULL DEFAULT 0,
		avg_score REAL NOT NULL DEFAULT 0,
		avg_length REAL NOT NULL DEFAULT 0,
		skipped_lines INTEGER NOT NULL DEFAULT 0,
		error TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_runs_source ON audit_runs(source);
	CREATE INDEX IF NOT EXISTS idx_runs_timestamp ON audit_runs(timestamp);

	-- Evaluations store one digest row per password; plaintext never lands here
	CREATE TABLE IF NOT EXISTS evaluations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id INTEGER NOT NULL,
		position INTEGER NOT NULL,
		digest TEXT NOT NULL,
		length INTEGER NOT NULL,
		entropy REAL NOT NULL DEFAULT 0,
		score INTEGER NOT NULL,
		strength TEXT NOT NULL,
		warning_types TEXT,
		FOREIGN KEY (run_id) REFERENCES audit_runs(id)
	);

	CREATE INDEX IF NOT EXISTS idx_evals_run ON evaluations(run_id);
	CREATE INDEX IF NOT EXISTS idx_evals_digest ON evaluations(digest);
	`

	_, err := adb.db.ExecContext(context.Background(), schema)
	return err
}

// SaveAuditReport persists a completed audit run and its evaluations.
// Only password digests are stored, never the plaintext. Returns the
// database ID of the new run record.
func (adb *AuditDB) SaveAuditReport(ctx context.Context, report *model.AuditReport) (int64, error) {
	summary := report.Summary
	if summary == nil {
		summary = model.NewSummary(report.Evaluations, 0, 0)
	}

	tx, err := adb.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}

	runQuery := `
	INSERT INTO audit_runs (source, total, weak_count, medium_count, strong_count, avg_score, avg_length, skipped_lines, error)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := tx.ExecContext(ctx, runQuery,
		report.Source,
		summary.Total,
		summary.WeakCount,
		summary.MediumCount,
		summary.StrongCount,
		summary.AvgScore,
		summary.AvgLength,
		report.SkippedLines,
		report.ErrorMessage,
	)
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("failed to insert audit run: %w", err)
	}

	runID, err := result.LastInsertId()
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("failed to get run ID: %w", err)
	}

	evalQuery := `
	INSERT INTO evaluations (run_id, position, digest, length, entropy, score, strength, warning_types)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	for i, eval := range report.Evaluations {
		// Warning types are a small string slice; Marshal won't fail
		warningsJSON, _ := json.Marshal(eval.WarningTypes()) //nolint:errcheck,errchkjson

		_, err := tx.ExecContext(ctx, evalQuery,
			runID,
			i,
			model.Digest(eval.Text),
			eval.Length,
			eval.Entropy,
			eval.Score,
			eval.Strength.String(),
			string(warningsJSON),
		)
		if err != nil {
			_ = tx.Rollback()
			return 0, fmt.Errorf("failed to insert evaluation %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit audit run: %w", err)
	}

	return runID, nil
}

// RunRecord represents a stored audit run.
// This is the aggregate view used for history listings; the per-password
// rows are loaded separately via GetEvaluations.
type RunRecord struct {
	// ID is the unique identifier of the run in the database.
	ID int64

	// Source is the audited password file path.
	Source string

	// Timestamp is when the audit was performed.
	Timestamp time.Time

	// Total is the number of evaluated passwords.
	Total int

	// WeakCount is the number of passwords scored WEAK.
	WeakCount int

	// MediumCount is the number of passwords scored MEDIUM.
	MediumCount int

	// StrongCount is the number of passwords scored STRONG.
	StrongCount int

	// AvgScore is the mean score across all passwords.
	AvgScore float64

	// AvgLength is the mean password length in runes.
	AvgLength float64

	// SkippedLines counts blank input lines that were not evaluated.
	SkippedLines int

	// ErrorMessage holds the failure that aborted the run, if any.
	ErrorMessage string
}

// Failed returns true if the run aborted with an error.
func (r RunRecord) Failed() bool {
	return r.ErrorMessage != ""
}

// GetRunHistory retrieves all audit runs for a source, newest first.
// Runs saved within the same second are ordered by insertion.
func (adb *AuditDB) GetRunHistory(ctx context.Context, source string) ([]RunRecord, error) {
	query := `
	SELECT id, source, timestamp, total, weak_count, medium_count, strong_count, avg_score, avg_length, skipped_lines, error
	FROM audit_runs
	WHERE source = ?
	ORDER BY timestamp DESC, id DESC
	`

	rows, err := adb.db.QueryContext(ctx, query, source)
	if err != nil {
		return nil, fmt.Errorf("failed to get run history: %w", err)
	}
	defer rows.Close()

	var results []RunRecord
	for rows.Next() {
		var record RunRecord
		var timestamp string
		var errMsg sql.NullString

		err := rows.Scan(
			&record.ID,
			&record.Source,
			&timestamp,
			&record.Total,
			&record.WeakCount,
			&record.MediumCount,
			&record.StrongCount,
			&record.AvgScore,
			&record.AvgLength,
			&record.SkippedLines,
			&errMsg,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run record: %w", err)
		}

		record.Timestamp = parseTimestamp(timestamp)
		if errMsg.Valid {
			record.ErrorMessage = errMsg.String
		}
		results = append(results, record)
	}

	return results, rows.Err()
}

// GetRunByID retrieves an audit run by its database ID.
// Returns nil without error when no run has that ID.
func (adb *AuditDB) GetRunByID(ctx context.Context, id int64) (*RunRecord, error) {
	query := `
	SELECT id, source, timestamp, total, weak_count, medium_count, strong_count, avg_score, avg_length, skipped_lines, error
	FROM audit_runs
	WHERE id = ?
	`

	var record RunRecord
	var timestamp string
	var errMsg sql.NullString

	err := adb.db.QueryRowContext(ctx, query, id).Scan(
		&record.ID,
		&record.Source,
		&timestamp,
		&record.Total,
		&record.WeakCount,
		&record.MediumCount,
		&record.StrongCount,
		&record.AvgScore,
		&record.AvgLength,
		&record.SkippedLines,
		&errMsg,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	record.Timestamp = parseTimestamp(timestamp)
	if errMsg.Valid {
		record.ErrorMessage = errMsg.String
	}

	return &record, nil
}

// GetLatestRun retrieves the most recent audit run for a source.
// Returns nil without error when the source has never been audited.
func (adb *AuditDB) GetLatestRun(ctx context.Context, source string) (*RunRecord, error) {
	query := `
	SELECT id, source, timestamp, total, weak_count, medium_count, strong_count, avg_score, avg_length, skipped_lines, error
	FROM audit_runs
	WHERE source = ?
	ORDER BY timestamp DESC, id DESC
	LIMIT 1
	`

	var record RunRecord
	var timestamp string
	var errMsg sql.NullString

	err := adb.db.QueryRowContext(ctx, query, source).Scan(
		&record.ID,
		&record.Source,
		&timestamp,
		&record.Total,
		&record.WeakCount,
		&record.MediumCount,
		&record.StrongCount,
		&record.AvgScore,
		&record.AvgLength,
		&record.SkippedLines,
		&errMsg,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest run: %w", err)
	}

	record.Timestamp = parseTimestamp(timestamp)
	if errMsg.Valid {
		record.ErrorMessage = errMsg.String
	}

	return &record, nil
}

// ListSources returns all audited source paths in alphabetical order.
func (adb *AuditDB) ListSources(ctx context.Context) ([]string, error) {
	query := `
	SELECT DISTINCT source FROM audit_runs
	ORDER BY source
	`

	rows, err := adb.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list sources: %w", err)
	}
	defer rows.Close()

	var sources []string
	for rows.Next() {
		var source string
		if err := rows.Scan(&source); err != nil {
			return nil, fmt.Errorf("failed to scan source: %w", err)
		}
		sources = append(sources, source)
	}

	return sources, rows.Err()
}

// StoredEvaluation represents a persisted per-password evaluation.
// Digest is the only trace of the password itself.
type StoredEvaluation struct {
	// ID is the unique identifier of the evaluation row.
	ID int64

	// RunID is the audit run this evaluation belongs to.
	RunID int64

	// Position is the zero-based input-order index within the run.
	Position int

	// Digest is the hex SHA3-256 digest of the password.
	Digest string

	// Length is the password length in runes.
	Length int

	// Entropy is the estimated entropy in bits.
	Entropy float64

	// Score is the final clamped score.
	Score int

	// Strength is the strength level name (WEAK, MEDIUM or STRONG).
	Strength string

	// WarningTypes lists the warning type keys recorded for the password.
	WarningTypes []string
}

// GetEvaluations retrieves the evaluation rows of a run in input order.
func (adb *AuditDB) GetEvaluations(ctx context.Context, runID int64) ([]StoredEvaluation, error) {
	query := `
	SELECT id, run_id, position, digest, length, entropy, score, strength, warning_types
	FROM evaluations
	WHERE run_id = ?
	ORDER BY position
	`

	rows, err := adb.db.QueryContext(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get evaluations: %w", err)
	}
	defer rows.Close()

	var results []StoredEvaluation
	for rows.Next() {
		var eval StoredEvaluation
		var warningsJSON sql.NullString

		err := rows.Scan(
			&eval.ID,
			&eval.RunID,
			&eval.Position,
			&eval.Digest,
			&eval.Length,
			&eval.Entropy,
			&eval.Score,
			&eval.Strength,
			&warningsJSON,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan evaluation: %w", err)
		}

		if warningsJSON.Valid && warningsJSON.String != "" {
			if err := json.Unmarshal([]byte(warningsJSON.String), &eval.WarningTypes); err != nil {
				eval.WarningTypes = nil
			}
		}

		results = append(results, eval)
	}

	return results, rows.Err()
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05Z",    // ISO 8601 with Z suffix
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	time.RFC3339,              // Full RFC3339 format
	time.RFC3339Nano,          // RFC3339 with nanoseconds
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// SQLite may return timestamps in different formats depending on configuration.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	// Return zero time if no format matches
	// This is a fallback to avoid breaking functionality for edge cases
	return time.Time{}
}
