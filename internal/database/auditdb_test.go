package database

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/allgoodman9/password-auditor/internal/model"
)

// setupTestDB creates a temporary database for testing.
func setupTestDB(t *testing.T) (*AuditDB, func()) {
	t.Helper()

	tmpDir := t.TempDir()

	db, err := Open(tmpDir, DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}

	cleanup := func() {
		_ = db.Close()
	}

	return db, cleanup
}

// createTestReport builds a report with one weak and one strong password.
func createTestReport(source string) *model.AuditReport {
	report := model.NewAuditReport(source)
	report.AddEvaluation(model.Evaluation{
		Text:     "password",
		Length:   8,
		HasLower: true,
		Entropy:  37.6,
		Score:    0,
		Strength: model.StrengthWeak,
		Warnings: []model.Warning{
			model.NewWarning(model.WarningCommon, "Password is a very common weak password."),
		},
	})
	report.AddEvaluation(model.Evaluation{
		Text:      "Tr0ub4dor&3",
		Length:    11,
		HasLower:  true,
		HasUpper:  true,
		HasDigit:  true,
		HasSymbol: true,
		Entropy:   72.3,
		Score:     6,
		Strength:  model.StrengthStrong,
	})
	report.Summary = model.NewSummary(report.Evaluations, 5, 10)
	return report
}

// TestOpen tests database opening and creation.
func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("creates database in new directory", func(t *testing.T) {
		t.Parallel()

		tmpDir := t.TempDir()

		dbDir := filepath.Join(tmpDir, "newdir", "subdir")
		db, err := Open(dbDir, DefaultOptions())
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()

		// Check that database file exists
		dbPath := filepath.Join(dbDir, "password-auditor.db")
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			t.Error("database file was not created")
		}
	})

	t.Run("CreateIfNotExists=false returns error when database does not exist", func(t *testing.T) {
		t.Parallel()

		tmpDir := t.TempDir()
		dbDir := filepath.Join(tmpDir, "nonexistent-db")

		opts := Options{
			CreateIfNotExists: false,
			EnableWAL:         true,
		}

		_, err := Open(dbDir, opts)
		if err == nil {
			t.Fatal("expected error when CreateIfNotExists=false and database does not exist")
		}

		if !strings.Contains(err.Error(), "database not found") {
			t.Errorf("expected error to mention missing database, got %q", err.Error())
		}

		// Verify database directory was NOT created
		if _, statErr := os.Stat(dbDir); !os.IsNotExist(statErr) {
			t.Error("database directory should not have been created when CreateIfNotExists=false")
		}
	})

	t.Run("CreateIfNotExists=false opens existing database", func(t *testing.T) {
		t.Parallel()

		tmpDir := t.TempDir()
		dbDir := filepath.Join(tmpDir, "existing-db")

		// First create the database
		db1, err := Open(dbDir, DefaultOptions())
		if err != nil {
			t.Fatalf("failed to create database: %v", err)
		}

		// Save a run to verify data persists
		ctx := context.Background()
		runID, err := db1.SaveAuditReport(ctx, createTestReport("persist.txt"))
		if err != nil {
			t.Fatalf("failed to save report: %v", err)
		}
		db1.Close()

		// Now open with CreateIfNotExists=false
		openOpts := Options{
			CreateIfNotExists: false,
			EnableWAL:         true,
		}
		db2, err := Open(dbDir, openOpts)
		if err != nil {
			t.Fatalf("failed to open existing database with CreateIfNotExists=false: %v", err)
		}
		defer db2.Close()

		// Verify data persists
		record, err := db2.GetRunByID(ctx, runID)
		if err != nil {
			t.Fatalf("failed to get run: %v", err)
		}
		if record == nil {
			t.Error("expected run record to exist in database")
		}
	})

	t.Run("CreateIfNotExists=false with directory but no db file", func(t *testing.T) {
		t.Parallel()

		tmpDir := t.TempDir()
		dbDir := filepath.Join(tmpDir, "empty-dir")

		// Create the directory but not the database file
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			t.Fatalf("failed to create directory: %v", err)
		}

		opts := Options{
			CreateIfNotExists: false,
			EnableWAL:         true,
		}

		_, err := Open(dbDir, opts)
		if err == nil {
			t.Fatal("expected error when directory exists but database file does not")
		}
	})
}

// TestDefaultOptions tests the default options values.
func TestDefaultOptions(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions()

	if !opts.CreateIfNotExists {
		t.Error("expected CreateIfNotExists to be true by default")
	}
	if !opts.EnableWAL {
		t.Error("expected EnableWAL to be true by default")
	}
}

// TestSaveAuditReport tests persisting audit runs.
func TestSaveAuditReport(t *testing.T) {
	t.Parallel()

	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	t.Run("save and retrieve run", func(t *testing.T) {
		report := createTestReport("passwords.txt")
		report.SkippedLines = 2

		runID, err := db.SaveAuditReport(ctx, report)
		if err != nil {
			t.Fatalf("failed to save report: %v", err)
		}
		if runID == 0 {
			t.Error("expected non-zero run ID")
		}

		record, err := db.GetRunByID(ctx, runID)
		if err != nil {
			t.Fatalf("failed to get run: %v", err)
		}
		if record == nil {
			t.Fatal("expected run record, got nil")
		}

		if record.Source != "passwords.txt" {
			t.Errorf("expected source 'passwords.txt', got %q", record.Source)
		}
		if record.Total != 2 {
			t.Errorf("expected total 2, got %d", record.Total)
		}
		if record.WeakCount != 1 || record.StrongCount != 1 {
			t.Errorf("expected 1 weak and 1 strong, got %d and %d", record.WeakCount, record.StrongCount)
		}
		if record.SkippedLines != 2 {
			t.Errorf("expected 2 skipped lines, got %d", record.SkippedLines)
		}
		if record.Failed() {
			t.Error("expected run to not be failed")
		}
	})

	t.Run("stores digests not plaintext", func(t *testing.T) {
		report := createTestReport("digests.txt")

		runID, err := db.SaveAuditReport(ctx, report)
		if err != nil {
			t.Fatalf("failed to save report: %v", err)
		}

		evals, err := db.GetEvaluations(ctx, runID)
		if err != nil {
			t.Fatalf("failed to get evaluations: %v", err)
		}
		if len(evals) != 2 {
			t.Fatalf("expected 2 evaluations, got %d", len(evals))
		}

		if evals[0].Digest != model.Digest("password") {
			t.Errorf("expected digest of 'password', got %q", evals[0].Digest)
		}
		for _, eval := range evals {
			if eval.Digest == "password" || eval.Digest == "Tr0ub4dor&3" {
				t.Error("plaintext password must never be stored")
			}
		}
	})

	t.Run("computes summary when report carries none", func(t *testing.T) {
		report := createTestReport("nosummary.txt")
		report.Summary = nil

		runID, err := db.SaveAuditReport(ctx, report)
		if err != nil {
			t.Fatalf("failed to save report: %v", err)
		}

		record, err := db.GetRunByID(ctx, runID)
		if err != nil {
			t.Fatalf("failed to get run: %v", err)
		}
		if record.Total != 2 {
			t.Errorf("expected computed total 2, got %d", record.Total)
		}
		if record.WeakCount != 1 {
			t.Errorf("expected computed weak count 1, got %d", record.WeakCount)
		}
	})

	t.Run("save failed run", func(t *testing.T) {
		report := model.NewAuditReport("missing.txt")
		report.ErrorMessage = "failed to open password file"

		runID, err := db.SaveAuditReport(ctx, report)
		if err != nil {
			t.Fatalf("failed to save report: %v", err)
		}

		record, err := db.GetRunByID(ctx, runID)
		if err != nil {
			t.Fatalf("failed to get run: %v", err)
		}
		if !record.Failed() {
			t.Error("expected run to be marked failed")
		}
		if record.Total != 0 {
			t.Errorf("expected total 0 for failed run, got %d", record.Total)
		}
	})
}

// TestGetRunHistory tests retrieval of run history for a source.
func TestGetRunHistory(t *testing.T) {
	t.Parallel()

	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	t.Run("returns empty list for unknown source", func(t *testing.T) {
		history, err := db.GetRunHistory(ctx, "never-audited.txt")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(history) != 0 {
			t.Errorf("expected empty history, got %d runs", len(history))
		}
	})

	t.Run("returns all runs newest first", func(t *testing.T) {
		for range 3 {
			if _, err := db.SaveAuditReport(ctx, createTestReport("history.txt")); err != nil {
				t.Fatalf("failed to save report: %v", err)
			}
		}

		history, err := db.GetRunHistory(ctx, "history.txt")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(history) != 3 {
			t.Fatalf("expected 3 runs, got %d", len(history))
		}

		// Newest first means descending IDs for runs saved in sequence
		if history[0].ID < history[1].ID || history[1].ID < history[2].ID {
			t.Errorf("expected descending run IDs, got %d, %d, %d",
				history[0].ID, history[1].ID, history[2].ID)
		}
		for _, record := range history {
			if record.Source != "history.txt" {
				t.Errorf("expected source 'history.txt', got %q", record.Source)
			}
		}
	})
}

// TestGetLatestRun tests retrieval of the most recent run.
func TestGetLatestRun(t *testing.T) {
	t.Parallel()

	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	t.Run("returns nil for unknown source", func(t *testing.T) {
		record, err := db.GetLatestRun(ctx, "never-audited.txt")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if record != nil {
			t.Error("expected nil for unknown source")
		}
	})

	t.Run("returns the most recent run", func(t *testing.T) {
		first, err := db.SaveAuditReport(ctx, createTestReport("latest.txt"))
		if err != nil {
			t.Fatalf("failed to save first report: %v", err)
		}
		second, err := db.SaveAuditReport(ctx, createTestReport("latest.txt"))
		if err != nil {
			t.Fatalf("failed to save second report: %v", err)
		}

		record, err := db.GetLatestRun(ctx, "latest.txt")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if record == nil {
			t.Fatal("expected run record, got nil")
		}
		if record.ID != second {
			t.Errorf("expected latest run ID %d, got %d (first was %d)", second, record.ID, first)
		}
	})
}

// TestGetRunByID tests retrieval of runs by database ID.
func TestGetRunByID(t *testing.T) {
	t.Parallel()

	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	t.Run("returns nil for non-existent ID", func(t *testing.T) {
		record, err := db.GetRunByID(ctx, 99999)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if record != nil {
			t.Error("expected nil for non-existent ID")
		}
	})

	t.Run("retrieves run by ID", func(t *testing.T) {
		runID, err := db.SaveAuditReport(ctx, createTestReport("byid.txt"))
		if err != nil {
			t.Fatalf("failed to save report: %v", err)
		}

		record, err := db.GetRunByID(ctx, runID)
		if err != nil {
			t.Fatalf("failed to get run by ID: %v", err)
		}
		if record == nil {
			t.Fatal("expected run record, got nil")
		}
		if record.Source != "byid.txt" {
			t.Errorf("expected source 'byid.txt', got %q", record.Source)
		}
	})
}

// TestListSources tests listing of audited sources.
func TestListSources(t *testing.T) {
	t.Parallel()

	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	// Two runs for the same source plus one other source
	for _, source := range []string{"b-list.txt", "a-list.txt", "b-list.txt"} {
		if _, err := db.SaveAuditReport(ctx, createTestReport(source)); err != nil {
			t.Fatalf("failed to save report: %v", err)
		}
	}

	sources, err := db.ListSources(ctx)
	if err != nil {
		t.Fatalf("failed to list sources: %v", err)
	}

	if len(sources) != 2 {
		t.Fatalf("expected 2 distinct sources, got %d", len(sources))
	}
	if sources[0] != "a-list.txt" || sources[1] != "b-list.txt" {
		t.Errorf("expected alphabetical order, got %v", sources)
	}
}

// TestGetEvaluations tests retrieval of stored evaluation rows.
func TestGetEvaluations(t *testing.T) {
	t.Parallel()

	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	t.Run("returns empty list for unknown run", func(t *testing.T) {
		evals, err := db.GetEvaluations(ctx, 99999)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(evals) != 0 {
			t.Errorf("expected no evaluations, got %d", len(evals))
		}
	})

	t.Run("returns rows in input order with warnings", func(t *testing.T) {
		runID, err := db.SaveAuditReport(ctx, createTestReport("ordered.txt"))
		if err != nil {
			t.Fatalf("failed to save report: %v", err)
		}

		evals, err := db.GetEvaluations(ctx, runID)
		if err != nil {
			t.Fatalf("failed to get evaluations: %v", err)
		}
		if len(evals) != 2 {
			t.Fatalf("expected 2 evaluations, got %d", len(evals))
		}

		if evals[0].Position != 0 || evals[1].Position != 1 {
			t.Errorf("expected positions 0 and 1, got %d and %d", evals[0].Position, evals[1].Position)
		}
		if evals[0].Strength != "WEAK" {
			t.Errorf("expected strength WEAK, got %q", evals[0].Strength)
		}
		if evals[1].Score != 6 {
			t.Errorf("expected score 6, got %d", evals[1].Score)
		}

		// The weak password carries the common-password warning type
		if len(evals[0].WarningTypes) != 1 || evals[0].WarningTypes[0] != model.WarningCommon {
			t.Errorf("expected warning types [%s], got %v", model.WarningCommon, evals[0].WarningTypes)
		}
		if len(evals[1].WarningTypes) != 0 {
			t.Errorf("expected no warning types, got %v", evals[1].WarningTypes)
		}
	})
}
