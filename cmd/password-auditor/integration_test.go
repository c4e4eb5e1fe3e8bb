package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/allgoodman9/password-auditor/internal/config"
	"github.com/allgoodman9/password-auditor/internal/database"
	"github.com/allgoodman9/password-auditor/internal/model"
)

// skipIfShort skips the test if -short flag is set.
// Integration tests run complete audit workflows against a real SQLite
// database instead of exercising single functions.
func skipIfShort(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
}

// hasWarningType reports whether a stored evaluation carries the warning.
func hasWarningType(eval database.StoredEvaluation, warningType string) bool {
	for _, w := range eval.WarningTypes {
		if w == warningType {
			return true
		}
	}
	return false
}

// TestIntegrationAuditAndHistory tests the full workflow: audit a file
// twice, then compare the two runs through the history database.
//
// Note: Not using t.Parallel() because this test captures os.Stdout.
func TestIntegrationAuditAndHistory(t *testing.T) {
	skipIfShort(t)

	ctx := context.Background()

	tmpDir := t.TempDir()
	dbDir := filepath.Join(tmpDir, "db")

	// password -> WEAK (common), Tr0ub4dor&3 -> STRONG, passphrase -> MEDIUM
	passwordFile := writePasswordFile(t, tmpDir, "staff.txt",
		"password\nTr0ub4dor&3\ncorrect horse battery staple\n")

	cfg := config.NewConfig()
	cfg.Sources = []string{passwordFile}
	cfg.ReportFile = filepath.Join(tmpDir, "report1.txt")
	cfg.DBDir = dbDir
	cfg.SaveToDB = true

	logger := testLogger()

	t.Log("Running first audit...")
	if err := runAudit(ctx, cfg, logger); err != nil {
		t.Fatalf("first runAudit() error = %v", err)
	}

	data, err := os.ReadFile(cfg.ReportFile)
	if err != nil {
		t.Fatalf("failed to read report file: %v", err)
	}
	if !strings.Contains(string(data), "PASSWORD AUDIT REPORT") {
		t.Errorf("expected report header in %s", cfg.ReportFile)
	}

	// The common password got rotated, a new weak one crept in
	writePasswordFile(t, tmpDir, "staff.txt",
		"P@ssw0rd!Tr4p\nTr0ub4dor&3\nqwerty\n")

	cfg.ReportFile = filepath.Join(tmpDir, "report2.txt")

	t.Log("Running second audit...")
	if err := runAudit(ctx, cfg, logger); err != nil {
		t.Fatalf("second runAudit() error = %v", err)
	}

	// Now test the history functionality
	db, err := database.Open(dbDir, database.Options{CreateIfNotExists: false, EnableWAL: true})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	// Verify we have 2 runs with the expected distributions
	records, err := db.GetRunHistory(ctx, passwordFile)
	if err != nil {
		t.Fatalf("failed to get audit history: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 audit runs, got %d", len(records))
	}

	current, previous := records[0], records[1]
	if previous.WeakCount != 1 || previous.MediumCount != 1 || previous.StrongCount != 1 {
		t.Errorf("expected first run W:1 M:1 S:1, got W:%d M:%d S:%d",
			previous.WeakCount, previous.MediumCount, previous.StrongCount)
	}
	if current.WeakCount != 1 || current.MediumCount != 0 || current.StrongCount != 2 {
		t.Errorf("expected second run W:1 M:0 S:2, got W:%d M:%d S:%d",
			current.WeakCount, current.MediumCount, current.StrongCount)
	}

	t.Logf("Found %d audit runs. Running comparison...", len(records))

	// Test runTrendComparison with text output
	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	err = runTrendComparison(ctx, db, passwordFile, 0, false)

	w.Close()
	os.Stdout = oldStdout

	if err != nil {
		t.Fatalf("runTrendComparison() error = %v", err)
	}

	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	r.Close()
	output := buf.String()

	if !strings.Contains(output, "Audit Trend: "+passwordFile) {
		t.Errorf("expected trend header for %s, got: %s", passwordFile, output)
	}
	if !strings.Contains(output, "IMPROVED") {
		t.Errorf("expected IMPROVED status, got: %s", output)
	}
	if !strings.Contains(output, "3.67 -> 4.00") {
		t.Errorf("expected average score change 3.67 -> 4.00, got: %s", output)
	}
	if !strings.Contains(output, "New Weak Passwords (1):") {
		t.Errorf("expected one new weak password, got: %s", output)
	}
	if !strings.Contains(output, model.ShortDigest("qwerty")) {
		t.Errorf("expected digest of the new weak password, got: %s", output)
	}
	if !strings.Contains(output, "Resolved Weak Passwords (1):") {
		t.Errorf("expected one resolved weak password, got: %s", output)
	}
	if !strings.Contains(output, model.ShortDigest("password")) {
		t.Errorf("expected digest of the resolved weak password, got: %s", output)
	}

	// Test with JSON output
	oldStdout = os.Stdout
	r, w, _ = os.Pipe()
	os.Stdout = w

	err = runTrendComparison(ctx, db, passwordFile, 0, true)

	w.Close()
	os.Stdout = oldStdout

	if err != nil {
		t.Fatalf("runTrendComparison() with JSON error = %v", err)
	}

	buf.Reset()
	_, _ = buf.ReadFrom(r)
	r.Close()
	output = buf.String()

	if !strings.Contains(output, `"direction": "improved"`) {
		t.Errorf("expected improved direction in JSON, got: %s", output)
	}
	if !strings.Contains(output, model.ShortDigest("qwerty")) {
		t.Errorf("expected new weak digest in JSON, got: %s", output)
	}

	t.Log("Comparison completed successfully")
}

// TestIntegrationBatchAudit tests batch auditing with multiple files.
func TestIntegrationBatchAudit(t *testing.T) {
	skipIfShort(t)

	ctx := context.Background()

	tmpDir := t.TempDir()
	dbDir := filepath.Join(tmpDir, "db")

	files := []string{
		writePasswordFile(t, tmpDir, "staff.txt", "password\nTr0ub4dor&3\n"),
		writePasswordFile(t, tmpDir, "contractors.txt", "qwerty\nletmein\n"),
		writePasswordFile(t, tmpDir, "service-accounts.txt", "correct horse battery staple\n"),
	}

	cfg := config.NewConfig()
	cfg.Sources = files
	cfg.BatchSize = 2 // Enable batch auditing
	cfg.ReportFile = filepath.Join(tmpDir, "report.txt")
	cfg.DBDir = dbDir
	cfg.SaveToDB = true

	t.Log("Running batch audit...")
	if err := runAudit(ctx, cfg, testLogger()); err != nil {
		t.Fatalf("runAudit() error = %v", err)
	}

	// Verify every file got its own run in the database
	db, err := database.Open(dbDir, database.Options{CreateIfNotExists: false, EnableWAL: true})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	sources, err := db.ListSources(ctx)
	if err != nil {
		t.Fatalf("failed to list sources: %v", err)
	}
	if len(sources) != len(files) {
		t.Errorf("expected %d sources in database, got %d: %v", len(files), len(sources), sources)
	}

	for _, file := range files {
		records, err := db.GetRunHistory(ctx, file)
		if err != nil {
			t.Fatalf("failed to get audit history for %s: %v", file, err)
		}
		if len(records) != 1 {
			t.Errorf("expected 1 run for %s, got %d", file, len(records))
		}
	}

	// All reports share the one --output file
	data, err := os.ReadFile(cfg.ReportFile)
	if err != nil {
		t.Fatalf("failed to read report file: %v", err)
	}
	for _, file := range files {
		if !strings.Contains(string(data), file) {
			t.Errorf("expected report to mention %s", file)
		}
	}

	t.Logf("Batch audit completed. Found %d source(s) in database.", len(sources))
}

// TestIntegrationReportFormats audits the same file in every report format.
func TestIntegrationReportFormats(t *testing.T) {
	skipIfShort(t)

	ctx := context.Background()

	tmpDir := t.TempDir()
	passwordFile := writePasswordFile(t, tmpDir, "passwords.txt",
		"password\nTr0ub4dor&3\ncorrect horse battery staple\n")

	newFormatConfig := func(reportFile string) *config.Config {
		cfg := config.NewConfig()
		cfg.Sources = []string{passwordFile}
		cfg.ReportFile = reportFile
		cfg.SaveToDB = false
		return cfg
	}

	t.Run("text report", func(t *testing.T) {
		reportFile := filepath.Join(tmpDir, "report.txt")
		cfg := newFormatConfig(reportFile)

		if err := runAudit(ctx, cfg, testLogger()); err != nil {
			t.Fatalf("runAudit() error = %v", err)
		}

		data, err := os.ReadFile(reportFile)
		if err != nil {
			t.Fatalf("failed to read report: %v", err)
		}
		output := string(data)

		if !strings.Contains(output, "PASSWORD AUDIT REPORT") {
			t.Errorf("expected text report header, got: %s", output)
		}
		if !strings.Contains(output, passwordFile) {
			t.Errorf("expected report to mention %s", passwordFile)
		}
		if !strings.Contains(output, "Report generated by password-auditor") {
			t.Errorf("expected report footer, got: %s", output)
		}
	})

	t.Run("json report", func(t *testing.T) {
		reportFile := filepath.Join(tmpDir, "report.json")
		cfg := newFormatConfig(reportFile)
		cfg.JSONReport = true

		if err := runAudit(ctx, cfg, testLogger()); err != nil {
			t.Fatalf("runAudit() error = %v", err)
		}

		data, err := os.ReadFile(reportFile)
		if err != nil {
			t.Fatalf("failed to read report: %v", err)
		}

		var result map[string]interface{}
		if err := json.Unmarshal(data, &result); err != nil {
			t.Fatalf("failed to parse JSON report: %v", err)
		}

		report, ok := result["report"].(map[string]interface{})
		if !ok {
			t.Fatalf("expected report object in JSON, got: %v", result)
		}
		if report["source"] != passwordFile {
			t.Errorf("expected source %s, got %v", passwordFile, report["source"])
		}
		evaluations, ok := report["evaluations"].([]interface{})
		if !ok {
			t.Fatalf("expected evaluations array in JSON, got: %v", report)
		}
		if len(evaluations) != 3 {
			t.Errorf("expected 3 evaluations, got %d", len(evaluations))
		}
	})

	t.Run("markdown report", func(t *testing.T) {
		reportFile := filepath.Join(tmpDir, "report.md")
		cfg := newFormatConfig(reportFile)
		cfg.MarkdownReport = true

		if err := runAudit(ctx, cfg, testLogger()); err != nil {
			t.Fatalf("runAudit() error = %v", err)
		}

		data, err := os.ReadFile(reportFile)
		if err != nil {
			t.Fatalf("failed to read report: %v", err)
		}
		output := string(data)

		if !strings.Contains(output, "# Password Audit Report") {
			t.Errorf("expected markdown title, got: %s", output)
		}
		if !strings.Contains(output, "## Strength Summary") {
			t.Errorf("expected strength summary section, got: %s", output)
		}
		if !strings.Contains(output, "mermaid") {
			t.Errorf("expected strength distribution pie chart, got: %s", output)
		}
	})
}

// TestIntegrationConfigFileOverrides runs an audit with a configuration
// file and verifies that per-file overrides reach the stored evaluations.
func TestIntegrationConfigFileOverrides(t *testing.T) {
	skipIfShort(t)

	ctx := context.Background()

	tmpDir := t.TempDir()
	dbDir := filepath.Join(tmpDir, "db")

	passwordFile := writePasswordFile(t, tmpDir, "vault.txt", "companyname\nzqpXY\n")

	configFile := filepath.Join(tmpDir, "auditor.yml")
	configYAML := `defaults:
  min_length: 32
sources:
  vault.txt:
    min_length: 4
extra_common_passwords:
  - companyname
`
	if err := os.WriteFile(configFile, []byte(configYAML), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cmd := NewAuditCmd()
	if err := cmd.Flags().Set("config", configFile); err != nil {
		t.Fatalf("failed to set config flag: %v", err)
	}
	if err := cmd.Flags().Set("db-dir", dbDir); err != nil {
		t.Fatalf("failed to set db-dir flag: %v", err)
	}
	if err := cmd.Flags().Set("output", filepath.Join(tmpDir, "report.txt")); err != nil {
		t.Fatalf("failed to set output flag: %v", err)
	}

	cfg, err := buildConfig(cmd, []string{passwordFile})
	if err != nil {
		t.Fatalf("buildConfig() error = %v", err)
	}

	if err := runAudit(ctx, cfg, testLogger()); err != nil {
		t.Fatalf("runAudit() error = %v", err)
	}

	db, err := database.Open(dbDir, database.Options{CreateIfNotExists: false, EnableWAL: true})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	record, err := db.GetLatestRun(ctx, passwordFile)
	if err != nil {
		t.Fatalf("failed to get latest run: %v", err)
	}
	if record == nil {
		t.Fatal("expected a stored run")
	}

	evals, err := db.GetEvaluations(ctx, record.ID)
	if err != nil {
		t.Fatalf("failed to get evaluations: %v", err)
	}
	if len(evals) != 2 {
		t.Fatalf("expected 2 evaluations, got %d", len(evals))
	}

	// extra_common_passwords makes companyname a common password
	if evals[0].Strength != model.StrengthWeak.String() {
		t.Errorf("expected companyname to be WEAK, got %s", evals[0].Strength)
	}
	if !hasWarningType(evals[0], model.WarningCommon) {
		t.Errorf("expected %s warning for companyname, got %v",
			model.WarningCommon, evals[0].WarningTypes)
	}

	// The per-file min_length 4 wins over the defaults' 32, so the
	// five-character password is not flagged as too short
	if hasWarningType(evals[1], model.WarningTooShort) {
		t.Errorf("expected no %s warning with min_length override, got %v",
			model.WarningTooShort, evals[1].WarningTypes)
	}
}

// TestIntegrationCommandLine drives the audit and history commands the
// way a user would, through the root command.
//
// Note: Not using t.Parallel() because this test captures os.Stdout.
func TestIntegrationCommandLine(t *testing.T) {
	skipIfShort(t)

	tmpDir := t.TempDir()
	dbDir := filepath.Join(tmpDir, "db")

	passwordFile := writePasswordFile(t, tmpDir, "team.txt", "password\nTr0ub4dor&3\n")

	runCommand := func(t *testing.T, args ...string) string {
		t.Helper()

		oldStdout := os.Stdout
		r, w, _ := os.Pipe()
		os.Stdout = w

		root := NewRootCmd()
		root.SetArgs(args)
		err := root.Execute()

		w.Close()
		os.Stdout = oldStdout

		if err != nil {
			t.Fatalf("command %v error = %v", args, err)
		}

		var buf bytes.Buffer
		_, _ = buf.ReadFrom(r)
		r.Close()
		return buf.String()
	}

	report1 := filepath.Join(tmpDir, "report1.txt")
	runCommand(t, "audit", "--db-dir", dbDir, "--output", report1, passwordFile)
	if _, err := os.Stat(report1); err != nil {
		t.Fatalf("expected report file after audit: %v", err)
	}

	writePasswordFile(t, tmpDir, "team.txt", "P@ssw0rd!Tr4p\nTr0ub4dor&3\n")

	report2 := filepath.Join(tmpDir, "report2.txt")
	runCommand(t, "audit", "--db-dir", dbDir, "--output", report2, passwordFile)

	t.Run("list sources", func(t *testing.T) {
		output := runCommand(t, "history", "--db-dir", dbDir, "--list-sources")
		if !strings.Contains(output, passwordFile) {
			t.Errorf("expected sources to contain %s, got: %s", passwordFile, output)
		}
	})

	t.Run("list history", func(t *testing.T) {
		output := runCommand(t, "history", "--db-dir", dbDir, "--list", passwordFile)
		if !strings.Contains(output, "2 runs") {
			t.Errorf("expected 2 runs in history, got: %s", output)
		}
	})

	t.Run("trend text", func(t *testing.T) {
		output := runCommand(t, "history", "--db-dir", dbDir, passwordFile)
		if !strings.Contains(output, "Audit Trend: "+passwordFile) {
			t.Errorf("expected trend header, got: %s", output)
		}
		if !strings.Contains(output, "Strength Summary:") {
			t.Errorf("expected strength summary table, got: %s", output)
		}
	})

	t.Run("trend json", func(t *testing.T) {
		output := runCommand(t, "history", "--db-dir", dbDir, "--json", passwordFile)
		if !strings.Contains(output, `"direction"`) {
			t.Errorf("expected direction in JSON, got: %s", output)
		}
		if !strings.Contains(output, `"current_run"`) {
			t.Errorf("expected current run snapshot in JSON, got: %s", output)
		}
	})
}

// Example_integrationTest demonstrates how to run integration tests.
func Example_integrationTest() {
	// Run integration tests with:
	//   go test -v ./cmd/password-auditor/... -run TestIntegration
	//
	// Skip integration tests with:
	//   go test -v -short ./cmd/password-auditor/...
	//
	// Integration tests cover the full workflow: reading password files,
	// scoring, report output, history persistence and trend comparison.
	fmt.Println("See TestIntegrationAuditAndHistory for a complete example")
	// Output: See TestIntegrationAuditAndHistory for a complete example
}
