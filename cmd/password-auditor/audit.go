package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/allgoodman9/password-auditor/internal/audit"
	"github.com/allgoodman9/password-auditor/internal/config"
	"github.com/allgoodman9/password-auditor/internal/database"
	applog "github.com/allgoodman9/password-auditor/internal/log"
	"github.com/allgoodman9/password-auditor/internal/model"
	"github.com/allgoodman9/password-auditor/internal/report"
	"github.com/allgoodman9/password-auditor/internal/scorer"
	"github.com/spf13/cobra"
)

// NewAuditCmd creates the audit command.
func NewAuditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit [password-file...]",
		Short: "Audit password files for weak passwords",
		Long: `Audit scores every password in the given files and reports their strength.

Each password is evaluated for:
- Length (longer passwords earn more points)
- Character variety (lower, upper, digits, symbols)
- Predictable patterns (repeated or sequential characters)
- Presence on a common-password list

Passwords are classified as WEAK, MEDIUM or STRONG, and the report
highlights the weakest entries of each file. Runs are recorded in a
local history database unless --no-save is given; only password
digests are stored, never the passwords themselves.

Examples:
  # Audit a single password file
  password-auditor audit passwords.txt

  # Audit multiple files
  password-auditor audit staff.txt contractors.txt legacy.txt

  # Audit multiple files concurrently
  password-auditor audit --batch 4 exports/*.txt

  # Output JSON report
  password-auditor audit --json passwords.txt

  # Use a custom configuration file
  password-auditor audit -c myconfig.yaml passwords.txt

Configuration file (.password-auditor) example:
  defaults:
    min_length: 10
  sources:
    legacy-export.txt:
      min_length: 6
  extra_common_passwords:
    - companyname
    - changeme2024`,
		Args: cobra.ArbitraryArgs,
		RunE: runAuditCmd,
	}

	// Scoring flags
	cmd.Flags().IntP("min-length", "l", config.DefaultMinLength,
		"Recommended minimum password length; shorter passwords earn a warning")

	// Report list flags
	cmd.Flags().IntP("top", "t", config.DefaultWeakestCount,
		"Number of weakest passwords to highlight (0 disables the section)")
	cmd.Flags().IntP("detail", "d", config.DefaultDetailCount,
		"Number of leading passwords given a full breakdown (0 disables the section)")

	// Input handling flags
	cmd.Flags().Bool("keep-blank", false,
		"Evaluate blank lines as empty passwords instead of skipping them")

	// Batch auditing flags
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of files audited concurrently")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .password-auditor in current or home directory, then XDG config directory)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	// History database flags
	cmd.Flags().String("db-dir", "",
		"Directory for the history database (default: XDG data directory)")
	cmd.Flags().Bool("no-save", false,
		"Skip recording this run in the history database")

	return cmd
}

// runAuditCmd executes the audit command.
func runAuditCmd(cmd *cobra.Command, args []string) error {
	// Build config from flags
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Set up structured logging with password masking
	logger := applog.NewSecureLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runAudit(ctx, cfg, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	// Get flag values
	var err error

	cfg.MinLength, err = cmd.Flags().GetInt("min-length")
	if err != nil {
		return nil, err
	}

	cfg.WeakestCount, err = cmd.Flags().GetInt("top")
	if err != nil {
		return nil, err
	}

	cfg.DetailCount, err = cmd.Flags().GetInt("detail")
	if err != nil {
		return nil, err
	}

	cfg.KeepBlank, err = cmd.Flags().GetBool("keep-blank")
	if err != nil {
		return nil, err
	}

	cfg.BatchSize, err = cmd.Flags().GetInt("batch")
	if err != nil {
		return nil, err
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Load per-file configurations from the config file.
	// If user explicitly specified a config file path, error if not found.
	// If no path specified, silently use empty config if no file found.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		cfg.SourceConfigs, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	} else if explicitConfigPath {
		// User explicitly specified a config file that doesn't exist
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	} else {
		// Use empty config if no file found and user didn't explicitly specify one
		cfg.SourceConfigs = &config.File{
			Sources: make(map[string]config.SourceConfig),
		}
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	cfg.DBDir, err = cmd.Flags().GetString("db-dir")
	if err != nil {
		return nil, err
	}
	if cfg.DBDir == "" {
		cfg.DBDir = config.XDGDataDir()
	}

	noSave, err := cmd.Flags().GetBool("no-save")
	if err != nil {
		return nil, err
	}
	cfg.SaveToDB = !noSave

	cfg.Verbose = getVerboseFlag(cmd)

	// Positional arguments are the password files. Paths are cleaned so
	// that the history command later finds the run under the same key.
	cfg.Sources = make([]string, 0, len(args))
	for _, arg := range args {
		cfg.Sources = append(cfg.Sources, filepath.Clean(arg))
	}

	return cfg, nil
}

// runAudit executes the audit across all configured sources.
func runAudit(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("starting audit",
		"sources", cfg.Sources,
		"batchSize", cfg.BatchSize,
		"saveToDB", cfg.SaveToDB,
	)

	// Open the history database when saving is enabled. An unavailable
	// database degrades to a warning: the audit itself still runs.
	var db *database.AuditDB
	if cfg.SaveToDB {
		var err error
		db, err = database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			logger.Warn("history database unavailable, run will not be recorded",
				"dir", cfg.DBDir,
				"error", err,
			)
		} else {
			defer db.Close()
			logger.Info("history database opened", "dir", cfg.DBDir)
		}
	}

	// Resolve the report destination once so that several reports into
	// one --output file do not overwrite each other.
	out, outFile, err := openReportOutput(cfg)
	if err != nil {
		return err
	}
	if outFile != nil {
		defer outFile.Close()
	}

	// Use the batch auditor for parallel auditing if multiple files
	if len(cfg.Sources) > 1 && cfg.BatchSize > 1 {
		return runBatchAudit(ctx, cfg, db, out, logger)
	}

	// Single file or sequential auditing
	return runSequentialAudit(ctx, cfg, db, out, logger)
}

// runSequentialAudit audits files one at a time.
//
// A single file that cannot be read fails the whole command. With
// multiple files the failure is reported and the remaining files are
// still audited; only when every file fails does the command fail.
func runSequentialAudit(ctx context.Context, cfg *config.Config, db *database.AuditDB, out io.Writer, logger *slog.Logger) error {
	single := len(cfg.Sources) == 1

	failed := 0
	for _, source := range cfg.Sources {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		// Create an auditor with file-specific options
		auditor, err := auditorFor(cfg, source, logger)
		if err != nil {
			return err
		}

		startTime := time.Now()

		auditReport, err := auditor.Run(ctx, source)
		if err != nil {
			if single {
				return err
			}
			failed++
			logger.Error("audit failed", "source", source, "error", err)
			fmt.Fprintf(os.Stderr, "Audit error for %s: %v\n", source, err)
			continue
		}

		logger.Debug("audit complete",
			"source", source,
			"elapsed", time.Since(startTime).Round(time.Millisecond),
		)

		// Generate and output report
		if err := writeReport(cfg, out, auditReport); err != nil {
			logger.Error("report failed", "source", source, "error", err)
		}

		// Save to history database if enabled
		if err := saveAuditReport(ctx, db, auditReport, logger); err != nil {
			logger.Error("failed to save audit report", "source", source, "error", err)
		}
	}

	if failed > 0 && failed == len(cfg.Sources) {
		return fmt.Errorf("all %d audits failed", failed)
	}

	return nil
}

// runBatchAudit audits multiple files concurrently using BatchAuditor.
func runBatchAudit(ctx context.Context, cfg *config.Config, db *database.AuditDB, out io.Writer, logger *slog.Logger) error {
	fmt.Fprintf(os.Stderr, "Starting batch audit of %d files (concurrency: %d)...\n\n",
		len(cfg.Sources), cfg.BatchSize)

	startTime := time.Now()

	batch := audit.NewBatchAuditor(
		&sourceRunner{cfg: cfg, logger: logger},
		audit.WithConcurrency(cfg.BatchSize),
		audit.WithBatchLogger(logger),
	)

	// Process with callback for streaming output
	var mu sync.Mutex
	failed := 0
	err := batch.RunWithCallback(ctx, cfg.Sources, func(auditReport *model.AuditReport, index int) {
		mu.Lock()
		defer mu.Unlock()

		if auditReport.Failed() {
			failed++
			fmt.Fprintf(os.Stderr, "[%d/%d] Audit failed: %s: %s\n",
				index+1, len(cfg.Sources), auditReport.Source, auditReport.ErrorMessage)
			return
		}

		fmt.Fprintf(os.Stderr, "[%d/%d] Audit completed: %s\n",
			index+1, len(cfg.Sources), auditReport.Source)

		// Generate and output report
		if err := writeReport(cfg, out, auditReport); err != nil {
			logger.Error("report failed", "source", auditReport.Source, "error", err)
		}

		// Save to history database if enabled
		if err := saveAuditReport(ctx, db, auditReport, logger); err != nil {
			logger.Error("failed to save audit report", "source", auditReport.Source, "error", err)
		}
	})

	fmt.Fprintf(os.Stderr, "\nBatch audit completed in %s\n",
		time.Since(startTime).Round(time.Millisecond))

	if err != nil {
		return err
	}
	if failed > 0 && failed == len(cfg.Sources) {
		return fmt.Errorf("all %d audits failed", failed)
	}
	return nil
}

// sourceRunner adapts per-file auditor construction to the audit.Runner
// interface, so that overrides from the configuration file apply in
// batch mode too.
type sourceRunner struct {
	cfg    *config.Config
	logger *slog.Logger
}

// Run implements audit.Runner.
func (r *sourceRunner) Run(ctx context.Context, source string) (*model.AuditReport, error) {
	auditor, err := auditorFor(r.cfg, source, r.logger)
	if err != nil {
		return nil, err
	}
	return auditor.Run(ctx, source)
}

// auditorFor builds an Auditor for one password file, applying per-file
// overrides from the configuration file on top of the global flags.
func auditorFor(cfg *config.Config, source string, logger *slog.Logger) (*audit.Auditor, error) {
	sourceConfig := getSourceConfig(cfg, source)

	policy := config.DefaultPolicy()
	policy.MinLength = cfg.MinLength
	if sourceConfig.MinLength > 0 {
		policy.MinLength = sourceConfig.MinLength
	}
	if cfg.SourceConfigs != nil {
		policy.ExtraCommon = cfg.SourceConfigs.ExtraCommonPasswords
	}

	s, err := scorer.New(policy)
	if err != nil {
		return nil, err
	}

	weakestCount := cfg.WeakestCount
	if sourceConfig.WeakestCount > 0 {
		weakestCount = sourceConfig.WeakestCount
	}
	detailCount := cfg.DetailCount
	if sourceConfig.DetailCount > 0 {
		detailCount = sourceConfig.DetailCount
	}

	return audit.New(s,
		audit.WithWeakestCount(weakestCount),
		audit.WithDetailCount(detailCount),
		audit.WithKeepBlank(cfg.KeepBlank),
		audit.WithLogger(logger),
	), nil
}

// getSourceConfig returns the per-file configuration for a source.
// Falls back to defaults if no file-specific config exists.
func getSourceConfig(cfg *config.Config, source string) config.SourceConfig {
	if cfg.SourceConfigs == nil {
		return config.SourceConfig{}
	}
	return cfg.SourceConfigs.GetSourceConfig(source)
}

// openReportOutput resolves the report destination. The returned file
// is non-nil only when --output is set; the caller must close it.
func openReportOutput(cfg *config.Config) (io.Writer, *os.File, error) {
	if cfg.ReportFile == "" {
		return os.Stdout, nil, nil
	}

	// Create directories if they don't exist
	dir := filepath.Dir(cfg.ReportFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	// Create/overwrite the output file with secure permissions (0600)
	// Reports contain password text that should only be readable by the owner
	f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, f, nil
}

// writeReport renders one audit report in the requested format.
func writeReport(cfg *config.Config, out io.Writer, auditReport *model.AuditReport) error {
	// JSON output (versioned report with summary)
	if cfg.JSONReport {
		writer := report.NewFullJSONWriter(out, getVersion(), report.WithPrettyPrint())
		_, err := writer.Write(auditReport)
		return err
	}

	// Markdown output
	if cfg.MarkdownReport {
		writer := report.NewMarkdownWriter(out)
		_, err := writer.Write(auditReport)
		return err
	}

	// Human-readable report (default)
	writer := report.NewSimpleWriter(out, report.WithVerbose(cfg.Verbose))
	_, err := writer.Write(auditReport)
	return err
}

// saveAuditReport records the audit run in the history database.
// If db is nil, this function is a no-op.
func saveAuditReport(ctx context.Context, db *database.AuditDB, auditReport *model.AuditReport, logger *slog.Logger) error {
	if db == nil {
		return nil
	}

	runID, err := db.SaveAuditReport(ctx, auditReport)
	if err != nil {
		return fmt.Errorf("failed to save audit report: %w", err)
	}

	logger.Info("audit run saved to history",
		"source", auditReport.Source,
		"runID", runID,
	)
	return nil
}
