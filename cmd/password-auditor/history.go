package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/allgoodman9/password-auditor/internal/config"
	"github.com/allgoodman9/password-auditor/internal/database"
	"github.com/allgoodman9/password-auditor/internal/model"
	"github.com/spf13/cobra"
)

// Constants for trend direction.
const (
	trendDirectionWorsened  = "worsened"
	trendDirectionImproved  = "improved"
	trendDirectionUnchanged = "unchanged"
)

// NewHistoryCmd creates the history command.
// This command compares audit results with historical data stored in the database.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [password-file]",
		Short: "Compare audit results with historical data",
		Long: `History shows how the audit results of a password file changed over time.

This command retrieves historical audit data from the database and shows:
- How the strength distribution shifted between two runs
- Passwords that became weak since the baseline run
- Weak passwords that were fixed

Weak passwords are identified by digest only; the passwords themselves
are never stored. The comparison requires at least two audit runs in
the database for the specified file. Use 'password-auditor audit' to
perform audits and save results.

Examples:
  # Compare the latest two audits of a file
  password-auditor history passwords.txt

  # List all audit history for a file
  password-auditor history --list passwords.txt

  # Compare the latest audit with a specific run by ID
  password-auditor history --run-id 5 passwords.txt

  # Output the comparison in JSON format
  password-auditor history --json passwords.txt

  # List all audited files in the database
  password-auditor history --list-sources`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHistoryCmd,
	}

	// History listing flags
	cmd.Flags().BoolP("list", "l", false,
		"List audit history for the specified password file")
	cmd.Flags().BoolP("list-sources", "L", false,
		"List all audited password files in the database")

	// Comparison target flags
	cmd.Flags().Int64P("run-id", "i", 0,
		"Compare the latest run with a specific run by ID (use --list to see available IDs)")

	// Output format flags
	cmd.Flags().BoolP("json", "j", false,
		"Output comparison result in JSON format")

	// History database flags
	cmd.Flags().String("db-dir", "",
		"Directory for the history database (default: XDG data directory)")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, args []string) error {
	// Handle --list-sources flag first (requires database but no file)
	listSources, err := cmd.Flags().GetBool("list-sources")
	if err != nil {
		return err
	}

	// Validate arguments before opening database (unless --list-sources)
	// This prevents database lock issues when validation fails
	var source string
	if !listSources {
		// Require a password file for other operations
		if len(args) == 0 {
			return errors.New("password file is required (use --list-sources to see audited files)")
		}

		// Clean the path the same way the audit command stores it
		source = filepath.Clean(args[0])
	}

	dbDir, err := cmd.Flags().GetString("db-dir")
	if err != nil {
		return err
	}
	if dbDir == "" {
		dbDir = config.XDGDataDir()
	}

	// Open database
	db, err := database.Open(dbDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer db.Close()

	ctx := context.Background()

	// Handle --list-sources flag
	if listSources {
		return listAuditedSources(ctx, db)
	}

	// Handle --list flag
	listHistory, err := cmd.Flags().GetBool("list")
	if err != nil {
		return err
	}
	if listHistory {
		return listRunHistory(ctx, db, source)
	}

	// Get output format flag
	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	// Get comparison target flag
	runID, err := cmd.Flags().GetInt64("run-id")
	if err != nil {
		return err
	}

	// Perform comparison
	return runTrendComparison(ctx, db, source, runID, jsonOutput)
}

// listAuditedSources lists all password files that have audit runs in the database.
func listAuditedSources(ctx context.Context, db *database.AuditDB) error {
	sources, err := db.ListSources(ctx)
	if err != nil {
		return fmt.Errorf("failed to list sources: %w", err)
	}

	if len(sources) == 0 {
		fmt.Println("No audited password files found in the database.")
		fmt.Println("\nUse 'password-auditor audit <file>' to audit a password file.")
		return nil
	}

	fmt.Printf("Audited password files (%d):\n\n", len(sources))
	for _, source := range sources {
		fmt.Printf("  • %s\n", source)
	}
	fmt.Println("\nUse 'password-auditor history --list <file>' to see audit history for a file.")

	return nil
}

// listRunHistory lists all audit runs for a specific password file.
func listRunHistory(ctx context.Context, db *database.AuditDB, source string) error {
	records, err := db.GetRunHistory(ctx, source)
	if err != nil {
		return fmt.Errorf("failed to get audit history: %w", err)
	}

	if len(records) == 0 {
		fmt.Printf("No audit history found for %s\n", source)
		fmt.Println("\nUse 'password-auditor audit' to audit this file.")
		return nil
	}

	fmt.Printf("Audit history for %s (%d runs):\n\n", source, len(records))
	fmt.Printf("  %-6s  %-20s  %-10s  %-20s  %s\n", "ID", "Date", "Passwords", "Strength Summary", "Avg Score")
	fmt.Println("  " + strings.Repeat("-", 72))

	for _, record := range records {
		fmt.Printf("  %-6d  %-20s  %-10d  %-20s  %.2f\n",
			record.ID,
			record.Timestamp.Format("2006-01-02 15:04:05"),
			record.Total,
			formatStrengthSummary(record),
			record.AvgScore,
		)
	}

	fmt.Println("\nUse 'password-auditor history <file>' to compare the latest two runs.")
	fmt.Println("Use 'password-auditor history --run-id <id> <file>' to compare with a specific run.")

	return nil
}

// formatStrengthSummary formats per-level counts into a short string.
func formatStrengthSummary(record database.RunRecord) string {
	var parts []string
	if record.WeakCount > 0 {
		parts = append(parts, fmt.Sprintf("W:%d", record.WeakCount))
	}
	if record.MediumCount > 0 {
		parts = append(parts, fmt.Sprintf("M:%d", record.MediumCount))
	}
	if record.StrongCount > 0 {
		parts = append(parts, fmt.Sprintf("S:%d", record.StrongCount))
	}

	if len(parts) == 0 {
		return "No passwords"
	}
	return strings.Join(parts, " ")
}

// runTrendComparison compares the latest run against an older baseline.
func runTrendComparison(ctx context.Context, db *database.AuditDB, source string, runID int64, jsonOutput bool) error {
	// Get the audit history
	records, err := db.GetRunHistory(ctx, source)
	if err != nil {
		return fmt.Errorf("failed to get audit history: %w", err)
	}

	if len(records) == 0 {
		return fmt.Errorf("no audit history found for %s", source)
	}

	if len(records) < 2 && runID == 0 {
		return fmt.Errorf("at least 2 audit runs are required for comparison (found %d)", len(records))
	}

	// The newest run is always the current one
	current := records[0]

	var previous database.RunRecord
	if runID > 0 {
		// Compare against the specified run
		record, err := db.GetRunByID(ctx, runID)
		if err != nil {
			return fmt.Errorf("failed to get run with ID %d: %w", runID, err)
		}
		if record == nil {
			return fmt.Errorf("run with ID %d not found", runID)
		}
		// Validate that the run belongs to the same file
		if record.Source != source {
			return fmt.Errorf("run ID %d belongs to %s, not %s", runID, record.Source, source)
		}
		if record.ID == current.ID {
			return fmt.Errorf("run ID %d is the latest run; choose an older baseline", runID)
		}
		previous = *record
	} else {
		// Default: compare with the previous run
		previous = records[1]
	}

	// Generate trend result
	trend, err := buildTrend(ctx, db, previous, current)
	if err != nil {
		return err
	}

	// Output the result
	if jsonOutput {
		return outputTrendJSON(trend)
	}
	return outputTrendText(trend)
}

// TrendResult holds the outcome of comparing two audit runs of one file.
type TrendResult struct {
	// Source is the audited password file path.
	Source string `json:"source"`

	// Previous contains the baseline run snapshot.
	Previous RunSnapshot `json:"previous_run"`

	// Current contains the latest run snapshot.
	Current RunSnapshot `json:"current_run"`

	// Change describes the shift in the strength distribution.
	Change StrengthChange `json:"change"`

	// NewWeak lists short digests of passwords that are weak in the
	// current run but were not weak in the baseline.
	NewWeak []string `json:"new_weak,omitempty"`

	// ResolvedWeak lists short digests of baseline weak passwords that
	// are no longer weak in the current run.
	ResolvedWeak []string `json:"resolved_weak,omitempty"`
}

// RunSnapshot contains the aggregate numbers of one run for comparison display.
type RunSnapshot struct {
	// RunID is the database identifier of the run.
	RunID int64 `json:"run_id"`

	// DateAudited is when the audit was performed.
	DateAudited time.Time `json:"date_audited"`

	// Total is the number of evaluated passwords.
	Total int `json:"total"`

	// WeakCount is the number of passwords scored WEAK.
	WeakCount int `json:"weak_count"`

	// MediumCount is the number of passwords scored MEDIUM.
	MediumCount int `json:"medium_count"`

	// StrongCount is the number of passwords scored STRONG.
	StrongCount int `json:"strong_count"`

	// AvgScore is the mean score across all passwords.
	AvgScore float64 `json:"avg_score"`
}

// StrengthChange describes the change in strength distribution between runs.
type StrengthChange struct {
	// Direction is "improved", "worsened", or "unchanged".
	Direction string `json:"direction"`

	// WeakDelta is the change in WEAK password count.
	WeakDelta int `json:"weak_delta"`

	// MediumDelta is the change in MEDIUM password count.
	MediumDelta int `json:"medium_delta"`

	// StrongDelta is the change in STRONG password count.
	StrongDelta int `json:"strong_delta"`

	// TotalDelta is the change in evaluated password count.
	TotalDelta int `json:"total_delta"`

	// AvgScoreDelta is the change in mean score.
	AvgScoreDelta float64 `json:"avg_score_delta"`
}

// buildTrend assembles the comparison between two stored runs.
func buildTrend(ctx context.Context, db *database.AuditDB, previous, current database.RunRecord) (*TrendResult, error) {
	result := &TrendResult{
		Source:   current.Source,
		Previous: snapshotOf(previous),
		Current:  snapshotOf(current),
	}
	result.Change = calculateStrengthChange(result.Previous, result.Current)

	// Load the per-password rows to diff the weak sets by digest
	previousEvals, err := db.GetEvaluations(ctx, previous.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get evaluations for run %d: %w", previous.ID, err)
	}
	currentEvals, err := db.GetEvaluations(ctx, current.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get evaluations for run %d: %w", current.ID, err)
	}

	result.NewWeak, result.ResolvedWeak = diffWeakDigests(previousEvals, currentEvals)

	return result, nil
}

// snapshotOf converts a run record into a display snapshot.
func snapshotOf(record database.RunRecord) RunSnapshot {
	return RunSnapshot{
		RunID:       record.ID,
		DateAudited: record.Timestamp,
		Total:       record.Total,
		WeakCount:   record.WeakCount,
		MediumCount: record.MediumCount,
		StrongCount: record.StrongCount,
		AvgScore:    record.AvgScore,
	}
}

// calculateStrengthChange calculates the distribution shift between two runs.
//
// Direction is decided by weighted badness, where one weak password
// counts as ten medium ones. The average score breaks ties.
func calculateStrengthChange(previous, current RunSnapshot) StrengthChange {
	change := StrengthChange{
		WeakDelta:     current.WeakCount - previous.WeakCount,
		MediumDelta:   current.MediumCount - previous.MediumCount,
		StrongDelta:   current.StrongCount - previous.StrongCount,
		TotalDelta:    current.Total - previous.Total,
		AvgScoreDelta: current.AvgScore - previous.AvgScore,
	}

	previousBadness := previous.WeakCount*10 + previous.MediumCount
	currentBadness := current.WeakCount*10 + current.MediumCount

	switch {
	case currentBadness < previousBadness:
		change.Direction = trendDirectionImproved
	case currentBadness > previousBadness:
		change.Direction = trendDirectionWorsened
	case change.AvgScoreDelta > 0:
		change.Direction = trendDirectionImproved
	case change.AvgScoreDelta < 0:
		change.Direction = trendDirectionWorsened
	default:
		change.Direction = trendDirectionUnchanged
	}

	return change
}

// diffWeakDigests compares the weak password sets of two runs by digest.
// Digests weak only in the current run are new; digests weak only in
// the previous run are resolved. Order follows run input order, and a
// password appearing twice in a file is listed once.
func diffWeakDigests(previousEvals, currentEvals []database.StoredEvaluation) (newWeak, resolvedWeak []string) {
	weakLevel := model.StrengthWeak.String()
	previousWeak := weakDigestSet(previousEvals)
	currentWeak := weakDigestSet(currentEvals)

	seen := make(map[string]bool)
	for _, eval := range currentEvals {
		if eval.Strength != weakLevel {
			continue
		}
		if previousWeak[eval.Digest] || seen[eval.Digest] {
			continue
		}
		seen[eval.Digest] = true
		newWeak = append(newWeak, model.ShortenDigest(eval.Digest))
	}

	seen = make(map[string]bool)
	for _, eval := range previousEvals {
		if eval.Strength != weakLevel {
			continue
		}
		if currentWeak[eval.Digest] || seen[eval.Digest] {
			continue
		}
		seen[eval.Digest] = true
		resolvedWeak = append(resolvedWeak, model.ShortenDigest(eval.Digest))
	}

	return newWeak, resolvedWeak
}

// weakDigestSet collects the digests of WEAK evaluations.
func weakDigestSet(evals []database.StoredEvaluation) map[string]bool {
	weakLevel := model.StrengthWeak.String()

	set := make(map[string]bool)
	for _, eval := range evals {
		if eval.Strength == weakLevel {
			set[eval.Digest] = true
		}
	}
	return set
}

// outputTrendJSON outputs the trend result in JSON format.
func outputTrendJSON(result *TrendResult) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// outputTrendText outputs the trend result in human-readable text format.
func outputTrendText(result *TrendResult) error {
	fmt.Printf("Audit Trend: %s\n", result.Source)
	fmt.Println(strings.Repeat("=", 60))

	// Trend summary
	fmt.Printf("\nStatus: %s\n", formatTrendDirection(result.Change.Direction))

	// Run dates
	fmt.Printf("\nPrevious audit: %s (run %d)\n",
		result.Previous.DateAudited.Format("2006-01-02 15:04:05"), result.Previous.RunID)
	fmt.Printf("Current audit:  %s (run %d)\n",
		result.Current.DateAudited.Format("2006-01-02 15:04:05"), result.Current.RunID)

	// Summary table
	fmt.Println("\nStrength Summary:")
	fmt.Printf("  %-10s  %-10s  %-10s  %-10s\n", "Level", "Previous", "Current", "Change")
	fmt.Println("  " + strings.Repeat("-", 45))
	fmt.Printf("  %-10s  %-10d  %-10d  %-10s\n", "Weak",
		result.Previous.WeakCount, result.Current.WeakCount,
		formatDelta(result.Change.WeakDelta))
	fmt.Printf("  %-10s  %-10d  %-10d  %-10s\n", "Medium",
		result.Previous.MediumCount, result.Current.MediumCount,
		formatDelta(result.Change.MediumDelta))
	fmt.Printf("  %-10s  %-10d  %-10d  %-10s\n", "Strong",
		result.Previous.StrongCount, result.Current.StrongCount,
		formatDelta(result.Change.StrongDelta))
	fmt.Println("  " + strings.Repeat("-", 45))
	fmt.Printf("  %-10s  %-10d  %-10d  %-10s\n", "Total",
		result.Previous.Total, result.Current.Total,
		formatDelta(result.Change.TotalDelta))

	fmt.Printf("\nAverage score: %.2f -> %.2f (%s)\n",
		result.Previous.AvgScore, result.Current.AvgScore,
		formatScoreDelta(result.Change.AvgScoreDelta))

	// New weak passwords
	if len(result.NewWeak) > 0 {
		fmt.Printf("\nNew Weak Passwords (%d):\n", len(result.NewWeak))
		for _, digest := range result.NewWeak {
			fmt.Printf("  [+] digest %s\n", digest)
		}
	}

	// Resolved weak passwords
	if len(result.ResolvedWeak) > 0 {
		fmt.Printf("\nResolved Weak Passwords (%d):\n", len(result.ResolvedWeak))
		for _, digest := range result.ResolvedWeak {
			fmt.Printf("  [-] digest %s\n", digest)
		}
	}

	return nil
}

// formatTrendDirection formats the trend direction for display.
func formatTrendDirection(direction string) string {
	switch direction {
	case trendDirectionImproved:
		return "IMPROVED (strength increased)"
	case trendDirectionWorsened:
		return "WORSENED (strength decreased)"
	default:
		return "UNCHANGED"
	}
}

// formatDelta formats a numeric delta with sign for display.
func formatDelta(delta int) string {
	if delta > 0 {
		return "+" + strconv.Itoa(delta)
	} else if delta < 0 {
		return strconv.Itoa(delta)
	}
	return "0"
}

// formatScoreDelta formats a fractional delta with sign for display.
func formatScoreDelta(delta float64) string {
	if delta > 0 {
		return fmt.Sprintf("+%.2f", delta)
	}
	return fmt.Sprintf("%.2f", delta)
}
