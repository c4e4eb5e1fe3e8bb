package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// Default configuration values.
// The scoring constants are fixed, documented choices; the property tests
// in the scorer package pin the behavior they produce.
const (
	// DefaultMinLength is the recommended minimum password length.
	// Eight characters is the floor most password guidance agrees on;
	// anything shorter earns a too-short warning regardless of score.
	// Can be overridden via the --min-length CLI flag.
	DefaultMinLength = 8

	// DefaultWeakestCount is how many of the lowest-scoring passwords the
	// report highlights. Five keeps the section readable while surfacing
	// the most urgent rotations. Can be overridden via the --top CLI flag.
	DefaultWeakestCount = 5

	// DefaultDetailCount is how many leading passwords receive a full
	// per-password breakdown. Ten covers small files completely without
	// flooding the terminal on large ones.
	DefaultDetailCount = 10

	// DefaultBatchSize of 1 audits multiple files sequentially.
	// Scoring is CPU-trivial; parallelism only pays off for many files on
	// slow storage, so concurrency is strictly opt-in via --batch.
	DefaultBatchSize = 1

	// DefaultClassBonus is the score awarded per character class present
	// (lowercase, uppercase, digit, symbol).
	DefaultClassBonus = 1

	// DefaultCommonPenalty is subtracted when a password appears on the
	// common-password list. This is the harshest penalty because a listed
	// password falls to a dictionary attack immediately.
	DefaultCommonPenalty = 3

	// DefaultPatternPenalty is subtracted for repeated or sequential
	// character patterns.
	DefaultPatternPenalty = 2

	// DefaultScoreCeiling caps the heuristic score. The built-in checks
	// top out below it; the headroom is for registered custom checks.
	DefaultScoreCeiling = 10

	// DefaultWeakThreshold is the score below which a password is WEAK.
	DefaultWeakThreshold = 3

	// DefaultStrongThreshold is the score at or above which a password is
	// STRONG. Scores between the two thresholds are MEDIUM.
	DefaultStrongThreshold = 6

	// DefaultSequenceRunLength is the shortest ascending or descending run
	// (such as "abc" or "321") that counts as a sequential pattern.
	DefaultSequenceRunLength = 3

	// AppName is the application name used for XDG directory paths.
	AppName = "password-auditor"
)

// Config holds all runtime options for password-auditor.
// This struct is designed to be populated from CLI flags and passed through
// the application via dependency injection rather than global state.
//
// Design decision: We use a single flat struct instead of nested structs
// (e.g., ScoringConfig, ReportConfig) for simplicity. The number of options
// is manageable, and nesting would add complexity without significant benefit.
// The scoring constants that the scorer consumes live in Policy instead.
type Config struct {
	// Sources is the list of password files to audit.
	// Must contain at least one path; each file holds one password per line.
	Sources []string

	// MinLength is the recommended minimum password length.
	// Passwords below it earn a too-short warning.
	MinLength int

	// WeakestCount is how many of the lowest-scoring passwords the report
	// highlights. 0 disables the weakest section.
	WeakestCount int

	// DetailCount is how many leading passwords receive a full breakdown.
	// 0 disables the detail section.
	DetailCount int

	// KeepBlank treats blank input lines as empty-string passwords instead
	// of skipping them. Skipped lines are still counted in the report.
	KeepBlank bool

	// BatchSize is the number of concurrent audits when processing multiple
	// files. 1 means fully sequential; a single file is always one pass.
	BatchSize int

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// JSONReport enables JSON report output instead of human-readable format.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown report output with tables, alerts,
	// and a strength distribution pie chart.
	// Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the report.
	// When set, the report is written to this file instead of stdout.
	// Directories are created automatically if they don't exist.
	ReportFile string

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .password-auditor in the current
	// directory and then in the user's home directory.
	ConfigFilePath string

	// SourceConfigs holds per-file overrides loaded from the config file.
	// This is populated by LoadConfigFile and consulted per source.
	SourceConfigs *File

	// DBDir is the directory holding the SQLite history database.
	// Defaults to the XDG data directory when left empty.
	DBDir string

	// SaveToDB indicates whether to record the run in the history database.
	// Enabled by default; the --no-save flag disables it.
	SaveToDB bool
}

// NewConfig creates a new Config with default values.
// All fields are set to safe, sensible defaults that work for most use cases.
// Users can override specific values after creation.
//
// Design decision: We use a constructor function instead of relying on
// zero values because many defaults are non-zero (e.g., minimum length,
// list sizes). This also serves as documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		MinLength:    DefaultMinLength,
		WeakestCount: DefaultWeakestCount,
		DetailCount:  DefaultDetailCount,
		BatchSize:    DefaultBatchSize,
		SaveToDB:     true,
	}
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// Design decision: We validate at the config level rather than at each
// point of use to fail fast and provide clear error messages upfront.
// This is called once after CLI parsing, before any auditing begins.
//
// We chose to return the first error found rather than collecting all errors
// because fixing one error often makes others irrelevant.
func (c *Config) Validate() error {
	// We must have at least one password file to audit
	if len(c.Sources) == 0 {
		return ErrNoSource
	}

	// MinLength below 1 would make the too-short warning meaningless
	if c.MinLength < 1 {
		return ErrInvalidMinLength
	}

	// List sizes may be zero (section disabled) but never negative
	if c.WeakestCount < 0 {
		return ErrInvalidWeakestCount
	}
	if c.DetailCount < 0 {
		return ErrInvalidDetailCount
	}

	// BatchSize must be positive; zero would mean no auditing
	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}

	// JSONReport and MarkdownReport are mutually exclusive
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	return nil
}

// Policy holds the scoring constants consumed by the scorer.
// A Policy travels by value so the constants cannot change behind an
// evaluation in progress.
//
// Design decision: Scoring weights live in an explicit structure rather
// than package-level variables because:
// 1. Tests can evaluate against alternate thresholds in isolation
// 2. Per-source overrides merge into a copy, never into shared state
// 3. All tunable numbers are visible in one place
type Policy struct {
	// MinLength is the recommended minimum password length.
	MinLength int

	// LengthBrackets lists the lengths that each earn one score point.
	// Must be positive and strictly ascending.
	LengthBrackets []int

	// ClassBonus is the score awarded per character class present.
	ClassBonus int

	// CommonPenalty is subtracted for common-list passwords.
	CommonPenalty int

	// PatternPenalty is subtracted for repeated or sequential patterns.
	PatternPenalty int

	// ScoreCeiling caps the final score. The floor is always 0.
	ScoreCeiling int

	// WeakThreshold is the score below which a password is WEAK.
	WeakThreshold int

	// StrongThreshold is the score at or above which a password is STRONG.
	StrongThreshold int

	// SequenceRunLength is the shortest run that counts as sequential.
	SequenceRunLength int

	// ExtraCommon extends the embedded common-password list.
	// Populated from the extra_common_passwords config file section.
	ExtraCommon []string
}

// DefaultPolicy returns the standard scoring policy.
// Each call returns a fresh value, including a fresh brackets slice, so
// callers can adjust their copy without affecting anyone else.
func DefaultPolicy() Policy {
	return Policy{
		MinLength:         DefaultMinLength,
		LengthBrackets:    []int{6, 10, 14},
		ClassBonus:        DefaultClassBonus,
		CommonPenalty:     DefaultCommonPenalty,
		PatternPenalty:    DefaultPatternPenalty,
		ScoreCeiling:      DefaultScoreCeiling,
		WeakThreshold:     DefaultWeakThreshold,
		StrongThreshold:   DefaultStrongThreshold,
		SequenceRunLength: DefaultSequenceRunLength,
	}
}

// Validate checks that the policy constants are coherent.
// It returns the first error found.
func (p Policy) Validate() error {
	if p.MinLength < 1 {
		return ErrInvalidMinLength
	}
	for i, bracket := range p.LengthBrackets {
		if bracket < 1 || (i > 0 && bracket <= p.LengthBrackets[i-1]) {
			return ErrInvalidLengthBrackets
		}
	}
	if p.ClassBonus < 0 || p.CommonPenalty < 0 || p.PatternPenalty < 0 {
		return ErrInvalidPenalty
	}
	if p.ScoreCeiling < 1 {
		return ErrInvalidScoreCeiling
	}
	if p.WeakThreshold < 0 || p.StrongThreshold < p.WeakThreshold {
		return ErrInvalidThresholds
	}
	if p.SequenceRunLength < 2 {
		return ErrInvalidSequenceRunLength
	}
	return nil
}

// XDGDataDir returns the XDG data directory for password-auditor.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.local/share/password-auditor
// On macOS: ~/Library/Application Support/password-auditor
// On Windows: %LOCALAPPDATA%\password-auditor
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for password-auditor.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.config/password-auditor
// On macOS: ~/Library/Application Support/password-auditor
// On Windows: %APPDATA%\password-auditor
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// XDGCacheDir returns the XDG cache directory for password-auditor.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.cache/password-auditor
// On macOS: ~/Library/Caches/password-auditor
// On Windows: %LOCALAPPDATA%\password-auditor\cache
func XDGCacheDir() string {
	return filepath.Join(xdg.CacheHome, AppName)
}
