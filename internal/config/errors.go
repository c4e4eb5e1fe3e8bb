package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and Policy.Validate()
// and provide specific information about what is wrong.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages. Using errors.New() here rather than fmt.Errorf()
// because we don't need to include dynamic values in these messages.
var (
	// ErrNoSource is returned when no password file is specified.
	ErrNoSource = errors.New("no password file specified: provide at least one file path")

	// ErrInvalidMinLength is returned when the minimum length is below 1.
	// A minimum of zero would make the too-short warning meaningless.
	ErrInvalidMinLength = errors.New("invalid minimum length: must be at least 1")

	// ErrInvalidWeakestCount is returned when the weakest-list size is negative.
	// Use 0 to disable the weakest section.
	ErrInvalidWeakestCount = errors.New("invalid weakest count: must be non-negative")

	// ErrInvalidDetailCount is returned when the detail-list size is negative.
	// Use 0 to disable the detail section.
	ErrInvalidDetailCount = errors.New("invalid detail count: must be non-negative")

	// ErrInvalidBatchSize is returned when the batch size is not positive.
	// A batch size of zero would mean no concurrent audits, effectively
	// stopping the run.
	ErrInvalidBatchSize = errors.New("invalid batch size: must be positive")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrInvalidLengthBrackets is returned when the length brackets are not
	// positive and strictly ascending.
	ErrInvalidLengthBrackets = errors.New("invalid length brackets: must be positive and strictly ascending")

	// ErrInvalidPenalty is returned when a bonus or penalty is negative.
	ErrInvalidPenalty = errors.New("invalid score weight: bonuses and penalties must be non-negative")

	// ErrInvalidScoreCeiling is returned when the score ceiling is not positive.
	ErrInvalidScoreCeiling = errors.New("invalid score ceiling: must be positive")

	// ErrInvalidThresholds is returned when the strength thresholds are not
	// ordered. The weak threshold must be non-negative and not above the
	// strong threshold.
	ErrInvalidThresholds = errors.New("invalid strength thresholds: weak must be non-negative and not above strong")

	// ErrInvalidSequenceRunLength is returned when the sequential run length
	// is below 2. Runs of a single character cannot form a sequence.
	ErrInvalidSequenceRunLength = errors.New("invalid sequence run length: must be at least 2")
)
