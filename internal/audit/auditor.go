package audit

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/allgoodman9/password-auditor/internal/config"
	"github.com/allgoodman9/password-auditor/internal/model"
	"github.com/allgoodman9/password-auditor/internal/scorer"
	"github.com/allgoodman9/password-auditor/internal/wordlist"
)

// Auditor audits a single password file at a time.
// It reads the file, scores every password and attaches the summary.
type Auditor struct {
	// scorer evaluates individual passwords.
	scorer *scorer.Scorer

	// weakestN caps the summary's weakest-passwords list.
	weakestN int

	// detailK caps the summary's per-password detail list.
	detailK int

	// keepBlank evaluates blank lines as empty-string passwords
	// instead of skipping them.
	keepBlank bool

	// logger is used for structured logging during the audit.
	logger *slog.Logger
}

// Option is a function that configures an Auditor.
// This follows the functional options pattern for clean API design.
type Option func(*Auditor)

// WithLogger sets a custom logger for the auditor.
// If not set, the default logger is used.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Auditor) {
		a.logger = logger
	}
}

// WithWeakestCount sets how many of the lowest-scoring passwords the
// summary lists. Negative values are ignored.
func WithWeakestCount(n int) Option {
	return func(a *Auditor) {
		if n >= 0 {
			a.weakestN = n
		}
	}
}

// WithDetailCount sets how many leading passwords receive a full
// breakdown in the summary. Negative values are ignored.
func WithDetailCount(k int) Option {
	return func(a *Auditor) {
		if k >= 0 {
			a.detailK = k
		}
	}
}

// WithKeepBlank configures blank input lines to be evaluated as
// empty-string passwords instead of being skipped.
func WithKeepBlank(keep bool) Option {
	return func(a *Auditor) {
		a.keepBlank = keep
	}
}

// New creates an Auditor that evaluates passwords with the given scorer.
func New(s *scorer.Scorer, opts ...Option) *Auditor {
	a := &Auditor{
		scorer:   s,
		weakestN: config.DefaultWeakestCount,
		detailK:  config.DefaultDetailCount,
	}

	// Apply options
	for _, opt := range opts {
		opt(a)
	}

	// Set default logger if not provided
	if a.logger == nil {
		a.logger = slog.Default()
	}

	return a
}

// Run audits one password file and returns the report.
//
// A read failure is both recorded on the report and returned as an
// error, so callers can choose between inspecting reports and handling
// errors. An empty file is not an error; it yields a report with zero
// evaluations.
//
// Design decision: We check context.Done() between stages rather than
// per password because scoring is cheap. Cancellation matters while
// waiting on file IO, and the read stage handles its own errors.
func (a *Auditor) Run(ctx context.Context, source string) (*model.AuditReport, error) {
	report := model.NewAuditReport(source)

	select {
	case <-ctx.Done():
		report.SetError(ctx.Err())
		return report, ctx.Err()
	default:
	}

	a.logger.Info("starting audit", "source", source)

	result, err := wordlist.Load(source, wordlist.Options{KeepBlank: a.keepBlank})
	if err != nil {
		a.logger.Error("audit failed", "source", source, "error", err)
		report.SetError(err)
		return report, fmt.Errorf("failed to load passwords: %w", err)
	}
	if !a.keepBlank {
		report.SkippedLines = result.BlankLines
	}

	select {
	case <-ctx.Done():
		report.SetError(ctx.Err())
		return report, ctx.Err()
	default:
	}

	a.logger.Debug("scoring passwords",
		"source", source,
		"count", len(result.Passwords),
		"skipped", report.SkippedLines,
	)

	report.Evaluations = a.scorer.EvaluateAll(result.Passwords)
	report.Summary = model.NewSummary(report.Evaluations, a.weakestN, a.detailK)

	a.logger.Info("audit complete",
		"source", source,
		"total", report.Summary.Total,
		"weak", report.Summary.WeakCount,
		"medium", report.Summary.MediumCount,
		"strong", report.Summary.StrongCount,
	)

	return report, nil
}
