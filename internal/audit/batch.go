package audit

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/allgoodman9/password-auditor/internal/model"
)

// defaultConcurrency is the number of files audited at once when the
// caller does not choose one.
const defaultConcurrency = 4

// Runner audits a single password file.
// It is implemented by *Auditor; tests substitute doubles.
type Runner interface {
	Run(ctx context.Context, source string) (*model.AuditReport, error)
}

// BatchAuditor handles concurrent auditing of multiple password files.
// It uses errgroup to manage goroutines and respect concurrency limits.
//
// Design decision: We share one Runner across goroutines instead of
// creating one per file because:
// 1. Auditors carry no per-run state; concurrent Run calls are safe
// 2. The scorer's common-password set is built once, not per file
// 3. It keeps the constructor signature simple
type BatchAuditor struct {
	// runner performs the per-file audits.
	runner Runner

	// concurrency is the maximum number of files audited at once.
	concurrency int

	// logger is used for batch-level logging.
	logger *slog.Logger

	// results stores completed audit reports.
	// Access is synchronized via mutex.
	results []*model.AuditReport
	mu      sync.Mutex
}

// BatchOption configures a BatchAuditor.
type BatchOption func(*BatchAuditor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchAuditor) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrently audited files.
// Non-positive values keep the default.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchAuditor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBatchAuditor creates a new BatchAuditor around the given runner.
func NewBatchAuditor(runner Runner, opts ...BatchOption) *BatchAuditor {
	b := &BatchAuditor{
		runner:      runner,
		concurrency: defaultConcurrency,
		results:     make([]*model.AuditReport, 0),
	}

	for _, opt := range opts {
		opt(b)
	}

	if b.logger == nil {
		b.logger = slog.Default()
	}

	return b
}

// Run audits multiple password files concurrently.
// It respects the configured concurrency limit and context cancellation.
//
// Design decision: We use errgroup.SetLimit rather than a worker pool
// because it's simpler and errgroup handles the concurrency correctly.
// Each file gets its own goroutine, but only 'concurrency' goroutines
// run simultaneously.
//
// Returns all reports collected, even for files that failed to load.
// The error return indicates whether the batch was cancelled; per-file
// failures are recorded in the corresponding report.
func (b *BatchAuditor) Run(ctx context.Context, sources []string) ([]*model.AuditReport, error) {
	b.logger.Info("starting batch audit",
		"total_files", len(sources),
		"concurrency", b.concurrency,
	)

	startTime := time.Now()

	// Pre-allocate results slice to maintain order
	b.results = make([]*model.AuditReport, len(sources))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(b.concurrency)

	for i, source := range sources {
		g.Go(func() error {
			// Check for cancellation before starting
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			b.logger.Info("auditing file",
				"source", source,
				"index", i+1,
				"total", len(sources),
			)

			report, err := b.runner.Run(ctx, source)
			if report == nil {
				report = model.NewAuditReport(source)
				report.SetError(err)
			}

			// Store result regardless of error
			// The report contains error information if the audit failed
			b.mu.Lock()
			b.results[i] = report
			b.mu.Unlock()

			if err != nil {
				b.logger.Warn("audit failed",
					"source", source,
					"error", err,
				)
				// Don't return error to errgroup - we want to continue other files
				// The error is recorded in the report
				return nil
			}

			return nil
		})
	}

	// Wait for all audits to complete
	err := g.Wait()

	elapsed := time.Since(startTime)
	b.logger.Info("batch audit complete",
		"total_files", len(sources),
		"elapsed", elapsed,
	)

	return b.results, err
}

// RunWithCallback audits multiple files and calls a callback for each
// completed audit. This is useful for streaming results.
//
// The callback receives the report and the index of the file in the
// original slice. The callback is called from the goroutine that
// completed the audit, so it should be thread-safe if it accesses
// shared state.
func (b *BatchAuditor) RunWithCallback(
	ctx context.Context,
	sources []string,
	callback func(report *model.AuditReport, index int),
) error {
	b.logger.Info("starting batch audit with callback",
		"total_files", len(sources),
		"concurrency", b.concurrency,
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(b.concurrency)

	for i, source := range sources {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			report, err := b.runner.Run(ctx, source)
			if report == nil {
				report = model.NewAuditReport(source)
				report.SetError(err)
			}

			// Call the callback with the result
			callback(report, i)

			return nil
		})
	}

	return g.Wait()
}
