package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/allgoodman9/password-auditor/internal/model"
)

// SimpleWriter outputs human-readable text reports.
// This format is designed for terminal display with clear section
// formatting.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors by default because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
// 3. Color can be added as an option later if needed
type SimpleWriter struct {
	baseWriter

	// showEmpty controls whether sections with no entries are shown.
	showEmpty bool

	// verbose enables additional detail in the output.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithShowEmpty configures the writer to show empty sections.
func WithShowEmpty(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showEmpty = show
	}
}

// WithVerbose enables verbose output with remediation advice and
// entropy estimates.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		showEmpty:  false,
		verbose:    false,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the full report in human-readable format.
// It builds a summary from the evaluations if not already present.
func (w *SimpleWriter) Write(report *model.AuditReport) (int, error) {
	summary := ensureSummary(report)

	var sb strings.Builder

	w.writeHeader(&sb, report, summary)
	w.writeSummary(&sb, summary)
	w.writeWeakest(&sb, summary)
	w.writeDetail(&sb, summary)
	w.writeFooter(&sb)

	return w.output.Write([]byte(sb.String()))
}

// WriteSummary outputs only the aggregate sections, without the report
// header. This is useful when the caller prints its own context line.
func (w *SimpleWriter) WriteSummary(summary *model.Summary) (int, error) {
	var sb strings.Builder

	w.writeSummary(&sb, summary)
	w.writeWeakest(&sb, summary)
	w.writeDetail(&sb, summary)

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the report header with audit information.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, report *model.AuditReport, summary *model.Summary) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                        PASSWORD AUDIT REPORT\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("Source:      %s\n", report.Source))
	sb.WriteString(fmt.Sprintf("Audit Date:  %s\n", report.DateAudited.Format("2006-01-02 15:04:05 MST")))
	sb.WriteString(fmt.Sprintf("Passwords:   %d\n", summary.Total))

	if report.SkippedLines > 0 {
		sb.WriteString(fmt.Sprintf("Skipped:     %d blank line(s)\n", report.SkippedLines))
	}

	if report.Failed() {
		sb.WriteString(fmt.Sprintf("Status:      ERROR - %s\n", report.ErrorMessage))
	} else {
		sb.WriteString("Status:      Complete\n")
	}

	sb.WriteString("\n")
}

// writeSummary writes the strength summary section.
func (w *SimpleWriter) writeSummary(sb *strings.Builder, summary *model.Summary) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("STRENGTH SUMMARY\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("  Length:     min %d / max %d / avg %.1f\n", summary.MinLength, summary.MaxLength, summary.AvgLength))
	sb.WriteString(fmt.Sprintf("  Avg Score:  %.1f\n", summary.AvgScore))
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("  WEAK:     %d (%5.1f%%)\n", summary.WeakCount, summary.Percentage(summary.WeakCount)))
	sb.WriteString(fmt.Sprintf("  MEDIUM:   %d (%5.1f%%)\n", summary.MediumCount, summary.Percentage(summary.MediumCount)))
	sb.WriteString(fmt.Sprintf("  STRONG:   %d (%5.1f%%)\n", summary.StrongCount, summary.Percentage(summary.StrongCount)))
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("  TOTAL:    %d passwords\n", summary.Total))
	sb.WriteString("\n")
}

// writeWeakest writes the lowest-scoring passwords with their warnings.
func (w *SimpleWriter) writeWeakest(sb *strings.Builder, summary *model.Summary) {
	if len(summary.Weakest) == 0 && !w.showEmpty {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("WEAKEST PASSWORDS\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	if len(summary.Weakest) == 0 {
		sb.WriteString("  No passwords evaluated\n\n")
		return
	}

	for i, eval := range summary.Weakest {
		sb.WriteString(fmt.Sprintf("  %d. %q (score %d, %s)\n", i+1, eval.DisplayText(), eval.Score, eval.Strength))
		for _, warning := range eval.Warnings {
			sb.WriteString(fmt.Sprintf("      ! %s\n", warning.Message))
			if w.verbose && warning.Advice != "" {
				sb.WriteString(fmt.Sprintf("        > %s\n", warning.Advice))
			}
		}
	}
	sb.WriteString("\n")
}

// writeDetail writes the per-password breakdown for the leading entries.
func (w *SimpleWriter) writeDetail(sb *strings.Builder, summary *model.Summary) {
	if len(summary.Detail) == 0 && !w.showEmpty {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("PASSWORD DETAILS\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	if len(summary.Detail) == 0 {
		sb.WriteString("  No passwords evaluated\n\n")
		return
	}

	for i, eval := range summary.Detail {
		classes := strings.Join(eval.ClassNames(), ",")
		if classes == "" {
			classes = "-"
		}

		line := fmt.Sprintf("  %d. %q  score=%d  level=%s  length=%d  chars=%s",
			i+1, eval.DisplayText(), eval.Score, eval.Strength, eval.Length, classes)
		if w.verbose {
			line += fmt.Sprintf("  entropy=%.1f", eval.Entropy)
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
}

// writeFooter writes the report footer.
func (w *SimpleWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("Report generated by password-auditor\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
}
