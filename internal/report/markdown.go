package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/allgoodman9/password-auditor/internal/model"
	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the full report in Markdown format.
func (w *MarkdownWriter) Write(report *model.AuditReport) (int, error) {
	summary := ensureSummary(report)

	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report, summary)
	w.writeSummary(md, summary)
	w.writeWeakest(md, summary)
	w.writeDetail(md, summary)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// WriteSummary outputs only the aggregate sections in Markdown format.
func (w *MarkdownWriter) WriteSummary(summary *model.Summary) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeSummary(md, summary)
	w.writeWeakest(md, summary)
	w.writeDetail(md, summary)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with audit information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.AuditReport, summary *model.Summary) {
	md.H1("Password Audit Report")
	md.PlainText("")

	// Basic info table
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Source", "`" + report.Source + "`"},
			{"Audit Date", report.DateAudited.Format("2006-01-02 15:04:05 MST")},
			{"Passwords", strconv.Itoa(summary.Total)},
			{"Skipped Lines", strconv.Itoa(report.SkippedLines)},
			{"Status", w.getStatusText(report)},
		},
	})
	md.PlainText("")
}

// getStatusText returns the status text based on report state.
func (w *MarkdownWriter) getStatusText(report *model.AuditReport) string {
	if report.Failed() {
		return "❌ Error - " + report.ErrorMessage
	}
	return "✅ Complete"
}

// writeSummary writes the strength summary section.
func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, summary *model.Summary) {
	md.H2("Strength Summary")
	md.PlainText("")

	// Aggregate metrics table
	md.Table(markdown.TableSet{
		Header: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Min Length", strconv.Itoa(summary.MinLength)},
			{"Max Length", strconv.Itoa(summary.MaxLength)},
			{"Avg Length", strconv.FormatFloat(summary.AvgLength, 'f', 1, 64)},
			{"Avg Score", strconv.FormatFloat(summary.AvgScore, 'f', 1, 64)},
		},
	})
	md.PlainText("")

	// Distribution table
	md.Table(markdown.TableSet{
		Header: []string{"Level", "Count", "Share"},
		Rows: [][]string{
			{"🔴 Weak", strconv.Itoa(summary.WeakCount), formatShare(summary, summary.WeakCount)},
			{"🟡 Medium", strconv.Itoa(summary.MediumCount), formatShare(summary, summary.MediumCount)},
			{"🟢 Strong", strconv.Itoa(summary.StrongCount), formatShare(summary, summary.StrongCount)},
			{"**Total**", "**" + strconv.Itoa(summary.Total) + "**", ""},
		},
	})
	md.PlainText("")

	// Add pie chart if there are passwords
	if summary.Total > 0 {
		w.writePieChart(md, summary)
	}

	// Add alert based on the distribution
	w.writeAlert(md, summary)
}

// writePieChart writes a mermaid pie chart for the strength distribution.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, summary *model.Summary) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Password Strength Distribution"),
		piechart.WithShowData(true),
	)

	if summary.WeakCount > 0 {
		chart.LabelAndIntValue(levelLabel(model.StrengthWeak), uint64(summary.WeakCount))
	}
	if summary.MediumCount > 0 {
		chart.LabelAndIntValue(levelLabel(model.StrengthMedium), uint64(summary.MediumCount))
	}
	if summary.StrongCount > 0 {
		chart.LabelAndIntValue(levelLabel(model.StrengthStrong), uint64(summary.StrongCount))
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeAlert writes an appropriate alert based on the distribution.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, summary *model.Summary) {
	switch {
	case summary.WeakCount > 0:
		md.Cautionf(
			"%d password(s) scored WEAK and should be rotated immediately.",
			summary.WeakCount,
		)
	case summary.MediumCount > 0:
		md.Warningf(
			"No WEAK passwords, but %d scored MEDIUM and could be hardened.",
			summary.MediumCount,
		)
	case summary.Total > 0:
		md.Tip("All passwords scored STRONG.")
	default:
		md.Note("The input contained no passwords.")
	}
	md.PlainText("")
}

// writeWeakest writes the lowest-scoring passwords with their warnings.
func (w *MarkdownWriter) writeWeakest(md *markdown.Markdown, summary *model.Summary) {
	md.H2("Weakest Passwords")
	md.PlainText("")

	if len(summary.Weakest) == 0 {
		md.PlainText("No passwords evaluated.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(summary.Weakest))
	for i, eval := range summary.Weakest {
		warnings := make([]string, 0, len(eval.Warnings))
		for _, warning := range eval.Warnings {
			warnings = append(warnings, warning.Message)
		}
		joined := strings.Join(warnings, " ")
		if joined == "" {
			joined = "-"
		}

		rows[i] = []string{
			strconv.Itoa(i + 1),
			"`" + eval.DisplayText() + "`",
			strconv.Itoa(eval.Score),
			levelLabel(eval.Strength),
			truncateString(joined, 80),
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Rank", "Password", "Score", "Level", "Warnings"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeDetail writes the per-password breakdown for the leading entries.
func (w *MarkdownWriter) writeDetail(md *markdown.Markdown, summary *model.Summary) {
	md.H2("Password Details")
	md.PlainText("")

	if len(summary.Detail) == 0 {
		md.PlainText("No passwords evaluated.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(summary.Detail))
	for i, eval := range summary.Detail {
		classes := strings.Join(eval.ClassNames(), ", ")
		if classes == "" {
			classes = "-"
		}

		rows[i] = []string{
			strconv.Itoa(i + 1),
			"`" + eval.DisplayText() + "`",
			strconv.Itoa(eval.Length),
			classes,
			strconv.FormatFloat(eval.Entropy, 'f', 1, 64),
			strconv.Itoa(eval.Score),
			levelLabel(eval.Strength),
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"#", "Password", "Length", "Classes", "Entropy (bits)", "Score", "Level"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by password-auditor*")
}

// levelLabel renders a strength level in title case for tables and
// chart labels ("Weak" instead of the terminal report's "WEAK").
func levelLabel(level model.Strength) string {
	return cases.Title(language.English).String(strings.ToLower(level.String()))
}

// formatShare renders a count as a percentage of the summary total.
func formatShare(summary *model.Summary, count int) string {
	return strconv.FormatFloat(summary.Percentage(count), 'f', 1, 64) + "%"
}

// truncateString truncates a string to maxLen characters with ellipsis.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
