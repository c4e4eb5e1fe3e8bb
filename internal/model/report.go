package model

import "time"

// AuditReport is the envelope for a single audit run over one source file.
//
// Design decision: We keep the full evaluation list on the report rather
// than only the summary because:
// 1. JSON output consumers want per-password records
// 2. The history store persists one digest row per evaluation
// 3. Memory cost is negligible at password-file sizes
type AuditReport struct {
	// Source is the audited password file path.
	Source string `json:"source"`

	// DateAudited is when the audit was performed.
	DateAudited time.Time `json:"date_audited"`

	// Evaluations contains one record per password in input order.
	Evaluations []Evaluation `json:"evaluations,omitempty"`

	// Summary is the aggregate view of Evaluations.
	Summary *Summary `json:"summary,omitempty"`

	// SkippedLines counts blank input lines that were not evaluated.
	SkippedLines int `json:"skipped_lines"`

	// Error holds the failure that aborted the audit, if any.
	Error error `json:"-"` // Excluded from JSON (ErrorMessage carries it)

	// ErrorMessage is the serializable form of Error.
	ErrorMessage string `json:"error,omitempty"`
}

// NewAuditReport creates an empty report for the given source,
// stamped with the current time.
func NewAuditReport(source string) *AuditReport {
	return &AuditReport{
		Source:      source,
		DateAudited: time.Now(),
	}
}

// AddEvaluation appends a per-password record to the report.
func (r *AuditReport) AddEvaluation(e Evaluation) {
	r.Evaluations = append(r.Evaluations, e)
}

// SetError records a fatal audit failure on the report.
func (r *AuditReport) SetError(err error) {
	r.Error = err
	if err != nil {
		r.ErrorMessage = err.Error()
	}
}

// TotalEvaluated returns the number of evaluated passwords.
func (r *AuditReport) TotalEvaluated() int {
	return len(r.Evaluations)
}

// Failed returns true if the audit aborted with an error.
func (r *AuditReport) Failed() bool {
	return r.Error != nil || r.ErrorMessage != ""
}
