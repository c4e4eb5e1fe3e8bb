package model

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

// TestNewAuditReport tests report construction.
func TestNewAuditReport(t *testing.T) {
	t.Parallel()

	before := time.Now()
	r := NewAuditReport("passwords.txt")

	if r.Source != "passwords.txt" {
		t.Errorf("Source = %q, expected %q", r.Source, "passwords.txt")
	}
	if r.DateAudited.Before(before) {
		t.Error("DateAudited should be stamped at construction")
	}
	if r.TotalEvaluated() != 0 {
		t.Errorf("TotalEvaluated() = %d, expected 0", r.TotalEvaluated())
	}
	if r.Failed() {
		t.Error("new report should not be failed")
	}
}

// TestAuditReportAddEvaluation tests appending records.
func TestAuditReportAddEvaluation(t *testing.T) {
	t.Parallel()

	r := NewAuditReport("passwords.txt")
	r.AddEvaluation(Evaluation{Text: "hunter2", Score: 2, Strength: StrengthWeak})
	r.AddEvaluation(Evaluation{Text: "Br1ght-Moss", Score: 6, Strength: StrengthStrong})

	if r.TotalEvaluated() != 2 {
		t.Errorf("TotalEvaluated() = %d, expected 2", r.TotalEvaluated())
	}
	if r.Evaluations[0].Text != "hunter2" {
		t.Errorf("first evaluation = %q, expected input order preserved", r.Evaluations[0].Text)
	}
}

// TestAuditReportSetError tests error recording and JSON exclusion.
func TestAuditReportSetError(t *testing.T) {
	t.Parallel()

	r := NewAuditReport("missing.txt")
	r.SetError(errors.New("failed to open password file"))

	if !r.Failed() {
		t.Error("expected Failed() after SetError")
	}
	if r.ErrorMessage != "failed to open password file" {
		t.Errorf("ErrorMessage = %q", r.ErrorMessage)
	}

	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	// The error value itself is excluded; only the message serializes.
	if strings.Contains(string(data), `"Error"`) {
		t.Error("Error field must not appear in JSON output")
	}
	if !strings.Contains(string(data), `"error":"failed to open password file"`) {
		t.Errorf("ErrorMessage missing from JSON: %s", data)
	}
}
