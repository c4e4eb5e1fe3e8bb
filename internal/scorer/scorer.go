package scorer

import (
	"fmt"

	"github.com/allgoodman9/password-auditor/internal/config"
	"github.com/allgoodman9/password-auditor/internal/model"
)

// Scorer evaluates passwords against a fixed scoring policy.
// It maintains an ordered list of checks and sums their verdicts.
//
// A Scorer is safe for concurrent use once built: the policy travels by
// value and checks never mutate state after construction.
type Scorer struct {
	// policy holds the scoring constants.
	policy config.Policy

	// checks contains the ordered list of checks to run.
	checks []Check
}

// New creates a Scorer with the built-in checks registered.
// The policy is validated once here so that Evaluate never has to fail.
func New(policy config.Policy) (*Scorer, error) {
	if err := policy.Validate(); err != nil {
		return nil, fmt.Errorf("failed to build scorer: %w", err)
	}

	s := &Scorer{
		policy: policy,
		checks: make([]Check, 0, 5),
	}

	// Register built-in checks. Registration order is warning order.
	s.Register(newLengthCheck(policy))
	s.Register(newVarietyCheck(policy))
	s.Register(newRepeatCheck(policy))
	s.Register(newSequenceCheck(policy))
	s.Register(newCommonCheck(policy))

	return s, nil
}

// Register appends a check to the scorer.
// Checks run in the order they are registered.
func (s *Scorer) Register(check Check) {
	s.checks = append(s.checks, check)
}

// Evaluate scores a single password. It never fails: every input,
// including the empty string, produces a complete record, and the same
// input always produces an identical record.
func (s *Scorer) Evaluate(password string) model.Evaluation {
	analysis := newAnalysis(password)

	score := 0
	var warnings []model.Warning
	for _, check := range s.checks {
		verdict := check.Inspect(analysis)
		score += verdict.Points
		warnings = append(warnings, verdict.Warnings...)
	}
	score = clamp(score, 0, s.policy.ScoreCeiling)

	strength := s.strengthFor(score)

	return model.Evaluation{
		Text:         password,
		Length:       analysis.Length,
		HasLower:     analysis.HasLower,
		HasUpper:     analysis.HasUpper,
		HasDigit:     analysis.HasDigit,
		HasSymbol:    analysis.HasSymbol,
		Entropy:      calculateEntropy(analysis),
		Score:        score,
		Strength:     strength,
		StrengthText: strength.String(),
		Warnings:     warnings,
	}
}

// EvaluateAll scores each password in input order.
func (s *Scorer) EvaluateAll(passwords []string) []model.Evaluation {
	evaluations := make([]model.Evaluation, 0, len(passwords))
	for _, password := range passwords {
		evaluations = append(evaluations, s.Evaluate(password))
	}
	return evaluations
}

// Policy returns the scoring policy the scorer was built with.
func (s *Scorer) Policy() config.Policy {
	return s.policy
}

// CheckCount returns the number of registered checks.
func (s *Scorer) CheckCount() int {
	return len(s.checks)
}

// CheckNames returns the names of all checks in execution order.
func (s *Scorer) CheckNames() []string {
	names := make([]string, len(s.checks))
	for i, check := range s.checks {
		names[i] = check.Name()
	}
	return names
}

// strengthFor maps a clamped score to its strength level.
func (s *Scorer) strengthFor(score int) model.Strength {
	switch {
	case score < s.policy.WeakThreshold:
		return model.StrengthWeak
	case score < s.policy.StrongThreshold:
		return model.StrengthMedium
	default:
		return model.StrengthStrong
	}
}

// clamp bounds v to the [low, high] range.
func clamp(v, low, high int) int {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}
