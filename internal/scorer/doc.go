// Package scorer evaluates password strength with composable heuristic checks.
//
// # Purpose
//
// This package maps a single password string to a model.Evaluation record:
// length, character-class flags, an entropy estimate, a clamped numeric
// score, a discrete strength level, and an ordered list of warnings.
// Evaluation is pure: the same password under the same policy always
// produces an identical record.
//
// # Design Philosophy
//
// The scorer follows a modular check pattern where each heuristic is
// implemented as a separate Check. This design was chosen because:
//  1. Each heuristic has its own detection logic and penalty weight
//  2. New heuristics can be registered without modifying existing code
//  3. Warning order falls naturally out of registration order
//  4. Individual checks are trivially testable in isolation
//
// # Built-in Checks
//
// Checks run in registration order; each contributes score points
// (positive or negative) plus optional warnings:
//
//   - length: awards points per length bracket reached, warns below
//     the recommended minimum
//   - variety: awards points per character class present, warns when
//     the password draws on at most one class
//   - repeat: penalizes passwords made of one repeated character
//   - sequence: penalizes ascending or descending character runs
//   - common: penalizes exact (case-folded) matches against the
//     embedded common-password list
//
// # Usage
//
//	s, err := scorer.New(config.DefaultPolicy())
//	if err != nil {
//		return err
//	}
//	eval := s.Evaluate("Tr0ub4dor&3")
//
// All scoring constants live in config.Policy. The policy travels by
// value, so no evaluation can observe a constant changing mid-run.
package scorer
