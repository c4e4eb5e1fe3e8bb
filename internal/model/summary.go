package model

import "sort"

// Summary aggregates the evaluations of a single audit run.
//
// Design decision: We build the summary in a separate constructor rather
// than incrementally during scoring because:
// 1. It keeps the scorer a pure per-password function
// 2. A single pass over the finished list is cheap at password-file sizes
// 3. The weakest list needs the complete list for its sort anyway
type Summary struct {
	// Total is the number of passwords evaluated.
	Total int `json:"total"`

	// MinLength is the shortest password length, 0 when Total is 0.
	MinLength int `json:"min_length"`

	// MaxLength is the longest password length, 0 when Total is 0.
	MaxLength int `json:"max_length"`

	// AvgLength is the mean password length, 0 when Total is 0.
	AvgLength float64 `json:"avg_length"`

	// AvgScore is the mean score, 0 when Total is 0.
	AvgScore float64 `json:"avg_score"`

	// WeakCount is the number of WEAK passwords.
	WeakCount int `json:"weak_count"`

	// MediumCount is the number of MEDIUM passwords.
	MediumCount int `json:"medium_count"`

	// StrongCount is the number of STRONG passwords.
	StrongCount int `json:"strong_count"`

	// Weakest holds the lowest-scoring evaluations, ascending by score.
	// Evaluations with equal scores keep their original input order.
	Weakest []Evaluation `json:"weakest,omitempty"`

	// Detail holds the leading evaluations in input order for the
	// per-password breakdown section.
	Detail []Evaluation `json:"detail,omitempty"`
}

// NewSummary builds a Summary from a list of evaluations.
// weakestN caps the weakest list and detailK caps the detail list;
// negative values are treated as 0. An empty input is valid and yields
// a summary with Total 0 and all aggregates zero.
func NewSummary(evals []Evaluation, weakestN, detailK int) *Summary {
	if weakestN < 0 {
		weakestN = 0
	}
	if detailK < 0 {
		detailK = 0
	}

	s := &Summary{Total: len(evals)}
	if s.Total == 0 {
		return s
	}

	var lengthSum, scoreSum int
	s.MinLength = evals[0].Length
	s.MaxLength = evals[0].Length
	for _, e := range evals {
		if e.Length < s.MinLength {
			s.MinLength = e.Length
		}
		if e.Length > s.MaxLength {
			s.MaxLength = e.Length
		}
		lengthSum += e.Length
		scoreSum += e.Score

		switch e.Strength {
		case StrengthWeak:
			s.WeakCount++
		case StrengthMedium:
			s.MediumCount++
		case StrengthStrong:
			s.StrongCount++
		}
	}
	s.AvgLength = float64(lengthSum) / float64(s.Total)
	s.AvgScore = float64(scoreSum) / float64(s.Total)

	// Stable sort keeps input order among equal scores.
	weakest := make([]Evaluation, len(evals))
	copy(weakest, evals)
	sort.SliceStable(weakest, func(i, j int) bool {
		return weakest[i].Score < weakest[j].Score
	})
	if weakestN > len(weakest) {
		weakestN = len(weakest)
	}
	s.Weakest = weakest[:weakestN]

	if detailK > len(evals) {
		detailK = len(evals)
	}
	s.Detail = evals[:detailK]

	return s
}

// Percentage returns count as a percentage of Total, 0 when Total is 0.
func (s *Summary) Percentage(count int) float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(count) * 100 / float64(s.Total)
}

// CountFor returns the count recorded for the given strength level.
func (s *Summary) CountFor(level Strength) int {
	switch level {
	case StrengthWeak:
		return s.WeakCount
	case StrengthMedium:
		return s.MediumCount
	case StrengthStrong:
		return s.StrongCount
	default:
		return 0
	}
}

// HasWeak returns true if at least one password scored WEAK.
func (s *Summary) HasWeak() bool {
	return s.WeakCount > 0
}
