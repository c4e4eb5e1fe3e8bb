package scorer

import (
	"fmt"
	"unicode"

	"github.com/allgoodman9/password-auditor/internal/config"
	"github.com/allgoodman9/password-auditor/internal/model"
)

// Check defines the interface that all scoring checks implement.
// Checks run in registration order; each inspects the prepared analysis
// and returns a verdict of score points plus warnings.
//
// Design decision: We use an interface rather than function types because:
// 1. It allows checks to carry policy-derived configuration
// 2. It provides a Name() method for logging and debugging
// 3. Custom checks can be registered alongside the built-ins
type Check interface {
	// Inspect examines the analysis and returns the check's verdict.
	// Verdicts must depend only on the analysis and the check's own
	// configuration so that evaluation stays deterministic.
	Inspect(a *Analysis) Verdict

	// Name returns the check's name for logging purposes.
	Name() string
}

// Verdict is a single check's contribution to an evaluation.
type Verdict struct {
	// Points is added to the score. Negative values are penalties.
	Points int

	// Warnings lists the weaknesses this check found.
	Warnings []model.Warning
}

// lengthCheck awards one point per length bracket reached and warns
// when the password falls below the recommended minimum. The warning
// carries no extra penalty; the missed brackets already price short
// length into the score.
type lengthCheck struct {
	// minLength is the recommended minimum password length.
	minLength int

	// brackets lists the lengths that each earn one point.
	brackets []int
}

// newLengthCheck creates a length check from the policy.
func newLengthCheck(policy config.Policy) *lengthCheck {
	return &lengthCheck{
		minLength: policy.MinLength,
		brackets:  policy.LengthBrackets,
	}
}

// Name returns the check name.
func (c *lengthCheck) Name() string {
	return "length"
}

// Inspect awards bracket points and flags too-short passwords.
func (c *lengthCheck) Inspect(a *Analysis) Verdict {
	var v Verdict
	for _, bracket := range c.brackets {
		if a.Length >= bracket {
			v.Points++
		}
	}

	if a.Length < c.minLength {
		v.Warnings = append(v.Warnings, model.NewWarning(
			model.WarningTooShort,
			fmt.Sprintf("Password is shorter than recommended minimum (%d).", c.minLength),
		))
	}
	return v
}

// varietyCheck awards points per character class present and warns when
// the password draws on at most one class. Like the length check, the
// warning itself carries no penalty; a one-class password already
// forfeits the other class bonuses.
type varietyCheck struct {
	// classBonus is the score awarded per class present.
	classBonus int
}

// newVarietyCheck creates a variety check from the policy.
func newVarietyCheck(policy config.Policy) *varietyCheck {
	return &varietyCheck{classBonus: policy.ClassBonus}
}

// Name returns the check name.
func (c *varietyCheck) Name() string {
	return "variety"
}

// Inspect awards class bonuses and flags low-variety passwords.
func (c *varietyCheck) Inspect(a *Analysis) Verdict {
	classes := a.ClassCount()

	v := Verdict{Points: classes * c.classBonus}
	if classes <= 1 {
		v.Warnings = append(v.Warnings, model.NewWarning(
			model.WarningLowVariety,
			"Use a mix of lowercase, uppercase, digits and symbols.",
		))
	}
	return v
}

// repeatCheck penalizes passwords made of a single repeated character,
// such as "aaaaaaaa". These fall to trivial pattern guessing no matter
// how long they are.
type repeatCheck struct {
	// penalty is subtracted when the pattern matches.
	penalty int
}

// newRepeatCheck creates a repeat check from the policy.
func newRepeatCheck(policy config.Policy) *repeatCheck {
	return &repeatCheck{penalty: policy.PatternPenalty}
}

// Name returns the check name.
func (c *repeatCheck) Name() string {
	return "repeat"
}

// Inspect flags passwords whose runes are all identical.
func (c *repeatCheck) Inspect(a *Analysis) Verdict {
	if !allIdentical(a.Runes) {
		return Verdict{}
	}

	return Verdict{
		Points: -c.penalty,
		Warnings: []model.Warning{model.NewWarning(
			model.WarningRepeated,
			"Password is made of a single repeated character.",
		)},
	}
}

// allIdentical reports whether every rune equals the first.
// The empty slice does not count as identical.
func allIdentical(runes []rune) bool {
	if len(runes) == 0 {
		return false
	}
	for _, r := range runes[1:] {
		if r != runes[0] {
			return false
		}
	}
	return true
}

// sequenceCheck penalizes passwords containing a strictly ascending or
// descending codepoint run, such as "abcd" or "4321". A run must stay
// within a single kind (letters or digits) so that codepoint adjacency
// across classes, like '9' followed by ':', never counts.
type sequenceCheck struct {
	// penalty is subtracted when a run is found.
	penalty int

	// runLength is the shortest run that counts as sequential.
	runLength int
}

// newSequenceCheck creates a sequence check from the policy.
func newSequenceCheck(policy config.Policy) *sequenceCheck {
	return &sequenceCheck{
		penalty:   policy.PatternPenalty,
		runLength: policy.SequenceRunLength,
	}
}

// Name returns the check name.
func (c *sequenceCheck) Name() string {
	return "sequence"
}

// Inspect flags passwords containing a sequential run.
func (c *sequenceCheck) Inspect(a *Analysis) Verdict {
	if !c.hasSequentialRun(a.Runes) {
		return Verdict{}
	}

	return Verdict{
		Points: -c.penalty,
		Warnings: []model.Warning{model.NewWarning(
			model.WarningSequential,
			"Password contains a sequential run of characters.",
		)},
	}
}

// hasSequentialRun scans for an ascending or descending run of at least
// runLength same-kind runes with consecutive codepoints.
func (c *sequenceCheck) hasSequentialRun(runes []rune) bool {
	if len(runes) < c.runLength {
		return false
	}

	ascending, descending := 1, 1
	for i := 1; i < len(runes); i++ {
		prev, cur := runes[i-1], runes[i]

		if sameSequenceKind(prev, cur) && cur == prev+1 {
			ascending++
		} else {
			ascending = 1
		}
		if sameSequenceKind(prev, cur) && cur == prev-1 {
			descending++
		} else {
			descending = 1
		}

		if ascending >= c.runLength || descending >= c.runLength {
			return true
		}
	}
	return false
}

// sameSequenceKind reports whether two runes belong to the same
// sequence kind: both letters or both digits.
func sameSequenceKind(a, b rune) bool {
	if unicode.IsLetter(a) && unicode.IsLetter(b) {
		return true
	}
	return unicode.IsDigit(a) && unicode.IsDigit(b)
}

// commonCheck penalizes exact matches against the known-password set.
// Matching is case-folded, so "PASSWORD" and "PaSsWoRd" hit the same
// list entry as "password". Substring matches are deliberately not
// flagged; a password merely containing a listed word earns its score
// from the other checks.
type commonCheck struct {
	// penalty is subtracted when the password is on the list.
	penalty int

	// common is the case-folded lookup set.
	common map[string]bool
}

// newCommonCheck creates a common-password check from the policy.
// The embedded list is extended with the policy's extra entries.
func newCommonCheck(policy config.Policy) *commonCheck {
	return &commonCheck{
		penalty: policy.CommonPenalty,
		common:  newCommonSet(policy.ExtraCommon),
	}
}

// Name returns the check name.
func (c *commonCheck) Name() string {
	return "common"
}

// Inspect flags passwords found on the common-password list.
func (c *commonCheck) Inspect(a *Analysis) Verdict {
	if !c.common[fold(a.Text)] {
		return Verdict{}
	}

	return Verdict{
		Points: -c.penalty,
		Warnings: []model.Warning{model.NewWarning(
			model.WarningCommon,
			"Password is a very common weak password.",
		)},
	}
}
