package model

// Strength represents the discrete strength level of a password.
// It is derived from the numeric score via fixed thresholds, so a higher
// score never maps to a lower level.
//
// Design decision: We use iota-based constants rather than string constants
// for efficiency in comparisons and sorting. The String() method provides
// human-readable output when needed.
type Strength int

const (
	// StrengthWeak indicates a password with little resistance to guessing.
	// Examples: entries on the common-password list, very short passwords,
	// single repeated characters.
	StrengthWeak Strength = iota

	// StrengthMedium indicates a password with some but not all of the
	// recommended traits. Examples: long single-class passwords, short
	// passwords that mix several character classes.
	StrengthMedium

	// StrengthStrong indicates a password that is both long and varied.
	// Examples: 12+ character passwords mixing case, digits and symbols.
	StrengthStrong
)

// String returns a human-readable representation of the strength level.
func (s Strength) String() string {
	switch s {
	case StrengthWeak:
		return "WEAK"
	case StrengthMedium:
		return "MEDIUM"
	case StrengthStrong:
		return "STRONG"
	default:
		return "UNKNOWN"
	}
}
