package scorer

import "unicode"

// Analysis is the decomposed view of a password that checks inspect.
// It is computed once per evaluation so that no check rescans the
// password for facts another check already derived.
//
// Design decision: We pass a prepared analysis rather than the raw
// string because:
// 1. The rune slice is decoded once and shared by all checks
// 2. Class flags are scanned once instead of once per check
// 3. Adding derived facts later doesn't change the Check interface
type Analysis struct {
	// Text is the original password exactly as supplied.
	Text string

	// Runes is the decoded rune sequence of Text.
	Runes []rune

	// Length is the number of runes in the password.
	Length int

	// HasLower is true if any rune is a lowercase letter.
	HasLower bool

	// HasUpper is true if any rune is an uppercase letter.
	HasUpper bool

	// HasDigit is true if any rune is a decimal digit.
	HasDigit bool

	// HasSymbol is true if any rune falls outside the other classes.
	HasSymbol bool
}

// newAnalysis scans the password once and records length and class flags.
// Length counts runes rather than bytes so multibyte passwords are not
// over-credited for long UTF-8 encodings.
func newAnalysis(password string) *Analysis {
	a := &Analysis{
		Text:  password,
		Runes: []rune(password),
	}
	a.Length = len(a.Runes)

	for _, r := range a.Runes {
		switch {
		case unicode.IsLower(r):
			a.HasLower = true
		case unicode.IsUpper(r):
			a.HasUpper = true
		case unicode.IsDigit(r):
			a.HasDigit = true
		default:
			a.HasSymbol = true
		}
	}

	return a
}

// ClassCount returns how many character classes the password draws from.
func (a *Analysis) ClassCount() int {
	count := 0
	for _, present := range []bool{a.HasLower, a.HasUpper, a.HasDigit, a.HasSymbol} {
		if present {
			count++
		}
	}
	return count
}
