package model

// displayTextLimit caps how many runes of a password appear in report
// output. Longer passwords are shortened to keep table columns aligned.
const displayTextLimit = 20

// Evaluation is the scoring record produced for a single password.
// It is immutable once produced: every field is fully determined by the
// password text and the scoring policy, so re-evaluating the same text
// always yields an identical record.
type Evaluation struct {
	// Text is the original password exactly as read from the input.
	Text string `json:"text"`

	// Length is the number of runes in the password.
	Length int `json:"length"`

	// HasLower is true if the password contains a lowercase letter.
	HasLower bool `json:"has_lower"`

	// HasUpper is true if the password contains an uppercase letter.
	HasUpper bool `json:"has_upper"`

	// HasDigit is true if the password contains a decimal digit.
	HasDigit bool `json:"has_digit"`

	// HasSymbol is true if the password contains any other character.
	HasSymbol bool `json:"has_symbol"`

	// Entropy is the estimated Shannon entropy in bits, derived from the
	// character pool the password actually draws from. Informational only;
	// it does not influence Score or Strength.
	Entropy float64 `json:"entropy_bits"`

	// Score is the clamped heuristic score.
	Score int `json:"score"`

	// Strength is the discrete level derived from Score.
	Strength Strength `json:"strength"`

	// StrengthText is the human-readable strength level.
	StrengthText string `json:"strength_text"`

	// Warnings lists the weaknesses found, in check order.
	Warnings []Warning `json:"warnings,omitempty"`
}

// DisplayText returns the password trimmed for report display.
// Passwords longer than 20 runes are shortened to 17 runes plus "...".
func (e Evaluation) DisplayText() string {
	runes := []rune(e.Text)
	if len(runes) <= displayTextLimit {
		return e.Text
	}
	return string(runes[:displayTextLimit-3]) + "..."
}

// ClassCount returns how many character classes the password draws from.
func (e Evaluation) ClassCount() int {
	count := 0
	for _, present := range []bool{e.HasLower, e.HasUpper, e.HasDigit, e.HasSymbol} {
		if present {
			count++
		}
	}
	return count
}

// ClassNames returns the names of the character classes present,
// in lower/upper/digit/symbol order.
func (e Evaluation) ClassNames() []string {
	var names []string
	if e.HasLower {
		names = append(names, "lower")
	}
	if e.HasUpper {
		names = append(names, "upper")
	}
	if e.HasDigit {
		names = append(names, "digit")
	}
	if e.HasSymbol {
		names = append(names, "symbol")
	}
	return names
}

// HasWarning reports whether a warning of the given type was recorded.
func (e Evaluation) HasWarning(warningType string) bool {
	for _, w := range e.Warnings {
		if w.Type == warningType {
			return true
		}
	}
	return false
}

// WarningTypes returns the type keys of all recorded warnings, in order.
// The history database stores this projection instead of the full warnings.
func (e Evaluation) WarningTypes() []string {
	types := make([]string, 0, len(e.Warnings))
	for _, w := range e.Warnings {
		types = append(types, w.Type)
	}
	return types
}
