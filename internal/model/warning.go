package model

// Warning type identifiers. The type is a stable machine-readable key
// stored in the history database; Message carries the human-readable
// wording shown in reports.
const (
	// WarningTooShort flags passwords below the configured minimum length.
	WarningTooShort = "too_short"

	// WarningLowVariety flags passwords drawing on at most one character class.
	WarningLowVariety = "low_variety"

	// WarningRepeated flags passwords made of a single repeated character.
	WarningRepeated = "repeated_characters"

	// WarningSequential flags passwords containing a sequential run such as "abcd" or "4321".
	WarningSequential = "sequential_characters"

	// WarningCommon flags passwords found on the common-password list.
	WarningCommon = "common_password"
)

// Warning describes a specific weakness found in a password.
type Warning struct {
	// Type is the warning type identifier.
	// This maps to the advice catalog in warningInfoMapping.
	Type string `json:"type"`

	// Message is the human-readable description shown in reports.
	Message string `json:"message"`

	// Advice is guidance on how to address the weakness.
	Advice string `json:"advice,omitempty"`
}

// WarningInfo contains the remediation advice for a warning type.
type WarningInfo struct {
	Advice string
}

// warningInfoMapping maps warning types to their advice.
// This centralized mapping ensures consistent wording across the application.
//
// Design decision: We use a map rather than embedding advice in each
// check because:
// 1. It keeps all user-facing guidance in one place for review
// 2. Checks stay focused on detection logic
// 3. Custom checks can register plain warnings without wording duplication
var warningInfoMapping = map[string]WarningInfo{
	WarningTooShort: {
		Advice: "Lengthen the password; every extra character multiplies the guessing effort.",
	},
	WarningLowVariety: {
		Advice: "Mix lowercase, uppercase, digits and symbols to enlarge the search space.",
	},
	WarningRepeated: {
		Advice: "Avoid repeating one character; these fall to trivial pattern guesses.",
	},
	WarningSequential: {
		Advice: "Avoid alphabet or keyboard runs; crackers try sequence patterns first.",
	},
	WarningCommon: {
		Advice: "Never reuse a published password; breach lists are the first dictionary an attacker loads.",
	},
}

// NewWarning creates a Warning of the given type, attaching the advice
// registered for that type. Unknown types carry no advice.
func NewWarning(warningType, message string) Warning {
	w := Warning{Type: warningType, Message: message}
	if info, ok := warningInfoMapping[warningType]; ok {
		w.Advice = info.Advice
	}
	return w
}
