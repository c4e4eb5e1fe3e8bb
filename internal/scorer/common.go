package scorer

import (
	_ "embed"
	"strings"

	"golang.org/x/text/cases"
)

// commonPasswordsFile is the embedded known-password list, one entry
// per line. Lines starting with # are comments. The list holds the
// perennial top entries of public breach corpora; it is intentionally
// small because the check targets the passwords every cracking tool
// tries first, not full dictionary coverage.
//
//go:embed common_passwords.txt
var commonPasswordsFile string

// newCommonSet builds the case-folded lookup set from the embedded list
// plus any extra entries supplied by configuration.
func newCommonSet(extra []string) map[string]bool {
	set := make(map[string]bool)

	for _, line := range strings.Split(commonPasswordsFile, "\n") {
		entry := strings.TrimSpace(line)
		if entry == "" || strings.HasPrefix(entry, "#") {
			continue
		}
		set[fold(entry)] = true
	}

	for _, entry := range extra {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		set[fold(entry)] = true
	}

	return set
}

// fold normalizes a password for list comparison using Unicode case
// folding, which catches matches that plain lowercasing misses (the
// Kelvin sign folding to "k", for example). A fresh Caser is built per
// call because a cases.Caser is not safe for concurrent use.
func fold(s string) string {
	return cases.Fold().String(s)
}
