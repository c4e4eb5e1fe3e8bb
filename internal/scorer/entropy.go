package scorer

import "math"

// Character pool sizes used for the entropy estimate.
// The symbol pool counts the printable ASCII punctuation characters;
// non-ASCII runes are treated the same way, which underestimates exotic
// alphabets but keeps the estimate conservative.
const (
	lowerPoolSize  = 26
	upperPoolSize  = 26
	digitPoolSize  = 10
	symbolPoolSize = 33
)

// calculateEntropy estimates password entropy in bits as
// length * log2(poolSize), where poolSize is the combined size of the
// character pools the password actually draws from.
//
// This is the classic brute-force search-space estimate, not Shannon
// entropy of the specific string. It assumes each rune was picked
// uniformly from the active pools, so real-world passwords score higher
// than their guessability warrants. The heuristic score, not entropy,
// drives the strength level; entropy is reported for context only.
func calculateEntropy(a *Analysis) float64 {
	pool := effectivePoolSize(a)
	if pool == 0 || a.Length == 0 {
		return 0
	}
	return float64(a.Length) * math.Log2(float64(pool))
}

// effectivePoolSize sums the sizes of the character pools present.
func effectivePoolSize(a *Analysis) int {
	pool := 0
	if a.HasLower {
		pool += lowerPoolSize
	}
	if a.HasUpper {
		pool += upperPoolSize
	}
	if a.HasDigit {
		pool += digitPoolSize
	}
	if a.HasSymbol {
		pool += symbolPoolSize
	}
	return pool
}
