package record

import (
	"strings"
	"unicode"
)

// Tokenize lowercases s and splits it on whitespace and punctuation.
// Letters and digits are the only token constituents; everything else is a
// separator. Used for search text indexing, scope classification and query
// term cleanup so all three agree on token boundaries.
func Tokenize(s string) []string {
	var tokens []string
	var b strings.Builder

	flush := func() {
		if b.Len() > 0 {
			tokens = append(tokens, b.String())
			b.Reset()
		}
	}

	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()

	return tokens
}

// TokenCounts returns term frequencies for the tokens of s.
func TokenCounts(s string) map[string]int {
	counts := make(map[string]int)
	for _, tok := range Tokenize(s) {
		counts[tok]++
	}
	return counts
}
