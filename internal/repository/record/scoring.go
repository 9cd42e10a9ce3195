// Package record implements the record store: a memory driver for single-node
// deployments and a redis driver for shared persistence. Both share the same
// lexical term-frequency scoring so driver choice never changes ranking.
package record

import (
	"sort"

	"github.com/kailas-cloud/askdex/internal/domain"
	domrec "github.com/kailas-cloud/askdex/internal/domain/record"
)

// queryTokens normalizes raw query terms into a deduplicated token set.
func queryTokens(terms []string) []string {
	seen := make(map[string]struct{})
	var tokens []string
	for _, term := range terms {
		for _, tok := range domrec.Tokenize(term) {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// scoreCounts sums the term frequencies of the query tokens in one record's
// search text. Zero means no overlap.
func scoreCounts(tokens []string, counts map[string]int) int {
	score := 0
	for _, tok := range tokens {
		score += counts[tok]
	}
	return score
}

// sortMatches orders matches by descending score, ties broken by record id
// ascending so repeated queries over the same store state rank identically.
func sortMatches(matches []domain.Match) {
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Record.ID() < matches[j].Record.ID()
	})
}
