// Package retrieval selects the best-matching records for an in-scope
// question. Scoring is plain lexical overlap; an embedding-similarity scorer
// could replace the Searcher behind the same contract.
package retrieval

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/askdex/internal/domain"
	domrec "github.com/kailas-cloud/askdex/internal/domain/record"
)

// interrogativeStopwords are stripped from questions before searching.
// This is noise reduction for question phrasing, not full stop-word removal:
// every other token, including short ones, is preserved.
var interrogativeStopwords = map[string]struct{}{
	"who": {}, "is": {}, "are": {}, "was": {}, "were": {},
	"the": {}, "a": {}, "an": {}, "of": {},
	"what": {}, "where": {}, "when": {}, "how": {},
	"which": {}, "does": {}, "do": {},
}

// Service retrieves and ranks records relevant to a question.
type Service struct {
	repo Searcher
}

// New creates a retrieval service.
func New(repo Searcher) *Service {
	return &Service{repo: repo}
}

// Retrieve returns at most topK records relevant to the question, descending
// by relevance. topK must be >= 1. An empty result is the normal "no relevant
// knowledge" case, never an error.
func (s *Service) Retrieve(ctx context.Context, question string, topK int) (domain.RetrievalResult, error) {
	if topK < 1 {
		return domain.RetrievalResult{}, fmt.Errorf("top_k must be >= 1, got %d: %w",
			topK, domain.ErrInvalidArgument)
	}

	terms := cleanTerms(question)
	if len(terms) == 0 {
		return domain.RetrievalResult{}, nil
	}

	matches, err := s.repo.Search(ctx, terms)
	if err != nil {
		return domain.RetrievalResult{}, fmt.Errorf("search records: %w", err)
	}

	if len(matches) > topK {
		matches = matches[:topK]
	}

	return domain.RetrievalResult{Matches: matches}, nil
}

// cleanTerms tokenizes the question and drops interrogative stop-words.
func cleanTerms(question string) []string {
	var terms []string
	for _, tok := range domrec.Tokenize(question) {
		if _, drop := interrogativeStopwords[tok]; drop {
			continue
		}
		terms = append(terms, tok)
	}
	return terms
}
