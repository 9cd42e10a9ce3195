// Package scope implements the lexical scope gate: a cheap, deterministic
// filter that decides whether a question is worth running through retrieval
// at all. Deliberately not a trained classifier.
package scope

import (
	"strings"

	"github.com/kailas-cloud/askdex/internal/domain"
	domrec "github.com/kailas-cloud/askdex/internal/domain/record"
)

// Domain is one recognized question category with its keyword list.
// Domain order matters: the first matching domain wins.
type Domain struct {
	Category string
	Keywords []string
}

// Service classifies questions against configured domain keyword lists.
type Service struct {
	domains []Domain
}

// New creates a scope classifier. Keywords are matched lowercased.
func New(domains []Domain) *Service {
	normalized := make([]Domain, len(domains))
	for i, d := range domains {
		keywords := make([]string, len(d.Keywords))
		for j, kw := range d.Keywords {
			keywords[j] = strings.ToLower(kw)
		}
		normalized[i] = Domain{Category: d.Category, Keywords: keywords}
	}
	return &Service{domains: normalized}
}

// Classify reports whether the question falls inside any configured domain.
//
// A keyword matches when it appears as a substring of any question token, not
// only as a whole token; "ceorate" therefore matches the "ceo" keyword.
// Classification is pure and idempotent: equal inputs yield equal verdicts.
func (s *Service) Classify(question string) domain.ScopeVerdict {
	tokens := domrec.Tokenize(question)
	if len(tokens) == 0 {
		return domain.OutOfScope()
	}

	for _, d := range s.domains {
		for _, kw := range d.Keywords {
			for _, tok := range tokens {
				if strings.Contains(tok, kw) {
					return domain.InScopeFor(d.Category)
				}
			}
		}
	}

	return domain.OutOfScope()
}
