// Package answer composes the final AnswerResult from a scope verdict and a
// retrieval result. The one place partial failure is tolerated: a failing
// generator degrades to a canned response instead of propagating.
package answer

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/askdex/internal/domain"
)

const (
	noMatchText = "I don't have enough information to answer that. " +
		"None of the stored profiles match your question."
	degradedText = "I found relevant profiles but could not compose an answer right now. " +
		"Please try again."
)

// Service composes answers from retrieval results.
type Service struct {
	gen                Generator
	groundedConfidence float64
	logger             *zap.Logger
}

// New creates an answer composer. groundedConfidence is the fixed value
// assigned to grounded answers; nothing estimates confidence per answer.
func New(gen Generator, groundedConfidence float64, logger *zap.Logger) *Service {
	if groundedConfidence <= 0 {
		groundedConfidence = domain.ConfidenceGroundedDefault
	}
	return &Service{gen: gen, groundedConfidence: groundedConfidence, logger: logger}
}

// Compose turns the question, verdict and retrieval into one of three
// terminal answers: out-of-scope fallback, insufficient-information, or a
// generated grounded answer (degraded in place if generation fails).
func (s *Service) Compose(
	ctx context.Context, question string, verdict domain.ScopeVerdict, retrieval domain.RetrievalResult,
) domain.AnswerResult {
	if !verdict.InScope {
		return domain.OutOfScopeAnswer(outOfScopeText(verdict.Category))
	}

	if retrieval.Empty() {
		return domain.NoMatchAnswer(noMatchText)
	}

	prompt := buildPrompt(question, retrieval.Matches)

	result, err := s.gen.Generate(ctx, prompt)
	if err != nil {
		s.logger.Warn("generation failed, degrading answer",
			zap.String("category", verdict.Category),
			zap.Int("matches", len(retrieval.Matches)),
			zap.Error(err),
		)
		return domain.DegradedAnswer(degradedText)
	}

	return domain.GroundedAnswer(result.Text, retrieval.RecordIDs(), s.groundedConfidence)
}

func outOfScopeText(category string) string {
	return fmt.Sprintf(
		"That question falls outside this knowledge base (category: %s). "+
			"Try asking about a person, their role, or their department.", category)
}

// buildPrompt concatenates the matched records' fields as context followed by
// the question, instructing the model to answer only from that context.
func buildPrompt(question string, matches []domain.Match) string {
	var b strings.Builder
	b.WriteString("Use only the context below to answer the question.\n\nContext:\n")

	for i, m := range matches {
		fmt.Fprintf(&b, "[%d]\n", i+1)
		for _, f := range m.Record.Fields() {
			fmt.Fprintf(&b, "%s: %s\n", f.Name, f.Value)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Question: %s\n", question)
	return b.String()
}
