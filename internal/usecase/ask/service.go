// Package ask orchestrates the question pipeline: classify, retrieve, compose.
// Retrieval runs only for in-scope questions; everything after classification
// returns a well-formed answer rather than an error, so the only failure a
// caller sees is a store outage.
package ask

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/askdex/internal/domain"
	"github.com/kailas-cloud/askdex/internal/metrics"
)

const defaultTopK = 3

// Outcome labels for the questions_total metric.
const (
	outcomeGrounded   = "grounded"
	outcomeNoMatch    = "no_match"
	outcomeOutOfScope = "out_of_scope"
	outcomeDegraded   = "degraded"
)

// Service runs the full question pipeline.
type Service struct {
	classifier Classifier
	retriever  Retriever
	composer   Composer
	topK       int
	logger     *zap.Logger
}

// New creates the pipeline orchestrator. topK <= 0 falls back to the default.
func New(classifier Classifier, retriever Retriever, composer Composer, topK int, logger *zap.Logger) *Service {
	if topK <= 0 {
		topK = defaultTopK
	}
	return &Service{
		classifier: classifier,
		retriever:  retriever,
		composer:   composer,
		topK:       topK,
		logger:     logger,
	}
}

// Answer runs a question through the pipeline and returns the composed result.
// Blank questions are not an error: the classifier marks them out of scope
// and the composer answers with the fallback.
func (s *Service) Answer(ctx context.Context, question string) (domain.AnswerResult, error) {
	verdict := s.classifier.Classify(question)

	var retrieved domain.RetrievalResult
	if verdict.InScope {
		var err error
		retrieved, err = s.retriever.Retrieve(ctx, question, s.topK)
		if err != nil {
			return domain.AnswerResult{}, fmt.Errorf("retrieve records: %w", err)
		}
	}

	result := s.composer.Compose(ctx, question, verdict, retrieved)
	outcome := classifyOutcome(result)
	metrics.QuestionsTotal.WithLabelValues(outcome).Inc()

	s.logger.Debug("question answered",
		zap.Bool("in_scope", result.InScope),
		zap.String("category", verdict.Category),
		zap.String("outcome", outcome),
		zap.Int("cited_records", len(result.CitedRecordIDs)),
		zap.Float64("confidence", result.Confidence))

	return result, nil
}

func classifyOutcome(result domain.AnswerResult) string {
	switch {
	case !result.InScope:
		return outcomeOutOfScope
	case len(result.CitedRecordIDs) > 0:
		return outcomeGrounded
	case result.Confidence == domain.ConfidenceNone:
		return outcomeDegraded
	default:
		return outcomeNoMatch
	}
}
