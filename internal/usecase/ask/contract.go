package ask

import (
	"context"

	"github.com/kailas-cloud/askdex/internal/domain"
)

// Classifier decides whether a question belongs to a configured domain.
type Classifier interface {
	Classify(question string) domain.ScopeVerdict
}

// Retriever ranks stored records against a question.
type Retriever interface {
	Retrieve(ctx context.Context, question string, topK int) (domain.RetrievalResult, error)
}

// Composer builds the final answer from the verdict and retrieval result.
type Composer interface {
	Compose(ctx context.Context, question string, verdict domain.ScopeVerdict, retrieval domain.RetrievalResult) domain.AnswerResult
}
