package retrieval

import (
	"context"

	"github.com/kailas-cloud/askdex/internal/domain"
)

// Searcher defines the storage contract for retrieval.
type Searcher interface {
	Search(ctx context.Context, terms []string) ([]domain.Match, error)
}
