package answer

import (
	"context"

	"github.com/kailas-cloud/askdex/internal/domain"
)

// Generator produces a grounded completion from a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (domain.GenerationResult, error)
}
