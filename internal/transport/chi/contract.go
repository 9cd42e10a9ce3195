package chi

import (
	"context"

	"github.com/kailas-cloud/askdex/internal/domain"
	domrec "github.com/kailas-cloud/askdex/internal/domain/record"
	healthuc "github.com/kailas-cloud/askdex/internal/usecase/health"
)

// Asker runs a question through the full pipeline.
type Asker interface {
	Answer(ctx context.Context, question string) (domain.AnswerResult, error)
}

// RecordStore is the record CRUD surface the API exposes.
type RecordStore interface {
	Insert(ctx context.Context, fields domrec.Fields) (int64, error)
	Get(ctx context.Context, id int64) (domrec.Record, error)
	Update(ctx context.Context, id int64, fields domrec.Fields) error
	Delete(ctx context.Context, id int64) error
	ListAll(ctx context.Context) ([]domrec.Record, error)
}

// HealthService aggregates component health checks.
type HealthService interface {
	Check(ctx context.Context) healthuc.Report
}
