package port

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"bomflow/internal/domain"
)

// ImportJobRepository defines the contract for import job persistence.
type ImportJobRepository interface {
	Create(ctx context.Context, job *domain.ImportJob) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ImportJob, error)
	List(ctx context.Context, offset, limit int) ([]domain.ImportJob, int, error)
	// ClaimQueued atomically moves up to limit queued jobs to processing and
	// returns them. Concurrent workers never claim the same job twice.
	ClaimQueued(ctx context.Context, limit int) ([]domain.ImportJob, error)
	MarkCompleted(ctx context.Context, id uuid.UUID, result json.RawMessage, itemCount int) error
	// MarkFailed records a terminal failure. result may be nil when the job
	// never produced one (e.g. the original could not be fetched).
	MarkFailed(ctx context.Context, id uuid.UUID, errMsg string, result json.RawMessage) error
	Requeue(ctx context.Context, id uuid.UUID) error
}
