package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"bomflow/internal/domain"
	"bomflow/internal/port"
)

type importJobRepo struct {
	db *sqlx.DB
}

// NewImportJobRepo creates a new PostgreSQL-backed ImportJobRepository.
func NewImportJobRepo(db *sqlx.DB) port.ImportJobRepository {
	return &importJobRepo{db: db}
}

func (r *importJobRepo) Create(ctx context.Context, job *domain.ImportJob) error {
	now := time.Now().UTC()
	job.CreatedAt = now
	job.UpdatedAt = now

	query := `INSERT INTO import_jobs
		(id, file_name, content_type, source_format, s3_bucket, s3_key,
		 raw_text, delimiter, status, attempts, item_count, error,
		 created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err := r.db.ExecContext(ctx, query,
		job.ID, job.FileName, job.ContentType, job.SourceFormat,
		job.S3Bucket, job.S3Key, job.RawText, job.Delimiter,
		job.Status, job.Attempts, job.ItemCount, job.Error,
		job.CreatedAt, job.UpdatedAt)
	if err != nil {
		return fmt.Errorf("importJobRepo.Create: %w", err)
	}
	return nil
}

func (r *importJobRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.ImportJob, error) {
	var job domain.ImportJob
	err := r.db.GetContext(ctx, &job,
		"SELECT * FROM import_jobs WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("importJobRepo.GetByID: %w", err)
	}
	return &job, nil
}

func (r *importJobRepo) List(ctx context.Context, offset, limit int) ([]domain.ImportJob, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM import_jobs")
	if err != nil {
		return nil, 0, fmt.Errorf("importJobRepo.List count: %w", err)
	}

	var jobs []domain.ImportJob
	err = r.db.SelectContext(ctx, &jobs,
		`SELECT * FROM import_jobs
		 ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("importJobRepo.List: %w", err)
	}
	return jobs, total, nil
}

func (r *importJobRepo) ClaimQueued(ctx context.Context, limit int) ([]domain.ImportJob, error) {
	// SKIP LOCKED keeps concurrent workers from claiming the same job.
	query := `UPDATE import_jobs
		SET status = $1, attempts = attempts + 1, updated_at = $2
		WHERE id IN (
			SELECT id FROM import_jobs
			WHERE status = $3
			ORDER BY created_at
			LIMIT $4
			FOR UPDATE SKIP LOCKED
		)
		RETURNING *`

	var jobs []domain.ImportJob
	err := r.db.SelectContext(ctx, &jobs, query,
		domain.ImportStatusProcessing, time.Now().UTC(),
		domain.ImportStatusQueued, limit)
	if err != nil {
		return nil, fmt.Errorf("importJobRepo.ClaimQueued: %w", err)
	}
	return jobs, nil
}

func (r *importJobRepo) MarkCompleted(ctx context.Context, id uuid.UUID, result json.RawMessage, itemCount int) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE import_jobs
		 SET status = $1, result = $2, item_count = $3, error = '', updated_at = $4
		 WHERE id = $5`,
		domain.ImportStatusCompleted, result, itemCount, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("importJobRepo.MarkCompleted: %w", err)
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *importJobRepo) MarkFailed(ctx context.Context, id uuid.UUID, errMsg string, result json.RawMessage) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE import_jobs
		 SET status = $1, error = $2, result = $3, updated_at = $4
		 WHERE id = $5`,
		domain.ImportStatusFailed, errMsg, result, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("importJobRepo.MarkFailed: %w", err)
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *importJobRepo) Requeue(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE import_jobs
		 SET status = $1, updated_at = $2
		 WHERE id = $3`,
		domain.ImportStatusQueued, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("importJobRepo.Requeue: %w", err)
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
