package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"bomflow/internal/bom"
	"bomflow/internal/config"
	"bomflow/internal/domain"
	"bomflow/internal/ingest"
	"bomflow/internal/port"
	"bomflow/internal/storage/s3"
)

// ImportInput is the DTO for import submissions, from either a multipart
// upload or an inline JSON body.
type ImportInput struct {
	FileName    string
	ContentType string
	Data        []byte
	Format      domain.SourceFormat
	Delimiter   string
	Async       bool
}

// ImportService defines the BOM import contract.
type ImportService interface {
	CreateImport(ctx context.Context, input ImportInput) (*domain.ImportJob, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ImportJob, error)
	List(ctx context.Context, offset, limit int) ([]domain.ImportJob, int, error)
	GetResult(ctx context.Context, id uuid.UUID) (*bom.Result, error)
	ProcessImport(ctx context.Context, job *domain.ImportJob, maxAttempts int)
}

type importService struct {
	jobRepo port.ImportJobRepository
	storage port.ObjectStorage
	s3Cfg   *config.S3Config
	upCfg   *config.UploadConfig
	exCfg   *config.ExtractConfig
}

// NewImportService creates a new ImportService implementation. storage may
// be nil; originals are then not retained and every import runs inline.
func NewImportService(
	jobRepo port.ImportJobRepository,
	storage port.ObjectStorage,
	s3Cfg *config.S3Config,
	upCfg *config.UploadConfig,
	exCfg *config.ExtractConfig,
) ImportService {
	return &importService{
		jobRepo: jobRepo,
		storage: storage,
		s3Cfg:   s3Cfg,
		upCfg:   upCfg,
		exCfg:   exCfg,
	}
}

func (s *importService) CreateImport(ctx context.Context, input ImportInput) (*domain.ImportJob, error) {
	format, err := resolveFormat(input)
	if err != nil {
		return nil, err
	}

	maxBytes := s.upCfg.MaxFileSizeMB * 1024 * 1024
	if int64(len(input.Data)) > maxBytes {
		return nil, domain.ErrFileTooLarge
	}
	if len(bytes.TrimSpace(input.Data)) == 0 {
		return nil, domain.ErrEmptyDocument
	}

	delimiter := input.Delimiter
	if delimiter == "" && uploadExtension(input.FileName) == "tsv" {
		delimiter = "\t"
	}

	job := &domain.ImportJob{
		ID:           uuid.New(),
		FileName:     input.FileName,
		ContentType:  input.ContentType,
		SourceFormat: format,
		Delimiter:    delimiter,
		Status:       domain.ImportStatusQueued,
	}
	if format != domain.SourceFormatXLSX {
		job.RawText = string(input.Data)
	}

	stored := false
	if s.storage != nil {
		key := s3.ImportObjectKey(job.ID, input.FileName)
		_, err := s.storage.Upload(ctx, port.UploadInput{
			Bucket:      s.s3Cfg.Bucket,
			Key:         key,
			Body:        bytes.NewReader(input.Data),
			ContentType: input.ContentType,
			Size:        int64(len(input.Data)),
		})
		if err != nil {
			log.Printf("importService.CreateImport: S3 upload failed for %s: %v", input.FileName, err)
			return nil, domain.ErrUploadFailed
		}
		job.S3Bucket = s.s3Cfg.Bucket
		job.S3Key = key
		stored = true
	}

	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("creating import job: %w", err)
	}

	// An XLSX job can only be deferred when the workbook bytes are
	// retrievable later; without storage it runs inline.
	canQueue := input.Async && (job.RawText != "" || stored)
	if canQueue {
		log.Printf("importService.CreateImport: queued job %s (%s, %s)", job.ID, job.FileName, job.SourceFormat)
		return job, nil
	}

	res := s.extract(job, input.Data)
	if err := s.finishJob(ctx, job, res); err != nil {
		return nil, err
	}
	return job, nil
}

func (s *importService) GetByID(ctx context.Context, id uuid.UUID) (*domain.ImportJob, error) {
	return s.jobRepo.GetByID(ctx, id)
}

func (s *importService) List(ctx context.Context, offset, limit int) ([]domain.ImportJob, int, error) {
	return s.jobRepo.List(ctx, offset, limit)
}

func (s *importService) GetResult(ctx context.Context, id uuid.UUID) (*bom.Result, error) {
	job, err := s.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(job.Result) == 0 {
		return nil, domain.ErrImportNotCompleted
	}

	var res bom.Result
	if err := json.Unmarshal(job.Result, &res); err != nil {
		return nil, fmt.Errorf("decoding stored result for job %s: %w", id, err)
	}
	return &res, nil
}

// ProcessImport runs extraction for a claimed job. Extraction itself cannot
// error; only fetching the original from storage can, and only those
// failures are retried.
func (s *importService) ProcessImport(ctx context.Context, job *domain.ImportJob, maxAttempts int) {
	data, err := s.fetchOriginal(ctx, job)
	if err != nil {
		log.Printf("importService.ProcessImport: fetching original for job %s: %v", job.ID, err)
		if job.Attempts < maxAttempts {
			if rqErr := s.jobRepo.Requeue(ctx, job.ID); rqErr != nil {
				log.Printf("importService.ProcessImport: requeue job %s: %v", job.ID, rqErr)
			}
			return
		}
		if mfErr := s.jobRepo.MarkFailed(ctx, job.ID, err.Error(), nil); mfErr != nil {
			log.Printf("importService.ProcessImport: mark failed job %s: %v", job.ID, mfErr)
		}
		return
	}

	res := s.extract(job, data)
	if err := s.finishJob(ctx, job, res); err != nil {
		log.Printf("importService.ProcessImport: finishing job %s: %v", job.ID, err)
	}
}

// fetchOriginal returns the document bytes for a claimed job. Text formats
// carry their content in the job row; XLSX originals live in object storage.
func (s *importService) fetchOriginal(ctx context.Context, job *domain.ImportJob) ([]byte, error) {
	if job.RawText != "" {
		return []byte(job.RawText), nil
	}
	if s.storage == nil || job.S3Key == "" {
		return nil, fmt.Errorf("job %s has no retrievable content", job.ID)
	}
	return s.storage.Download(ctx, job.S3Bucket, job.S3Key)
}

func (s *importService) extract(job *domain.ImportJob, data []byte) bom.Result {
	if job.SourceFormat == domain.SourceFormatXLSX {
		res, err := ingest.ExtractWorkbook(bytes.NewReader(data))
		if err != nil {
			return bom.Result{
				Items:  []bom.LineItem{},
				Errors: []string{fmt.Sprintf("reading workbook: %v", err)},
			}
		}
		return res
	}

	var delim rune
	if job.Delimiter != "" {
		delim = []rune(job.Delimiter)[0]
	}
	return bom.ExtractDocument(string(data), bom.Options{
		Format:      job.SourceFormat,
		Delimiter:   delim,
		DefaultUnit: s.exCfg.DefaultUnit,
	})
}

// finishJob persists the extraction outcome and mirrors it onto job.
func (s *importService) finishJob(ctx context.Context, job *domain.ImportJob, res bom.Result) error {
	payload, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("encoding result for job %s: %w", job.ID, err)
	}
	job.Result = payload

	if !res.Success {
		job.Status = domain.ImportStatusFailed
		job.Error = strings.Join(res.Errors, "; ")
		log.Printf("importService: job %s failed: %s", job.ID, job.Error)
		return s.jobRepo.MarkFailed(ctx, job.ID, job.Error, payload)
	}

	job.Status = domain.ImportStatusCompleted
	job.ItemCount = len(res.Items)
	log.Printf("importService: job %s completed with %d items", job.ID, job.ItemCount)
	return s.jobRepo.MarkCompleted(ctx, job.ID, payload, job.ItemCount)
}

func uploadExtension(fileName string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(fileName), "."))
}

// resolveFormat picks the source format from the explicit request field or
// the upload extension.
func resolveFormat(input ImportInput) (domain.SourceFormat, error) {
	if input.Format != "" {
		if !domain.ValidSourceFormats[input.Format] {
			return "", domain.ErrUnsupportedFormat
		}
		return input.Format, nil
	}

	format, ok := domain.AllowedUploadExtensions[uploadExtension(input.FileName)]
	if !ok {
		return "", domain.ErrUnsupportedFileType
	}
	return format, nil
}
