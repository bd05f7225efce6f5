package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ImportJob represents a single BOM document submitted for extraction.
// The extraction result is stored as JSON and consumed by the review layer.
type ImportJob struct {
	ID           uuid.UUID       `db:"id" json:"id"`
	FileName     string          `db:"file_name" json:"file_name"`
	ContentType  string          `db:"content_type" json:"content_type"`
	SourceFormat SourceFormat    `db:"source_format" json:"source_format"`
	S3Bucket     string          `db:"s3_bucket" json:"s3_bucket,omitempty"`
	S3Key        string          `db:"s3_key" json:"s3_key,omitempty"`
	RawText      string          `db:"raw_text" json:"-"`
	Delimiter    string          `db:"delimiter" json:"delimiter,omitempty"`
	Status       ImportStatus    `db:"status" json:"status"`
	Attempts     int             `db:"attempts" json:"attempts"`
	Result       json.RawMessage `db:"result" json:"result,omitempty"`
	ItemCount    int             `db:"item_count" json:"item_count"`
	Error        string          `db:"error" json:"error,omitempty"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at" json:"updated_at"`
}
