package domain

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrUnsupportedFormat   = errors.New("unsupported source format")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrEmptyDocument       = errors.New("document contains no text")
	ErrUploadFailed        = errors.New("file upload to storage failed")
	ErrImportNotCompleted  = errors.New("import has not completed yet")
)
