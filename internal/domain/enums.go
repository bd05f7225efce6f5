package domain

// SourceFormat identifies the layout of a submitted BOM document.
type SourceFormat string

const (
	SourceFormatAuto     SourceFormat = "auto"
	SourceFormatCSV      SourceFormat = "csv"
	SourceFormatXLSX     SourceFormat = "xlsx"
	SourceFormatFreeText SourceFormat = "freetext"
	SourceFormatPDFText  SourceFormat = "pdftext"
)

// ValidSourceFormats is the set of formats accepted on import requests.
var ValidSourceFormats = map[SourceFormat]bool{
	SourceFormatAuto:     true,
	SourceFormatCSV:      true,
	SourceFormatXLSX:     true,
	SourceFormatFreeText: true,
	SourceFormatPDFText:  true,
}

// ImportStatus represents the lifecycle of an import job.
type ImportStatus string

const (
	ImportStatusQueued     ImportStatus = "queued"
	ImportStatusProcessing ImportStatus = "processing"
	ImportStatusCompleted  ImportStatus = "completed"
	ImportStatusFailed     ImportStatus = "failed"
)

// AllowedUploadExtensions maps upload file extensions (without dot) to the
// source format assumed for that extension.
var AllowedUploadExtensions = map[string]SourceFormat{
	"csv":  SourceFormatCSV,
	"tsv":  SourceFormatCSV,
	"xlsx": SourceFormatXLSX,
	"txt":  SourceFormatAuto,
}
