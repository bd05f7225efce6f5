package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bomflow/internal/csvexport"
	"bomflow/internal/domain"
	"bomflow/internal/service"
)

// ImportHandler handles BOM import endpoints.
type ImportHandler struct {
	importService service.ImportService
}

// NewImportHandler creates a new ImportHandler.
func NewImportHandler(importService service.ImportService) *ImportHandler {
	return &ImportHandler{importService: importService}
}

// inlineImportRequest is the JSON body for text submissions.
type inlineImportRequest struct {
	Text      string `json:"text" binding:"required"`
	Format    string `json:"format"`
	Delimiter string `json:"delimiter"`
	Async     bool   `json:"async"`
}

// Create handles POST /api/v1/imports. The document arrives either as a
// multipart "file" field or as a JSON body with inline text.
func (h *ImportHandler) Create(c *gin.Context) {
	input, ok := h.readImportInput(c)
	if !ok {
		return
	}

	job, err := h.importService.CreateImport(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	if job.Status == domain.ImportStatusQueued {
		c.JSON(http.StatusAccepted, APIResponse{Success: true, Data: job})
		return
	}
	RespondCreated(c, job)
}

func (h *ImportHandler) readImportInput(c *gin.Context) (service.ImportInput, bool) {
	file, header, err := c.Request.FormFile("file")
	if err == nil {
		defer func() { _ = file.Close() }()

		data, readErr := io.ReadAll(file)
		if readErr != nil {
			RespondError(c, http.StatusBadRequest, "UNREADABLE_FILE", "could not read uploaded file")
			return service.ImportInput{}, false
		}
		return service.ImportInput{
			FileName:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Data:        data,
			Format:      domain.SourceFormat(c.PostForm("format")),
			Delimiter:   c.PostForm("delimiter"),
			Async:       c.PostForm("async") == "true",
		}, true
	}

	var req inlineImportRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_DOCUMENT", "provide a multipart file field or a JSON body with text")
		return service.ImportInput{}, false
	}
	return service.ImportInput{
		FileName:    "inline.txt",
		ContentType: "text/plain",
		Data:        []byte(req.Text),
		Format:      domain.SourceFormat(req.Format),
		Delimiter:   req.Delimiter,
		Async:       req.Async,
	}, true
}

// GetByID handles GET /api/v1/imports/:id
func (h *ImportHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid import ID")
		return
	}

	job, err := h.importService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, job)
}

// List handles GET /api/v1/imports
func (h *ImportHandler) List(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	jobs, total, err := h.importService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, jobs, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// ExportCSV handles GET /api/v1/imports/:id/export
func (h *ImportHandler) ExportCSV(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid import ID")
		return
	}

	job, err := h.importService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	res, err := h.importService.GetResult(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	filename := csvexport.BuildFilename(job.FileName)
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Status(http.StatusOK)

	if _, err := c.Writer.Write(csvexport.BOM); err != nil {
		return
	}
	w := csvexport.NewWriter(c.Writer)
	if err := w.WriteHeader(); err != nil {
		return
	}
	if err := w.WriteItems(res.Items); err != nil {
		return
	}
	w.Flush()
}
