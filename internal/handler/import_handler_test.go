package handler_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"bomflow/internal/bom"
	"bomflow/internal/domain"
	"bomflow/internal/handler"
	"bomflow/internal/service"
	"bomflow/mocks"
)

func TestImportHandler_Create_MultipartSuccess(t *testing.T) {
	mockSvc := new(mocks.MockImportService)
	h := handler.NewImportHandler(mockSvc)

	expected := &domain.ImportJob{
		ID:           uuid.New(),
		FileName:     "bom.csv",
		SourceFormat: domain.SourceFormatCSV,
		Status:       domain.ImportStatusCompleted,
		ItemCount:    2,
	}
	mockSvc.On("CreateImport", mock.Anything, mock.AnythingOfType("service.ImportInput")).
		Return(expected, nil)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, _ := writer.CreateFormFile("file", "bom.csv")
	part.Write([]byte("Name,Qty\nChamomile,2"))
	writer.Close()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/imports", body)
	c.Request.Header.Set("Content-Type", writer.FormDataContentType())

	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	mockSvc.AssertExpectations(t)
}

func TestImportHandler_Create_AsyncReturnsAccepted(t *testing.T) {
	mockSvc := new(mocks.MockImportService)
	h := handler.NewImportHandler(mockSvc)

	queued := &domain.ImportJob{
		ID:           uuid.New(),
		FileName:     "inline.txt",
		SourceFormat: domain.SourceFormatAuto,
		Status:       domain.ImportStatusQueued,
	}
	mockSvc.On("CreateImport", mock.Anything, mock.AnythingOfType("service.ImportInput")).
		Return(queued, nil)

	body, _ := json.Marshal(map[string]interface{}{
		"text":  "[A1] Beet Sugar KG 0.101.00000.00000.1000",
		"async": true,
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/imports", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Create(c)

	assert.Equal(t, http.StatusAccepted, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestImportHandler_Create_InlineJSONCarriesFields(t *testing.T) {
	mockSvc := new(mocks.MockImportService)
	h := handler.NewImportHandler(mockSvc)

	mockSvc.On("CreateImport", mock.Anything, mock.MatchedBy(func(in service.ImportInput) bool {
		return string(in.Data) == "a;b\nc;d" &&
			in.Format == domain.SourceFormatCSV &&
			in.Delimiter == ";"
	})).Return(&domain.ImportJob{Status: domain.ImportStatusCompleted}, nil)

	body, _ := json.Marshal(map[string]interface{}{
		"text":      "a;b\nc;d",
		"format":    "csv",
		"delimiter": ";",
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/imports", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestImportHandler_Create_NoDocument(t *testing.T) {
	mockSvc := new(mocks.MockImportService)
	h := handler.NewImportHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/imports", bytes.NewReader([]byte("{}")))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "CreateImport", mock.Anything, mock.Anything)
}

func TestImportHandler_Create_MapsDomainError(t *testing.T) {
	mockSvc := new(mocks.MockImportService)
	h := handler.NewImportHandler(mockSvc)

	mockSvc.On("CreateImport", mock.Anything, mock.AnythingOfType("service.ImportInput")).
		Return(nil, domain.ErrFileTooLarge)

	body, _ := json.Marshal(map[string]interface{}{"text": "x"})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/imports", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Create(c)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "FILE_TOO_LARGE", resp.Error.Code)
}

func TestImportHandler_GetByID(t *testing.T) {
	mockSvc := new(mocks.MockImportService)
	h := handler.NewImportHandler(mockSvc)

	id := uuid.New()
	mockSvc.On("GetByID", mock.Anything, id).
		Return(&domain.ImportJob{ID: id, Status: domain.ImportStatusCompleted}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/imports/"+id.String(), nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	h.GetByID(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestImportHandler_GetByID_InvalidID(t *testing.T) {
	mockSvc := new(mocks.MockImportService)
	h := handler.NewImportHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/imports/nope", nil)
	c.Params = gin.Params{{Key: "id", Value: "nope"}}

	h.GetByID(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestImportHandler_GetByID_NotFound(t *testing.T) {
	mockSvc := new(mocks.MockImportService)
	h := handler.NewImportHandler(mockSvc)

	id := uuid.New()
	mockSvc.On("GetByID", mock.Anything, id).Return(nil, domain.ErrNotFound)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/imports/"+id.String(), nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	h.GetByID(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestImportHandler_List(t *testing.T) {
	mockSvc := new(mocks.MockImportService)
	h := handler.NewImportHandler(mockSvc)

	mockSvc.On("List", mock.Anything, 0, 20).
		Return([]domain.ImportJob{{ID: uuid.New()}}, 1, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/imports", nil)

	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Meta)
	assert.Equal(t, 1, resp.Meta.Total)
	mockSvc.AssertExpectations(t)
}

func TestImportHandler_List_ClampsLimit(t *testing.T) {
	mockSvc := new(mocks.MockImportService)
	h := handler.NewImportHandler(mockSvc)

	mockSvc.On("List", mock.Anything, 0, 20).
		Return([]domain.ImportJob{}, 0, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/imports?limit=500&offset=-3", nil)

	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestImportHandler_ExportCSV(t *testing.T) {
	mockSvc := new(mocks.MockImportService)
	h := handler.NewImportHandler(mockSvc)

	id := uuid.New()
	unit := "kg"
	qty := 2.0
	mockSvc.On("GetByID", mock.Anything, id).
		Return(&domain.ImportJob{ID: id, FileName: "Calm Night.csv", Status: domain.ImportStatusCompleted}, nil)
	mockSvc.On("GetResult", mock.Anything, id).
		Return(&bom.Result{
			Success: true,
			Items: []bom.LineItem{
				{RawName: "Chamomile", CleanName: "Chamomile", ItemType: bom.ItemTypeIngredient, Quantity: &qty, Unit: &unit},
			},
		}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/imports/"+id.String()+"/export", nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	h.ExportCSV(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "Calm_Night_csv_")

	body := w.Body.Bytes()
	// UTF-8 BOM prefix for Excel
	assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, body[:3])
	assert.Contains(t, string(body), "Raw Name,Clean Name")
	assert.Contains(t, string(body), "Chamomile,Chamomile,ingredient,2,kg")
	mockSvc.AssertExpectations(t)
}

func TestImportHandler_ExportCSV_NotCompleted(t *testing.T) {
	mockSvc := new(mocks.MockImportService)
	h := handler.NewImportHandler(mockSvc)

	id := uuid.New()
	mockSvc.On("GetByID", mock.Anything, id).
		Return(&domain.ImportJob{ID: id, Status: domain.ImportStatusProcessing}, nil)
	mockSvc.On("GetResult", mock.Anything, id).
		Return(nil, domain.ErrImportNotCompleted)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/imports/"+id.String()+"/export", nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	h.ExportCSV(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}
