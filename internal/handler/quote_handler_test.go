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

	"quotedesk/internal/domain"
	"quotedesk/internal/handler"
	"quotedesk/internal/middleware"
	"quotedesk/internal/service"
	"quotedesk/mocks"
)

// authAs injects the user context the auth middleware would set for a
// verified token.
func authAs(userID uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextKeyUserID, userID)
		c.Set(middleware.ContextKeyEmail, "broker@example.com")
		c.Set(middleware.ContextKeyRole, string(domain.RoleBroker))
		c.Next()
	}
}

func quoteTestRouter(h *handler.QuoteHandler, userID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	quotes := r.Group("/api/v1/quotes", authAs(userID))
	quotes.POST("/upload", h.Upload)
	quotes.POST("/import", h.Import)
	quotes.GET("", h.List)
	quotes.GET("/:id", h.GetByID)
	return r
}

// multipartUpload builds a multipart body with one file per name under
// fileField plus any extra form fields.
func multipartUpload(t *testing.T, fileField string, fileNames []string, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, name := range fileNames {
		part, err := w.CreateFormFile(fileField, name)
		require.NoError(t, err)
		_, err = part.Write([]byte("%PDF-1.4\nquote body"))
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func decodeEnvelope(t *testing.T, body *bytes.Buffer) handler.APIResponse {
	t.Helper()
	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(body.Bytes(), &resp))
	return resp
}

func TestQuoteUpload_Success(t *testing.T) {
	svc := new(mocks.MockQuoteService)
	userID := uuid.New()
	r := quoteTestRouter(handler.NewQuoteHandler(svc, 10), userID)

	docID := uuid.New()
	svc.On("Upload", mock.Anything, mock.MatchedBy(func(input service.UploadQuoteInput) bool {
		return input.UploadedBy == userID &&
			input.Category == domain.CategoryCurrent &&
			input.Header.Filename == "sunlife.pdf"
	})).Return(&domain.QuoteDocument{ID: docID, Status: domain.ProcessingStatusPending}, nil)

	body, contentType := multipartUpload(t, "file", []string{"sunlife.pdf"}, map[string]string{"category": "Current"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/quotes/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	resp := decodeEnvelope(t, w.Body)
	assert.True(t, resp.Success)
	svc.AssertExpectations(t)
}

func TestQuoteUpload_MissingFile(t *testing.T) {
	svc := new(mocks.MockQuoteService)
	r := quoteTestRouter(handler.NewQuoteHandler(svc, 10), uuid.New())

	body, contentType := multipartUpload(t, "file", nil, map[string]string{"category": "Current"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/quotes/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeEnvelope(t, w.Body)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "MISSING_FILE", resp.Error.Code)
	svc.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
}

func TestQuoteUpload_ServiceErrorMapped(t *testing.T) {
	svc := new(mocks.MockQuoteService)
	r := quoteTestRouter(handler.NewQuoteHandler(svc, 10), uuid.New())

	svc.On("Upload", mock.Anything, mock.Anything).Return(nil, domain.ErrUnsupportedFileType)

	body, contentType := multipartUpload(t, "file", []string{"quote.docx"}, map[string]string{"category": "Current"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/quotes/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeEnvelope(t, w.Body)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "UNSUPPORTED_FILE_TYPE", resp.Error.Code)
}

func TestQuoteUpload_Unauthenticated(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := new(mocks.MockQuoteService)
	h := handler.NewQuoteHandler(svc, 10)
	r := gin.New()
	// No auth middleware, so no user context.
	r.POST("/api/v1/quotes/upload", h.Upload)

	body, contentType := multipartUpload(t, "file", []string{"quote.pdf"}, map[string]string{"category": "Current"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/quotes/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	svc.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
}

func TestQuoteImport_Success(t *testing.T) {
	svc := new(mocks.MockQuoteService)
	userID := uuid.New()
	r := quoteTestRouter(handler.NewQuoteHandler(svc, 10), userID)

	svc.On("ImportBatch", mock.Anything, mock.MatchedBy(func(inputs []service.UploadQuoteInput) bool {
		return len(inputs) == 2 && inputs[0].UploadedBy == userID
	})).Return([]service.ImportItemResult{
		{FileName: "a.pdf", Document: &domain.QuoteDocument{ID: uuid.New()}},
		{FileName: "b.pdf", Error: "unsupported file type"},
	})

	body, contentType := multipartUpload(t, "files", []string{"a.pdf", "b.pdf"}, map[string]string{"category": "Alternative"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/quotes/import", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeEnvelope(t, w.Body)
	assert.True(t, resp.Success)
	svc.AssertExpectations(t)
}

func TestQuoteImport_NoFiles(t *testing.T) {
	svc := new(mocks.MockQuoteService)
	r := quoteTestRouter(handler.NewQuoteHandler(svc, 10), uuid.New())

	body, contentType := multipartUpload(t, "files", nil, map[string]string{"category": "Current"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/quotes/import", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeEnvelope(t, w.Body)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "MISSING_FILES", resp.Error.Code)
}

func TestQuoteImport_TooManyFiles(t *testing.T) {
	svc := new(mocks.MockQuoteService)
	r := quoteTestRouter(handler.NewQuoteHandler(svc, 2), uuid.New())

	body, contentType := multipartUpload(t, "files", []string{"a.pdf", "b.pdf", "c.pdf"}, map[string]string{"category": "Current"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/quotes/import", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeEnvelope(t, w.Body)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "TOO_MANY_FILES", resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "at most 2 files")
	svc.AssertNotCalled(t, "ImportBatch", mock.Anything, mock.Anything)
}

func TestQuoteImport_NoCapWhenZero(t *testing.T) {
	svc := new(mocks.MockQuoteService)
	r := quoteTestRouter(handler.NewQuoteHandler(svc, 0), uuid.New())

	svc.On("ImportBatch", mock.Anything, mock.Anything).Return([]service.ImportItemResult{})

	body, contentType := multipartUpload(t, "files", []string{"a.pdf", "b.pdf", "c.pdf"}, map[string]string{"category": "Current"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/quotes/import", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestQuoteList_Paginates(t *testing.T) {
	svc := new(mocks.MockQuoteService)
	userID := uuid.New()
	r := quoteTestRouter(handler.NewQuoteHandler(svc, 10), userID)

	svc.On("ListByUploader", mock.Anything, userID, 5, 50).Return([]domain.QuoteDocument{
		{ID: uuid.New()},
	}, 42, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/quotes?offset=5&limit=50", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeEnvelope(t, w.Body)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, 42, resp.Meta.Total)
	assert.Equal(t, 5, resp.Meta.Offset)
	assert.Equal(t, 50, resp.Meta.Limit)
}

func TestQuoteGetByID_IncludesDownloadURL(t *testing.T) {
	svc := new(mocks.MockQuoteService)
	r := quoteTestRouter(handler.NewQuoteHandler(svc, 10), uuid.New())

	docID := uuid.New()
	svc.On("GetByID", mock.Anything, docID).Return(&domain.QuoteDocument{ID: docID}, nil)
	svc.On("GetDownloadURL", mock.Anything, docID).Return("https://s3.example.com/presigned", nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/quotes/"+docID.String(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "https://s3.example.com/presigned")
}

func TestQuoteGetByID_InvalidID(t *testing.T) {
	svc := new(mocks.MockQuoteService)
	r := quoteTestRouter(handler.NewQuoteHandler(svc, 10), uuid.New())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/quotes/not-a-uuid", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeEnvelope(t, w.Body)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_ID", resp.Error.Code)
}

func TestQuoteGetByID_NotFound(t *testing.T) {
	svc := new(mocks.MockQuoteService)
	r := quoteTestRouter(handler.NewQuoteHandler(svc, 10), uuid.New())

	docID := uuid.New()
	svc.On("GetByID", mock.Anything, docID).Return(nil, domain.ErrNotFound)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/quotes/"+docID.String(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
