package handler

import (
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"quotedesk/internal/domain"
	"quotedesk/internal/service"
)

// QuoteHandler handles quote document upload and management endpoints.
type QuoteHandler struct {
	quoteService   service.QuoteService
	maxImportFiles int
}

// NewQuoteHandler creates a new QuoteHandler. maxImportFiles caps a single
// bulk import; zero or negative means no cap.
func NewQuoteHandler(quoteService service.QuoteService, maxImportFiles int) *QuoteHandler {
	return &QuoteHandler{quoteService: quoteService, maxImportFiles: maxImportFiles}
}

// Upload handles POST /api/v1/quotes/upload
// @Summary Upload a quote document
// @Description Upload a carrier quote (PDF, JPG, PNG, max 50MB) and start background processing
// @Tags quotes
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Quote document to upload"
// @Param carrier_name formData string false "Carrier name (inferred from document if omitted)"
// @Param category formData string true "Document category (Current, Renegotiated, Alternative)"
// @Success 201 {object} APIResponse "Quote accepted for processing"
// @Failure 400 {object} APIResponse "Missing file, bad category, or unsupported type"
// @Failure 401 {object} APIResponse "Unauthorized"
// @Failure 413 {object} APIResponse "File too large"
// @Security BearerAuth
// @Router /quotes/upload [post]
func (h *QuoteHandler) Upload(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	doc, err := h.quoteService.Upload(c.Request.Context(), service.UploadQuoteInput{
		UploadedBy:  userID,
		CarrierName: c.PostForm("carrier_name"),
		Category:    domain.DocumentCategory(c.PostForm("category")),
		File:        file,
		Header:      header,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, doc)
}

// Import handles POST /api/v1/quotes/import
// @Summary Bulk import quote documents
// @Description Upload several quotes at once; each document succeeds or fails independently
// @Tags quotes
// @Accept multipart/form-data
// @Produce json
// @Param files formData file true "Quote documents to upload"
// @Param category formData string true "Document category applied to every file"
// @Success 200 {object} APIResponse "Per-document results"
// @Failure 400 {object} APIResponse "No files provided"
// @Failure 401 {object} APIResponse "Unauthorized"
// @Security BearerAuth
// @Router /quotes/import [post]
func (h *QuoteHandler) Import(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILES", "multipart form with files is required")
		return
	}
	headers := form.File["files"]
	if len(headers) == 0 {
		RespondError(c, http.StatusBadRequest, "MISSING_FILES", "files field is required")
		return
	}
	if h.maxImportFiles > 0 && len(headers) > h.maxImportFiles {
		RespondError(c, http.StatusBadRequest, "TOO_MANY_FILES",
			fmt.Sprintf("import accepts at most %d files per request", h.maxImportFiles))
		return
	}

	category := domain.DocumentCategory(c.PostForm("category"))
	carrierName := c.PostForm("carrier_name")

	inputs := make([]service.UploadQuoteInput, 0, len(headers))
	opened := make([]multipart.File, 0, len(headers))
	defer func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}()

	for _, header := range headers {
		f, err := header.Open()
		if err != nil {
			RespondError(c, http.StatusBadRequest, "UNREADABLE_FILE", "failed to open uploaded file "+header.Filename)
			return
		}
		opened = append(opened, f)
		inputs = append(inputs, service.UploadQuoteInput{
			UploadedBy:  userID,
			CarrierName: carrierName,
			Category:    category,
			File:        f,
			Header:      header,
		})
	}

	results := h.quoteService.ImportBatch(c.Request.Context(), inputs)
	RespondOK(c, results)
}

// List handles GET /api/v1/quotes
// @Summary List quote documents
// @Description List the caller's quote documents with pagination
// @Tags quotes
// @Produce json
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} APIResponse "List of quote documents"
// @Failure 401 {object} APIResponse "Unauthorized"
// @Security BearerAuth
// @Router /quotes [get]
func (h *QuoteHandler) List(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	offset, limit := pagination(c)
	docs, total, err := h.quoteService.ListByUploader(c.Request.Context(), userID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, docs, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/quotes/:id
// @Summary Get a quote document
// @Description Get a quote document's record and a presigned download URL
// @Tags quotes
// @Produce json
// @Param id path string true "Quote document ID (UUID)"
// @Success 200 {object} APIResponse "Quote document with download URL"
// @Failure 400 {object} APIResponse "Invalid ID"
// @Failure 404 {object} APIResponse "Not found"
// @Security BearerAuth
// @Router /quotes/{id} [get]
func (h *QuoteHandler) GetByID(c *gin.Context) {
	docID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid quote document ID")
		return
	}

	doc, err := h.quoteService.GetByID(c.Request.Context(), docID)
	if err != nil {
		HandleError(c, err)
		return
	}

	downloadURL, err := h.quoteService.GetDownloadURL(c.Request.Context(), docID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{
		"document":     doc,
		"download_url": downloadURL,
	})
}

// GetProcessedData handles GET /api/v1/quotes/:id/data
// @Summary Get processed quote data
// @Description Get the canonical extracted data (metadata, coverages, planNotes) for a completed quote
// @Tags quotes
// @Produce json
// @Param id path string true "Quote document ID (UUID)"
// @Success 200 {object} APIResponse "Processed document"
// @Failure 400 {object} APIResponse "Invalid ID"
// @Failure 404 {object} APIResponse "Not found"
// @Failure 409 {object} APIResponse "Processing not completed"
// @Security BearerAuth
// @Router /quotes/{id}/data [get]
func (h *QuoteHandler) GetProcessedData(c *gin.Context) {
	docID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid quote document ID")
		return
	}

	processed, err := h.quoteService.GetProcessedData(c.Request.Context(), docID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, processed)
}

// Reprocess handles POST /api/v1/quotes/:id/reprocess
// @Summary Re-run the pipeline for a quote
// @Description Replace a quote's processed data by running the pipeline again
// @Tags quotes
// @Produce json
// @Param id path string true "Quote document ID (UUID)"
// @Success 202 {object} APIResponse "Reprocessing started"
// @Failure 400 {object} APIResponse "Invalid ID"
// @Failure 404 {object} APIResponse "Not found"
// @Security BearerAuth
// @Router /quotes/{id}/reprocess [post]
func (h *QuoteHandler) Reprocess(c *gin.Context) {
	docID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid quote document ID")
		return
	}

	doc, err := h.quoteService.Reprocess(c.Request.Context(), docID)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, APIResponse{Success: true, Data: doc})
}

// Delete handles DELETE /api/v1/quotes/:id
// @Summary Delete a quote document
// @Description Delete a quote document and its stored file
// @Tags quotes
// @Produce json
// @Param id path string true "Quote document ID (UUID)"
// @Success 200 {object} APIResponse "Quote deleted"
// @Failure 400 {object} APIResponse "Invalid ID"
// @Failure 404 {object} APIResponse "Not found"
// @Security BearerAuth
// @Router /quotes/{id} [delete]
func (h *QuoteHandler) Delete(c *gin.Context) {
	docID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid quote document ID")
		return
	}

	if err := h.quoteService.Delete(c.Request.Context(), docID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "quote deleted"})
}
