package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"quotedesk/internal/service"
)

// ComparisonHandler handles market-comparison endpoints.
type ComparisonHandler struct {
	comparisonService service.ComparisonService
}

// NewComparisonHandler creates a new ComparisonHandler.
func NewComparisonHandler(comparisonService service.ComparisonService) *ComparisonHandler {
	return &ComparisonHandler{comparisonService: comparisonService}
}

type compareRequest struct {
	DocumentIDs   []string `json:"document_ids" binding:"required"`
	CoverageTypes []string `json:"coverage_types"`
}

func (r *compareRequest) parse(userID uuid.UUID) (service.CompareInput, error) {
	ids := make([]uuid.UUID, 0, len(r.DocumentIDs))
	for _, raw := range r.DocumentIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return service.CompareInput{}, fmt.Errorf("invalid document id %q", raw)
		}
		ids = append(ids, id)
	}
	return service.CompareInput{
		UserID:        userID,
		DocumentIDs:   ids,
		CoverageTypes: r.CoverageTypes,
	}, nil
}

// Compare handles POST /api/v1/comparisons
// @Summary Build a market comparison
// @Description Aggregate coverage rows across completed quotes, grouped by coverage type
// @Tags comparisons
// @Accept json
// @Produce json
// @Param body body compareRequest true "Documents and optional coverage-type filter"
// @Success 200 {object} APIResponse "Comparison dataset"
// @Failure 400 {object} APIResponse "Invalid document IDs"
// @Failure 401 {object} APIResponse "Unauthorized"
// @Security BearerAuth
// @Router /comparisons [post]
func (h *ComparisonHandler) Compare(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req compareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "document_ids is required")
		return
	}

	input, err := req.parse(userID)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", err.Error())
		return
	}

	result, err := h.comparisonService.Compare(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}

// Export handles POST /api/v1/comparisons/export
// @Summary Export a market comparison as XLSX
// @Description Build the comparison and stream it as a spreadsheet, one sheet per coverage type
// @Tags comparisons
// @Accept json
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param body body compareRequest true "Documents and optional coverage-type filter"
// @Success 200 {file} binary "XLSX workbook"
// @Failure 400 {object} APIResponse "Invalid document IDs"
// @Failure 401 {object} APIResponse "Unauthorized"
// @Security BearerAuth
// @Router /comparisons/export [post]
func (h *ComparisonHandler) Export(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req compareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "document_ids is required")
		return
	}

	input, err := req.parse(userID)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", err.Error())
		return
	}

	data, err := h.comparisonService.ExportXLSX(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	fileName := fmt.Sprintf("market-comparison-%s.xlsx", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
