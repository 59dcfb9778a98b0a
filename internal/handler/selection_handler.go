package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"quotedesk/internal/service"
)

// SelectionHandler handles plan-selection endpoints.
type SelectionHandler struct {
	selectionService service.SelectionService
}

// NewSelectionHandler creates a new SelectionHandler.
func NewSelectionHandler(selectionService service.SelectionService) *SelectionHandler {
	return &SelectionHandler{selectionService: selectionService}
}

type saveSelectionRequest struct {
	SelectedPlans []string       `json:"selected_plans" binding:"required"`
	HSADetails    map[string]any `json:"hsa_details"`
}

// Save handles PUT /api/v1/quotes/:id/selection
// @Summary Save plan selection
// @Description Replace the caller's plan selection for a quote; the filtered view is derived and returned
// @Tags selections
// @Accept json
// @Produce json
// @Param id path string true "Quote document ID (UUID)"
// @Param body body saveSelectionRequest true "Selected plan option names"
// @Success 200 {object} APIResponse "Saved selection with filtered data"
// @Failure 400 {object} APIResponse "Invalid ID or empty selection"
// @Failure 404 {object} APIResponse "Quote not found"
// @Failure 409 {object} APIResponse "Quote not processed yet"
// @Security BearerAuth
// @Router /quotes/{id}/selection [put]
func (h *SelectionHandler) Save(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	docID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid quote document ID")
		return
	}

	var req saveSelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "selected_plans is required")
		return
	}

	sel, err := h.selectionService.Save(c.Request.Context(), service.SaveSelectionInput{
		UserID:        userID,
		DocumentID:    docID,
		SelectedPlans: req.SelectedPlans,
		HSADetails:    req.HSADetails,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, sel)
}

// Get handles GET /api/v1/quotes/:id/selection
// @Summary Get plan selection
// @Description Get the caller's saved plan selection for a quote
// @Tags selections
// @Produce json
// @Param id path string true "Quote document ID (UUID)"
// @Success 200 {object} APIResponse "Saved selection"
// @Failure 404 {object} APIResponse "No selection saved"
// @Security BearerAuth
// @Router /quotes/{id}/selection [get]
func (h *SelectionHandler) Get(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	docID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid quote document ID")
		return
	}

	sel, err := h.selectionService.Get(c.Request.Context(), userID, docID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, sel)
}

// GetAll handles GET /api/v1/selections
// @Summary Get all plan selections
// @Description Get the caller's whole selection working set keyed by quote document ID
// @Tags selections
// @Produce json
// @Success 200 {object} APIResponse "Selections by document ID"
// @Security BearerAuth
// @Router /selections [get]
func (h *SelectionHandler) GetAll(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	selections, err := h.selectionService.GetAll(c.Request.Context(), userID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, selections)
}

// Remove handles DELETE /api/v1/quotes/:id/selection
// @Summary Remove plan selection
// @Description Remove the caller's saved plan selection for a quote
// @Tags selections
// @Produce json
// @Param id path string true "Quote document ID (UUID)"
// @Success 200 {object} APIResponse "Selection removed"
// @Security BearerAuth
// @Router /quotes/{id}/selection [delete]
func (h *SelectionHandler) Remove(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	docID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid quote document ID")
		return
	}

	if err := h.selectionService.Remove(c.Request.Context(), userID, docID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "selection removed"})
}

// Plans handles GET /api/v1/quotes/:id/plans
// @Summary List plan options
// @Description List the canonical per-plan-option summaries for a processed quote
// @Tags selections
// @Produce json
// @Param id path string true "Quote document ID (UUID)"
// @Success 200 {object} APIResponse "Plan summaries"
// @Failure 404 {object} APIResponse "Quote not found"
// @Failure 409 {object} APIResponse "Quote not processed yet"
// @Security BearerAuth
// @Router /quotes/{id}/plans [get]
func (h *SelectionHandler) Plans(c *gin.Context) {
	docID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid quote document ID")
		return
	}

	plans, err := h.selectionService.Plans(c.Request.Context(), docID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, plans)
}
