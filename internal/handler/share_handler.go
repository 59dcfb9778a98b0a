package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"quotedesk/internal/middleware"
	"quotedesk/internal/service"
)

// ShareHandler handles share-link endpoints.
type ShareHandler struct {
	shareService service.ShareService
}

// NewShareHandler creates a new ShareHandler.
func NewShareHandler(shareService service.ShareService) *ShareHandler {
	return &ShareHandler{shareService: shareService}
}

type createShareRequest struct {
	DocumentIDs    []string `json:"document_ids" binding:"required"`
	CoverageTypes  []string `json:"coverage_types"`
	RecipientEmail string   `json:"recipient_email"`
	ExpiresInHours int      `json:"expires_in_hours"`
}

// Create handles POST /api/v1/shares
// @Summary Create a share link
// @Description Create a tokenized link to a market comparison, optionally emailing the recipient
// @Tags shares
// @Accept json
// @Produce json
// @Param body body createShareRequest true "Documents, coverage types, recipient"
// @Success 201 {object} APIResponse "Share link"
// @Failure 400 {object} APIResponse "Invalid request"
// @Failure 401 {object} APIResponse "Unauthorized"
// @Security BearerAuth
// @Router /shares [post]
func (h *ShareHandler) Create(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req createShareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "document_ids is required")
		return
	}

	docIDs := make([]uuid.UUID, 0, len(req.DocumentIDs))
	for _, raw := range req.DocumentIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_ID", fmt.Sprintf("invalid document id %q", raw))
			return
		}
		docIDs = append(docIDs, id)
	}

	claims, _ := middleware.GetClaims(c)
	creatorName := ""
	if claims != nil {
		creatorName = claims.Email
	}

	link, err := h.shareService.Create(c.Request.Context(), service.CreateShareInput{
		CreatedBy:      userID,
		CreatorName:    creatorName,
		RecipientEmail: req.RecipientEmail,
		DocumentIDs:    docIDs,
		CoverageTypes:  req.CoverageTypes,
		ExpiresIn:      time.Duration(req.ExpiresInHours) * time.Hour,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, link)
}

// Resolve handles GET /api/v1/shared/:token (public, no auth)
// @Summary Resolve a share link
// @Description Return the shared market comparison for a valid, unexpired token
// @Tags shares
// @Produce json
// @Param token path string true "Share token"
// @Success 200 {object} APIResponse "Comparison dataset"
// @Failure 404 {object} APIResponse "Unknown token"
// @Failure 410 {object} APIResponse "Link expired"
// @Router /shared/{token} [get]
func (h *ShareHandler) Resolve(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		RespondError(c, http.StatusBadRequest, "MISSING_TOKEN", "share token is required")
		return
	}

	result, err := h.shareService.Resolve(c.Request.Context(), token)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}

// List handles GET /api/v1/shares
// @Summary List share links
// @Description List the caller's share links with pagination
// @Tags shares
// @Produce json
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} APIResponse "Share links"
// @Failure 401 {object} APIResponse "Unauthorized"
// @Security BearerAuth
// @Router /shares [get]
func (h *ShareHandler) List(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	offset, limit := pagination(c)
	links, total, err := h.shareService.ListByCreator(c.Request.Context(), userID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, links, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Delete handles DELETE /api/v1/shares/:id
// @Summary Revoke a share link
// @Description Delete a share link the caller created
// @Tags shares
// @Produce json
// @Param id path string true "Share link ID (UUID)"
// @Success 200 {object} APIResponse "Share link revoked"
// @Failure 403 {object} APIResponse "Not the creator"
// @Security BearerAuth
// @Router /shares/{id} [delete]
func (h *ShareHandler) Delete(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	linkID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid share link ID")
		return
	}

	if err := h.shareService.Delete(c.Request.Context(), userID, linkID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "share link revoked"})
}
