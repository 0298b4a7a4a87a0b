package notification

import (
	"net/http"

	"staffops/internal/shared/apperror"
	"staffops/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// List returns the caller's notifications; ?unread=true narrows to unread.
func (h *Handler) List(c *gin.Context) {
	profileID := c.GetString("profile_id")
	if profileID == "" {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Missing profile", nil)
		return
	}

	resp, err := h.service.ListForRecipient(c.Request.Context(), profileID, c.Query("unread") == "true")
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) MarkRead(c *gin.Context) {
	if err := h.service.MarkRead(c.Request.Context(), c.Param("id")); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"read": true}, nil)
}

func (h *Handler) MarkAllRead(c *gin.Context) {
	profileID := c.GetString("profile_id")
	if profileID == "" {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Missing profile", nil)
		return
	}

	updated, err := h.service.MarkAllRead(c.Request.Context(), profileID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"updated": updated}, nil)
}
