package places

import (
	"errors"
	"net/http"

	"outage_portal_backend/internal/location"
	"outage_portal_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Handler exposes the autocomplete endpoints.
type Handler struct {
	svc *Service
}

// NewHandler creates the places HTTP handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type autocompleteRequest struct {
	FieldID string `form:"fieldId" binding:"required"`
	Query   string `form:"q" binding:"required"`
}

type selectRequest struct {
	FieldID    string              `json:"fieldId" binding:"required"`
	Prediction location.Prediction `json:"prediction" binding:"required"`
}

type clearRequest struct {
	FieldID string `json:"fieldId" binding:"required"`
}

type selectResponse struct {
	Location location.ResolvedLocation `json:"location"`
	Degraded bool                      `json:"degraded"`
}

// Autocomplete handles GET /api/v1/places/autocomplete?fieldId=...&q=...
func (h *Handler) Autocomplete(c *gin.Context) {
	var req autocompleteRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "fieldId and q are required", nil)
		return
	}

	predictions, err := h.svc.Autocomplete(c.Request.Context(), req.FieldID, req.Query)
	if err != nil {
		if errors.Is(err, ErrSearchTooShort) {
			// UI hint, not an error banner: an empty list with 200.
			httpkit.OK(c, gin.H{"predictions": []location.Prediction{}, "tooShort": true})
			return
		}
		httpkit.HandleError(c, err)
		return
	}

	httpkit.OK(c, gin.H{"predictions": predictions})
}

// Select handles POST /api/v1/places/select. It resolves the chosen
// prediction to a full location; a degraded result is still a 200 with the
// degraded flag set so the client can surface a notice without aborting.
func (h *Handler) Select(c *gin.Context) {
	var req selectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "fieldId and prediction are required", nil)
		return
	}

	resolved, err := h.svc.ResolveSelection(c.Request.Context(), req.FieldID, req.Prediction)
	if err != nil && !errors.Is(err, ErrDetailsUnavailable) {
		httpkit.HandleError(c, err)
		return
	}

	httpkit.OK(c, selectResponse{Location: resolved, Degraded: err != nil})
}

// Clear handles POST /api/v1/places/clear, ending the field's session.
func (h *Handler) Clear(c *gin.Context) {
	var req clearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "fieldId is required", nil)
		return
	}

	h.svc.ClearField(req.FieldID)
	httpkit.OK(c, gin.H{"cleared": true})
}
