package geocode

import (
	"errors"
	"net/http"

	"outage_portal_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Handler exposes the reverse-geocoding endpoint.
type Handler struct {
	svc *Service
}

// NewHandler creates the geocode HTTP handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type reverseRequest struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
	// Failure carries the browser's geolocation error when no fix was
	// obtained: "denied", "unavailable" or "timeout".
	Failure string `json:"failure"`
}

type reverseResponsePayload struct {
	Location interface{} `json:"location"`
	Degraded bool        `json:"degraded"`
}

// Reverse handles POST /api/v1/geocode/reverse. The browser either posts a
// fix to resolve, or reports why it could not obtain one; each failure
// cause maps to its own status and message.
func (h *Handler) Reverse(c *gin.Context) {
	var req reverseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "lat/lng or failure is required", nil)
		return
	}

	if req.Failure != "" {
		switch req.Failure {
		case "denied":
			httpkit.HandleError(c, ErrLocationDenied)
		case "timeout":
			httpkit.HandleError(c, ErrLocationTimeout)
		case "unavailable":
			httpkit.HandleError(c, ErrLocationUnavailable)
		default:
			httpkit.Error(c, http.StatusBadRequest, "unknown geolocation failure", nil)
		}
		return
	}

	if req.Lat == nil || req.Lng == nil {
		httpkit.Error(c, http.StatusBadRequest, "both lat and lng are required", nil)
		return
	}

	resolved, err := h.svc.ResolvePosition(c.Request.Context(), *req.Lat, *req.Lng)
	if err != nil && !errors.Is(err, ErrReverseLookupFailed) {
		httpkit.HandleError(c, err)
		return
	}

	// Degraded results keep the coordinates; the client shows the notice
	// but the fix is not lost.
	httpkit.OK(c, reverseResponsePayload{Location: resolved, Degraded: err != nil})
}
