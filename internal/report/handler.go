package report

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"outage_portal_backend/internal/location"
	"outage_portal_backend/platform/httpkit"
	"outage_portal_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler exposes the report submission and read endpoints.
type Handler struct {
	pipeline *SubmissionPipeline
	repo     *Repository
	val      *validator.Validator
}

// NewHandler creates the report HTTP handler.
func NewHandler(pipeline *SubmissionPipeline, repo *Repository, val *validator.Validator) *Handler {
	return &Handler{pipeline: pipeline, repo: repo, val: val}
}

// Submit handles POST /api/v1/reports (multipart). The form fields populate
// a fresh draft through the orchestrator, photo parts attach as uploads, and
// the pipeline runs to completion or failure.
func (h *Handler) Submit(c *gin.Context) {
	var req SubmitReportRequest
	if err := c.ShouldBind(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid form data", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	form := NewOrchestrator(h.val)
	form.SetIssueType(req.IssueType)
	form.SetDescription(req.Description)
	form.SetAnonymous(req.IsAnonymous)
	if req.ContactPhone != "" {
		form.SetContactPhone(req.ContactPhone)
	}

	form.ApplyLocationUpdate(location.ResolvedLocation{
		Address: req.Address,
		Components: location.AddressComponents{
			City:       req.City,
			State:      req.State,
			PostalCode: req.PostalCode,
		},
		Locality: req.Locality,
		Lat:      req.Lat,
		Lng:      req.Lng,
		PlaceID:  req.PlaceID,
		Source:   locationSource(req.Source),
	})

	if mf, err := c.MultipartForm(); err == nil && mf != nil {
		for _, fh := range mf.File["photos"] {
			form.AttachPhoto(photoFromHeader(fh))
		}
	}

	id, err := h.pipeline.Submit(c.Request.Context(), form, identityFromContext(c))
	if err != nil {
		if errors.Is(err, ErrInvalidDraft) {
			httpkit.Error(c, http.StatusBadRequest, "validation failed", fieldErrors(form))
			return
		}
		httpkit.HandleError(c, err)
		return
	}

	httpkit.Created(c, SubmitReportResponse{ID: id.String()})
}

// Get handles GET /api/v1/reports/:id.
func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid report id", nil)
		return
	}

	rep, err := h.repo.GetReport(c.Request.Context(), id)
	if errors.Is(err, ErrReportNotFound) {
		httpkit.Error(c, http.StatusNotFound, "report not found", nil)
		return
	}
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	httpkit.OK(c, toReportResponse(rep))
}

func photoFromHeader(fh *multipart.FileHeader) Photo {
	return Photo{
		FileName:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}

func identityFromContext(c *gin.Context) *Identity {
	raw, ok := c.Get(httpkit.ContextReporterIDKey)
	if !ok {
		return nil
	}
	reporterID, ok := raw.(uuid.UUID)
	if !ok {
		return nil
	}
	email := c.GetString(httpkit.ContextReporterEmailKey)
	return &Identity{ReporterID: reporterID, Email: email}
}

func locationSource(s string) location.Source {
	switch s {
	case string(location.SourceSearch):
		return location.SourceSearch
	case string(location.SourceBrowser):
		return location.SourceBrowser
	default:
		return location.SourceManual
	}
}

func fieldErrors(form *ReportFormOrchestrator) map[string]string {
	out := make(map[string]string)
	for _, field := range []string{FieldIssueType, FieldDescription, FieldLocality, FieldPostalCode, FieldContactPhone} {
		if msg := form.FieldError(field); msg != "" {
			out[field] = msg
		}
	}
	return out
}
