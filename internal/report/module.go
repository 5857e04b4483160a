// Package report owns the report draft lifecycle: merging location updates
// under the coordinate precedence rule, validating the draft, and running
// the photo-then-record submission pipeline.
package report

import (
	"outage_portal_backend/internal/adapters/storage"
	"outage_portal_backend/internal/auth/token"
	"outage_portal_backend/internal/events"
	apphttp "outage_portal_backend/internal/http"
	"outage_portal_backend/platform/logger"
	"outage_portal_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the report bounded context implementing http.Module.
type Module struct {
	handler  *Handler
	repo     *Repository
	pipeline *SubmissionPipeline
}

// NewModule creates and initializes the report module.
func NewModule(pool *pgxpool.Pool, photos storage.PhotoStorage, signer *token.Signer, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	repo := NewRepository(pool)
	pipeline := NewSubmissionPipeline(photos, repo, signer, bus, log)
	h := NewHandler(pipeline, repo, val)

	return &Module{handler: h, repo: repo, pipeline: pipeline}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "report"
}

// Repository returns the repository for external use (backfill command).
func (m *Module) Repository() *Repository {
	return m.repo
}

// RegisterRoutes mounts the report routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/reports")
	group.POST("", ctx.SubmitRateLimiter.RateLimit(), ctx.IdentityMiddleware, m.handler.Submit)
	group.GET("/:id", m.handler.Get)
}

var _ apphttp.Module = (*Module)(nil)
