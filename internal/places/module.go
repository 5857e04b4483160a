// Package places provides autocomplete search: session-token lifecycle,
// prediction fetching, and selected-place resolution.
package places

import (
	apphttp "outage_portal_backend/internal/http"
	"outage_portal_backend/platform/config"
	"outage_portal_backend/platform/logger"
)

// Module wires the places autocomplete HTTP routes.
type Module struct {
	handler *Handler
	service *Service
}

// NewModule creates and initializes the places module.
func NewModule(cfg config.PlacesConfig, log *logger.Logger) *Module {
	client := NewClient(cfg, log)
	svc := NewService(client, cfg.GetPlacesMinQueryLength(), log)
	h := NewHandler(svc)

	return &Module{handler: h, service: svc}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "places"
}

// Service returns the service layer for external use.
func (m *Module) Service() *Service {
	return m.service
}

// RegisterRoutes mounts the autocomplete routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/places")
	group.GET("/autocomplete", m.handler.Autocomplete)
	group.POST("/select", m.handler.Select)
	group.POST("/clear", m.handler.Clear)
}

var _ apphttp.Module = (*Module)(nil)
