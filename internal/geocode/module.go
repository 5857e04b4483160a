package geocode

import (
	apphttp "outage_portal_backend/internal/http"
	"outage_portal_backend/platform/config"
	"outage_portal_backend/platform/logger"

	"github.com/redis/go-redis/v9"
)

// Module wires the reverse-geocoding HTTP route.
type Module struct {
	handler *Handler
	service *Service
}

// ModuleConfig combines the config interfaces the geocode module needs.
type ModuleConfig interface {
	config.GeocodeConfig
	config.RedisConfig
}

// NewModule creates and initializes the geocode module. When Redis is
// configured, reverse lookups go through the cache.
func NewModule(cfg ModuleConfig, rdb *redis.Client, log *logger.Logger) *Module {
	var reverse ReverseClient = NewClient(cfg, log)
	if rdb != nil {
		reverse = NewCachedReverseClient(reverse, rdb, cfg.GetGeocodeCacheTTL(), log)
	}

	svc := NewService(reverse, cfg.GetDeviceLocationTimeout(), log)
	h := NewHandler(svc)

	return &Module{handler: h, service: svc}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "geocode"
}

// Service returns the service layer for external use.
func (m *Module) Service() *Service {
	return m.service
}

// RegisterRoutes mounts the geocode routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/geocode")
	group.POST("/reverse", m.handler.Reverse)
}

var _ apphttp.Module = (*Module)(nil)
