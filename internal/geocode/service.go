package geocode

import (
	"context"
	"time"

	"outage_portal_backend/internal/location"
	"outage_portal_backend/platform/logger"
)

// Service resolves browser-posted device fixes to locations.
type Service struct {
	reverse ReverseClient
	timeout time.Duration
	log     *logger.Logger
}

// NewService creates the geocode service.
func NewService(reverse ReverseClient, timeout time.Duration, log *logger.Logger) *Service {
	return &Service{reverse: reverse, timeout: timeout, log: log}
}

// ResolvePosition reverse-geocodes an already-obtained device fix.
func (s *Service) ResolvePosition(ctx context.Context, lat, lng float64) (location.ResolvedLocation, error) {
	resolver := NewGeolocationResolver(StaticPosition{Lat: lat, Lng: lng}, s.reverse, s.timeout, s.log)
	return resolver.ResolveFromDevice(ctx)
}

// Reverse exposes the underlying client for other modules (e.g. the
// coordinate backfill command).
func (s *Service) Reverse() ReverseClient {
	return s.reverse
}
