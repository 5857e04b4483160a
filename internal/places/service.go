package places

import (
	"context"
	"sync"

	"outage_portal_backend/internal/location"
	"outage_portal_backend/platform/logger"
)

// ProviderClient combines the two provider surfaces one search session uses.
type ProviderClient interface {
	SuggestClient
	DetailsClient
}

// Service coordinates autocomplete sessions per address field. Each field
// (identified by the caller) owns one SessionTokenManager; the service is
// the single place that hands it to the fetcher and the resolver, so both
// always share a token within one session.
type Service struct {
	client    ProviderClient
	minLength int
	log       *logger.Logger

	mu       sync.Mutex
	sessions map[string]*SessionTokenManager
}

// NewService creates the places service. minLength is the single threshold
// for every call site.
func NewService(client ProviderClient, minLength int, log *logger.Logger) *Service {
	return &Service{
		client:    client,
		minLength: minLength,
		log:       log,
		sessions:  make(map[string]*SessionTokenManager),
	}
}

func (s *Service) manager(fieldID string) *SessionTokenManager {
	s.mu.Lock()
	defer s.mu.Unlock()

	mgr, ok := s.sessions[fieldID]
	if !ok {
		mgr = NewSessionTokenManager()
		s.sessions[fieldID] = mgr
	}
	return mgr
}

// Autocomplete fetches predictions for the field's current query.
func (s *Service) Autocomplete(ctx context.Context, fieldID, query string) ([]location.Prediction, error) {
	fetcher := NewPredictionFetcher(s.client, s.manager(fieldID), s.minLength, s.log)
	return fetcher.Fetch(ctx, query)
}

// ResolveSelection fetches details for the selected prediction and closes
// the field's search session.
func (s *Service) ResolveSelection(ctx context.Context, fieldID string, prediction location.Prediction) (location.ResolvedLocation, error) {
	resolver := NewPlaceDetailsResolver(s.client, s.manager(fieldID), s.log)
	return resolver.Resolve(ctx, prediction)
}

// ClearField ends the field's search session without a selection, e.g. on
// explicit clear or when the field value becomes empty.
func (s *Service) ClearField(fieldID string) {
	s.manager(fieldID).Reset()
}
