package places

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"outage_portal_backend/internal/location"
	"outage_portal_backend/platform/apperr"
	"outage_portal_backend/platform/logger"
)

// Sentinel errors for the search/selection flow. Callers distinguish them
// with errors.Is; the apperr kind drives the HTTP status mapping.
var (
	// ErrSearchTooShort means the query is below the configured minimum.
	// Local, non-network: no provider call was made. UI hint only.
	ErrSearchTooShort = apperr.Validation("search query below minimum length")
	// ErrSearchFailed means the provider or transport failed; the
	// prediction list is empty and the user may retry.
	ErrSearchFailed = apperr.Upstream("address search failed")
	// ErrDetailsUnavailable means place details could not be fetched and a
	// degraded location built from the prediction text was returned instead.
	ErrDetailsUnavailable = apperr.New(apperr.KindDegraded, "place details unavailable")
)

// SuggestClient is the provider surface the fetcher needs.
type SuggestClient interface {
	Suggest(ctx context.Context, query string, token SessionToken) ([]location.Prediction, error)
}

// PredictionFetcher returns ranked place predictions for a query. The
// minimum query length is a constructor parameter so every call site shares
// one contract instead of duplicating thresholds.
type PredictionFetcher struct {
	client    SuggestClient
	tokens    *SessionTokenManager
	minLength int
	log       *logger.Logger
}

// NewPredictionFetcher creates a fetcher bound to a session token manager.
// The fetcher never mints its own token.
func NewPredictionFetcher(client SuggestClient, tokens *SessionTokenManager, minLength int, log *logger.Logger) *PredictionFetcher {
	if minLength < 1 {
		minLength = 1
	}
	return &PredictionFetcher{
		client:    client,
		tokens:    tokens,
		minLength: minLength,
		log:       log,
	}
}

// Fetch returns predictions in provider order, at most five. Queries below
// the minimum length return ErrSearchTooShort without touching the network.
// Provider failures surface as ErrSearchFailed with an empty list.
func (f *PredictionFetcher) Fetch(ctx context.Context, query string) ([]location.Prediction, error) {
	trimmed := strings.TrimSpace(query)
	if utf8.RuneCountInString(trimmed) < f.minLength {
		return nil, ErrSearchTooShort
	}

	predictions, err := f.client.Suggest(ctx, trimmed, f.tokens.Current())
	if err != nil {
		f.log.ProviderError("places", "suggest", err)
		return nil, fmt.Errorf("%w: %v", ErrSearchFailed, err)
	}

	if len(predictions) > maxPredictions {
		predictions = predictions[:maxPredictions]
	}
	return predictions, nil
}
