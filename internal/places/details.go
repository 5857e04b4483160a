package places

import (
	"context"
	"fmt"

	"outage_portal_backend/internal/location"
	"outage_portal_backend/platform/logger"
)

// DetailsClient is the provider surface the resolver needs.
type DetailsClient interface {
	Details(ctx context.Context, placeID string, token SessionToken) (PlaceDetails, error)
}

// PlaceDetailsResolver turns a selected prediction into a ResolvedLocation.
type PlaceDetailsResolver struct {
	client DetailsClient
	tokens *SessionTokenManager
	log    *logger.Logger
}

// NewPlaceDetailsResolver creates a resolver bound to the same session token
// manager as the fetcher that produced the prediction.
func NewPlaceDetailsResolver(client DetailsClient, tokens *SessionTokenManager, log *logger.Logger) *PlaceDetailsResolver {
	return &PlaceDetailsResolver{client: client, tokens: tokens, log: log}
}

// Resolve fetches structured place data for the prediction. The details call
// uses the session's current token and always closes the session: exactly
// one token reset happens per selection, success or not.
//
// On provider failure the interaction does not abort: a degraded location
// built from the prediction's display text is returned together with
// ErrDetailsUnavailable so the caller can surface a non-fatal notice.
func (r *PlaceDetailsResolver) Resolve(ctx context.Context, prediction location.Prediction) (location.ResolvedLocation, error) {
	token := r.tokens.Current()
	details, err := r.client.Details(ctx, prediction.PlaceID, token)
	r.tokens.Reset()

	if err != nil {
		r.log.ProviderError("places", "details", err)
		display := prediction.DisplayText()
		return location.ResolvedLocation{
			Address:  display,
			Locality: location.LocalityFallback("", display, location.AddressComponents{}),
			PlaceID:  prediction.PlaceID,
			Source:   location.SourceSearch,
		}, fmt.Errorf("%w: %v", ErrDetailsUnavailable, err)
	}

	formatted := location.Format(details.Raw)
	resolved := location.ResolvedLocation{
		Address:    formatted.Address,
		Components: formatted.Components,
		Locality:   formatted.Locality,
		PlaceID:    prediction.PlaceID,
		Source:     location.SourceSearch,
	}
	if details.Lat != nil && details.Lng != nil {
		resolved.SetCoordinates(*details.Lat, *details.Lng)
	}

	return resolved, nil
}
