// Package geocode resolves device coordinates to structured addresses:
// reverse-geocoding provider client, Redis result cache, and the
// geolocation resolver with its typed device failures.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"outage_portal_backend/internal/location"
	"outage_portal_backend/platform/config"
	"outage_portal_backend/platform/logger"
)

// ReverseClient converts coordinates to raw place data.
type ReverseClient interface {
	ReverseGeocode(ctx context.Context, lat, lng float64) (location.RawPlaceData, error)
}

// Client talks to the reverse-geocoding provider over HTTP.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	log        *logger.Logger
}

// NewClient creates a reverse-geocoding client from configuration.
func NewClient(cfg config.GeocodeConfig, log *logger.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 5 * time.Second},
		baseURL:    cfg.GetGeocodeBaseURL(),
		apiKey:     cfg.GetGeocodeAPIKey(),
		log:        log,
	}
}

type reverseResponse struct {
	Status  string `json:"status"`
	Results []struct {
		FormattedAddress  string                    `json:"formatted_address"`
		AddressComponents []location.PlaceComponent `json:"address_components"`
	} `json:"results"`
}

// ReverseGeocode looks up the address for a coordinate pair. The first
// (most specific) result wins.
func (c *Client) ReverseGeocode(ctx context.Context, lat, lng float64) (location.RawPlaceData, error) {
	params := url.Values{}
	params.Set("latlng", fmt.Sprintf("%.7f,%.7f", lat, lng))
	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}

	reqURL := fmt.Sprintf("%s/json?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return location.RawPlaceData{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.ProviderError("geocode", "reverse", err)
		return location.RawPlaceData{}, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		c.log.ProviderError("geocode", "reverse", fmt.Errorf("status %d", resp.StatusCode))
		return location.RawPlaceData{}, fmt.Errorf("upstream api error: %d", resp.StatusCode)
	}

	var payload reverseResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.log.ProviderError("geocode", "reverse", err)
		return location.RawPlaceData{}, err
	}

	if payload.Status != "OK" || len(payload.Results) == 0 {
		return location.RawPlaceData{}, fmt.Errorf("reverse geocode status %s", payload.Status)
	}

	best := payload.Results[0]
	return location.RawPlaceData{
		FormattedAddress: best.FormattedAddress,
		Components:       best.AddressComponents,
	}, nil
}
