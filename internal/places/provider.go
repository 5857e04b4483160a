package places

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

// maxPredictions caps the suggestion list returned to callers.
const maxPredictions = 5

// PlaceDetails is the provider's answer to a details lookup: the raw place
// data for the formatter plus the geometry when the provider returned one.
type PlaceDetails struct {
	Raw location.RawPlaceData
	Lat *float64
	Lng *float64
}

// Client talks to the autocomplete/place-details provider over HTTP.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	region     string
	log        *logger.Logger
}

// NewClient creates a provider client from configuration.
func NewClient(cfg config.PlacesConfig, log *logger.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 5 * time.Second},
		baseURL:    cfg.GetPlacesBaseURL(),
		apiKey:     cfg.GetPlacesAPIKey(),
		region:     cfg.GetPlacesRegionBias(),
		log:        log,
	}
}

type autocompleteResponse struct {
	Status      string `json:"status"`
	Predictions []struct {
		PlaceID              string `json:"place_id"`
		StructuredFormatting struct {
			MainText      string `json:"main_text"`
			SecondaryText string `json:"secondary_text"`
		} `json:"structured_formatting"`
	} `json:"predictions"`
}

type detailsResponse struct {
	Status string `json:"status"`
	Result struct {
		Name              string                    `json:"name"`
		FormattedAddress  string                    `json:"formatted_address"`
		AddressComponents []location.PlaceComponent `json:"address_components"`
		Geometry          *struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"result"`
}

// Suggest fetches ranked predictions for the query within the given session.
// Provider order is preserved; the list is capped at maxPredictions.
func (c *Client) Suggest(ctx context.Context, query string, token SessionToken) ([]location.Prediction, error) {
	params := url.Values{}
	params.Set("input", query)
	params.Set("sessiontoken", string(token))
	if c.region != "" {
		params.Set("region", c.region)
	}
	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}

	var payload autocompleteResponse
	if err := c.get(ctx, "/autocomplete", params, &payload); err != nil {
		return nil, err
	}

	if payload.Status != "OK" && payload.Status != "ZERO_RESULTS" {
		return nil, fmt.Errorf("autocomplete provider status %s", payload.Status)
	}

	predictions := make([]location.Prediction, 0, len(payload.Predictions))
	for _, raw := range payload.Predictions {
		if len(predictions) == maxPredictions {
			break
		}
		predictions = append(predictions, location.Prediction{
			PlaceID:       raw.PlaceID,
			MainText:      raw.StructuredFormatting.MainText,
			SecondaryText: raw.StructuredFormatting.SecondaryText,
		})
	}

	return predictions, nil
}

// Details fetches structured place data for a selected prediction. The same
// session token as the preceding suggest calls must be supplied; the
// provider closes the session with this call.
func (c *Client) Details(ctx context.Context, placeID string, token SessionToken) (PlaceDetails, error) {
	params := url.Values{}
	params.Set("place_id", placeID)
	params.Set("sessiontoken", string(token))
	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}

	var payload detailsResponse
	if err := c.get(ctx, "/details", params, &payload); err != nil {
		return PlaceDetails{}, err
	}

	if payload.Status != "OK" {
		return PlaceDetails{}, fmt.Errorf("details provider status %s", payload.Status)
	}

	details := PlaceDetails{
		Raw: location.RawPlaceData{
			DisplayName:      payload.Result.Name,
			FormattedAddress: payload.Result.FormattedAddress,
			Components:       payload.Result.AddressComponents,
		},
	}
	if geo := payload.Result.Geometry; geo != nil {
		lat := geo.Location.Lat
		lng := geo.Location.Lng
		details.Lat = &lat
		details.Lng = &lng
	}

	return details, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	reqURL := fmt.Sprintf("%s%s/json?%s", c.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.ProviderError("places", path, err)
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		c.log.ProviderError("places", path, fmt.Errorf("status %d", resp.StatusCode))
		return fmt.Errorf("upstream api error: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.log.ProviderError("places", path, err)
		return err
	}

	return nil
}
