package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultGoogleURL is the provider A endpoint.
const DefaultGoogleURL = "https://maps.googleapis.com/maps/api/geocode/json"

// Provider looks up candidate coordinates for a free-form address.
//
// Contract:
//   - Context: must honor cancellation and deadlines.
//   - Errors: "no results" is an empty slice with a nil error; errors are
//     reserved for transport and provider failures.
type Provider interface {
	Lookup(ctx context.Context, address string) ([]Coordinates, error)
}

// GoogleConfig configures a GoogleClient.
type GoogleConfig struct {
	// APIKey is required.
	APIKey string

	// BaseURL overrides the endpoint.
	// Default: DefaultGoogleURL
	BaseURL string

	// Region biases results to a ccTLD, e.g. "tz".
	Region string

	// HTTPClient is the underlying client.
	// Default: &http.Client{Timeout: 10s}
	HTTPClient *http.Client
}

// GoogleClient is a Google Geocoding style provider.
type GoogleClient struct {
	config GoogleConfig
}

// NewGoogleClient creates a GoogleClient.
func NewGoogleClient(config GoogleConfig) (*GoogleClient, error) {
	if strings.TrimSpace(config.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}
	if config.BaseURL == "" {
		config.BaseURL = DefaultGoogleURL
	}
	if config.HTTPClient == nil {
		config.HTTPClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &GoogleClient{config: config}, nil
}

type googleResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Results      []struct {
		Geometry struct {
			Location Coordinates `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// Lookup returns the single best match, if any.
func (c *GoogleClient) Lookup(ctx context.Context, address string) ([]Coordinates, error) {
	q := url.Values{}
	q.Set("address", address)
	q.Set("key", c.config.APIKey)
	if c.config.Region != "" {
		q.Set("region", c.config.Region)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.config.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: HTTP %d", ErrProviderStatus, resp.StatusCode)
	}

	var body googleResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("geocode: decode provider A response: %w", err)
	}
	switch body.Status {
	case "OK":
		if len(body.Results) == 0 {
			return nil, nil
		}
		return []Coordinates{body.Results[0].Geometry.Location}, nil
	case "ZERO_RESULTS":
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: %s %s", ErrProviderStatus, body.Status, body.ErrorMessage)
	}
}

// Ensure GoogleClient implements Provider
var _ Provider = (*GoogleClient)(nil)
