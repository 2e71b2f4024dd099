package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultNominatimURL is the provider B endpoint.
const DefaultNominatimURL = "https://nominatim.openstreetmap.org/search"

// NominatimConfig configures a NominatimClient.
type NominatimConfig struct {
	// UserAgent identifies this client, as the usage policy requires.
	UserAgent string

	// BaseURL overrides the endpoint.
	// Default: DefaultNominatimURL
	BaseURL string

	// CountryCodes restricts results, e.g. "tz".
	CountryCodes string

	// Limit is the number of candidates requested.
	// Default: 5
	Limit int

	// HTTPClient is the underlying client.
	// Default: &http.Client{Timeout: 10s}
	HTTPClient *http.Client
}

// NominatimClient is a Nominatim style provider.
type NominatimClient struct {
	config NominatimConfig
}

// NewNominatimClient creates a NominatimClient.
func NewNominatimClient(config NominatimConfig) (*NominatimClient, error) {
	if strings.TrimSpace(config.UserAgent) == "" {
		return nil, ErrMissingUserAgent
	}
	if config.BaseURL == "" {
		config.BaseURL = DefaultNominatimURL
	}
	if config.Limit <= 0 {
		config.Limit = 5
	}
	if config.HTTPClient == nil {
		config.HTTPClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &NominatimClient{config: config}, nil
}

type nominatimPlace struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Lookup returns every candidate in provider order. Unparseable candidates
// are dropped.
func (c *NominatimClient) Lookup(ctx context.Context, address string) ([]Coordinates, error) {
	q := url.Values{}
	q.Set("q", address)
	q.Set("format", "json")
	q.Set("limit", strconv.Itoa(c.config.Limit))
	if c.config.CountryCodes != "" {
		q.Set("countrycodes", c.config.CountryCodes)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.config.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: HTTP %d", ErrProviderStatus, resp.StatusCode)
	}

	var places []nominatimPlace
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return nil, fmt.Errorf("geocode: decode provider B response: %w", err)
	}
	out := make([]Coordinates, 0, len(places))
	for _, pl := range places {
		lat, errLat := strconv.ParseFloat(pl.Lat, 64)
		lng, errLng := strconv.ParseFloat(pl.Lon, 64)
		if errLat != nil || errLng != nil {
			continue
		}
		out = append(out, Coordinates{Lat: lat, Lng: lng})
	}
	return out, nil
}

// Ensure NominatimClient implements Provider
var _ Provider = (*NominatimClient)(nil)
