package geocode

import "errors"

var (
	// ErrMissingAPIKey indicates a provider A client without a key.
	ErrMissingAPIKey = errors.New("geocode: api key is required")

	// ErrMissingUserAgent indicates a provider B client without a client
	// identifier; the provider's usage policy requires one.
	ErrMissingUserAgent = errors.New("geocode: user agent is required")

	// ErrProviderStatus indicates a provider rejected the request.
	ErrProviderStatus = errors.New("geocode: provider error status")
)
