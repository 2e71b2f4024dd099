package api

import "errors"

// Sentinel errors.
var (
	// ErrInvalidRequest indicates a request without an operation name.
	ErrInvalidRequest = errors.New("api: invalid request")

	// ErrMissingEndpoint indicates the client has no endpoint configured.
	ErrMissingEndpoint = errors.New("api: endpoint is required")

	// ErrTransport indicates the request never produced an HTTP response.
	ErrTransport = errors.New("api: transport failure")

	// ErrHTTPStatus indicates a non-2xx HTTP status.
	ErrHTTPStatus = errors.New("api: unexpected HTTP status")

	// ErrDecode indicates the response body is not a valid envelope.
	ErrDecode = errors.New("api: decode failure")

	// ErrResponse indicates the response carried an error list.
	ErrResponse = errors.New("api: response errors")

	// ErrNotFound indicates the API reported the requested content missing.
	ErrNotFound = errors.New("api: not found")
)
