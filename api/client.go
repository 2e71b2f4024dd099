package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jonwraymond/rentdata/auth"
	"github.com/jonwraymond/rentdata/observe"
)

// RequestIDHeader is set on every outbound request.
const RequestIDHeader = "X-Request-ID"

// maxErrorBody caps how much of a non-2xx body is kept in a StatusError.
const maxErrorBody = 512

// ClientConfig configures an HTTP Client.
type ClientConfig struct {
	// Endpoint is the single query endpoint URL.
	Endpoint string

	// HTTPClient is the underlying client.
	// Default: &http.Client{Timeout: Timeout}
	HTTPClient *http.Client

	// Timeout bounds one request when HTTPClient is nil.
	// Default: 15s
	Timeout time.Duration

	// Tokens supplies the bearer token in authenticated mode.
	Tokens auth.TokenSource

	// UserAgent is sent on every request when set.
	UserAgent string

	// Logger receives request logs.
	Logger observe.Logger

	// NewRequestID overrides request ID generation.
	// Default: uuid.NewString
	NewRequestID func() string
}

// Client executes requests as JSON POSTs.
type Client struct {
	config ClientConfig
}

// NewClient creates a Client.
func NewClient(config ClientConfig) (*Client, error) {
	if strings.TrimSpace(config.Endpoint) == "" {
		return nil, ErrMissingEndpoint
	}
	if config.Timeout <= 0 {
		config.Timeout = 15 * time.Second
	}
	if config.HTTPClient == nil {
		config.HTTPClient = &http.Client{Timeout: config.Timeout}
	}
	if config.Logger == nil {
		config.Logger = observe.NopLogger()
	}
	if config.NewRequestID == nil {
		config.NewRequestID = uuid.NewString
	}
	return &Client{config: config}, nil
}

// Execute sends req in the given mode.
func (c *Client) Execute(ctx context.Context, req Request, mode auth.Mode) (*Response, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := mode.Validate(); err != nil {
		return nil, err
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	requestID := c.config.NewRequestID()
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set(RequestIDHeader, requestID)
	if c.config.UserAgent != "" {
		httpReq.Header.Set("User-Agent", c.config.UserAgent)
	}

	if mode == auth.ModeAuthenticated {
		if c.config.Tokens == nil {
			return nil, auth.ErrMissingCredentials
		}
		token, err := c.config.Tokens.Token(ctx)
		if err != nil {
			return nil, err
		}
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	log := c.config.Logger.With(
		observe.F("operation", req.Operation),
		observe.F("mode", mode.String()),
		observe.F("request_id", requestID),
	)

	start := time.Now()
	resp, err := c.config.HTTPClient.Do(httpReq)
	if err != nil {
		log.Warn(ctx, "api request failed", observe.Err(err))
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		log.Warn(ctx, "api unexpected status", observe.F("status", resp.StatusCode))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(snippet))}
	}

	var out Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		log.Warn(ctx, "api decode failed", observe.Err(err))
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	log.Debug(ctx, "api response",
		observe.F("duration_ms", time.Since(start).Milliseconds()),
		observe.F("errors", len(out.Errors)),
	)

	if err := out.Err(); err != nil {
		return &out, err
	}
	return &out, nil
}

// Ensure Client implements Executor
var _ Executor = (*Client)(nil)
