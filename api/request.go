package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Request is one call to the authoritative API.
type Request struct {
	Operation string         `json:"operationName"`
	Query     string         `json:"query,omitempty"`
	Variables map[string]any `json:"variables,omitempty"`
}

// Validate checks that the request names an operation.
func (r Request) Validate() error {
	if strings.TrimSpace(r.Operation) == "" {
		return fmt.Errorf("%w: operation name is required", ErrInvalidRequest)
	}
	return nil
}

// Response is the API envelope.
type Response struct {
	Data   json.RawMessage `json:"data,omitempty"`
	Errors []Error         `json:"errors,omitempty"`
}

// Err returns a *ResponseError when the envelope carries errors.
func (r *Response) Err() error {
	if len(r.Errors) == 0 {
		return nil
	}
	return &ResponseError{Errors: r.Errors}
}

// HasData reports whether the envelope carries a non-null payload.
func (r *Response) HasData() bool {
	d := strings.TrimSpace(string(r.Data))
	return d != "" && d != "null"
}

// Error is one entry of the envelope's error list.
type Error struct {
	Message    string         `json:"message"`
	Path       []any          `json:"path,omitempty"`
	Extensions map[string]any `json:"extensions,omitempty"`
}

// Code returns the extensions.code value, if any.
func (e Error) Code() string {
	if e.Extensions == nil {
		return ""
	}
	code, _ := e.Extensions["code"].(string)
	return code
}

// NotFound reports whether this entry signals missing content.
func (e Error) NotFound() bool {
	if strings.EqualFold(e.Code(), "NOT_FOUND") {
		return true
	}
	return strings.Contains(strings.ToLower(e.Message), "not found")
}

// ResponseError wraps an envelope's error list.
type ResponseError struct {
	Errors []Error
}

func (e *ResponseError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, item := range e.Errors {
		msgs = append(msgs, item.Message)
	}
	return fmt.Sprintf("api: %s", strings.Join(msgs, "; "))
}

// Unwrap exposes ErrResponse, and ErrNotFound when any entry is a not-found.
func (e *ResponseError) Unwrap() []error {
	errs := []error{ErrResponse}
	for _, item := range e.Errors {
		if item.NotFound() {
			errs = append(errs, ErrNotFound)
			break
		}
	}
	return errs
}

// StatusError carries a non-2xx HTTP status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("api: HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("api: HTTP %d: %s", e.StatusCode, e.Body)
}

// Unwrap returns ErrHTTPStatus.
func (e *StatusError) Unwrap() error {
	return ErrHTTPStatus
}

// IsNotFound reports whether err signals that the requested content is gone.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
