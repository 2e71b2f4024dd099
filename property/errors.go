package property

import (
	"errors"
	"fmt"

	"github.com/jonwraymond/rentdata/api"
)

// Sentinel errors.
var (
	// ErrGone indicates the property was deleted or is reported not found.
	ErrGone = errors.New("property: no longer available")

	// ErrExhausted indicates the retry ceiling was reached.
	ErrExhausted = errors.New("property: exhausted retries")

	// ErrRetryable indicates a transient failure the caller may retry.
	ErrRetryable = errors.New("property: retryable failure")

	// ErrUnknownClass indicates a class with no configured tier chain.
	ErrUnknownClass = errors.New("property: unknown class")

	// ErrInvalidID indicates an empty property identifier.
	ErrInvalidID = errors.New("property: invalid id")

	// ErrNilQueryCache indicates Config.Queries is nil.
	ErrNilQueryCache = errors.New("property: query cache is required")
)

// ErrorKind classifies the last resolver-level failure.
type ErrorKind string

const (
	ErrorKindNone    ErrorKind = ""
	ErrorKindNetwork ErrorKind = "network"
	ErrorKindHTTP    ErrorKind = "http"
	ErrorKindAPI     ErrorKind = "api"
	ErrorKindDecode  ErrorKind = "decode"
)

// Classify maps an error to its ErrorKind.
func Classify(err error) ErrorKind {
	switch {
	case err == nil:
		return ErrorKindNone
	case errors.Is(err, api.ErrTransport):
		return ErrorKindNetwork
	case errors.Is(err, api.ErrHTTPStatus):
		return ErrorKindHTTP
	case errors.Is(err, api.ErrDecode), errors.Is(err, errDecode):
		return ErrorKindDecode
	default:
		return ErrorKindAPI
	}
}

var errDecode = errors.New("property: decode failure")

func decodeError(err error) error {
	return fmt.Errorf("%w: %v", errDecode, err)
}
