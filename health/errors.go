package health

import "errors"

var (
	// ErrCheckTimeout indicates a health check did not finish in time.
	ErrCheckTimeout = errors.New("health: check timeout")

	// ErrRoundTrip indicates a store returned something other than what was written.
	ErrRoundTrip = errors.New("health: store round trip mismatch")

	// ErrBreakerOpen indicates a guarded provider is currently rejected.
	ErrBreakerOpen = errors.New("health: breaker open")
)
