package health

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/jonwraymond/rentdata/kv"
	"github.com/jonwraymond/rentdata/resilience"
)

// probePrefix namespaces round-trip probe keys.
const probePrefix = "health:probe:"

type pinger interface {
	Ping(ctx context.Context) error
}

// StoreChecker verifies a kv.Store with a write, read and remove of a
// throwaway key. Stores that can Ping are pinged first.
type StoreChecker struct {
	name  string
	store kv.Store
}

// NewStoreChecker creates a StoreChecker.
func NewStoreChecker(name string, store kv.Store) *StoreChecker {
	return &StoreChecker{name: name, store: store}
}

func (c *StoreChecker) Name() string { return c.name }

func (c *StoreChecker) Check(ctx context.Context) Result {
	if p, ok := c.store.(pinger); ok {
		if err := p.Ping(ctx); err != nil {
			return Unhealthy("ping failed", err)
		}
	}

	key := probePrefix + uuid.NewString()
	want := time.Now().UTC().Format(time.RFC3339Nano)
	if err := c.store.Set(ctx, key, want); err != nil {
		return Unhealthy("write failed", err)
	}
	defer func() { _ = c.store.Remove(context.WithoutCancel(ctx), key) }()

	got, ok, err := c.store.Get(ctx, key)
	switch {
	case err != nil:
		return Unhealthy("read failed", err)
	case !ok || got != want:
		return Unhealthy("read back a different value", ErrRoundTrip)
	}
	return Healthy("round trip ok")
}

// EndpointChecker issues a GET against an upstream URL. 5xx and transport
// errors are unhealthy; 4xx means reachable but refusing, which is degraded.
type EndpointChecker struct {
	name   string
	url    string
	client *http.Client
}

// NewEndpointChecker creates an EndpointChecker. A nil client uses a 5 second
// timeout.
func NewEndpointChecker(name, url string, client *http.Client) *EndpointChecker {
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}
	return &EndpointChecker{name: name, url: url, client: client}
}

func (c *EndpointChecker) Name() string { return c.name }

func (c *EndpointChecker) Check(ctx context.Context) Result {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return Unhealthy("bad url", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return Unhealthy("unreachable", err)
	}
	_ = resp.Body.Close()

	details := map[string]any{"status_code": resp.StatusCode}
	switch {
	case resp.StatusCode >= 500:
		return Unhealthy("server error", fmt.Errorf("HTTP %d", resp.StatusCode)).WithDetails(details)
	case resp.StatusCode >= 400:
		return Degraded("reachable", fmt.Errorf("HTTP %d", resp.StatusCode)).WithDetails(details)
	}
	return Healthy("reachable").WithDetails(details)
}

// BreakerChecker reports a provider's circuit breaker state.
type BreakerChecker struct {
	breaker *resilience.Breaker
}

// NewBreakerChecker creates a BreakerChecker named after the breaker.
func NewBreakerChecker(b *resilience.Breaker) *BreakerChecker {
	return &BreakerChecker{breaker: b}
}

func (c *BreakerChecker) Name() string { return "breaker:" + c.breaker.Name() }

func (c *BreakerChecker) Check(context.Context) Result {
	stats := c.breaker.Stats()
	details := map[string]any{"state": stats.State.String(), "failures": stats.Failures}
	switch stats.State {
	case resilience.StateOpen:
		return Unhealthy("provider rejected", ErrBreakerOpen).WithDetails(details)
	case resilience.StateHalfOpen:
		return Degraded("probing provider", nil).WithDetails(details)
	}
	return Healthy("closed").WithDetails(details)
}

var (
	_ Checker = (*StoreChecker)(nil)
	_ Checker = (*EndpointChecker)(nil)
	_ Checker = (*BreakerChecker)(nil)
	_ Checker = (*CheckerFunc)(nil)
)

// IsTimeout reports whether r failed because its check ran out of time.
func IsTimeout(r Result) bool {
	return errors.Is(r.Err, ErrCheckTimeout)
}
