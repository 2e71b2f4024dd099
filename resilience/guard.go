package resilience

import (
	"context"
	"time"
)

// GuardConfig configures a Guard. Every part is optional.
type GuardConfig struct {
	Name    string
	Limiter *Limiter
	Breaker *Breaker
	// Timeout bounds each attempt.
	Timeout time.Duration
}

// Guard composes the patterns for one provider.
//
// The order is:
//  1. Breaker admission, so an open provider costs no rate budget
//  2. Limiter
//  3. Timeout around the call itself
type Guard struct {
	config GuardConfig
}

// NewGuard creates a Guard.
func NewGuard(config GuardConfig) *Guard {
	return &Guard{config: config}
}

// Name returns the provider name.
func (g *Guard) Name() string {
	return g.config.Name
}

// Breaker returns the breaker, if any.
func (g *Guard) Breaker() *Breaker {
	return g.config.Breaker
}

// Do runs op through the configured patterns.
func (g *Guard) Do(ctx context.Context, op func(context.Context) error) error {
	call := func(ctx context.Context) error {
		if g.config.Limiter != nil {
			if err := g.config.Limiter.Wait(ctx); err != nil {
				return err
			}
		}
		return WithTimeout(ctx, g.config.Timeout, op)
	}
	if g.config.Breaker != nil {
		return g.config.Breaker.Execute(ctx, call)
	}
	return call(ctx)
}
