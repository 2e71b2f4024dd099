package resilience

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/time/rate"
)

// LimiterConfig configures a Limiter.
type LimiterConfig struct {
	// Interval is the minimum spacing between calls.
	// Default: 1 second
	Interval time.Duration

	// Burst is the number of calls allowed back to back.
	// Default: 1
	Burst int

	// MaxWait caps how long Wait blocks for a token. Zero waits as long as
	// the context allows.
	MaxWait time.Duration
}

// Limiter is a token bucket shared by every caller of one provider.
type Limiter struct {
	config  LimiterConfig
	limiter *rate.Limiter
}

// NewLimiter creates a full Limiter.
func NewLimiter(config LimiterConfig) *Limiter {
	if config.Interval <= 0 {
		config.Interval = time.Second
	}
	if config.Burst <= 0 {
		config.Burst = 1
	}
	return &Limiter{
		config:  config,
		limiter: rate.NewLimiter(rate.Every(config.Interval), config.Burst),
	}
}

// Allow takes a token if one is available now.
func (l *Limiter) Allow() bool {
	return l.limiter.Allow()
}

// Wait blocks until a token is available.
func (l *Limiter) Wait(ctx context.Context) error {
	if l.config.MaxWait > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.config.MaxWait)
		defer cancel()
	}
	if err := l.limiter.Wait(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		// rate reports a wait that would overrun the deadline as a plain error.
		return fmt.Errorf("%w: %v", ErrRateLimited, err)
	}
	return nil
}

// Tokens returns the tokens currently available.
func (l *Limiter) Tokens() float64 {
	return l.limiter.Tokens()
}

// Config returns the limiter configuration.
func (l *Limiter) Config() LimiterConfig {
	return l.config
}
