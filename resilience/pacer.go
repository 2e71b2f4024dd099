package resilience

import (
	"context"
	"sync"
	"time"
)

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Sleep is the default SleepFunc.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Pacer inserts a fixed delay between consecutive attempts of one
// invocation. The first attempt never waits. Create one per invocation.
type Pacer struct {
	delay time.Duration
	sleep SleepFunc

	mu      sync.Mutex
	started bool
}

// NewPacer creates a Pacer. A nil sleep uses Sleep.
func NewPacer(delay time.Duration, sleep SleepFunc) *Pacer {
	if sleep == nil {
		sleep = Sleep
	}
	return &Pacer{delay: delay, sleep: sleep}
}

// Next waits before every attempt but the first.
func (p *Pacer) Next(ctx context.Context) error {
	p.mu.Lock()
	first := !p.started
	p.started = true
	p.mu.Unlock()
	if first {
		return nil
	}
	return p.sleep(ctx, p.delay)
}
