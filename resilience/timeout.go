package resilience

import (
	"context"
	"errors"
	"time"
)

// WithTimeout runs op under a deadline of d. A zero d runs op unbounded.
// Exceeding the deadline reports ErrTimeout; op is expected to honour ctx.
func WithTimeout(ctx context.Context, d time.Duration, op func(context.Context) error) error {
	if d <= 0 {
		return op(ctx)
	}
	ctx, cancel := context.WithTimeout(ctx, d)
	defer cancel()

	err := op(ctx)
	if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return errors.Join(ErrTimeout, err)
	}
	return err
}
