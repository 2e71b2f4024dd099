// Package resilience guards outbound calls to external providers.
//
//   - Breaker: stops calling a provider after repeated failures and probes it
//     again after a cool-down. An open breaker is a transient failure, so a
//     cascading resolver simply moves to its next tier.
//   - Limiter: a shared token bucket (golang.org/x/time/rate) across every
//     invocation that calls the same provider.
//   - Pacer: a fixed delay between consecutive attempts inside one
//     invocation, for providers whose usage policy demands it.
//   - Timeout: bounds each individual attempt.
//
// A Guard composes them for one provider:
//
//	g := resilience.NewGuard(resilience.GuardConfig{
//	    Name:    "nominatim",
//	    Limiter: resilience.NewLimiter(resilience.LimiterConfig{Interval: time.Second}),
//	    Breaker: resilience.NewBreaker(resilience.BreakerConfig{Name: "nominatim"}),
//	    Timeout: 5 * time.Second,
//	})
//	err := g.Do(ctx, func(ctx context.Context) error { return lookup(ctx) })
//
// Nothing here retries. Retrying is the caller's decision.
package resilience
