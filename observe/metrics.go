package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics records resolver telemetry.
//
// Contract:
//   - Concurrency: implementations must be safe for concurrent use.
//   - Context: must return quickly.
//   - Errors: implementations must not panic.
type Metrics interface {
	// RecordTier records one tier attempt with its outcome and duration.
	RecordTier(ctx context.Context, meta TierMeta, outcome Outcome, duration time.Duration)

	// RecordLookup records a cache lookup as a hit or a miss.
	RecordLookup(ctx context.Context, component string, hit bool)
}

type metricsImpl struct {
	attempts     metric.Int64Counter
	lookups      metric.Int64Counter
	durationHist metric.Float64Histogram
}

// NewMetrics creates Metrics on the given meter.
func NewMetrics(meter metric.Meter) (Metrics, error) {
	attempts, err := meter.Int64Counter(
		"rentdata.tier.attempts",
		metric.WithDescription("Tier attempts by component, tier and outcome"),
		metric.WithUnit("{attempt}"),
	)
	if err != nil {
		return nil, err
	}

	lookups, err := meter.Int64Counter(
		"rentdata.cache.lookups",
		metric.WithDescription("Cache lookups by component and result"),
		metric.WithUnit("{lookup}"),
	)
	if err != nil {
		return nil, err
	}

	durationHist, err := meter.Float64Histogram(
		"rentdata.tier.duration_ms",
		metric.WithDescription("Tier attempt duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &metricsImpl{
		attempts:     attempts,
		lookups:      lookups,
		durationHist: durationHist,
	}, nil
}

func (m *metricsImpl) RecordTier(ctx context.Context, meta TierMeta, outcome Outcome, duration time.Duration) {
	opt := metric.WithAttributes(
		attribute.String("component", meta.Component),
		attribute.String("tier", meta.Tier),
		attribute.String("outcome", string(outcome)),
	)
	m.attempts.Add(ctx, 1, opt)
	m.durationHist.Record(ctx, float64(duration.Microseconds())/1000, opt)
}

func (m *metricsImpl) RecordLookup(ctx context.Context, component string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.lookups.Add(ctx, 1, metric.WithAttributes(
		attribute.String("component", component),
		attribute.String("result", result),
	))
}

type noopMetrics struct{}

func (noopMetrics) RecordTier(context.Context, TierMeta, Outcome, time.Duration) {}
func (noopMetrics) RecordLookup(context.Context, string, bool)                   {}
