package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// TierFunc runs one tier attempt.
type TierFunc func(ctx context.Context) (Outcome, error)

// Instrumentation bundles the tracer, metrics and logger a resolver uses.
//
// Contract:
//   - Concurrency: safe for concurrent use.
//   - Errors: errors from the wrapped function are recorded and returned unchanged.
type Instrumentation struct {
	tracer  trace.Tracer
	metrics Metrics
	logger  Logger
}

// NewInstrumentation builds Instrumentation from explicit parts. Nil parts
// become no-ops.
func NewInstrumentation(tracer trace.Tracer, metrics Metrics, logger Logger) *Instrumentation {
	if tracer == nil {
		tracer = tracenoop.NewTracerProvider().Tracer("noop")
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}
	if logger == nil {
		logger = NopLogger()
	}
	return &Instrumentation{tracer: tracer, metrics: metrics, logger: logger}
}

// FromObserver builds Instrumentation on an Observer's providers.
func FromObserver(obs Observer) (*Instrumentation, error) {
	if obs == nil {
		return nil, ErrNilObserver
	}
	metrics, err := NewMetrics(obs.Meter())
	if err != nil {
		return nil, err
	}
	return NewInstrumentation(obs.Tracer(), metrics, obs.Logger()), nil
}

// Nop returns Instrumentation that records nothing.
func Nop() *Instrumentation {
	return NewInstrumentation(nil, nil, nil)
}

// Logger returns the logger.
func (i *Instrumentation) Logger() Logger {
	return i.logger
}

// Metrics returns the metrics recorder.
func (i *Instrumentation) Metrics() Metrics {
	return i.metrics
}

// Tier runs fn inside a span and records its outcome.
func (i *Instrumentation) Tier(ctx context.Context, meta TierMeta, fn TierFunc) (Outcome, error) {
	ctx, span := startTierSpan(ctx, i.tracer, meta)
	start := time.Now()

	outcome, err := fn(ctx)
	if err != nil && outcome == "" {
		outcome = OutcomeError
	}
	duration := time.Since(start)

	endTierSpan(span, outcome, err)
	i.metrics.RecordTier(ctx, meta, outcome, duration)

	fields := []Field{
		F("component", meta.Component),
		F("tier", meta.Tier),
		F("outcome", string(outcome)),
		F("duration_ms", float64(duration.Microseconds())/1000),
	}
	if err != nil {
		fields = append(fields, Err(err))
		i.logger.Warn(ctx, "tier attempt failed", fields...)
	} else {
		i.logger.Debug(ctx, "tier attempt", fields...)
	}

	return outcome, err
}
