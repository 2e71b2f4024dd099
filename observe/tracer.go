package observe

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TierMeta names one tier of one resolver.
type TierMeta struct {
	Component string // query|property|geocode|location
	Tier      string // e.g. memory, edge, providerA
}

// SpanName returns the deterministic span name for this tier.
// Format: rentdata.<component>.<tier>
func (m TierMeta) SpanName() string {
	return "rentdata." + m.Component + "." + m.Tier
}

// Outcome is the result class of one tier attempt.
type Outcome string

const (
	OutcomeHit     Outcome = "hit"
	OutcomeMiss    Outcome = "miss"
	OutcomeGone    Outcome = "gone"
	OutcomeError   Outcome = "error"
	OutcomeSkipped Outcome = "skipped"
	OutcomeStale   Outcome = "stale"
)

func startTierSpan(ctx context.Context, t trace.Tracer, meta TierMeta) (context.Context, trace.Span) {
	return t.Start(ctx, meta.SpanName(),
		trace.WithAttributes(
			attribute.String("rentdata.component", meta.Component),
			attribute.String("rentdata.tier", meta.Tier),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

func endTierSpan(span trace.Span, outcome Outcome, err error) {
	span.SetAttributes(attribute.String("rentdata.outcome", string(outcome)))
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		span.RecordError(err)
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
