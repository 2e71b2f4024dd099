package observe

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestInstrumentation_TierRecordsSpan(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	inst := NewInstrumentation(tp.Tracer("test"), nil, nil)

	meta := TierMeta{Component: "property", Tier: "edge"}
	outcome, err := inst.Tier(context.Background(), meta, func(context.Context) (Outcome, error) {
		return OutcomeHit, nil
	})
	if err != nil || outcome != OutcomeHit {
		t.Fatalf("Tier() = %q, %v", outcome, err)
	}

	spans := sr.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Name() != "rentdata.property.edge" {
		t.Errorf("span name = %q", spans[0].Name())
	}
	if spans[0].Status().Code != codes.Ok {
		t.Errorf("status = %v, want Ok", spans[0].Status().Code)
	}
}

func TestInstrumentation_TierErrorDefaultsOutcome(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	var buf bytes.Buffer
	inst := NewInstrumentation(tp.Tracer("test"), nil, NewLoggerWithWriter("debug", &buf))

	boom := errors.New("boom")
	outcome, err := inst.Tier(context.Background(), TierMeta{Component: "geocode", Tier: "providerB"},
		func(context.Context) (Outcome, error) { return "", boom })

	if !errors.Is(err, boom) {
		t.Fatalf("error = %v, want boom", err)
	}
	if outcome != OutcomeError {
		t.Errorf("outcome = %q, want error", outcome)
	}
	if sr.Ended()[0].Status().Code != codes.Error {
		t.Errorf("span status = %v, want Error", sr.Ended()[0].Status().Code)
	}
	if !strings.Contains(buf.String(), "tier attempt failed") {
		t.Errorf("expected warn log, got %q", buf.String())
	}
}

func TestInstrumentation_FromObserverNil(t *testing.T) {
	if _, err := FromObserver(nil); !errors.Is(err, ErrNilObserver) {
		t.Fatalf("FromObserver(nil) error = %v, want ErrNilObserver", err)
	}
}

func TestInstrumentation_FromObserverDisabled(t *testing.T) {
	obs, err := NewObserver(context.Background(), Config{ServiceName: "rentdata-test"})
	if err != nil {
		t.Fatalf("NewObserver() error = %v", err)
	}
	defer obs.Shutdown(context.Background())

	inst, err := FromObserver(obs)
	if err != nil {
		t.Fatalf("FromObserver() error = %v", err)
	}
	if _, err := inst.Tier(context.Background(), TierMeta{Component: "query", Tier: "memory"},
		func(context.Context) (Outcome, error) { return OutcomeMiss, nil }); err != nil {
		t.Fatalf("Tier() error = %v", err)
	}
}

func TestNop(t *testing.T) {
	inst := Nop()
	if inst.Logger() == nil || inst.Metrics() == nil {
		t.Fatal("Nop() has nil parts")
	}
}
