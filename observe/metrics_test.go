package observe

import (
	"context"
	"testing"
	"time"

	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func findMetric(rm metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for _, sm := range rm.ScopeMetrics {
		for i := range sm.Metrics {
			if sm.Metrics[i].Name == name {
				return &sm.Metrics[i]
			}
		}
	}
	return nil
}

func newTestMetrics(t *testing.T) (Metrics, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	m, err := NewMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatalf("failed to create metrics: %v", err)
	}
	return m, reader
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) metricdata.ResourceMetrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("failed to collect metrics: %v", err)
	}
	return rm
}

func TestMetrics_TierAttemptsByOutcome(t *testing.T) {
	m, reader := newTestMetrics(t)
	meta := TierMeta{Component: "property", Tier: "edge"}

	m.RecordTier(context.Background(), meta, OutcomeHit, 10*time.Millisecond)
	m.RecordTier(context.Background(), meta, OutcomeHit, 10*time.Millisecond)
	m.RecordTier(context.Background(), meta, OutcomeMiss, 5*time.Millisecond)

	found := findMetric(collect(t, reader), "rentdata.tier.attempts")
	if found == nil {
		t.Fatal("rentdata.tier.attempts metric not found")
	}
	sum, ok := found.Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatalf("expected Sum[int64], got %T", found.Data)
	}

	counts := map[string]int64{}
	for _, dp := range sum.DataPoints {
		v, _ := dp.Attributes.Value(attribute.Key("outcome"))
		counts[v.AsString()] = dp.Value
		if tier, _ := dp.Attributes.Value(attribute.Key("tier")); tier.AsString() != "edge" {
			t.Errorf("tier attribute = %q", tier.AsString())
		}
	}
	if counts["hit"] != 2 || counts["miss"] != 1 {
		t.Errorf("counts = %v, want hit=2 miss=1", counts)
	}
}

func TestMetrics_DurationHistogram(t *testing.T) {
	m, reader := newTestMetrics(t)
	m.RecordTier(context.Background(), TierMeta{Component: "geocode", Tier: "providerA"}, OutcomeError, 250*time.Millisecond)

	found := findMetric(collect(t, reader), "rentdata.tier.duration_ms")
	if found == nil {
		t.Fatal("rentdata.tier.duration_ms metric not found")
	}
	hist, ok := found.Data.(metricdata.Histogram[float64])
	if !ok {
		t.Fatalf("expected Histogram[float64], got %T", found.Data)
	}
	if len(hist.DataPoints) != 1 {
		t.Fatalf("expected 1 data point, got %d", len(hist.DataPoints))
	}
	if hist.DataPoints[0].Sum != 250 {
		t.Errorf("sum = %v, want 250", hist.DataPoints[0].Sum)
	}
}

func TestMetrics_Lookups(t *testing.T) {
	m, reader := newTestMetrics(t)
	m.RecordLookup(context.Background(), "query", true)
	m.RecordLookup(context.Background(), "query", false)
	m.RecordLookup(context.Background(), "query", false)

	found := findMetric(collect(t, reader), "rentdata.cache.lookups")
	if found == nil {
		t.Fatal("rentdata.cache.lookups metric not found")
	}
	sum := found.Data.(metricdata.Sum[int64])
	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	if total != 3 {
		t.Errorf("total lookups = %d, want 3", total)
	}
}
