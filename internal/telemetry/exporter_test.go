package telemetry

import (
	"context"
	"errors"
	"testing"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestNewDisabledIsNoOp(t *testing.T) {
	r, err := New(context.Background(), Config{Enabled: false, Endpoint: "localhost:4317"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, ok := r.(NoOp); !ok {
		t.Fatalf("recorder = %T, want NoOp", r)
	}
	r.RecordAnalysis(context.Background(), Analysis{Format: "csv"})
	if err := r.Close(context.Background()); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestRecordAnalysis(t *testing.T) {
	ctx := context.Background()
	reader := sdkmetric.NewManualReader()
	e, err := NewWithReader(ctx, reader)
	if err != nil {
		t.Fatalf("NewWithReader: %v", err)
	}
	defer e.Close(ctx)

	e.RecordAnalysis(ctx, Analysis{Format: "csv", Lang: "en", Surface: "cli", Rows: 12, AbsR: 0.8})
	e.RecordAnalysis(ctx, Analysis{Format: "xlsx", Lang: "id", Surface: "web", Err: errors.New("boom")})

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		t.Fatalf("Collect: %v", err)
	}
	got := map[string]metricdata.Aggregation{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			got[m.Name] = m.Data
		}
	}

	sum, ok := got["surveylens_analyses_total"].(metricdata.Sum[int64])
	if !ok {
		t.Fatalf("analyses counter missing: %#v", got)
	}
	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	if total != 2 || len(sum.DataPoints) != 2 {
		t.Fatalf("analyses = %d over %d series, want 2 over 2", total, len(sum.DataPoints))
	}

	rows, ok := got["surveylens_dataset_rows"].(metricdata.Histogram[int64])
	if !ok || len(rows.DataPoints) != 1 || rows.DataPoints[0].Count != 1 || rows.DataPoints[0].Sum != 12 {
		t.Fatalf("rows histogram = %#v", got["surveylens_dataset_rows"])
	}
	absR, ok := got["surveylens_correlation_abs_r"].(metricdata.Histogram[float64])
	if !ok || len(absR.DataPoints) != 1 || absR.DataPoints[0].Sum != 0.8 {
		t.Fatalf("abs r histogram = %#v", got["surveylens_correlation_abs_r"])
	}
}
