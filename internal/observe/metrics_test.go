package observe_test

import (
	"context"
	"testing"
	"time"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/medvoice/inscribe/internal/observe"
)

func TestRecordFragment(t *testing.T) {
	t.Parallel()

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	m, err := observe.NewMetrics(mp)
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}

	ctx := context.Background()
	m.RecordFragment(ctx, observe.OutcomeInserted, 2*time.Millisecond)
	m.RecordFragment(ctx, observe.OutcomeSkipped, time.Millisecond)
	m.RecordCommand(ctx, "delete")

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		t.Fatalf("Collect: %v", err)
	}

	var sawFragments, sawCommands, sawDuration bool
	for _, sm := range rm.ScopeMetrics {
		for _, met := range sm.Metrics {
			switch met.Name {
			case "inscribe.fragments":
				sawFragments = true
				sum, ok := met.Data.(metricdata.Sum[int64])
				if !ok {
					t.Fatalf("inscribe.fragments: unexpected data type %T", met.Data)
				}
				var total int64
				for _, dp := range sum.DataPoints {
					total += dp.Value
				}
				if total != 2 {
					t.Errorf("inscribe.fragments total = %d, want 2", total)
				}
			case "inscribe.commands":
				sawCommands = true
			case "inscribe.fragment.duration":
				sawDuration = true
			}
		}
	}
	if !sawFragments || !sawCommands || !sawDuration {
		t.Errorf("missing instruments: fragments=%v commands=%v duration=%v",
			sawFragments, sawCommands, sawDuration)
	}
}

// A nil Metrics must be safe to record against — callers use it when
// metrics are disabled.
func TestNilMetricsNoPanic(t *testing.T) {
	t.Parallel()

	var m *observe.Metrics
	m.RecordFragment(context.Background(), observe.OutcomeInserted, time.Millisecond)
	m.RecordCommand(context.Background(), "undo")
}
