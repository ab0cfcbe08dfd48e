// Package observe provides observability primitives for the dictation
// engine: OpenTelemetry metrics with a Prometheus exporter bridge so the
// standard /metrics endpoint keeps working.
//
// A package-level default [Metrics] instance ([Default]) is provided for
// convenience; tests should use [NewMetrics] with a custom
// [metric.MeterProvider] to avoid cross-test pollution.
package observe

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// meterName is the instrumentation scope name used for all engine metrics.
const meterName = "github.com/medvoice/inscribe"

// Fragment outcome attribute values recorded on [Metrics.Fragments].
const (
	OutcomeInserted = "inserted"
	OutcomeCommand  = "command"
	OutcomeSkipped  = "skipped"
	OutcomeFallback = "fallback"
	OutcomeError    = "error"
)

// Metrics holds the engine's metric instruments. All fields are safe for
// concurrent use — the underlying OTel types handle their own
// synchronisation.
type Metrics struct {
	// FragmentDuration tracks end-to-end processing latency per fragment.
	// Use with attribute.String("outcome", ...).
	FragmentDuration metric.Float64Histogram

	// Fragments counts processed fragments. Use with
	// attribute.String("outcome", ...).
	Fragments metric.Int64Counter

	// Commands counts recognized editing commands. Use with
	// attribute.String("signal", ...).
	Commands metric.Int64Counter
}

// latencyBuckets defines histogram bucket boundaries (in seconds) sized for
// synchronous in-process text edits.
var latencyBuckets = []float64{
	0.00005, 0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05,
}

// NewMetrics creates a fully initialised [Metrics] using the given
// [metric.MeterProvider]. Returns an error if any instrument creation
// fails.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	met := &Metrics{}
	var err error

	if met.FragmentDuration, err = m.Float64Histogram("inscribe.fragment.duration",
		metric.WithDescription("End-to-end processing latency per transcript fragment."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.Fragments, err = m.Int64Counter("inscribe.fragments",
		metric.WithDescription("Transcript fragments processed, by outcome."),
	); err != nil {
		return nil, err
	}
	if met.Commands, err = m.Int64Counter("inscribe.commands",
		metric.WithDescription("Spoken editing commands executed, by signal."),
	); err != nil {
		return nil, err
	}
	return met, nil
}

// RecordFragment records one processed fragment with its outcome and
// processing duration.
func (m *Metrics) RecordFragment(ctx context.Context, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("outcome", outcome))
	m.Fragments.Add(ctx, 1, attrs)
	m.FragmentDuration.Record(ctx, d.Seconds(), attrs)
}

// RecordCommand records one executed editing command.
func (m *Metrics) RecordCommand(ctx context.Context, signal string) {
	if m == nil {
		return
	}
	m.Commands.Add(ctx, 1, metric.WithAttributes(attribute.String("signal", signal)))
}

var (
	defaultOnce    sync.Once
	defaultMetrics *Metrics
)

// Default returns the process-wide [Metrics] built on the global meter
// provider. Instruments are created lazily on first use.
func Default() *Metrics {
	defaultOnce.Do(func() {
		m, err := NewMetrics(otel.GetMeterProvider())
		if err != nil {
			// Instrument creation only fails on malformed names; a nil
			// Metrics records nothing.
			m = nil
		}
		defaultMetrics = m
	})
	return defaultMetrics
}
