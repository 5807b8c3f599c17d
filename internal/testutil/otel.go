package testutil

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/giantswarm/oauth-core/instrumentation"
)

// Telemetry bundles an enabled Instrumentation with in-memory readers for assertions.
type Telemetry struct {
	Inst   *instrumentation.Instrumentation
	Reader *sdkmetric.ManualReader
	Spans  *tracetest.SpanRecorder
}

// NewTelemetry creates instrumentation backed by an SDK manual reader and a span
// recorder. Providers are shut down when the test ends.
func NewTelemetry(t *testing.T) *Telemetry {
	t.Helper()

	reader := sdkmetric.NewManualReader()
	spans := tracetest.NewSpanRecorder()

	inst, err := instrumentation.New(instrumentation.Config{
		Enabled:        true,
		ServiceName:    "oauth-core-test",
		MeterProvider:  sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)),
		TracerProvider: sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spans)),
	})
	if err != nil {
		t.Fatalf("instrumentation.New() error = %v", err)
	}
	t.Cleanup(func() { _ = inst.Shutdown(context.Background()) })

	return &Telemetry{Inst: inst, Reader: reader, Spans: spans}
}

// Collect gathers the current metric data
func (tm *Telemetry) Collect(t *testing.T) metricdata.ResourceMetrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := tm.Reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	return rm
}

// Int64Value returns the summed value of the named int64 sum or gauge over all data
// points whose attributes include every attribute in match.
func (tm *Telemetry) Int64Value(t *testing.T, name string, match ...attribute.KeyValue) int64 {
	t.Helper()

	var total int64
	rm := tm.Collect(t)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			var points []metricdata.DataPoint[int64]
			switch data := m.Data.(type) {
			case metricdata.Sum[int64]:
				points = data.DataPoints
			case metricdata.Gauge[int64]:
				points = data.DataPoints
			}
			for _, dp := range points {
				if hasAttributes(dp.Attributes, match) {
					total += dp.Value
				}
			}
		}
	}
	return total
}

// SpanNames returns the names of ended spans, in end order
func (tm *Telemetry) SpanNames() []string {
	ended := tm.Spans.Ended()
	names := make([]string, 0, len(ended))
	for _, s := range ended {
		names = append(names, s.Name())
	}
	return names
}

func hasAttributes(set attribute.Set, match []attribute.KeyValue) bool {
	for _, kv := range match {
		v, ok := set.Value(kv.Key)
		if !ok || v != kv.Value {
			return false
		}
	}
	return true
}
