package instrumentation_test

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/giantswarm/oauth-core/instrumentation"
	"github.com/giantswarm/oauth-core/internal/testutil"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name   string
		config instrumentation.Config
	}{
		{name: "disabled", config: instrumentation.Config{Enabled: false}},
		{name: "enabled with global providers", config: instrumentation.Config{Enabled: true}},
		{
			name: "with service name and version",
			config: instrumentation.Config{
				Enabled:        true,
				ServiceName:    "test-service",
				ServiceVersion: "1.0.0",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inst, err := instrumentation.New(tt.config)
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			defer func() { _ = inst.Shutdown(context.Background()) }()

			if inst.Metrics() == nil {
				t.Error("Metrics() returned nil")
			}
			if inst.Meter("service") == nil || inst.Tracer("service") == nil {
				t.Error("Meter()/Tracer() returned nil")
			}
			if inst.Resource() == nil {
				t.Error("Resource() returned nil")
			}
		})
	}
}

func TestNew_DefaultResource(t *testing.T) {
	inst, err := instrumentation.New(instrumentation.Config{ServiceName: "billing-sync"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	v, ok := inst.Resource().Set().Value("service.name")
	if !ok || v.AsString() != "billing-sync" {
		t.Errorf("service.name = %v, want billing-sync", v.AsString())
	}
}

func TestNoop(t *testing.T) {
	inst := instrumentation.Noop()

	// Recording on no-op instruments must not panic
	ctx := context.Background()
	inst.Metrics().RecordServiceCreated(ctx, "github", "secure")
	inst.Metrics().RecordURIResolution(ctx, "github", "relative", "success")
	inst.Metrics().RecordRandomBytes(ctx, "github", "secure", 32)
	inst.Metrics().RecordStorageOperation(ctx, "store_access_token", "success", 1.5)

	if err := inst.Shutdown(ctx); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
}

func TestShutdown_Idempotent(t *testing.T) {
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(sdkmetric.NewManualReader()))
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(tracetest.NewSpanRecorder()))

	inst, err := instrumentation.New(instrumentation.Config{
		Enabled:        true,
		MeterProvider:  mp,
		TracerProvider: tp,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx := context.Background()
	if err := inst.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}
	// Second call is a no-op even though the SDK would now report "already shutdown"
	if err := inst.Shutdown(ctx); err != nil {
		t.Errorf("second Shutdown() error = %v", err)
	}
}

func TestMetrics_Record(t *testing.T) {
	tm := testutil.NewTelemetry(t)
	ctx := context.Background()
	m := tm.Inst.Metrics()

	m.RecordServiceCreated(ctx, "github", "secure")
	m.RecordServiceCreated(ctx, "legacy", "degraded")
	m.RecordURIResolution(ctx, "github", "relative", "success")
	m.RecordURIResolution(ctx, "github", "relative", "error")
	m.RecordURIResolution(ctx, "github", "absolute", "success")
	m.RecordRandomBytes(ctx, "github", "secure", 24)
	m.RecordRandomBytes(ctx, "github", "secure", 8)
	m.RecordRandomBytes(ctx, "github", "secure", 0)
	m.RecordStorageOperation(ctx, "store_access_token", "success", 0.2)

	tests := []struct {
		name  string
		match []attribute.KeyValue
		want  int64
	}{
		{name: instrumentation.MetricServicesCreated, want: 2},
		{
			name:  instrumentation.MetricServicesCreated,
			match: []attribute.KeyValue{attribute.String(instrumentation.AttrRandomMode, "degraded")},
			want:  1,
		},
		{name: instrumentation.MetricURIResolutions, want: 3},
		{
			name: instrumentation.MetricURIResolutions,
			match: []attribute.KeyValue{
				attribute.String(instrumentation.AttrURIKind, "relative"),
				attribute.String(instrumentation.AttrResult, "error"),
			},
			want: 1,
		},
		{name: instrumentation.MetricRandomBytes, want: 32},
		{name: instrumentation.MetricStorageOperationTotal, want: 1},
	}

	for _, tt := range tests {
		if got := tm.Int64Value(t, tt.name, tt.match...); got != tt.want {
			t.Errorf("%s%v = %d, want %d", tt.name, tt.match, got, tt.want)
		}
	}
}

func TestRegisterStorageSizeCallbacks(t *testing.T) {
	tm := testutil.NewTelemetry(t)

	if err := tm.Inst.RegisterStorageSizeCallbacks(
		func() int64 { return 3 },
		func() int64 { return 1 },
	); err != nil {
		t.Fatalf("RegisterStorageSizeCallbacks() error = %v", err)
	}

	if got := tm.Int64Value(t, instrumentation.MetricStorageTokensCount); got != 3 {
		t.Errorf("tokens gauge = %d, want 3", got)
	}
	if got := tm.Int64Value(t, instrumentation.MetricStorageStatesCount); got != 1 {
		t.Errorf("states gauge = %d, want 1", got)
	}
}
