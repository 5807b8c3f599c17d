// Package instrumentation provides OpenTelemetry metrics and tracing for oauth-core.
//
// Instrumentation is opt-in. With Enabled=false every meter and tracer is a no-op.
// With Enabled=true the providers passed in Config are used, or the global
// providers registered with go.opentelemetry.io/otel when none are passed.
//
// # Metrics
//
//   - oauth.services.created: services constructed, by service and random mode
//   - oauth.uri.resolutions: request URI resolutions, by service, kind and result
//   - oauth.random.bytes: random bytes drawn, by service and random mode
//   - oauth.storage.operations.total / oauth.storage.operation.duration
//   - oauth.storage.tokens.count / oauth.storage.states.count (gauges)
//
// Degraded randomness shows up as oauth.random.mode="degraded", which makes it easy
// to alert on.
//
// # Tracing
//
// Storage adapters create "storage.<operation>" spans. Concrete services obtain a
// tracer through oauth.Base.Tracer() and use AddProviderAttributes and
// AddHTTPAttributes on their exchange spans.
//
// Example:
//
//	reader := sdkmetric.NewManualReader()
//	inst, err := instrumentation.New(instrumentation.Config{
//	    Enabled:       true,
//	    ServiceName:   "billing-sync",
//	    MeterProvider: sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer inst.Shutdown(context.Background())
package instrumentation
