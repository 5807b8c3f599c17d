package instrumentation

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric names
const (
	MetricServicesCreated          = "oauth.services.created"
	MetricURIResolutions           = "oauth.uri.resolutions"
	MetricRandomBytes              = "oauth.random.bytes"
	MetricStorageOperationTotal    = "oauth.storage.operations.total"
	MetricStorageOperationDuration = "oauth.storage.operation.duration"
	MetricStorageTokensCount       = "oauth.storage.tokens.count"
	MetricStorageStatesCount       = "oauth.storage.states.count"
)

// Metrics holds all metric instruments for the library
type Metrics struct {
	// Service metrics
	ServicesCreated metric.Int64Counter
	URIResolutions  metric.Int64Counter
	RandomBytes     metric.Int64Counter

	// Storage metrics
	StorageOperationTotal    metric.Int64Counter
	StorageOperationDuration metric.Float64Histogram
	StorageTokensCount       metric.Int64ObservableGauge
	StorageStatesCount       metric.Int64ObservableGauge
}

// newMetrics creates and registers all metric instruments
func newMetrics(inst *Instrumentation) (*Metrics, error) {
	m := &Metrics{}
	serviceMeter := inst.Meter("service")
	storageMeter := inst.Meter("storage")

	var err error
	m.ServicesCreated, err = serviceMeter.Int64Counter(
		MetricServicesCreated,
		metric.WithDescription("Number of OAuth services constructed"),
		metric.WithUnit("{service}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s counter: %w", MetricServicesCreated, err)
	}

	m.URIResolutions, err = serviceMeter.Int64Counter(
		MetricURIResolutions,
		metric.WithDescription("Number of request URI resolutions"),
		metric.WithUnit("{resolution}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s counter: %w", MetricURIResolutions, err)
	}

	m.RandomBytes, err = serviceMeter.Int64Counter(
		MetricRandomBytes,
		metric.WithDescription("Random bytes generated for protocol parameters"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s counter: %w", MetricRandomBytes, err)
	}

	m.StorageOperationTotal, err = storageMeter.Int64Counter(
		MetricStorageOperationTotal,
		metric.WithDescription("Total number of token storage operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s counter: %w", MetricStorageOperationTotal, err)
	}

	m.StorageOperationDuration, err = storageMeter.Float64Histogram(
		MetricStorageOperationDuration,
		metric.WithDescription("Token storage operation duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s histogram: %w", MetricStorageOperationDuration, err)
	}

	m.StorageTokensCount, err = storageMeter.Int64ObservableGauge(
		MetricStorageTokensCount,
		metric.WithDescription("Number of stored tokens"),
		metric.WithUnit("{token}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s gauge: %w", MetricStorageTokensCount, err)
	}

	m.StorageStatesCount, err = storageMeter.Int64ObservableGauge(
		MetricStorageStatesCount,
		metric.WithDescription("Number of stored authorization states"),
		metric.WithUnit("{state}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s gauge: %w", MetricStorageStatesCount, err)
	}

	return m, nil
}

// RecordServiceCreated records the construction of a service and its random mode
func (m *Metrics) RecordServiceCreated(ctx context.Context, service, randomMode string) {
	m.ServicesCreated.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrServiceName, service),
		attribute.String(AttrRandomMode, randomMode),
	))
}

// RecordURIResolution records a request URI resolution.
// kind is one of "uri", "absolute" or "relative"; result is "success" or "error".
func (m *Metrics) RecordURIResolution(ctx context.Context, service, kind, result string) {
	m.URIResolutions.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrServiceName, service),
		attribute.String(AttrURIKind, kind),
		attribute.String(AttrResult, result),
	))
}

// RecordRandomBytes records n random bytes drawn in the given mode
func (m *Metrics) RecordRandomBytes(ctx context.Context, service, mode string, n int) {
	if n <= 0 {
		return
	}
	m.RandomBytes.Add(ctx, int64(n), metric.WithAttributes(
		attribute.String(AttrServiceName, service),
		attribute.String(AttrRandomMode, mode),
	))
}

// RecordStorageOperation records a storage operation
func (m *Metrics) RecordStorageOperation(ctx context.Context, operation, result string, durationMs float64) {
	m.StorageOperationTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrStorageOperation, operation),
		attribute.String(AttrResult, result),
	))
	m.StorageOperationDuration.Record(ctx, durationMs, metric.WithAttributes(
		attribute.String(AttrStorageOperation, operation),
	))
}
