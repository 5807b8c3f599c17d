package oauth

import (
	"log/slog"

	"github.com/giantswarm/oauth-core/instrumentation"
	"github.com/giantswarm/oauth-core/security"
)

// Config holds optional settings for a Base. The zero value is valid.
type Config struct {
	// ServiceName overrides the identity derived from the name passed to New.
	// It is used verbatim as the storage key and in logs, spans and metrics.
	ServiceName string

	// BaseAPIURI is the provider's API root, e.g. "https://api.github.com/".
	// Relative request paths resolve against it. Empty means only absolute
	// URLs can be resolved through RequestURI.
	BaseAPIURI string

	// Logger for structured logging (optional, uses slog.Default() if not provided)
	Logger *slog.Logger

	// Random configures the random source. By default crypto/rand is required and
	// New fails when it is unavailable.
	// WARNING: Random.AllowDegraded falls back to a non-cryptographic generator.
	Random security.RandomConfig

	// Auditor receives security audit events, such as a fallback to degraded
	// randomness (optional, nil disables auditing)
	Auditor *security.Auditor

	// Instrumentation for metrics and traces (optional, no-op if not provided)
	Instrumentation *instrumentation.Instrumentation

	// TraceHTTPClient wraps the HTTP client so each request is recorded as a span.
	// Has no effect without Instrumentation.
	TraceHTTPClient bool
}
