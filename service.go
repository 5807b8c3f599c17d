package oauth

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	"github.com/giantswarm/oauth-core/consumer"
	"github.com/giantswarm/oauth-core/httpclient"
	"github.com/giantswarm/oauth-core/instrumentation"
	"github.com/giantswarm/oauth-core/internal/util"
	"github.com/giantswarm/oauth-core/security"
	"github.com/giantswarm/oauth-core/storage"
	"github.com/giantswarm/oauth-core/uri"
)

// URI resolution kinds reported in metrics
const (
	uriKindURI      = "uri"
	uriKindAbsolute = "absolute"
	uriKindRelative = "relative"
)

// Service is the contract every OAuth service exposes, independent of protocol version
type Service interface {
	// Service returns the stable identity of the service, used as its storage key
	Service() string

	// Storage returns the token storage adapter
	Storage() storage.TokenStorage

	// DetermineRequestURI resolves path against baseAPIURI.
	// Absolute http(s) URLs ignore baseAPIURI, which may be nil.
	DetermineRequestURI(path string, baseAPIURI *uri.URI) (uri.URI, error)

	// RandomString returns n characters from the URL-safe base64 alphabet
	RandomString(n int) (string, error)

	// RandomBytes returns n random bytes
	RandomBytes(n int) ([]byte, error)
}

// Base implements Service and carries the collaborators concrete services need.
// It is immutable after New and safe for concurrent use.
type Base struct {
	name        string
	credentials consumer.Credentials
	httpClient  httpclient.Client
	storage     storage.TokenStorage
	baseAPIURI  *uri.URI

	random *security.RandomSource

	logger          *slog.Logger
	instrumentation *instrumentation.Instrumentation
	tracer          trace.Tracer
}

// Compile-time interface check
var _ Service = (*Base)(nil)

// New creates a Base. name is the qualified name of the concrete service; its last
// segment becomes the service identity (e.g. "vendor.oauth.providers.GitHub" → "GitHub")
// unless config.ServiceName is set. httpClient and tokenStorage are required.
// credentials are held as given and never inspected; consumer.Load and concrete
// services validate them.
func New(
	name string,
	credentials consumer.Credentials,
	httpClient httpclient.Client,
	tokenStorage storage.TokenStorage,
	config *Config,
) (*Base, error) {
	if httpClient == nil {
		return nil, ErrHTTPClientRequired
	}
	if tokenStorage == nil {
		return nil, ErrStorageRequired
	}
	if config == nil {
		config = &Config{}
	}

	serviceName := config.ServiceName
	if serviceName == "" {
		serviceName = util.SimpleName(name)
	}
	if serviceName == "" {
		return nil, ErrServiceNameRequired
	}

	var baseAPIURI *uri.URI
	if config.BaseAPIURI != "" {
		u, err := uri.Parse(config.BaseAPIURI)
		if err != nil {
			return nil, fmt.Errorf("invalid base API URI: %w", err)
		}
		baseAPIURI = &u
	}

	random, err := security.NewRandomSource(config.Random)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize random source: %w", err)
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("service", serviceName)

	inst := config.Instrumentation
	if inst == nil {
		inst = instrumentation.Noop()
	}
	tracer := inst.Tracer("oauth")

	if config.TraceHTTPClient && config.Instrumentation != nil {
		httpClient = httpclient.WithTracing(httpClient, inst.Tracer("httpclient"))
	}

	b := &Base{
		name:            serviceName,
		credentials:     credentials,
		httpClient:      httpClient,
		storage:         tokenStorage,
		baseAPIURI:      baseAPIURI,
		random:          random,
		logger:          logger,
		instrumentation: inst,
		tracer:          tracer,
	}

	if random.Mode() == security.ModeDegraded {
		logger.Warn("Using degraded random source, generated values are not suitable for security-sensitive nonces")
		config.Auditor.LogDegradedRandom(serviceName)
	}
	logger.Debug("Created OAuth service",
		"random_mode", random.Mode().String(),
		"base_api_uri", config.BaseAPIURI)

	inst.Metrics().RecordServiceCreated(context.Background(), serviceName, random.Mode().String())

	return b, nil
}

// Service returns the service identity
func (b *Base) Service() string {
	return b.name
}

// Credentials returns the consumer credentials
func (b *Base) Credentials() consumer.Credentials {
	return b.credentials
}

// HTTPClient returns the HTTP client requests should be sent through
func (b *Base) HTTPClient() httpclient.Client {
	return b.httpClient
}

// Storage returns the token storage adapter
func (b *Base) Storage() storage.TokenStorage {
	return b.storage
}

// BaseAPIURI returns a copy of the configured base API URI, or nil if none is configured
func (b *Base) BaseAPIURI() *uri.URI {
	if b.baseAPIURI == nil {
		return nil
	}
	u := b.baseAPIURI.Clone()
	return &u
}

// RandomMode reports whether random values come from a secure or degraded source
func (b *Base) RandomMode() security.RandomMode {
	return b.random.Mode()
}

// Logger returns the service logger, annotated with the service identity
func (b *Base) Logger() *slog.Logger {
	return b.logger
}

// Tracer returns the tracer concrete services should start their spans from
func (b *Base) Tracer() trace.Tracer {
	return b.tracer
}

// StartSpan starts a span for a provider operation such as "exchange" or "refresh".
// The caller must end the returned span.
func (b *Base) StartSpan(ctx context.Context, operation string) (context.Context, trace.Span) {
	ctx, span := b.tracer.Start(ctx, "oauth."+operation)
	instrumentation.AddProviderAttributes(span, b.name, operation)
	return ctx, span
}

// DetermineRequestURI resolves path against baseAPIURI. See uri.Resolve for the rules.
// baseAPIURI is never modified.
func (b *Base) DetermineRequestURI(path string, baseAPIURI *uri.URI) (uri.URI, error) {
	kind := uriKindRelative
	if uri.IsAbsolute(path) {
		kind = uriKindAbsolute
	}

	resolved, err := uri.Resolve(path, baseAPIURI)
	b.recordResolution(kind, err)
	if err != nil {
		return uri.URI{}, err
	}
	return resolved, nil
}

// DetermineRequestURIFromURI returns u unchanged. It exists so callers holding either
// a path or a URI can go through the same resolution step.
func (b *Base) DetermineRequestURIFromURI(u uri.URI) uri.URI {
	resolved, err := uri.Resolve(u, nil)
	b.recordResolution(uriKindURI, err)
	return resolved
}

// RequestURI resolves ref against the configured base API URI
func (b *Base) RequestURI(ref string) (uri.URI, error) {
	return b.DetermineRequestURI(ref, b.baseAPIURI)
}

// RandomString returns n characters from [A-Za-z0-9_-]. n <= 0 yields "".
func (b *Base) RandomString(n int) (string, error) {
	s, err := b.random.String(n)
	if err != nil {
		return "", fmt.Errorf("failed to generate random string: %w", err)
	}
	b.recordRandom(security.StringByteLen(n))
	return s, nil
}

// RandomBytes returns n random bytes. n <= 0 yields an empty slice.
func (b *Base) RandomBytes(n int) ([]byte, error) {
	buf, err := b.random.Bytes(n)
	if err != nil {
		return nil, fmt.Errorf("failed to generate random bytes: %w", err)
	}
	b.recordRandom(len(buf))
	return buf, nil
}

func (b *Base) recordResolution(kind string, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	b.instrumentation.Metrics().RecordURIResolution(context.Background(), b.name, kind, result)
}

func (b *Base) recordRandom(n int) {
	b.instrumentation.Metrics().RecordRandomBytes(context.Background(), b.name, b.random.Mode().String(), n)
}
