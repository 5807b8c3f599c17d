// Package httpclient defines the HTTP transport contract OAuth services send their
// requests through, plus helpers to build, trace and hand it to golang.org/x/oauth2.
//
// The core never performs network I/O itself. Concrete services hold a Client and
// decide when to call it.
package httpclient

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/trace"
	"golang.org/x/oauth2"

	"github.com/giantswarm/oauth-core/instrumentation"
)

// DefaultTimeout bounds requests made by the client returned from New
const DefaultTimeout = 30 * time.Second

// Client sends HTTP requests. *http.Client satisfies it.
// Implementations must be safe for concurrent use.
type Client interface {
	Do(req *http.Request) (*http.Response, error)
}

// Compile-time interface check
var _ Client = (*http.Client)(nil)

// New returns an *http.Client with DefaultTimeout
func New() *http.Client {
	return &http.Client{
		Timeout: DefaultTimeout,
	}
}

// StdClient returns client as an *http.Client. An *http.Client is returned as is;
// any other Client is wrapped in a transport delegating to its Do method.
func StdClient(client Client) *http.Client {
	if c, ok := client.(*http.Client); ok {
		return c
	}
	return &http.Client{Transport: roundTripperFunc(client.Do)}
}

// Context returns a copy of ctx that makes golang.org/x/oauth2 send its requests
// (token exchange, refresh) through client.
func Context(ctx context.Context, client Client) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, StdClient(client))
}

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

// tracingClient wraps a Client with one span per request
type tracingClient struct {
	next   Client
	tracer trace.Tracer
}

// WithTracing wraps client so every request is recorded as a span named after its
// method. A nil tracer returns client unchanged.
func WithTracing(client Client, tracer trace.Tracer) Client {
	if tracer == nil {
		return client
	}
	return &tracingClient{next: client, tracer: tracer}
}

// Do implements Client
func (c *tracingClient) Do(req *http.Request) (*http.Response, error) {
	ctx, span := c.tracer.Start(req.Context(), "http."+req.Method,
		trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	resp, err := c.next.Do(req.WithContext(ctx))
	if err != nil {
		instrumentation.RecordError(span, fmt.Errorf("%s %s: %w", req.Method, req.URL.Host, err))
		return nil, err
	}

	instrumentation.AddHTTPAttributes(span, req.Method, resp.StatusCode)
	if resp.StatusCode >= http.StatusInternalServerError {
		instrumentation.RecordError(span, fmt.Errorf("server responded %s", resp.Status))
	} else {
		instrumentation.SetSpanSuccess(span)
	}
	return resp, nil
}
