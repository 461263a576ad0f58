// Package tracer is a small tracing seam for outbound calls to the upstream
// credential API. Callers depend on the Tracer interface; the OpenTelemetry
// adapter lives in otel.go and a no-op implementation in noop.go.
package tracer

import (
	"context"
	"time"
)

// Span is an active trace span. End must be called exactly once.
type Span interface {
	End(err error)
	SetAttributes(attrs ...Attribute)
}

// Tracer creates spans. Implementations must be safe for concurrent use.
type Tracer interface {
	Start(ctx context.Context, name string, attrs ...Attribute) (context.Context, Span)
}

// Attribute is a key-value pair attached to a span.
type Attribute struct {
	Key   string
	Value any
}

func String(key, value string) Attribute {
	return Attribute{Key: key, Value: value}
}

func Int(key string, value int) Attribute {
	return Attribute{Key: key, Value: value}
}

// Duration records value in milliseconds.
func Duration(key string, value time.Duration) Attribute {
	return Attribute{Key: key, Value: value.Milliseconds()}
}

const (
	SpanUpstreamCall = "upstream.call"
)

const (
	AttrHTTPMethod     = "http.method"
	AttrUpstreamPath   = "upstream.path"
	AttrHTTPStatusCode = "http.status_code"
	AttrDurationMs     = "upstream.duration_ms"
)
