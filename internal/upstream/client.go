// Package upstream builds the HTTP client used for every call to the external
// credential issuance/verification API.
package upstream

//go:generate mockgen -source=client.go -destination=mocks/mock_api.go -package=mocks API

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"issuer-verifier/internal/platform/tracer"
	"issuer-verifier/pkg/platform/circuit"
)

const (
	// DefaultTimeout bounds every outbound request.
	DefaultTimeout = 10 * time.Second

	HeaderClientSecret = "x-client-secret"
	apiPrefix          = "/api/v1/"
)

// Config is the explicit configuration a Client is bound to.
type Config struct {
	BaseURL      string
	ClientSecret string
	Timeout      time.Duration
}

// API is the surface services use to reach the upstream credential API.
// Success bodies are decoded directly into out; failures are *Error.
type API interface {
	Get(ctx context.Context, path string, out any, opts ...RequestOption) error
	Post(ctx context.Context, path string, body, out any, opts ...RequestOption) error
	Delete(ctx context.Context, path string, opts ...RequestOption) error
}

// Metrics records outbound call outcomes.
type Metrics interface {
	ObserveUpstreamCall(method, resource string, status int, elapsed time.Duration)
}

// Client is safe for concurrent use; nothing in it changes after New returns.
type Client struct {
	baseURL      string
	clientSecret string
	httpClient   *http.Client
	logger       *slog.Logger
	metrics      Metrics
	tracer       tracer.Tracer
	breaker      *circuit.Breaker
}

var _ API = (*Client)(nil)

type Option func(*Client)

// WithHTTPClient replaces the default instrumented client (tests, custom TLS).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

func WithMetrics(m Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

func WithTracer(t tracer.Tracer) Option {
	return func(c *Client) {
		c.tracer = t
	}
}

// WithBreaker lets the client feed call outcomes into b. The breaker is only
// observed (readiness probe); calls are never short-circuited.
func WithBreaker(b *circuit.Breaker) Option {
	return func(c *Client) {
		c.breaker = b
	}
}

// New builds a client bound to cfg.BaseURL.
func New(cfg Config, opts ...Option) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	c := &Client{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		clientSecret: cfg.ClientSecret,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		logger: slog.New(slog.DiscardHandler),
		tracer: tracer.NewNoop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RequestOption adjusts a single outbound request.
type RequestOption func(*http.Request)

func WithHeader(key, value string) RequestOption {
	return func(r *http.Request) {
		r.Header.Set(key, value)
	}
}

// WithBearer sets "Authorization: Bearer <token>".
func WithBearer(token string) RequestOption {
	return WithHeader("Authorization", "Bearer "+token)
}

func (c *Client) Get(ctx context.Context, path string, out any, opts ...RequestOption) error {
	return c.do(ctx, http.MethodGet, path, nil, out, opts)
}

func (c *Client) Post(ctx context.Context, path string, body, out any, opts ...RequestOption) error {
	return c.do(ctx, http.MethodPost, path, body, out, opts)
}

func (c *Client) Delete(ctx context.Context, path string, opts ...RequestOption) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, opts)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any, opts []RequestOption) (err error) {
	resource := resourceOf(path)
	ctx, span := c.tracer.Start(ctx, tracer.SpanUpstreamCall,
		tracer.String(tracer.AttrHTTPMethod, method),
		tracer.String(tracer.AttrUpstreamPath, path),
	)

	start := time.Now()
	status := 0
	defer func() {
		elapsed := time.Since(start)
		span.SetAttributes(
			tracer.Int(tracer.AttrHTTPStatusCode, status),
			tracer.Duration(tracer.AttrDurationMs, elapsed),
		)
		span.End(err)
		if c.metrics != nil {
			c.metrics.ObserveUpstreamCall(method, resource, status, elapsed)
		}
		c.recordOutcome(ctx, status)
		c.logger.DebugContext(ctx, "upstream call",
			"method", method,
			"path", path,
			"status", status,
			"duration_ms", elapsed.Milliseconds(),
		)
	}()

	var reader io.Reader
	if body != nil {
		payload, marshalErr := json.Marshal(body)
		if marshalErr != nil {
			return normalize(0, nil, fmt.Errorf("encode request body: %w", marshalErr))
		}
		reader = bytes.NewReader(payload)
	}

	req, reqErr := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if reqErr != nil {
		return normalize(0, nil, reqErr)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(HeaderClientSecret, c.clientSecret)
	for _, opt := range opts {
		opt(req)
	}

	resp, doErr := c.httpClient.Do(req)
	if doErr != nil {
		return normalize(0, nil, doErr)
	}
	defer resp.Body.Close()
	status = resp.StatusCode

	data, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		return normalize(0, nil, fmt.Errorf("read response body: %w", readErr))
	}

	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		return normalize(status, data, nil)
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if decodeErr := json.Unmarshal(data, out); decodeErr != nil {
		return normalize(0, nil, fmt.Errorf("decode response body: %w", decodeErr))
	}
	return nil
}

func (c *Client) recordOutcome(ctx context.Context, status int) {
	if c.breaker == nil {
		return
	}
	change := c.breaker.Record(status == 0 || status >= http.StatusInternalServerError)
	if change.Opened {
		c.logger.WarnContext(ctx, "upstream circuit opened", "breaker", c.breaker.Name())
	}
	if change.Closed {
		c.logger.InfoContext(ctx, "upstream circuit closed", "breaker", c.breaker.Name())
	}
}

// resourceOf reduces a request path to a low-cardinality metric label:
// "/api/v1/schema/abc" -> "schema", "/api/v1/connect/token" -> "connect/token".
func resourceOf(path string) string {
	trimmed := strings.TrimPrefix(path, apiPrefix)
	segments := strings.Split(strings.Trim(trimmed, "/"), "/")
	switch segments[0] {
	case "schema", "issue-credential":
		return segments[0]
	}
	return strings.Join(segments, "/")
}
