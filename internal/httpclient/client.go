// Package httpclient implements the HTTP transport for the meiligo
// client: one reusable session, bearer auth, JSON or raw bodies, and
// response classification into the meilierr taxonomy.
package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"meiligo/internal/metrics"
	"meiligo/meilierr"
)

const tracerName = "meiligo/httpclient"

// Options configure the transport.
type Options struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Client sends requests to the search service over a single shared
// session. The session is opened lazily on first use and reopened
// transparently after Close. Safe for concurrent use: per-request
// headers are set on the request, never on the shared session.
type Client struct {
	opts   Options
	logger zerolog.Logger
	tracer trace.Tracer

	mu      sync.Mutex
	session *resty.Client
}

// New creates a transport for the given service endpoint.
func New(opts Options) *Client {
	return &Client{
		opts:   opts,
		logger: log.Logger,
		tracer: otel.Tracer(tracerName),
	}
}

// SetLogger replaces the default global logger.
func (c *Client) SetLogger(logger zerolog.Logger) {
	c.logger = logger
}

// Response carries the parts of a reply that matter when the body is
// empty or the caller only needs status and headers.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

func (c *Client) ensureSession() *resty.Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		session := resty.New().
			SetBaseURL(strings.TrimRight(c.opts.BaseURL, "/")).
			SetTimeout(c.opts.Timeout).
			SetHeader("User-Agent", "meiligo")
		if c.opts.APIKey != "" {
			session.SetAuthToken(c.opts.APIKey)
		}
		c.session = session
	}
	return c.session
}

// Close releases the shared session. The client stays usable: the next
// request opens a fresh session.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session != nil {
		c.session.GetClient().CloseIdleConnections()
		c.session = nil
	}
}

// Do sends one request. Structured bodies are serialized as JSON; a
// []byte body passes through unmodified with the caller's content type.
// On 2xx a non-empty body is decoded into out (when out is non-nil) and
// the raw response is returned either way.
func (c *Client) Do(ctx context.Context, method, path string, body any, contentType string, out any) (*Response, error) {
	switch method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
	default:
		return nil, fmt.Errorf("unsupported method %q", method)
	}

	ctx, span := c.tracer.Start(ctx, method+" "+trimQuery(path),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", method),
			attribute.String("http.path", path),
		))
	defer span.End()

	req := c.ensureSession().R().SetContext(ctx)
	switch payload := body.(type) {
	case nil:
	case []byte:
		if contentType != "" {
			req.SetHeader("Content-Type", contentType)
		}
		req.SetBody(payload)
	default:
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		if contentType == "" {
			contentType = "application/json"
		}
		req.SetHeader("Content-Type", contentType)
		req.SetBody(data)
	}

	start := time.Now()
	resp, err := req.Execute(method, path)
	elapsed := time.Since(start)
	if err != nil {
		mapped := classify(err)
		span.RecordError(mapped)
		span.SetStatus(codes.Error, mapped.Error())
		metrics.RecordRequest(method, "error", elapsed)
		c.logger.Debug().
			Err(mapped).
			Str("method", method).
			Str("path", path).
			Dur("elapsed", elapsed).
			Msg("request failed")
		return nil, mapped
	}

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode()))
	metrics.RecordRequest(method, strconv.Itoa(resp.StatusCode()), elapsed)
	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode()).
		Dur("elapsed", elapsed).
		Msg("request complete")

	if resp.IsError() {
		apiErr := meilierr.FromResponse(resp.StatusCode(), resp.Body(), resp.Status())
		span.SetStatus(codes.Error, apiErr.Error())
		return nil, apiErr
	}

	raw := resp.Body()
	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return nil, fmt.Errorf("decode response body: %w", err)
		}
	}
	return &Response{StatusCode: resp.StatusCode(), Header: resp.Header(), Body: raw}, nil
}

// Get sends a GET request and decodes the reply into out.
func (c *Client) Get(ctx context.Context, path string, out any) (*Response, error) {
	return c.Do(ctx, http.MethodGet, path, nil, "", out)
}

// Post sends a JSON POST request and decodes the reply into out.
func (c *Client) Post(ctx context.Context, path string, body, out any) (*Response, error) {
	return c.Do(ctx, http.MethodPost, path, body, "application/json", out)
}

// Put sends a JSON PUT request and decodes the reply into out.
func (c *Client) Put(ctx context.Context, path string, body, out any) (*Response, error) {
	return c.Do(ctx, http.MethodPut, path, body, "application/json", out)
}

// Patch sends a JSON PATCH request and decodes the reply into out.
func (c *Client) Patch(ctx context.Context, path string, body, out any) (*Response, error) {
	return c.Do(ctx, http.MethodPatch, path, body, "application/json", out)
}

// Delete sends a DELETE request and decodes the reply into out.
func (c *Client) Delete(ctx context.Context, path string, body, out any) (*Response, error) {
	return c.Do(ctx, http.MethodDelete, path, body, "", out)
}

// classify maps transport-level failures onto the error taxonomy.
// Caller cancellation passes through untouched so it is not misreported
// as a service failure.
func classify(err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &meilierr.TimeoutError{Message: err.Error()}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &meilierr.TimeoutError{Message: err.Error()}
	}
	return &meilierr.CommunicationError{Message: err.Error()}
}

func trimQuery(path string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		return path[:i]
	}
	return path
}
