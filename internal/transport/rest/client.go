package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"esplan/internal/platform/metrics"
	"esplan/internal/session"
	dErrors "esplan/pkg/domain-errors"
)

const (
	apiPrefix      = "/api"
	defaultTimeout = 10 * time.Second
)

// Client issues authorized requests against the remote API. It normalizes
// relative paths to absolute URLs, attaches the bearer token when a session
// is present, and clears the session store on a 401 without deciding any
// navigation - that call is left to the surface that triggered the request.
type Client struct {
	baseURL string
	http    *http.Client
	store   session.Store
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  *Tracer
}

// Option configures the Client.
type Option func(*Client)

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

func WithTracer(t *Tracer) Option {
	return func(c *Client) { c.tracer = t }
}

// WithTimeout bounds every request. Expiry is treated as a normal network
// error and never retried automatically.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithHTTPClient swaps the underlying http.Client, for tests.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// New constructs a client for the API at baseURL using store for session
// state. An empty baseURL routes requests through a same-origin reverse
// proxy path, which for this client means the caller must supply absolute
// paths already carrying a host.
func New(baseURL string, store session.Store, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		store:   store,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if c.tracer == nil {
		c.tracer = NewTracer()
	}
	return c
}

// URL resolves a relative path to the absolute API URL, prefixing the fixed
// /api segment without double-prefixing when the caller already included it.
func (c *Client) URL(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if path != apiPrefix && !strings.HasPrefix(path, apiPrefix+"/") {
		path = apiPrefix + path
	}
	return c.baseURL + path
}

// Get issues an authorized GET and decodes the envelope's data into out.
func (c *Client) Get(ctx context.Context, op, path string, out any) error {
	return c.Do(ctx, op, http.MethodGet, path, nil, out)
}

// Post issues an authorized POST with a JSON body.
func (c *Client) Post(ctx context.Context, op, path string, body, out any) error {
	return c.Do(ctx, op, http.MethodPost, path, body, out)
}

// Put issues an authorized PUT with a JSON body.
func (c *Client) Put(ctx context.Context, op, path string, body, out any) error {
	return c.Do(ctx, op, http.MethodPut, path, body, out)
}

// Delete issues an authorized DELETE.
func (c *Client) Delete(ctx context.Context, op, path string) error {
	return c.Do(ctx, op, http.MethodDelete, path, nil, nil)
}

// Do performs one request. Transport failures and success:false envelopes
// are both normalized to domain errors carrying a single user-facing
// message; out (when non-nil) receives the envelope's data on success.
func (c *Client) Do(ctx context.Context, op, method, path string, body, out any) error {
	ctx, span := c.tracer.Start(ctx, op, method, path)
	start := time.Now()
	err := c.do(ctx, method, path, body, out, span)
	c.observe(op, start, err)
	span.End(err)
	return err
}

func (c *Client) do(ctx context.Context, method, path string, body, out any, span *Span) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInvalidInput, "could not encode request body")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.URL(path), reader)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInvalidInput, "could not build request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())
	if sess := c.store.Read(); sess != nil {
		req.Header.Set("Authorization", "Bearer "+sess.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeNetwork, "")
	}
	defer resp.Body.Close()
	span.SetStatus(resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeNetwork, "")
	}

	var env Envelope
	// A non-envelope body (proxy error pages and the like) falls through to
	// the status-code mapping with no server message.
	_ = json.Unmarshal(raw, &env)

	if resp.StatusCode == http.StatusUnauthorized {
		c.clearSession(req.URL.Path)
		return dErrors.New(dErrors.CodeUnauthorized, env.Message)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return dErrors.New(codeForStatus(resp.StatusCode), env.Message)
	}
	if !env.Success {
		return dErrors.New(dErrors.CodeValidation, env.Message)
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "could not decode response")
		}
	}
	return nil
}

// clearSession drops the local session after an unauthorized response.
// In-flight requests issued under the old token are not aborted; each one
// fails through this same path individually.
func (c *Client) clearSession(path string) {
	c.store.Clear()
	if c.metrics != nil {
		c.metrics.AuthFailures.Inc()
		c.metrics.SessionsClear.Inc()
	}
	c.logger.Warn("session invalidated by unauthorized response", "path", path)
}

func (c *Client) observe(op string, start time.Time, err error) {
	if c.metrics == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	c.metrics.APIRequests.WithLabelValues(op, outcome).Inc()
	c.metrics.RequestLatency.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

func codeForStatus(status int) dErrors.Code {
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return dErrors.CodeValidation
	case http.StatusForbidden:
		return dErrors.CodeForbidden
	case http.StatusNotFound:
		return dErrors.CodeNotFound
	case http.StatusConflict:
		return dErrors.CodeConflict
	case http.StatusRequestTimeout, http.StatusGatewayTimeout:
		return dErrors.CodeTimeout
	default:
		return dErrors.CodeInternal
	}
}

// ErrMessage reduces any error from this client to one user-facing string,
// preferring the server-supplied message.
func ErrMessage(err error, fallback string) string {
	return dErrors.Message(err, fallback)
}
