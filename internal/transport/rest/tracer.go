package rest

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Tracer wraps OpenTelemetry's tracer behind a narrow surface so the client
// does not depend on its APIs throughout the codebase.
type Tracer struct {
	tracer trace.Tracer
}

// TracerOption configures the Tracer.
type TracerOption func(*Tracer)

// WithOTelTracer allows injecting a custom OpenTelemetry tracer.
// Useful for testing or when a pre-configured tracer is available.
func WithOTelTracer(t trace.Tracer) TracerOption {
	return func(tr *Tracer) {
		tr.tracer = t
	}
}

// NewTracer creates a tracer backed by the global provider with
// "esplan/rest" as the instrumentation name.
func NewTracer(opts ...TracerOption) *Tracer {
	t := &Tracer{}
	for _, opt := range opts {
		opt(t)
	}
	if t.tracer == nil {
		t.tracer = otel.Tracer("esplan/rest")
	}
	return t
}

// Start creates a span for one outgoing API request.
func (t *Tracer) Start(ctx context.Context, op, method, path string) (context.Context, *Span) {
	ctx, span := t.tracer.Start(ctx, "api."+op, trace.WithAttributes(
		attribute.String("http.method", method),
		attribute.String("http.path", path),
	))
	return ctx, &Span{span: span}
}

// Span wraps an OpenTelemetry span.
type Span struct {
	span trace.Span
}

// SetStatus records the HTTP status returned by the server.
func (s *Span) SetStatus(status int) {
	s.span.SetAttributes(attribute.Int("http.status_code", status))
}

// End completes the span, recording any error.
func (s *Span) End(err error) {
	if err != nil {
		s.span.RecordError(err)
		s.span.SetStatus(codes.Error, err.Error())
	}
	s.span.End()
}
