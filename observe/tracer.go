package observe

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// MonitorMeta identifies a health monitor for telemetry purposes.
type MonitorMeta struct {
	ID              string // Monitor id "<component>:<measurement>" (optional if names are set)
	ComponentName   string
	MeasurementName string
}

// ParseMonitorID splits a monitor id at its first colon.
func ParseMonitorID(id string) MonitorMeta {
	component, measurement, _ := strings.Cut(id, ":")
	return MonitorMeta{
		ID:              id,
		ComponentName:   component,
		MeasurementName: measurement,
	}
}

// MonitorID returns the monitor id, building it from the names when ID is
// empty.
func (m MonitorMeta) MonitorID() string {
	if m.ID != "" {
		return m.ID
	}
	return m.ComponentName + ":" + m.MeasurementName
}

// SpanName returns the deterministic span name for one collection.
// Format: health.collect.<component>.<measurement>
func (m MonitorMeta) SpanName() string {
	if m.ComponentName == "" && m.MeasurementName == "" {
		return "health.collect"
	}
	return "health.collect." + m.ComponentName + "." + m.MeasurementName
}

func (m MonitorMeta) attributes() []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("monitor.id", m.MonitorID()),
		attribute.String("monitor.component", m.ComponentName),
		attribute.String("monitor.measurement", m.MeasurementName),
	}
}

// Tracer wraps OpenTelemetry tracing with collection span management.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: EndSpan must be best-effort and must not panic.
type Tracer interface {
	// StartSpan starts a new span for one collection.
	StartSpan(ctx context.Context, meta MonitorMeta) (context.Context, trace.Span)

	// EndSpan ends the span, recording any error.
	EndSpan(span trace.Span, err error)
}

type tracerImpl struct {
	tracer trace.Tracer
}

// NewTracer creates a Tracer wrapping the given OpenTelemetry tracer.
func NewTracer(t trace.Tracer) Tracer {
	return &tracerImpl{tracer: t}
}

// StartSpan starts an internal span carrying the monitor identity.
func (t *tracerImpl) StartSpan(ctx context.Context, meta MonitorMeta) (context.Context, trace.Span) {
	attrs := append(meta.attributes(), attribute.Bool("monitor.error", false))

	return t.tracer.Start(ctx, meta.SpanName(),
		trace.WithAttributes(attrs...),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// EndSpan ends the span and records the error status if present.
func (t *tracerImpl) EndSpan(span trace.Span, err error) {
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.Bool("monitor.error", true))
		span.RecordError(err)
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

type noopTracer struct {
	noop trace.Tracer
}

func newNoopTracer() Tracer {
	return &noopTracer{
		noop: tracenoop.NewTracerProvider().Tracer("noop"),
	}
}

func (t *noopTracer) StartSpan(ctx context.Context, meta MonitorMeta) (context.Context, trace.Span) {
	return t.noop.Start(ctx, meta.SpanName())
}

func (t *noopTracer) EndSpan(span trace.Span, err error) {
	span.End()
}
