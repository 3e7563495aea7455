package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/jonwraymond/svchealth/health"
)

// Diagnostics routes health events to a tracer, metrics and a logger.
// It implements health.Diagnostics.
type Diagnostics struct {
	tracer  Tracer
	metrics Metrics
	logger  Logger
}

// NewDiagnosticsWith creates Diagnostics from explicit components. Nil
// components are replaced with no-ops.
func NewDiagnosticsWith(tracer Tracer, metrics Metrics, logger Logger) *Diagnostics {
	if tracer == nil {
		tracer = newNoopTracer()
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}
	if logger == nil {
		logger = &noopLogger{}
	}
	return &Diagnostics{
		tracer:  tracer,
		metrics: metrics,
		logger:  logger,
	}
}

// NewDiagnostics creates Diagnostics from an Observer.
func NewDiagnostics(obs Observer) (*Diagnostics, error) {
	if obs == nil {
		return nil, ErrNilObserver
	}

	metrics, err := newMetrics(obs.Meter())
	if err != nil {
		return nil, err
	}

	return NewDiagnosticsWith(NewTracer(obs.Tracer()), metrics, obs.Logger()), nil
}

// Triggered records the update and logs status changes away from pass.
func (d *Diagnostics) Triggered(ctx context.Context, id string, component, service health.Status) {
	meta := ParseMonitorID(id)
	d.metrics.RecordTrigger(ctx, meta, component)

	fields := []Field{
		{Key: "component.status", Value: component.String()},
		{Key: "service.status", Value: service.String()},
	}
	logger := d.logger.WithMonitor(meta)
	if component == health.StatusPass {
		logger.Debug(ctx, "component updated", fields...)
	} else {
		logger.Warn(ctx, "component degraded", fields...)
	}
}

// ObserveStatus makes the service status gauge read status at collection
// time. Registry calls it when the diagnostics are installed.
func (d *Diagnostics) ObserveStatus(status func() health.Status) {
	d.metrics.ObserveStatus(status)
}

// ProbeStarted logs the start and counts the probe as running.
func (d *Diagnostics) ProbeStarted(ctx context.Context, id string, period time.Duration) {
	meta := ParseMonitorID(id)
	d.metrics.RecordProbe(ctx, meta, 1)
	d.logger.WithMonitor(meta).Info(ctx, "probe started",
		Field{Key: "period_ms", Value: period.Milliseconds()},
	)
}

// ProbeStopped logs the exit. A non-nil err is logged as an error.
func (d *Diagnostics) ProbeStopped(ctx context.Context, id string, err error) {
	meta := ParseMonitorID(id)
	d.metrics.RecordProbe(ctx, meta, -1)

	logger := d.logger.WithMonitor(meta)
	if err != nil {
		logger.Error(ctx, "probe terminated", Field{Key: "error", Value: err.Error()})
		return
	}
	logger.Info(ctx, "probe stopped")
}

// CollectStarted starts a collection span.
func (d *Diagnostics) CollectStarted(ctx context.Context, id string) context.Context {
	ctx, _ = d.tracer.StartSpan(ctx, ParseMonitorID(id))
	return ctx
}

// CollectFinished ends the collection span and records its duration.
func (d *Diagnostics) CollectFinished(ctx context.Context, id string, duration time.Duration, err error) {
	meta := ParseMonitorID(id)
	d.tracer.EndSpan(trace.SpanFromContext(ctx), err)
	d.metrics.RecordCollect(ctx, meta, duration, err)

	if err != nil {
		d.logger.WithMonitor(meta).Error(ctx, "collect failed",
			Field{Key: "duration_ms", Value: float64(duration.Milliseconds())},
			Field{Key: "error", Value: err.Error()},
		)
	}
}

var _ health.Diagnostics = (*Diagnostics)(nil)
