package observe

import (
	"context"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/jonwraymond/svchealth/health"
)

// Metric names.
const (
	MetricTriggerTotal    = "health.trigger.total"
	MetricCollectDuration = "health.collect.duration_ms"
	MetricCollectErrors   = "health.collect.errors"
	MetricProbesActive    = "health.probes.active"
	MetricServiceStatus   = "health.service.status"
)

// Metrics records monitor metrics.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: must honor cancellation/deadlines and return quickly.
// - Errors: implementations must not panic.
type Metrics interface {
	// RecordTrigger records one applied update.
	RecordTrigger(ctx context.Context, meta MonitorMeta, component health.Status)

	// RecordCollect records one probe collection.
	RecordCollect(ctx context.Context, meta MonitorMeta, duration time.Duration, err error)

	// RecordProbe adjusts the number of running probes by delta.
	RecordProbe(ctx context.Context, meta MonitorMeta, delta int64)

	// ObserveStatus sets the source read by the service status gauge.
	ObserveStatus(status func() health.Status)
}

type metricsImpl struct {
	triggerCount metric.Int64Counter
	durationHist metric.Float64Histogram
	errorCount   metric.Int64Counter
	probesActive metric.Int64UpDownCounter

	status atomic.Pointer[func() health.Status]
}

// NewMetrics creates a Metrics instance with the given meter. The service
// status gauge reads the function given to ObserveStatus at collection time
// and reports its severity: 0 pass, 1 warn, 2 fail. Nothing is observed
// until a source is set.
func NewMetrics(meter metric.Meter) (Metrics, error) {
	return newMetrics(meter)
}

func newMetrics(meter metric.Meter) (*metricsImpl, error) {
	m := &metricsImpl{}

	var err error
	m.triggerCount, err = meter.Int64Counter(
		MetricTriggerTotal,
		metric.WithDescription("Total number of monitor updates"),
		metric.WithUnit("{update}"),
	)
	if err != nil {
		return nil, err
	}

	m.durationHist, err = meter.Float64Histogram(
		MetricCollectDuration,
		metric.WithDescription("Probe collection duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	m.errorCount, err = meter.Int64Counter(
		MetricCollectErrors,
		metric.WithDescription("Total number of failed probe collections"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, err
	}

	m.probesActive, err = meter.Int64UpDownCounter(
		MetricProbesActive,
		metric.WithDescription("Number of running probes"),
		metric.WithUnit("{probe}"),
	)
	if err != nil {
		return nil, err
	}

	_, err = meter.Int64ObservableGauge(
		MetricServiceStatus,
		metric.WithDescription("Service status severity: 0 pass, 1 warn, 2 fail"),
		metric.WithInt64Callback(func(_ context.Context, o metric.Int64Observer) error {
			if status := m.status.Load(); status != nil {
				o.Observe(int64((*status)().Severity()))
			}
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}

	return m, nil
}

func (m *metricsImpl) RecordTrigger(ctx context.Context, meta MonitorMeta, component health.Status) {
	m.triggerCount.Add(ctx, 1, metric.WithAttributes(
		attribute.String("monitor.id", meta.MonitorID()),
		attribute.String("component.status", component.String()),
	))
}

func (m *metricsImpl) ObserveStatus(status func() health.Status) {
	if status == nil {
		m.status.Store(nil)
		return
	}
	m.status.Store(&status)
}

func (m *metricsImpl) RecordCollect(ctx context.Context, meta MonitorMeta, duration time.Duration, err error) {
	opt := metric.WithAttributes(attribute.String("monitor.id", meta.MonitorID()))

	if err != nil {
		m.errorCount.Add(ctx, 1, opt)
	}
	m.durationHist.Record(ctx, float64(duration.Microseconds())/1000, opt)
}

func (m *metricsImpl) RecordProbe(ctx context.Context, meta MonitorMeta, delta int64) {
	m.probesActive.Add(ctx, delta, metric.WithAttributes(
		attribute.String("monitor.id", meta.MonitorID()),
	))
}

type noopMetrics struct{}

func (noopMetrics) RecordTrigger(context.Context, MonitorMeta, health.Status)        {}
func (noopMetrics) RecordCollect(context.Context, MonitorMeta, time.Duration, error) {}
func (noopMetrics) RecordProbe(context.Context, MonitorMeta, int64)                  {}
func (noopMetrics) ObserveStatus(func() health.Status)                               {}
