package health

import (
	"context"
	"sync"
	"time"
)

// Option configures a Registry.
type Option func(*Registry)

// WithDiagnostics sets the sink that receives trigger and probe events.
func WithDiagnostics(d Diagnostics) Option {
	return func(r *Registry) {
		if d != nil {
			r.diag = d
		}
	}
}

// WithClock overrides the clock used to stamp component warn/fail times.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) {
		if now != nil {
			r.store.now = now
		}
	}
}

// Registry owns the service record, creates monitors and tracks the probes
// it has started.
type Registry struct {
	store *store
	diag  Diagnostics

	mu     sync.Mutex
	probes []*Probe
}

// NewRegistry creates a registry for the service described by info.
func NewRegistry(info ServiceInfo, serviceID string, opts ...Option) *Registry {
	r := &Registry{
		store: &store{
			info: &DynamicServiceInfo{
				ServiceInfo: info,
				ServiceID:   serviceID,
				Detail:      make(map[string]*DynamicComponentDetails),
			},
			now: time.Now,
		},
		diag: NopDiagnostics{},
	}
	for _, opt := range opts {
		opt(r)
	}
	if o, ok := r.diag.(StatusObserver); ok {
		o.ObserveStatus(r.Status)
	}
	return r
}

// CreateMonitor registers details under its monitor id, replacing any entry
// with the same id, and returns an Aggregator for it.
//
// When collect is non-nil and period is positive a Probe is started that
// calls collect every period. Otherwise no background work is started and
// updates must come through the returned Aggregator.
func (r *Registry) CreateMonitor(details DynamicComponentDetails, collect CollectFunc, period time.Duration) *Aggregator {
	id := details.ID()
	component := &details

	r.store.mu.Lock()
	r.store.info.Detail[id] = component
	r.store.mu.Unlock()

	agg := &Aggregator{
		id:        id,
		store:     r.store,
		component: component,
		diag:      r.diag,
	}

	if collect == nil || period <= 0 {
		return agg
	}

	probe := newProbe(agg, collect, period, r.diag)
	r.mu.Lock()
	r.probes = append(r.probes, probe)
	r.mu.Unlock()

	// A fresh probe cannot already be started.
	_ = probe.Start(context.Background())
	return agg
}

// StopMonitor asks every probe started by this registry to stop. It does not
// wait for them to exit.
func (r *Registry) StopMonitor() {
	r.mu.Lock()
	probes := make([]*Probe, len(r.probes))
	copy(probes, r.probes)
	r.mu.Unlock()

	for _, p := range probes {
		p.Stop()
	}
}

// Probes returns every probe started by this registry.
func (r *Registry) Probes() []*Probe {
	r.mu.Lock()
	defer r.mu.Unlock()

	probes := make([]*Probe, len(r.probes))
	copy(probes, r.probes)
	return probes
}

// Status returns the current service status.
func (r *Registry) Status() Status {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.info.Status
}

// ServiceInfo returns a copy of the service record as of the last update.
func (r *Registry) ServiceInfo() DynamicServiceInfo {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.info.Clone()
}

// SetOutput sets the service-level output text.
func (r *Registry) SetOutput(output string) {
	r.store.mu.Lock()
	r.store.info.Output = output
	r.store.mu.Unlock()
}
