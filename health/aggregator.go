package health

import (
	"context"
	"sync"
	"time"
)

// DefaultOutput is the component output recorded when an update carries none.
const DefaultOutput = "no-reason"

// store guards the service record and every component entry with one lock.
type store struct {
	mu   sync.Mutex
	info *DynamicServiceInfo
	now  func() time.Time
}

// TriggerOption customizes a single Trigger call.
type TriggerOption func(*triggerOptions)

type triggerOptions struct {
	status    Status
	hasStatus bool
	output    string
	hasOutput bool
}

// WithStatus sets the component status carried by the update.
func WithStatus(s Status) TriggerOption {
	return func(o *triggerOptions) {
		o.status = s
		o.hasStatus = true
	}
}

// WithOutput sets the explanation carried by the update.
func WithOutput(output string) TriggerOption {
	return func(o *triggerOptions) {
		o.output = output
		o.hasOutput = true
	}
}

// Aggregator applies updates to one component and recomputes the service
// status. It is returned by Registry.CreateMonitor.
type Aggregator struct {
	id        string
	store     *store
	component *DynamicComponentDetails
	diag      Diagnostics
}

// ID returns the monitor id the aggregator is bound to.
func (a *Aggregator) ID() string {
	return a.id
}

// Component returns a copy of the bound component entry.
func (a *Aggregator) Component() DynamicComponentDetails {
	a.store.mu.Lock()
	defer a.store.mu.Unlock()
	return *a.component
}

// Trigger records value on the component and merges its status into the
// service status.
//
// Without WithStatus the component becomes pass; without WithOutput its
// output becomes DefaultOutput. A warn or fail update overwrites the service
// status unless the service is already fail. A pass update rescans every
// registered component and derives the service status from them. An
// aggregator whose entry was replaced by a later CreateMonitor with the same
// id only updates its own detached entry.
//
// The component time is stamped when an update moves the component into warn
// or fail from a different status.
func (a *Aggregator) Trigger(ctx context.Context, value any, opts ...TriggerOption) {
	o := triggerOptions{status: StatusPass, output: DefaultOutput}
	for _, opt := range opts {
		opt(&o)
	}

	a.store.mu.Lock()
	previous := a.component.Status
	a.component.ObservedValue = value
	a.component.Status = o.status
	a.component.Output = o.output
	if o.status != StatusPass && o.status != previous {
		a.component.Time = a.store.now()
	}

	info := a.store.info
	switch {
	case info.Detail[a.id] != a.component:
		// Replaced by a later CreateMonitor with the same id.
	case o.status != StatusPass:
		if info.Status != StatusFail {
			info.Status = o.status
		}
	case len(info.Detail) > 0:
		info.Status = rescan(info.Detail)
	}
	service := info.Status
	a.store.mu.Unlock()

	a.diag.Triggered(ctx, a.id, o.status, service)
}

// setObservedValue stores a raw value without touching any status.
func (a *Aggregator) setObservedValue(value any) {
	a.store.mu.Lock()
	a.component.ObservedValue = value
	a.store.mu.Unlock()
}

func rescan(detail map[string]*DynamicComponentDetails) Status {
	failures, warnings := 0, 0
	for _, c := range detail {
		switch c.Status {
		case StatusFail:
			failures++
		case StatusWarn:
			warnings++
		}
	}

	switch {
	case failures != 0:
		return StatusFail
	case warnings != 0:
		return StatusWarn
	default:
		return StatusPass
	}
}
