package health

import (
	"context"
	"time"
)

// Diagnostics receives lifecycle events from a Registry and its probes.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: implementations must be best-effort and must not panic.
// - Locking: methods are never called while the registry lock is held.
type Diagnostics interface {
	// Triggered is called after an update has been applied.
	Triggered(ctx context.Context, id string, component, service Status)

	// ProbeStarted is called when a probe goroutine begins.
	ProbeStarted(ctx context.Context, id string, period time.Duration)

	// ProbeStopped is called when a probe goroutine exits. err is nil for a
	// requested stop and the collect failure otherwise.
	ProbeStopped(ctx context.Context, id string, err error)

	// CollectStarted is called before each collection. The returned context
	// is passed to the collect callback and to CollectFinished.
	CollectStarted(ctx context.Context, id string) context.Context

	// CollectFinished is called after each collection.
	CollectFinished(ctx context.Context, id string, duration time.Duration, err error)
}

// StatusObserver is implemented by Diagnostics that sample the service
// status on their own schedule. NewRegistry hands them Registry.Status.
type StatusObserver interface {
	ObserveStatus(status func() Status)
}

// NopDiagnostics discards every event.
type NopDiagnostics struct{}

func (NopDiagnostics) Triggered(context.Context, string, Status, Status)    {}
func (NopDiagnostics) ProbeStarted(context.Context, string, time.Duration) {}
func (NopDiagnostics) ProbeStopped(context.Context, string, error)         {}
func (NopDiagnostics) CollectStarted(ctx context.Context, _ string) context.Context {
	return ctx
}
func (NopDiagnostics) CollectFinished(context.Context, string, time.Duration, error) {}

var _ Diagnostics = NopDiagnostics{}
