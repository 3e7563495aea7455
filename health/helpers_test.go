package health

import (
	"context"
	"sync"
	"testing"
	"time"
)

func component(name, measurement string) DynamicComponentDetails {
	return DynamicComponentDetails{
		ComponentDetails: ComponentDetails{
			ComponentName:   name,
			MeasurementName: measurement,
		},
	}
}

// waitFor polls cond until it holds or the deadline passes.
func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("condition not met within %v", timeout)
}

type recordingDiagnostics struct {
	mu        sync.Mutex
	triggers  int
	started   []string
	stopped   map[string]error
	collected int
	durations []time.Duration
	lastErr   error
}

func newRecordingDiagnostics() *recordingDiagnostics {
	return &recordingDiagnostics{stopped: make(map[string]error)}
}

func (d *recordingDiagnostics) Triggered(context.Context, string, Status, Status) {
	d.mu.Lock()
	d.triggers++
	d.mu.Unlock()
}

func (d *recordingDiagnostics) ProbeStarted(_ context.Context, id string, _ time.Duration) {
	d.mu.Lock()
	d.started = append(d.started, id)
	d.mu.Unlock()
}

func (d *recordingDiagnostics) ProbeStopped(_ context.Context, id string, err error) {
	d.mu.Lock()
	d.stopped[id] = err
	d.mu.Unlock()
}

func (d *recordingDiagnostics) CollectStarted(ctx context.Context, _ string) context.Context {
	return ctx
}

func (d *recordingDiagnostics) CollectFinished(_ context.Context, _ string, duration time.Duration, err error) {
	d.mu.Lock()
	d.collected++
	d.durations = append(d.durations, duration)
	if err != nil {
		d.lastErr = err
	}
	d.mu.Unlock()
}

func (d *recordingDiagnostics) stoppedErr(id string) (error, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	err, ok := d.stopped[id]
	return err, ok
}

func (d *recordingDiagnostics) triggerCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.triggers
}

func (d *recordingDiagnostics) firstDuration() (time.Duration, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.durations) == 0 {
		return 0, false
	}
	return d.durations[0], true
}
