package health

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// CollectFunc gathers one measurement. The returned value is stored as the
// component's observed value. Status changes must go through agg.Trigger.
//
// A returned error or a panic stops the probe that called it.
type CollectFunc func(ctx context.Context, agg *Aggregator) (any, error)

// ProbeState is the lifecycle state of a Probe.
type ProbeState int

const (
	// ProbeCreated means the probe has not been started.
	ProbeCreated ProbeState = iota
	// ProbeRunning means the probe goroutine is collecting.
	ProbeRunning
	// ProbeStopRequested means Stop was called and the goroutine has not yet
	// observed it.
	ProbeStopRequested
	// ProbeStopped means the goroutine has exited.
	ProbeStopped
)

// String returns the string representation of the state.
func (s ProbeState) String() string {
	switch s {
	case ProbeCreated:
		return "created"
	case ProbeRunning:
		return "running"
	case ProbeStopRequested:
		return "stop-requested"
	case ProbeStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Probe periodically invokes a CollectFunc for one component.
type Probe struct {
	agg     *Aggregator
	collect CollectFunc
	period  time.Duration
	diag    Diagnostics

	mu    sync.Mutex
	state ProbeState
	err   error
	done  chan struct{}
}

func newProbe(agg *Aggregator, collect CollectFunc, period time.Duration, diag Diagnostics) *Probe {
	return &Probe{
		agg:     agg,
		collect: collect,
		period:  period,
		diag:    diag,
		state:   ProbeCreated,
		done:    make(chan struct{}),
	}
}

// ID returns the monitor id of the probed component.
func (p *Probe) ID() string {
	return p.agg.ID()
}

// Period returns the time slept between collections.
func (p *Probe) Period() time.Duration {
	return p.period
}

// State returns the current lifecycle state.
func (p *Probe) State() ProbeState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Err returns the collect failure that stopped the probe, if any.
func (p *Probe) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

// Done is closed when the probe goroutine exits.
func (p *Probe) Done() <-chan struct{} {
	return p.done
}

// Start launches the probe goroutine.
func (p *Probe) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != ProbeCreated {
		return ErrProbeStarted
	}
	p.state = ProbeRunning

	go p.run(context.WithoutCancel(ctx))
	return nil
}

// Stop asks the probe to exit after its current sleep. It neither interrupts
// an in-flight collection nor waits for the goroutine.
func (p *Probe) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch p.state {
	case ProbeCreated:
		p.state = ProbeStopped
		close(p.done)
	case ProbeRunning:
		p.state = ProbeStopRequested
	}
}

func (p *Probe) run(ctx context.Context) {
	id := p.ID()
	p.diag.ProbeStarted(ctx, id, p.period)

	var err error
	defer func() {
		p.mu.Lock()
		p.state = ProbeStopped
		p.err = err
		p.mu.Unlock()
		close(p.done)
		p.diag.ProbeStopped(ctx, id, err)
	}()

	for {
		var value any
		value, err = p.collectOnce(ctx, id)
		if err != nil {
			return
		}
		p.agg.setObservedValue(value)

		time.Sleep(p.period)

		if p.stopRequested() {
			return
		}
	}
}

func (p *Probe) collectOnce(ctx context.Context, id string) (value any, err error) {
	ctx = p.diag.CollectStarted(ctx, id)
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrCollectPanic, r)
		}
		p.diag.CollectFinished(ctx, id, time.Since(start), err)
	}()

	return p.collect(ctx, p.agg)
}

func (p *Probe) stopRequested() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state == ProbeStopRequested
}
