package health

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestAggregator_TriggerDefaults(t *testing.T) {
	reg := NewRegistry(ServiceInfo{}, "svc")
	agg := reg.CreateMonitor(component("api", "calls"), nil, 0)

	agg.Trigger(context.Background(), 7)

	c := agg.Component()
	if c.Status != StatusPass {
		t.Errorf("Status = %v, want pass", c.Status)
	}
	if c.Output != DefaultOutput {
		t.Errorf("Output = %q, want %q", c.Output, DefaultOutput)
	}
	if c.ObservedValue != 7 {
		t.Errorf("ObservedValue = %v, want 7", c.ObservedValue)
	}
	if !c.Time.IsZero() {
		t.Errorf("Time = %v, want zero for pass", c.Time)
	}
}

func TestAggregator_TriggerWithStatusAndOutput(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	reg := NewRegistry(ServiceInfo{}, "svc", WithClock(func() time.Time { return now }))
	agg := reg.CreateMonitor(component("db", "latency"), nil, 0)

	agg.Trigger(context.Background(), 250, WithStatus(StatusWarn), WithOutput("slow queries"))

	c := agg.Component()
	if c.Status != StatusWarn {
		t.Errorf("Status = %v, want warn", c.Status)
	}
	if c.Output != "slow queries" {
		t.Errorf("Output = %q, want 'slow queries'", c.Output)
	}
	if !c.Time.Equal(now) {
		t.Errorf("Time = %v, want %v", c.Time, now)
	}
	if reg.Status() != StatusWarn {
		t.Errorf("service Status = %v, want warn", reg.Status())
	}

	// A later pass keeps the time of the last warn/fail transition.
	agg.Trigger(context.Background(), 10)
	if got := agg.Component().Time; !got.Equal(now) {
		t.Errorf("Time after pass = %v, want %v", got, now)
	}
}

func TestAggregator_TimeStampsTransitionsOnly(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	reg := NewRegistry(ServiceInfo{}, "svc", WithClock(func() time.Time { return clock() }))
	agg := reg.CreateMonitor(component("db", "latency"), nil, 0)
	ctx := context.Background()

	steps := []struct {
		status Status
		want   time.Time
	}{
		{status: StatusWarn, want: now},
		{status: StatusWarn, want: now},
		{status: StatusFail, want: now.Add(2 * time.Minute)},
		{status: StatusFail, want: now.Add(2 * time.Minute)},
		{status: StatusPass, want: now.Add(2 * time.Minute)},
		{status: StatusWarn, want: now.Add(5 * time.Minute)},
	}

	for i, step := range steps {
		at := now.Add(time.Duration(i) * time.Minute)
		clock = func() time.Time { return at }

		agg.Trigger(ctx, i, WithStatus(step.status))
		if got := agg.Component().Time; !got.Equal(step.want) {
			t.Errorf("step %d (%v): Time = %v, want %v", i, step.status, got, step.want)
		}
	}
}

func TestAggregator_FastPath(t *testing.T) {
	tests := []struct {
		name    string
		service Status
		update  Status
		want    Status
	}{
		{"pass to warn", StatusPass, StatusWarn, StatusWarn},
		{"pass to fail", StatusPass, StatusFail, StatusFail},
		{"warn to fail", StatusWarn, StatusFail, StatusFail},
		{"warn stays warn", StatusWarn, StatusWarn, StatusWarn},
		{"fail sticky against warn", StatusFail, StatusWarn, StatusFail},
		{"fail stays fail", StatusFail, StatusFail, StatusFail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := NewRegistry(ServiceInfo{Status: tt.service}, "svc")
			agg := reg.CreateMonitor(component("a", "m"), nil, 0)

			agg.Trigger(context.Background(), nil, WithStatus(tt.update))

			if got := reg.Status(); got != tt.want {
				t.Errorf("service Status = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAggregator_FastPathSkipsRescan(t *testing.T) {
	reg := NewRegistry(ServiceInfo{}, "svc")
	a := reg.CreateMonitor(component("a", "m"), nil, 0)
	b := reg.CreateMonitor(component("b", "m"), nil, 0)

	a.Trigger(context.Background(), nil, WithStatus(StatusFail))
	// b's warn cannot downgrade fail even though a rescan would agree.
	b.Trigger(context.Background(), nil, WithStatus(StatusWarn))
	if got := reg.Status(); got != StatusFail {
		t.Fatalf("service Status = %v, want fail", got)
	}

	// a recovers. Rescan sees b still warn.
	a.Trigger(context.Background(), nil)
	if got := reg.Status(); got != StatusWarn {
		t.Errorf("service Status after a recovers = %v, want warn", got)
	}
}

func TestAggregator_RescanPath(t *testing.T) {
	reg := NewRegistry(ServiceInfo{}, "svc")
	a := reg.CreateMonitor(component("a", "m"), nil, 0)
	b := reg.CreateMonitor(component("b", "m"), nil, 0)
	ctx := context.Background()

	a.Trigger(ctx, nil, WithStatus(StatusFail))
	if got := reg.Status(); got != StatusFail {
		t.Fatalf("after a fail: Status = %v, want fail", got)
	}

	b.Trigger(ctx, nil)
	if got := reg.Status(); got != StatusFail {
		t.Fatalf("after b pass: Status = %v, want fail (a still failing)", got)
	}

	a.Trigger(ctx, nil)
	if got := reg.Status(); got != StatusPass {
		t.Errorf("after a pass: Status = %v, want pass", got)
	}
}

func TestAggregator_EmptyDetailLeavesStatus(t *testing.T) {
	s := &store{
		info: &DynamicServiceInfo{
			ServiceInfo: ServiceInfo{Status: StatusWarn},
			Detail:      map[string]*DynamicComponentDetails{},
		},
		now: time.Now,
	}
	c := component("orphan", "m")
	agg := &Aggregator{id: c.ID(), store: s, component: &c, diag: NopDiagnostics{}}

	agg.Trigger(context.Background(), 1)

	if s.info.Status != StatusWarn {
		t.Errorf("service Status = %v, want warn (unchanged)", s.info.Status)
	}
	if c.ObservedValue != 1 {
		t.Errorf("ObservedValue = %v, want 1", c.ObservedValue)
	}
}

func TestAggregator_ConcurrentFailAndWarn(t *testing.T) {
	for i := 0; i < 50; i++ {
		reg := NewRegistry(ServiceInfo{}, "svc")
		a := reg.CreateMonitor(component("a", "m"), nil, 0)
		b := reg.CreateMonitor(component("b", "m"), nil, 0)

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			a.Trigger(context.Background(), nil, WithStatus(StatusFail))
		}()
		go func() {
			defer wg.Done()
			b.Trigger(context.Background(), nil, WithStatus(StatusWarn))
		}()
		wg.Wait()

		if got := reg.Status(); got != StatusFail {
			t.Fatalf("iteration %d: Status = %v, want fail", i, got)
		}
	}
}

func TestAggregator_ConcurrentRecoveryIsConsistent(t *testing.T) {
	reg := NewRegistry(ServiceInfo{}, "svc")
	aggs := make([]*Aggregator, 8)
	for i := range aggs {
		aggs[i] = reg.CreateMonitor(component("c", string(rune('a'+i))), nil, 0)
	}

	var wg sync.WaitGroup
	for i, agg := range aggs {
		wg.Add(1)
		go func(i int, agg *Aggregator) {
			defer wg.Done()
			for n := 0; n < 100; n++ {
				if (n+i)%3 == 0 {
					agg.Trigger(context.Background(), n, WithStatus(StatusFail))
				} else {
					agg.Trigger(context.Background(), n)
				}
			}
			agg.Trigger(context.Background(), "done")
		}(i, agg)
	}
	wg.Wait()

	// Every component ends on pass, and the last trigger rescanned.
	if got := reg.Status(); got != StatusPass {
		t.Errorf("Status = %v, want pass", got)
	}
}

func TestAggregator_ReportsDiagnostics(t *testing.T) {
	diag := newRecordingDiagnostics()
	reg := NewRegistry(ServiceInfo{}, "svc", WithDiagnostics(diag))
	agg := reg.CreateMonitor(component("a", "m"), nil, 0)

	agg.Trigger(context.Background(), 1)
	agg.Trigger(context.Background(), 2, WithStatus(StatusWarn))

	if got := diag.triggerCount(); got != 2 {
		t.Errorf("Triggered calls = %d, want 2", got)
	}
}

func TestAggregator_ID(t *testing.T) {
	reg := NewRegistry(ServiceInfo{}, "svc")
	agg := reg.CreateMonitor(component("cache", "hit_ratio"), nil, 0)

	if agg.ID() != "cache:hit_ratio" {
		t.Errorf("ID() = %q, want 'cache:hit_ratio'", agg.ID())
	}
}
