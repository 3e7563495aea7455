package health

import (
	"context"
	"time"
)

// Result contains the outcome of a health check.
type Result struct {
	// Status is the health status.
	Status Status

	// Message explains the status. It becomes the component output.
	Message string

	// Value is the observed value. It becomes the component observed value.
	Value any

	// Duration is how long the check took.
	Duration time.Duration

	// Timestamp is when the check was performed.
	Timestamp time.Time

	// Error is the error if the check failed.
	Error error
}

// Pass creates a passing result.
func Pass(message string) Result {
	return Result{
		Status:    StatusPass,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// Warn creates a warning result.
func Warn(message string) Result {
	return Result{
		Status:    StatusWarn,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// Fail creates a failing result.
func Fail(message string, err error) Result {
	return Result{
		Status:    StatusFail,
		Message:   message,
		Error:     err,
		Timestamp: time.Now(),
	}
}

// WithValue sets the observed value on a result.
func (r Result) WithValue(v any) Result {
	r.Value = v
	return r
}

// WithDuration sets the duration on a result.
func (r Result) WithDuration(d time.Duration) Result {
	r.Duration = d
	return r
}

// Checker is the interface for synchronous health checks.
type Checker interface {
	// Name returns the name of this checker.
	Name() string

	// Check performs the health check and returns the result.
	Check(ctx context.Context) Result
}

// CheckerFunc is an adapter to allow ordinary functions to be used as Checkers.
type CheckerFunc struct {
	name string
	fn   func(context.Context) Result
}

// NewCheckerFunc creates a new CheckerFunc.
func NewCheckerFunc(name string, fn func(context.Context) Result) *CheckerFunc {
	return &CheckerFunc{name: name, fn: fn}
}

// Name returns the name of this checker.
func (f *CheckerFunc) Name() string {
	return f.name
}

// Check performs the health check.
func (f *CheckerFunc) Check(ctx context.Context) Result {
	return f.fn(ctx)
}

// Collector adapts a Checker into a CollectFunc. Each collection runs the
// check and triggers the result's status and message on the monitor. A
// failing result does not stop the probe. Collection time is reported by the
// probe through Diagnostics.CollectFinished.
func Collector(c Checker) CollectFunc {
	return func(ctx context.Context, agg *Aggregator) (any, error) {
		result := c.Check(ctx)

		output := result.Message
		if output == "" && result.Error != nil {
			output = result.Error.Error()
		}

		opts := []TriggerOption{WithStatus(result.Status)}
		if output != "" {
			opts = append(opts, WithOutput(output))
		}
		agg.Trigger(ctx, result.Value, opts...)

		return result.Value, nil
	}
}

// Monitor registers c on r as a periodic monitor. The component and
// measurement names default to the checker name when details leaves them
// empty.
func Monitor(r *Registry, details DynamicComponentDetails, c Checker, period time.Duration) *Aggregator {
	if details.ComponentName == "" {
		details.ComponentName = c.Name()
	}
	if details.MeasurementName == "" {
		details.MeasurementName = c.Name()
	}
	return r.CreateMonitor(details, Collector(c), period)
}
