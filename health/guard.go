package health

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// DefaultCheckTimeout bounds a check wrapped by WithTimeout when no timeout
// is given.
const DefaultCheckTimeout = 30 * time.Second

type timeoutChecker struct {
	inner   Checker
	timeout time.Duration
}

// WithTimeout wraps c so that each Check returns a failing result carrying
// ErrCheckTimeout once timeout elapses. The inner check keeps running in the
// background with a cancelled context until it returns.
func WithTimeout(c Checker, timeout time.Duration) Checker {
	if timeout <= 0 {
		timeout = DefaultCheckTimeout
	}
	return &timeoutChecker{inner: c, timeout: timeout}
}

func (t *timeoutChecker) Name() string { return t.inner.Name() }

func (t *timeoutChecker) Check(ctx context.Context) Result {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	done := make(chan Result, 1)
	go func() {
		done <- t.inner.Check(ctx)
	}()

	select {
	case r := <-done:
		return r
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return Fail("check timed out after "+t.timeout.String(), ErrCheckTimeout).WithDuration(t.timeout)
		}
		return Fail("check cancelled", ctx.Err())
	}
}

// RetryConfig configures WithRetry.
type RetryConfig struct {
	// MaxAttempts is the maximum number of attempts, including the first.
	// Default: 3
	MaxAttempts int

	// InitialDelay is the delay before the first retry.
	// Default: 100ms
	InitialDelay time.Duration

	// MaxDelay caps the delay between retries.
	// Default: 5s
	MaxDelay time.Duration
}

type retryChecker struct {
	inner  Checker
	config RetryConfig
}

// WithRetry wraps c so that a failing result is retried with exponential
// backoff. Warn and pass results are returned immediately. When every
// attempt fails the last result is returned.
func WithRetry(c Checker, config RetryConfig) Checker {
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = 3
	}
	if config.InitialDelay <= 0 {
		config.InitialDelay = 100 * time.Millisecond
	}
	if config.MaxDelay <= 0 {
		config.MaxDelay = 5 * time.Second
	}
	return &retryChecker{inner: c, config: config}
}

func (r *retryChecker) Name() string { return r.inner.Name() }

func (r *retryChecker) policy(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.config.InitialDelay
	b.MaxInterval = r.config.MaxDelay
	b.MaxElapsedTime = 0
	return backoff.WithContext(backoff.WithMaxRetries(b, uint64(r.config.MaxAttempts-1)), ctx)
}

func (r *retryChecker) Check(ctx context.Context) Result {
	start := time.Now()
	var last Result
	_ = backoff.Retry(func() error {
		last = r.inner.Check(ctx)
		if last.Status == StatusFail {
			return ErrCheckFailed
		}
		return nil
	}, r.policy(ctx))

	return last.WithDuration(time.Since(start))
}
