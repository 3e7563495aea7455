package health

import (
	"context"
	"time"

	"github.com/heptiolabs/healthcheck"
)

// DefaultDialTimeout is used by the network checkers when no timeout is given.
const DefaultDialTimeout = 2 * time.Second

type errorChecker struct {
	name  string
	check healthcheck.Check
}

// FromCheck adapts an error-returning check into a Checker. A nil error
// passes; any error fails with the error text as the message. The result
// value is the check latency in milliseconds.
func FromCheck(name string, check healthcheck.Check) Checker {
	return &errorChecker{name: name, check: check}
}

func (e *errorChecker) Name() string { return e.name }

func (e *errorChecker) Check(context.Context) Result {
	start := time.Now()
	err := e.check()
	elapsed := time.Since(start)
	ms := float64(elapsed.Microseconds()) / 1000

	if err != nil {
		return Fail(err.Error(), err).WithValue(ms).WithDuration(elapsed)
	}
	return Pass("ok").WithValue(ms).WithDuration(elapsed)
}

func dialTimeout(d time.Duration) time.Duration {
	if d <= 0 {
		return DefaultDialTimeout
	}
	return d
}

// TCPDialChecker fails when a TCP connection to addr cannot be opened.
func TCPDialChecker(name, addr string, timeout time.Duration) Checker {
	return FromCheck(name, healthcheck.TCPDialCheck(addr, dialTimeout(timeout)))
}

// HTTPGetChecker fails when a GET of url errors or answers with a status
// other than 200.
func HTTPGetChecker(name, url string, timeout time.Duration) Checker {
	return FromCheck(name, healthcheck.HTTPGetCheck(url, dialTimeout(timeout)))
}

// DNSResolveChecker fails when host does not resolve to at least one address.
func DNSResolveChecker(name, host string, timeout time.Duration) Checker {
	return FromCheck(name, healthcheck.DNSResolveCheck(host, dialTimeout(timeout)))
}

// GoroutineChecker fails when the process runs more than threshold goroutines.
func GoroutineChecker(name string, threshold int) Checker {
	return FromCheck(name, healthcheck.GoroutineCountCheck(threshold))
}
