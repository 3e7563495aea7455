package health

import "errors"

var (
	// ErrCheckFailed indicates a health check failed.
	ErrCheckFailed = errors.New("health: check failed")

	// ErrInvalidStatus indicates a status value or string is not pass, warn or fail.
	ErrInvalidStatus = errors.New("health: invalid status")

	// ErrProbeStarted indicates a probe was started more than once.
	ErrProbeStarted = errors.New("health: probe already started")

	// ErrCollectPanic indicates a collection callback panicked.
	ErrCollectPanic = errors.New("health: collect panicked")

	// ErrCheckTimeout indicates a check did not finish within its timeout.
	ErrCheckTimeout = errors.New("health: check timed out")
)
