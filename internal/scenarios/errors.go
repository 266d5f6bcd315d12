package scenarios

import "errors"

var (
	// ErrUnhealthy is returned when the health probe does not answer 200.
	ErrUnhealthy = errors.New("service unhealthy")
	// ErrViolations is returned when at least one response broke an invariant.
	ErrViolations = errors.New("invariant violations found")
	// ErrRequestsFailed is returned when requests failed after retries.
	ErrRequestsFailed = errors.New("requests failed")
)
