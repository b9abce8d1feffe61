package usecase

import "errors"

// Sentinel errors shared by the report and summary services. Callers match
// with errors.Is to pick an exit path.
var (
	// ErrInvalidInput marks bad request parameters: malformed week specs,
	// out-of-range seasons, blank query strings.
	ErrInvalidInput = errors.New("invalid input")

	// ErrDependencyUnavailable marks upstream outages, including a tripped
	// provider circuit breaker.
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
