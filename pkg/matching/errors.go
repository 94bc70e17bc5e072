package matching

import "errors"

var (
	// ErrEmptyBenchmarkSet means no benchmark ID resolved to an employee,
	// so no baseline can be established.
	ErrEmptyBenchmarkSet = errors.New("cannot establish baseline: no benchmark employees resolved")

	// ErrNoScorableAttributes means benchmarks resolved but none of them has
	// a value for any catalog attribute.
	ErrNoScorableAttributes = errors.New("cannot establish baseline: no attribute has benchmark values")

	// ErrUpstreamUnavailable wraps failures of the profile source, including
	// malformed attribute values.
	ErrUpstreamUnavailable = errors.New("employee data source unavailable")

	// ErrInvalidWeights is returned for negative or non-finite group weights.
	ErrInvalidWeights = errors.New("invalid weights")

	// ErrInvalidCatalog is returned when an attribute references a scoring
	// rule the engine cannot build.
	ErrInvalidCatalog = errors.New("invalid catalog")
)
