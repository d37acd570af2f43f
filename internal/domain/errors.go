package domain

import "errors"

var (
	// Malformed network upload. The previously loaded graph is retained.
	ErrInvalidNetworkFormat = errors.New("invalid network format")

	// A coordinate could not be snapped within the configured tolerance.
	// Reported per item; batch operations are not aborted by it.
	ErrOutsideTolerance = errors.New("coordinate outside snap tolerance")

	// No connectivity between the snapped endpoints.
	ErrNoPathFound = errors.New("no path found between endpoints")

	// Scoring weights are misconfigured. Rejected at configuration time,
	// never silently clamped.
	ErrInvalidWeightConfiguration = errors.New("invalid weight configuration")

	// Recommend received zero candidates. Programming-error-level failure:
	// the alternative finder contract guarantees at least one candidate.
	ErrEmptyCandidateSet = errors.New("empty candidate set")

	// No road network has been uploaded yet.
	ErrNetworkNotLoaded = errors.New("road network not loaded")
)
