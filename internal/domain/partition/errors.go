package partition

import "errors"

// Sentinel kinds for partitioning errors.
var (
	// ErrSampling means the pool cannot fill every roster.
	ErrSampling = errors.New("sampling error")
	// ErrInvalidShape means the league shape is not drawable.
	ErrInvalidShape = errors.New("invalid league shape")
)
