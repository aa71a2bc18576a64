package queue

import "errors"

// Sentinel kinds for queue errors.
var (
	// ErrClosed means the queue no longer accepts jobs.
	ErrClosed = errors.New("queue closed")
)
