package dataset

import "errors"

// Sentinel kinds for split reading errors.
var (
	// ErrEmptySplit means a split has no rows.
	ErrEmptySplit = errors.New("empty split")
	// ErrHeader means an artifact header is not the training schema.
	ErrHeader = errors.New("artifact header mismatch")
	// ErrMalformedRow means an artifact row could not be parsed.
	ErrMalformedRow = errors.New("malformed artifact row")
)
