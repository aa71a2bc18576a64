package writer

import "errors"

// Sentinel kinds for artifact writing errors.
var (
	// ErrSchemaMismatch means the configured columns differ from the artifact schema.
	ErrSchemaMismatch = errors.New("column schema mismatch")
	// ErrAlreadyWritten means the artifact key was written before by this writer.
	ErrAlreadyWritten = errors.New("artifact already written")
	// ErrIncomplete means an iteration's rows never arrived.
	ErrIncomplete = errors.New("incomplete season rows")
	// ErrIteration means rows arrived for an unknown or repeated iteration.
	ErrIteration = errors.New("invalid iteration")
)
