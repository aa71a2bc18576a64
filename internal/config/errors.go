package config

import "errors"

// Sentinel kinds for configuration errors.
var (
	// ErrInvalidConfig means a loaded value cannot drive a run.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrLoadConfig means the file or environment could not be read.
	ErrLoadConfig = errors.New("load config failed")
)
