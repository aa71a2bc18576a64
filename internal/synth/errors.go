package synth

import "errors"

// ErrInvalidConfig means the requested seasons cannot be generated.
var ErrInvalidConfig = errors.New("invalid synth config")
