package scoring

import "errors"

// Sentinel kinds for scoring errors.
var (
	// ErrUnknownPlayer means a roster member has no season record.
	ErrUnknownPlayer = errors.New("player not found in season")
	// ErrLeagueMismatch means rosters and their stats do not line up.
	ErrLeagueMismatch = errors.New("rosters and stats differ in length")
)
