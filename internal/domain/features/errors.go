package features

import "errors"

// Sentinel kinds for feature building errors.
var (
	// ErrDataIntegrity means a roster member has no previous-season record.
	ErrDataIntegrity = errors.New("data integrity error")
	// ErrRosterSize means the roster does not have team_size players.
	ErrRosterSize = errors.New("roster size mismatch")
)
