package repository

import "errors"

// Sentinel kinds for season data errors.
var (
	ErrSeasonNotFound = errors.New("season not found")
	ErrMalformedData  = errors.New("malformed season data")
)
