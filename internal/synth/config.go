package synth

import (
	"fmt"

	"github.com/okian/rotosim/pkg/logger"
)

// Default generation constants.
const (
	DefaultPoolSize   = 300 // players kept per season, by minutes played
	DefaultCandidates = 420 // players who log minutes in a season
	retentionRate     = 0.86
	maxGames          = 82
)

// Config describes the seasons to fabricate.
type Config struct {
	StartYear  int
	EndYear    int
	PoolSize   int
	Candidates int
	Seed       uint64
}

// Validate checks the year range and pool sizes.
func (c Config) Validate() error {
	if c.EndYear < c.StartYear {
		return fmt.Errorf("%w: end year %d before start year %d", ErrInvalidConfig, c.EndYear, c.StartYear)
	}
	if c.PoolSize < 1 || c.Candidates < c.PoolSize {
		return fmt.Errorf("%w: need 1 <= pool (%d) <= candidates (%d)", ErrInvalidConfig, c.PoolSize, c.Candidates)
	}
	return nil
}

// Option configures Generate.
type Option func(*options)

type options struct {
	logger logger.Logger
}

// WithLogger sets the generation logger.
func WithLogger(l logger.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
