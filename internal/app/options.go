package service

import (
	"time"

	"github.com/okian/rotosim/internal/domain/model"
	"github.com/okian/rotosim/pkg/logger"
	"github.com/okian/rotosim/pkg/metrics"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLeague sets the number of teams and roster size.
func WithLeague(numTeams, teamSize int) Option {
	return func(s *Service) {
		if numTeams > 0 && teamSize > 0 {
			s.numTeams = numTeams
			s.teamSize = teamSize
		}
	}
}

// WithSimulations sets the number of simulated leagues per season.
func WithSimulations(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.simulations = n
		}
	}
}

// WithWorkerCount sets the number of simulation workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithProgressInterval sets the iteration count between progress logs.
func WithProgressInterval(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.progressInterval = n
		}
	}
}

// WithSeed fixes the run seed. Zero derives one from the clock.
func WithSeed(seed uint64) Option {
	return func(s *Service) {
		s.seed = seed
	}
}

// WithSeasons sets the seasons generated for a split.
func WithSeasons(split model.Split, years []int) Option {
	return func(s *Service) {
		s.seasons[split] = append([]int(nil), years...)
	}
}

// WithCatalog records every written artifact in c.
func WithCatalog(c Catalog) Option {
	return func(s *Service) {
		s.catalog = c
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics sets the metrics manager.
func WithMetrics(m *metrics.Manager) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithClock replaces time.Now, for seed derivation and catalog timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}
