package simulation

import (
	"github.com/okian/rotosim/pkg/logger"
	"github.com/okian/rotosim/pkg/metrics"
)

// Option configures a Runner.
type Option func(*Runner)

// WithLeague sets the number of teams and the roster size.
func WithLeague(numTeams, teamSize int) Option {
	return func(r *Runner) {
		r.numTeams = numTeams
		r.teamSize = teamSize
	}
}

// WithSimulations sets how many leagues Run simulates.
func WithSimulations(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.simulations = n
		}
	}
}

// WithProgressInterval sets how often, in completed iterations, progress is logged.
func WithProgressInterval(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.progressInterval = n
		}
	}
}

// WithLogger sets the runner logger.
func WithLogger(l logger.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithMetrics sets the metrics manager. A nil manager records nothing.
func WithMetrics(m *metrics.Manager) Option {
	return func(r *Runner) {
		r.metrics = m
	}
}
