package worker

import (
	"github.com/okian/rotosim/pkg/logger"
	"github.com/okian/rotosim/pkg/metrics"
)

// Option applies a configuration option to the Pool.
type Option func(*Pool)

// WithName sets the pool name used as the logger component.
func WithName(name string) Option {
	return func(p *Pool) {
		if name != "" {
			p.name = name
		}
	}
}

// WithLogger sets a custom logger for the pool and its workers.
func WithLogger(l logger.Logger) Option {
	return func(p *Pool) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithMetrics sets the metrics manager. A nil manager records nothing.
func WithMetrics(m *metrics.Manager) Option {
	return func(p *Pool) {
		p.metrics = m
	}
}
