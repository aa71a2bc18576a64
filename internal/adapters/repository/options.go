package repository

import "github.com/okian/rotosim/pkg/logger"

// Option applies a configuration option to the InMemoryStore.
type Option func(*InMemoryStore)

// WithLogger sets the store logger.
func WithLogger(l logger.Logger) Option {
	return func(s *InMemoryStore) {
		if l != nil {
			s.logger = l
		}
	}
}
