package writer

import (
	"github.com/okian/rotosim/pkg/logger"
)

// Option configures a Writer.
type Option func(*Writer)

// WithColumns sets the header the writer must produce. New rejects anything
// but the artifact schema.
func WithColumns(columns []string) Option {
	return func(w *Writer) {
		w.columns = append([]string(nil), columns...)
	}
}

// WithLogger sets the writer logger.
func WithLogger(l logger.Logger) Option {
	return func(w *Writer) {
		if l != nil {
			w.logger = l
		}
	}
}
