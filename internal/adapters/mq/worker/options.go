// Package worker runs planning jobs taken off the queue.
package worker

import (
	"github.com/okian/kitcast/pkg/logger"
)

// Option applies a configuration option to the InMemoryWorker.
type Option func(*InMemoryWorker)

// WithName sets the worker name for identification and logging.
func WithName(name string) Option {
	return func(w *InMemoryWorker) {
		if name != "" {
			w.name = name
		}
	}
}

// WithLogger sets the worker's logger. Without it the worker logs under its
// name.
func WithLogger(logger logger.Logger) Option {
	return func(w *InMemoryWorker) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithOnProcessed registers a callback invoked after every planned job,
// before its result is sent.
func WithOnProcessed(fn func()) Option {
	return func(w *InMemoryWorker) {
		if fn != nil {
			w.onProcessed = fn
		}
	}
}
