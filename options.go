// SPDX-License-Identifier: Apache-2.0

package vector

import (
	"github.com/go-kit/log"
)

type options struct {
	logger   log.Logger
	name     string
	capacity int
}

// Option represents a configuration option for a vector.
type Option func(*options)

// WithLogger sets the logger that receives the vector's debug events
// (reallocations and rolled back growth). Vectors log nothing by default.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithName sets the name a vector reports in its log lines.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithCapacity sets the number of slots a new vector reserves up front.
// Vectors built with FromSlice or NewSized hold at least this many slots;
// New reserves them on a best-effort basis and logs a warning when the
// allocation fails, leaving the vector empty without storage.
func WithCapacity(n int) Option {
	return func(o *options) {
		o.capacity = n
	}
}

func newOptions(opts []Option) options {
	o := options{
		logger: log.NewNopLogger(),
		name:   "vector",
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
