package formation

import (
	"github.com/okian/teamup/pkg/logger"
)

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(log logger.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.logger = log
		}
	}
}

// WithWorkerCount sets the grouping pool size. Values below 2 keep grouping sequential.
func WithWorkerCount(n int) Option {
	return func(e *Engine) {
		e.workerCount = n
	}
}

// WithParallelThreshold sets the group input size at which the pool is used.
// Zero or negative disables the pool.
func WithParallelThreshold(n int) Option {
	return func(e *Engine) {
		e.parallelThreshold = n
	}
}

// WithQueueSize sets the capacity of the pool's task queue.
func WithQueueSize(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.queueSize = n
		}
	}
}
