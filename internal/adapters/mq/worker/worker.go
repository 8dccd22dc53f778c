// Package worker runs grouping tasks for the formation engine on a fixed set of goroutines.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"sync"
	"time"

	"github.com/okian/teamup/internal/adapters/mq/queue"
	"github.com/okian/teamup/pkg/logger"
	"github.com/okian/teamup/pkg/metrics"
)

const defaultShutdownTimeout = 5 * time.Second

// Queue defines how workers receive tasks and how the pool submits them.
type Queue interface {
	Enqueue(ctx context.Context, t queue.Task) bool
	Dequeue(ctx context.Context) <-chan queue.Task
	Close() error
}

// Worker executes tasks read off the queue.
type Worker interface {
	// Run executes tasks until the queue is closed and drained or ctx is canceled.
	Run(ctx context.Context)
	// Shutdown waits for Run to return.
	Shutdown(ctx context.Context) error
}

// InMemoryWorker implements Worker.
type InMemoryWorker struct {
	queue Queue
	name  string

	done   chan struct{}
	logger logger.Logger
}

// NewInMemoryWorker creates a new worker with configuration options.
func NewInMemoryWorker(q Queue, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:  q,
		name:   "worker",
		done:   make(chan struct{}),
		logger: logger.Nop(),
	}

	for _, opt := range opts {
		opt(w)
	}

	w.logger = w.logger.Named(w.name)

	return w
}

// Run starts the worker loop.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer close(w.done)

	tasks := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case t, ok := <-tasks:
			if !ok {
				return
			}
			w.execute(ctx, t)
		}
	}
}

func (w *InMemoryWorker) execute(ctx context.Context, t queue.Task) {
	start := time.Now()
	t.Execute()
	metrics.RecordPoolTask(float64(time.Since(start).Microseconds()) / 1000)
	w.logger.Debug(ctx, "task done", logger.Int("index", t.Index))
}

// Shutdown waits for the worker loop to exit. Closing the queue is what stops it.
func (w *InMemoryWorker) Shutdown(ctx context.Context) error {
	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// Pool fans tasks out to its workers and gathers results in submission order.
type Pool struct {
	workers []*InMemoryWorker
	queue   Queue

	startOnce       sync.Once
	stopOnce        sync.Once
	cancel          context.CancelFunc
	shutdownTimeout time.Duration

	logger logger.Logger
}

// NewPool creates a pool of workerCount workers reading from q.
// workerCount < 1 means one worker per CPU.
func NewPool(workerCount int, q Queue, opts ...PoolOption) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU()
	}

	p := &Pool{
		workers:         make([]*InMemoryWorker, workerCount),
		queue:           q,
		shutdownTimeout: defaultShutdownTimeout,
		logger:          logger.Nop(),
	}

	for _, opt := range opts {
		opt(p)
	}

	for i := 0; i < workerCount; i++ {
		p.workers[i] = NewInMemoryWorker(
			q,
			WithName("worker-"+strconv.Itoa(i)),
			WithLogger(p.logger),
		)
	}

	return p
}

// Size returns the number of workers.
func (p *Pool) Size() int { return len(p.workers) }

// Start launches the workers. Calls after the first are no-ops.
func (p *Pool) Start(ctx context.Context) {
	p.startOnce.Do(func() {
		ctx, p.cancel = context.WithCancel(ctx)
		for _, w := range p.workers {
			go w.Run(ctx)
		}
		metrics.UpdatePoolWorkers(len(p.workers))
		p.logger.Info(ctx, "worker pool started", logger.Int("workers", len(p.workers)))
	})
}

// Run submits one task per fn and returns their values indexed like fns.
// A task the queue refuses runs on the calling goroutine. The first error in
// index order is returned.
func (p *Pool) Run(ctx context.Context, fns []func(context.Context) (any, error)) ([]any, error) {
	reply := make(chan queue.Result, len(fns))

	for i, fn := range fns {
		fn := fn
		t := queue.Task{
			Index: i,
			Fn:    func() (any, error) { return fn(ctx) },
			Reply: reply,
		}
		if !p.queue.Enqueue(ctx, t) {
			metrics.RecordPoolTaskInline()
			t.Execute()
		}
	}

	values := make([]any, len(fns))
	errs := make([]error, len(fns))
	for received := 0; received < len(fns); received++ {
		select {
		case res := <-reply:
			values[res.Index] = res.Value
			errs[res.Index] = res.Err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return values, nil
}

// Shutdown closes the queue, lets workers drain it and waits for them.
// It is safe to call more than once and on a pool that was never started.
func (p *Pool) Shutdown(ctx context.Context) error {
	var err error
	p.stopOnce.Do(func() {
		if cerr := p.queue.Close(); cerr != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(cerr))
		}

		if p.cancel == nil {
			return
		}

		shutdownCtx, cancel := context.WithTimeout(ctx, p.shutdownTimeout)
		defer cancel()

		for i, w := range p.workers {
			if werr := w.Shutdown(shutdownCtx); werr != nil {
				p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
				err = werr
				break
			}
		}

		p.cancel()
		metrics.UpdatePoolWorkers(0)
	})
	return err
}
