// Package worker runs simulation jobs from a queue on a fixed set of goroutines.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/okian/rotosim/internal/adapters/mq/queue"
	"github.com/okian/rotosim/internal/domain/model"
	"github.com/okian/rotosim/pkg/logger"
	"github.com/okian/rotosim/pkg/metrics"
)

// Queue is the job channel the pool feeds and drains.
type Queue interface {
	Enqueue(ctx context.Context, j queue.Job) error
	Dequeue(ctx context.Context) <-chan queue.Job
	Close() error
}

// Simulator turns one job into training rows.
type Simulator interface {
	Simulate(ctx context.Context, job queue.Job) ([]model.TrainingExample, error)
}

// Sink receives the rows of one iteration. It must be safe for concurrent use.
type Sink interface {
	Add(iteration int, rows []model.TrainingExample) error
}

// Pool manages multiple workers.
type Pool struct {
	size    int
	name    string
	logger  logger.Logger
	metrics *metrics.Manager
}

// NewPool creates a worker pool. A count below one uses runtime.NumCPU().
func NewPool(workerCount int, opts ...Option) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU()
	}
	p := &Pool{
		size:   workerCount,
		name:   "worker-pool",
		logger: logger.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.Named(p.name)
	return p
}

// Size returns the number of workers.
func (p *Pool) Size() int { return p.size }

// Process feeds jobs into q, closes it, and runs the workers until the queue
// drains. The first failure cancels the remaining work and is returned.
// q is closed when Process returns and cannot be reused.
func (p *Pool) Process(ctx context.Context, q Queue, jobs []queue.Job, sim Simulator, sink Sink) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer func() { _ = q.Close() }()
		for _, j := range jobs {
			if err := q.Enqueue(gctx, j); err != nil {
				return fmt.Errorf("enqueue season %d iteration %d: %w", j.Season, j.Iteration, err)
			}
		}
		return nil
	})

	ch := q.Dequeue(gctx)
	for i := 0; i < p.size; i++ {
		w := &worker{
			name:    "worker-" + strconv.Itoa(i),
			sim:     sim,
			sink:    sink,
			logger:  p.logger,
			metrics: p.metrics,
		}
		g.Go(func() error { return w.run(gctx, ch) })
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// worker processes jobs until the channel closes or the context ends.
type worker struct {
	name    string
	sim     Simulator
	sink    Sink
	logger  logger.Logger
	metrics *metrics.Manager
}

func (w *worker) run(ctx context.Context, jobs <-chan queue.Job) error {
	w.metrics.WorkerStarted()
	defer w.metrics.WorkerStopped()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case job, ok := <-jobs:
			if !ok {
				return nil
			}
			if err := w.process(ctx, job); err != nil {
				return err
			}
		}
	}
}

func (w *worker) process(ctx context.Context, job queue.Job) error {
	rows, err := w.sim.Simulate(ctx, job)
	if err != nil {
		w.metrics.RecordError("worker", "simulate")
		w.logger.Error(ctx, "simulation failed",
			logger.String("worker", w.name),
			logger.Int("season", job.Season),
			logger.Int("iteration", job.Iteration),
			logger.Error(err),
		)
		return err
	}
	if err := w.sink.Add(job.Iteration, rows); err != nil {
		w.metrics.RecordError("worker", "sink")
		w.logger.Error(ctx, "storing rows failed",
			logger.String("worker", w.name),
			logger.Int("season", job.Season),
			logger.Int("iteration", job.Iteration),
			logger.Error(err),
		)
		return fmt.Errorf("season %d iteration %d: %w", job.Season, job.Iteration, err)
	}
	return nil
}
