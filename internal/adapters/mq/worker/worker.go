// Package worker runs planning jobs taken off the queue.
package worker

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/okian/kitcast/internal/domain/gear"
	"github.com/okian/kitcast/internal/domain/model"
	"github.com/okian/kitcast/pkg/logger"
	"github.com/okian/kitcast/pkg/metrics"
)

const poolShutdownTimeout = 30 * time.Second

// ErrNoReply is returned when a job carries no reply channel.
var ErrNoReply = errors.New("job has no reply channel")

// Job abstracts what workers read off the queue.
type Job = model.Job

// Planner computes wear plans. *gear.Engine satisfies it.
type Planner interface {
	WearPlan(sport gear.Sport, w gear.Observation, profile *gear.ComfortProfile, wc *gear.WearContext, o *gear.Overrides) gear.WearPlan
}

// Queue defines how workers receive jobs.
type Queue interface {
	Dequeue(ctx context.Context) <-chan Job
}

// Worker processes jobs and replies with plans.
type Worker interface {
	// Run starts the worker loop until ctx is canceled.
	Run(ctx context.Context)

	// Shutdown gracefully stops the worker.
	Shutdown(ctx context.Context) error
}

// InMemoryWorker implements Worker for processing jobs.
type InMemoryWorker struct {
	queue       Queue
	planner     Planner
	name        string
	onProcessed func()

	shutdown chan struct{}
	done     chan struct{}

	logger logger.Logger
}

// NewInMemoryWorker creates a new worker with configuration options.
func NewInMemoryWorker(queue Queue, planner Planner, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:       queue,
		planner:     planner,
		name:        "worker",
		onProcessed: func() {},
		shutdown:    make(chan struct{}),
		done:        make(chan struct{}),
	}

	for _, opt := range opts {
		opt(w)
	}

	if w.logger == nil {
		w.logger = logger.Get().Named(w.name)
	}

	return w
}

// Run starts the worker loop.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer close(w.done)

	jobs := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case job, ok := <-jobs:
			if !ok {
				return
			}
			if err := w.process(ctx, job); err != nil {
				w.logger.Error(ctx, "error processing job", logger.String("job_id", job.ID), logger.Error(err))
			}
		}
	}
}

// Shutdown gracefully stops the worker.
func (w *InMemoryWorker) Shutdown(ctx context.Context) error {
	close(w.shutdown)

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// process plans a single job and delivers the result.
func (w *InMemoryWorker) process(ctx context.Context, job Job) error { //nolint:gocritic // hugeParam: Job is passed by value for channel semantics
	start := time.Now()
	if !job.EnqueuedAt.IsZero() {
		metrics.RecordQueueWait(float64(start.Sub(job.EnqueuedAt).Microseconds()) / 1000)
	}
	defer func() {
		metrics.RecordWorkerProcessingLatency(float64(time.Since(start).Microseconds()) / 1000)
	}()

	if job.Reply == nil {
		metrics.RecordWorkerError()
		metrics.RecordErrorByComponent("worker", "no_reply")
		return ErrNoReply
	}

	req := job.Request
	plan := w.planner.WearPlan(req.Sport, req.Weather, req.Profile, req.Context, req.Overrides)
	w.onProcessed()

	select {
	case job.Reply <- model.Result{JobID: job.ID, Index: job.Index, Plan: plan}:
		return nil
	case <-ctx.Done():
		metrics.RecordWorkerError()
		metrics.RecordErrorByComponent("worker", "reply_cancelled")
		return fmt.Errorf("deliver job %s: %w", job.ID, ctx.Err())
	}
}

// Pool manages multiple workers sharing one queue.
type Pool struct {
	workers []*InMemoryWorker
	queue   Queue

	processed atomic.Int64

	logger logger.Logger
}

// NewPool creates a new worker pool. Workers log through log, or through a
// "worker-pool" logger when log is nil, tagged with their name.
func NewPool(workerCount int, queue Queue, planner Planner, log logger.Logger) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU()
	}

	pool := &Pool{
		workers: make([]*InMemoryWorker, workerCount),
		queue:   queue,
		logger:  log,
	}
	if pool.logger == nil {
		pool.logger = logger.Get().Named("worker-pool")
	}

	for i := 0; i < workerCount; i++ {
		name := "worker-" + strconv.Itoa(i)
		pool.workers[i] = NewInMemoryWorker(
			queue,
			planner,
			WithName(name),
			WithLogger(pool.logger.With(logger.String("worker", name))),
			WithOnProcessed(func() { pool.processed.Add(1) }),
		)
	}

	metrics.UpdateWorkerCount(workerCount)

	return pool
}

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	for _, w := range p.workers {
		go w.Run(ctx)
	}
}

// Size returns the number of workers.
func (p *Pool) Size() int {
	return len(p.workers)
}

// Processed returns the number of jobs planned since the pool was created.
func (p *Pool) Processed() int64 {
	return p.processed.Load()
}

// Shutdown closes the queue if it can be closed and waits for workers to exit.
func (p *Pool) Shutdown(ctx context.Context) error {
	if closer, ok := p.queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()

	var timedOut bool
	for i, w := range p.workers {
		select {
		case <-w.done:
		case <-shutdownCtx.Done():
			timedOut = true
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
		}
	}
	if timedOut {
		return fmt.Errorf("worker pool shutdown: %w", shutdownCtx.Err())
	}
	return nil
}
