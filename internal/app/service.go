// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	jobqueue "github.com/okian/kitcast/internal/adapters/mq/queue"
	workerpool "github.com/okian/kitcast/internal/adapters/mq/worker"
	"github.com/okian/kitcast/internal/domain/gear"
	"github.com/okian/kitcast/internal/domain/model"
	"github.com/okian/kitcast/internal/domain/types"
	"github.com/okian/kitcast/pkg/logger"
	"github.com/okian/kitcast/pkg/metrics"
)

const stopTimeout = 10 * time.Second

// planningAdapter lets pool workers plan through the service so batch
// scenarios are measured like single requests.
type planningAdapter struct {
	svc *Service
}

func (a *planningAdapter) WearPlan(sport gear.Sport, w gear.Observation, p *gear.ComfortProfile, wc *gear.WearContext, o *gear.Overrides) gear.WearPlan {
	return a.svc.plan(model.PlanRequest{Sport: sport, Weather: w, Profile: p, Context: wc, Overrides: o})
}

// Service implements the API dependencies for the planning service.
type Service struct {
	mu sync.RWMutex

	// Core components
	engine *gear.Engine
	queue  *jobqueue.InMemoryQueue
	pool   *workerpool.Pool

	// Configuration
	workerCount  int
	queueSize    int
	maxBatchSize int
	batchTimeout time.Duration

	// State
	started   bool
	startedAt time.Time
	cancel    context.CancelFunc

	// Counters
	plans       atomic.Int64
	suggestions atomic.Int64
	batches     atomic.Int64

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of batch worker goroutines.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum number of queued batch jobs.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithMaxBatchSize caps the number of scenarios in one batch.
func WithMaxBatchSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.maxBatchSize = size
		}
	}
}

// WithBatchTimeout bounds how long PlanBatch waits for its results.
func WithBatchTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.batchTimeout = d
		}
	}
}

// WithEngine replaces the default planning engine.
func WithEngine(e *gear.Engine) Option {
	return func(s *Service) {
		if e != nil {
			s.engine = e
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		engine:       gear.NewEngine(),
		workerCount:  runtime.NumCPU(),
		queueSize:    10_000,
		maxBatchSize: 500,
		batchTimeout: 5 * time.Second,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}

	return s
}

// Start initializes and starts the batch queue and worker pool.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	s.logger.Info(ctx, "starting planning service...")

	// The pool outlives ctx so batches accepted during a graceful HTTP
	// shutdown still get planned; Stop drains the queue and ends it.
	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.cancel = cancel
	s.queue = jobqueue.NewInMemoryQueue(jobqueue.WithCapacity(s.queueSize))
	s.pool = workerpool.NewPool(s.workerCount, s.queue, &planningAdapter{svc: s}, s.logger)
	s.pool.Start(runCtx)

	s.started = true
	s.startedAt = time.Now()
	s.logger.Info(ctx, "planning service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("maxBatchSize", s.maxBatchSize),
	)

	return nil
}

// Stop gracefully shuts down the worker pool.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()

	s.logger.Info(ctx, "stopping planning service...")

	if err := s.pool.Shutdown(ctx); err != nil {
		s.logger.Warn(ctx, "worker pool shutdown incomplete", logger.Error(err))
	}
	s.cancel()

	s.started = false
	s.logger.Info(ctx, "planning service stopped")
}

// WearPlan computes a plan for one scenario.
func (s *Service) WearPlan(ctx context.Context, req model.PlanRequest) (gear.WearPlan, error) {
	if !req.Sport.Valid() {
		return gear.WearPlan{}, fmt.Errorf("%w: %q", ErrInvalidSport, req.Sport)
	}
	plan := s.plan(req)
	s.logger.Debug(ctx, "wear plan computed",
		logger.String("sport", string(req.Sport)),
		logger.Float64("effective_temp", plan.EffectiveTemp),
		logger.String("confidence", string(plan.Confidence)),
	)
	return plan, nil
}

// GearSuggestions computes the flattened wear list and pack list for one scenario.
func (s *Service) GearSuggestions(ctx context.Context, req model.PlanRequest) (gear.GearSuggestion, error) {
	if !req.Sport.Valid() {
		return gear.GearSuggestion{}, fmt.Errorf("%w: %q", ErrInvalidSport, req.Sport)
	}
	start := time.Now()
	sug := s.engine.GearSuggestions(req.Sport, req.Weather, req.Profile, req.Context)
	s.observe(req.Sport, sug.WearPlan, start)
	s.suggestions.Add(1)
	metrics.RecordSuggestion(string(req.Sport))

	s.logger.Debug(ctx, "gear suggestions computed",
		logger.String("sport", string(req.Sport)),
		logger.Int("wear", len(sug.Wear)),
		logger.Int("pack", len(sug.Pack)),
	)
	return sug, nil
}

// NormalizeProfile coerces arbitrary input into a valid comfort profile.
func (s *Service) NormalizeProfile(ctx context.Context, raw any) gear.ComfortProfile {
	p := gear.NormalizeComfortProfile(raw)
	metrics.RecordProfileNormalized()
	s.logger.Debug(ctx, "comfort profile normalized",
		logger.String("temperature_preference", string(p.TemperaturePreference)),
		logger.String("wind_sensitivity", string(p.WindSensitivity)),
		logger.String("precipitation_preference", string(p.PrecipitationPreference)),
	)
	return p
}

// PlanBatch fans the scenarios out to the worker pool and returns their
// plans in request order.
func (s *Service) PlanBatch(ctx context.Context, reqs []model.PlanRequest) (types.BatchResponse, error) {
	s.mu.RLock()
	started, q := s.started, s.queue
	s.mu.RUnlock()

	switch {
	case !started:
		return types.BatchResponse{}, ErrNotStarted
	case len(reqs) == 0:
		metrics.RecordBatchRejected("empty")
		return types.BatchResponse{}, ErrEmptyBatch
	case len(reqs) > s.maxBatchSize:
		metrics.RecordBatchRejected("too_large")
		return types.BatchResponse{}, fmt.Errorf("%w: %d > %d", ErrBatchTooLarge, len(reqs), s.maxBatchSize)
	case q.Cap()-q.Len() < len(reqs):
		metrics.RecordBatchRejected("backpressure")
		return types.BatchResponse{}, ErrBackpressure
	}
	for i, r := range reqs {
		if !r.Sport.Valid() {
			metrics.RecordBatchRejected("invalid_sport")
			return types.BatchResponse{}, fmt.Errorf("%w: scenario %d: %q", ErrInvalidSport, i, r.Sport)
		}
	}

	batchID := uuid.NewString()
	reply := make(chan model.Result, len(reqs))
	jobIDs := make([]string, len(reqs))
	now := time.Now()

	for i, r := range reqs {
		jobIDs[i] = uuid.NewString()
		err := q.Enqueue(ctx, model.Job{
			ID:         jobIDs[i],
			BatchID:    batchID,
			Index:      i,
			Request:    r,
			EnqueuedAt: now,
			Reply:      reply,
		})
		if err != nil {
			// Jobs already queued still complete into the buffered reply channel.
			metrics.RecordBatchRejected("backpressure")
			s.logger.Warn(ctx, "batch rejected mid-enqueue",
				logger.String("batch_id", batchID),
				logger.Int("enqueued", i),
				logger.Error(err),
			)
			return types.BatchResponse{}, fmt.Errorf("%w: %w", ErrBackpressure, err)
		}
	}

	timer := time.NewTimer(s.batchTimeout)
	defer timer.Stop()

	items := make([]types.BatchItem, len(reqs))
	for received := 0; received < len(reqs); received++ {
		select {
		case r := <-reply:
			items[r.Index] = types.BatchItem{JobID: r.JobID, Index: r.Index, Plan: r.Plan}
		case <-timer.C:
			metrics.RecordErrorByComponent("service", "batch_timeout")
			return types.BatchResponse{}, fmt.Errorf("%w: %d of %d plans ready", ErrBatchTimeout, received, len(reqs))
		case <-ctx.Done():
			return types.BatchResponse{}, ctx.Err()
		}
	}

	s.batches.Add(1)
	metrics.RecordBatch(len(reqs))
	s.logger.Debug(ctx, "batch planned",
		logger.String("batch_id", batchID),
		logger.Int("size", len(reqs)),
	)

	return types.BatchResponse{BatchID: batchID, Results: items}, nil
}

// MaxBatchSize returns the configured batch cap.
func (s *Service) MaxBatchSize() int {
	return s.maxBatchSize
}

// plan runs the engine and records metrics. Safe for concurrent use.
func (s *Service) plan(req model.PlanRequest) gear.WearPlan {
	start := time.Now()
	plan := s.engine.WearPlan(req.Sport, req.Weather, req.Profile, req.Context, req.Overrides)
	s.observe(req.Sport, plan, start)
	return plan
}

func (s *Service) observe(sport gear.Sport, plan gear.WearPlan, start time.Time) {
	metrics.RecordPlanningLatency(float64(time.Since(start).Microseconds()) / 1000)
	metrics.RecordPlan(string(sport), string(plan.Confidence), plan.EffectiveTemp)
	for _, adj := range plan.Adjustments {
		metrics.RecordAdjustment(adjustmentFactor(adj))
	}
	s.plans.Add(1)
}

// adjustmentFactor strips the signed delta: "Wind chill: -4F" -> "Wind chill".
func adjustmentFactor(adj string) string {
	if i := strings.LastIndex(adj, ":"); i > 0 {
		return adj[:i]
	}
	return adj
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]any{
		"started":             s.started,
		"workerCount":         s.workerCount,
		"queueSize":           s.queueSize,
		"maxBatchSize":        s.maxBatchSize,
		"plansComputed":       s.plans.Load(),
		"suggestionsComputed": s.suggestions.Load(),
		"batchesProcessed":    s.batches.Load(),
	}

	if s.started {
		queueLen := s.queue.Len()
		stats["queueLength"] = queueLen
		stats["jobsProcessed"] = s.pool.Processed()
		stats["uptimeSeconds"] = time.Since(s.startedAt).Seconds()

		metrics.UpdateQueueSize(queueLen)
		metrics.UpdateWorkerCount(s.workerCount)
	}

	return stats
}
