package scenarios

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/kitcast/internal/domain/gear"
	"github.com/okian/kitcast/internal/domain/types"
	"github.com/okian/kitcast/pkg/logger"
)

// Runner drives one check run.
type Runner struct {
	config *Config
	client *HTTPClient
	log    logger.Logger

	sent        atomic.Int64
	checked     atomic.Int64
	failed      atomic.Int64
	rateLimited atomic.Int64

	mu         sync.Mutex
	violations []Violation
}

// Run executes the complete scenario check. The returned stats are valid even
// when the error is ErrViolations or ErrRequestsFailed.
func Run(ctx context.Context, config *Config) (*Stats, error) {
	r := &Runner{
		config: config,
		client: newHTTPClient(config.BaseURL, config.Timeout),
		log:    logger.Named("scenario-check"),
	}
	return r.Run(ctx)
}

// Run executes the check with the runner's config.
func (r *Runner) Run(ctx context.Context) (*Stats, error) {
	stats := &Stats{StartTime: time.Now()}
	seed := r.config.Seed
	if seed == 0 {
		seed = uint64(stats.StartTime.UnixNano())
	}

	r.log.Info(ctx, "starting kitcast scenario check",
		logger.String("baseURL", r.config.BaseURL),
		logger.Int("scenarios", r.config.NumScenarios),
		logger.Int("batchSize", r.config.BatchSize),
		logger.Int("workers", r.config.Workers),
		logger.String("timeout", r.config.Timeout.String()),
		logger.Any("seed", seed))

	if err := r.checkServiceHealth(ctx); err != nil {
		return stats, fmt.Errorf("service health check failed: %w", err)
	}

	scenarios := NewGenerator(seed).Generate(r.config.NumScenarios)
	stats.ScenariosGenerated = len(scenarios)

	if err := r.submit(ctx, scenarios); err != nil {
		return stats, fmt.Errorf("scenario submission failed: %w", err)
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	stats.RequestsSent = int(r.sent.Load())
	stats.PlansChecked = int(r.checked.Load())
	stats.RequestsFailed = int(r.failed.Load())
	stats.RateLimited = int(r.rateLimited.Load())
	r.mu.Lock()
	stats.Violations = append([]Violation(nil), r.violations...)
	r.mu.Unlock()

	if len(stats.Violations) > 0 && r.config.OutputFile != "" {
		if err := saveViolations(r.config.OutputFile, stats.Violations); err != nil {
			r.log.Warn(ctx, "failed to save violations", logger.Error(err))
		}
	}
	r.displayFinalStats(ctx, stats)

	var errs []error
	if len(stats.Violations) > 0 {
		errs = append(errs, fmt.Errorf("%w: %d", ErrViolations, len(stats.Violations)))
	}
	if stats.RequestsFailed > 0 {
		errs = append(errs, fmt.Errorf("%w: %d", ErrRequestsFailed, stats.RequestsFailed))
	}
	return stats, errors.Join(errs...)
}

func (r *Runner) checkServiceHealth(ctx context.Context) error {
	resp, err := r.client.Get(ctx, EndpointHealth)
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	if resp.status != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrUnhealthy, resp.status)
	}
	r.log.Info(ctx, "service is healthy")
	return nil
}

// submit posts every scenario individually, alternating between the wear-plan
// and gear endpoints, then again in batches when BatchSize is set.
func (r *Runner) submit(ctx context.Context, scenarios []Scenario) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(r.config.Workers, 1))

	for i, s := range scenarios {
		endpoint := EndpointWearPlan
		if i%2 == 1 {
			endpoint = EndpointGear
		}
		g.Go(func() error {
			return r.single(gctx, endpoint, s)
		})
	}

	if size := r.config.BatchSize; size > 0 {
		for start := 0; start < len(scenarios); start += size {
			chunk := scenarios[start:min(start+size, len(scenarios))]
			g.Go(func() error {
				return r.batch(gctx, chunk)
			})
		}
	}
	return g.Wait()
}

func (r *Runner) single(ctx context.Context, endpoint string, s Scenario) error {
	resp, ok, err := r.post(ctx, endpoint, s)
	if !ok {
		return err
	}

	switch endpoint {
	case EndpointGear:
		var sug gear.GearSuggestion
		if err := json.Unmarshal(resp.body, &sug); err != nil {
			r.fail(ctx, endpoint, s.ID, err)
			return nil
		}
		r.record(s, VerifyGear(s, endpoint, sug))
	default:
		var plan gear.WearPlan
		if err := json.Unmarshal(resp.body, &plan); err != nil {
			r.fail(ctx, endpoint, s.ID, err)
			return nil
		}
		r.record(s, VerifyPlan(s, endpoint, plan))
	}
	return nil
}

func (r *Runner) batch(ctx context.Context, chunk []Scenario) error {
	resp, ok, err := r.post(ctx, EndpointBatch, batchBody{Scenarios: chunk})
	if !ok {
		return err
	}

	var out types.BatchResponse
	if err := json.Unmarshal(resp.body, &out); err != nil {
		r.fail(ctx, EndpointBatch, chunk[0].ID, err)
		return nil
	}
	if len(out.Results) != len(chunk) {
		r.fail(ctx, EndpointBatch, chunk[0].ID,
			fmt.Errorf("got %d results for %d scenarios", len(out.Results), len(chunk)))
		return nil
	}
	for i, item := range out.Results {
		if item.Index != i {
			r.fail(ctx, EndpointBatch, chunk[i].ID, fmt.Errorf("result %d carries index %d", i, item.Index))
			continue
		}
		r.record(chunk[i], VerifyPlan(chunk[i], EndpointBatch, item.Plan))
	}
	return nil
}

// post sends body and retries on 429. ok is false when the response should
// not be checked; err is only set when the run itself must stop.
func (r *Runner) post(ctx context.Context, endpoint string, body any) (response, bool, error) {
	for attempt := 0; ; attempt++ {
		r.sent.Add(1)
		resp, err := r.client.Post(ctx, endpoint, body)
		if err != nil {
			if ctx.Err() != nil {
				return response{}, false, ctx.Err()
			}
			r.fail(ctx, endpoint, "", err)
			return response{}, false, nil
		}

		switch {
		case resp.status == http.StatusOK:
			return resp, true, nil
		case resp.status == http.StatusTooManyRequests && attempt < maxRateLimitRetry:
			r.rateLimited.Add(1)
			select {
			case <-ctx.Done():
				return response{}, false, ctx.Err()
			case <-time.After(resp.retryAfter):
			}
		default:
			var eb errorBody
			_ = json.Unmarshal(resp.body, &eb)
			r.fail(ctx, endpoint, "", fmt.Errorf("status %d: %s %s", resp.status, eb.Code, eb.Message))
			return response{}, false, nil
		}
	}
}

func (r *Runner) record(s Scenario, vs []Violation) {
	r.checked.Add(1)
	if len(vs) == 0 {
		return
	}
	raw, _ := json.Marshal(s)
	for i := range vs {
		vs[i].Request = raw
		if r.config.Verbose {
			r.log.Warn(context.Background(), "invariant violated",
				logger.String("scenario", vs[i].ScenarioID),
				logger.String("endpoint", vs[i].Endpoint),
				logger.String("rule", vs[i].Rule),
				logger.String("detail", vs[i].Detail))
		}
	}
	r.mu.Lock()
	r.violations = append(r.violations, vs...)
	r.mu.Unlock()
}

func (r *Runner) fail(ctx context.Context, endpoint, scenarioID string, err error) {
	r.failed.Add(1)
	r.log.Debug(ctx, "request failed",
		logger.String("endpoint", endpoint),
		logger.String("scenario", scenarioID),
		logger.Error(err))
}

// saveViolations writes violations as a JSON array.
func saveViolations(filename string, violations []Violation) error {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(violations, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal violations: %w", err)
	}
	if err := os.WriteFile(filename, append(data, '\n'), logFilePermission); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

func (r *Runner) displayFinalStats(ctx context.Context, stats *Stats) {
	var plansPerSecond float64
	if stats.Duration > 0 {
		plansPerSecond = float64(stats.PlansChecked) / stats.Duration.Seconds()
	}

	byRule := make(map[string]int)
	for _, v := range stats.Violations {
		byRule[v.Rule]++
	}

	r.log.Info(ctx, "final statistics",
		logger.Int("scenariosGenerated", stats.ScenariosGenerated),
		logger.Int("requestsSent", stats.RequestsSent),
		logger.Int("plansChecked", stats.PlansChecked),
		logger.Int("requestsFailed", stats.RequestsFailed),
		logger.Int("rateLimited", stats.RateLimited),
		logger.Int("violations", len(stats.Violations)),
		logger.Any("violationsByRule", byRule),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("plansPerSecond", plansPerSecond))
}
