// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"golang.org/x/time/rate"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	PlanDependencies
	BatchDependencies
}

// Option configures the Server.
type Option func(*Server)

// WithRateLimit installs a shared token bucket in front of the /v1 routes.
// A non-positive rps disables limiting.
func WithRateLimit(rps float64, burst int) Option {
	return func(s *Server) {
		if rps <= 0 {
			s.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	planHandler    *PlanHandler
	batchHandler   *BatchHandler
	profileHandler *ProfileHandler

	limiter *rate.Limiter
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	s := &Server{
		healthHandler:  NewHealthHandler(),
		statsHandler:   NewStatsHandler(statsProvider),
		planHandler:    NewPlanHandler(deps),
		batchHandler:   NewBatchHandler(deps),
		profileHandler: NewProfileHandler(deps),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/metrics", s.healthHandler.HandleMetrics)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))

	s.v1(mux, "/v1/wear-plan", "wear_plan", s.planHandler.HandleWearPlan)
	s.v1(mux, "/v1/gear", "gear", s.planHandler.HandleGear)
	s.v1(mux, "/v1/batch", "batch", s.batchHandler.HandleBatch)
	s.v1(mux, "/v1/comfort-profile/normalize", "normalize_profile", s.profileHandler.HandleNormalize)
}

func (s *Server) v1(mux *http.ServeMux, path, endpoint string, h http.HandlerFunc) {
	mux.HandleFunc(path, MetricsMiddleware(RateLimitMiddleware(h, endpoint, s.limiter), endpoint))
}
