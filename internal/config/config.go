// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(ctx) initializer to build a Config with defaults.
// - Load layers a .env file, an optional YAML file and KITCAST_ env vars on top.
// - External errors are wrapped with this package's sentinel errors.
package config

import (
	"context"
	"runtime"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level" validate:"oneof=debug info warn warning error"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format" validate:"oneof=text json"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr" validate:"required"`

	// WorkerCount sets the number of batch planning workers.
	WorkerCount int `koanf:"worker_count" validate:"gte=1"`

	// QueueSize bounds the in-memory batch job queue.
	QueueSize int `koanf:"queue_size" validate:"gte=1"`

	// MaxBatchSize caps the number of scenarios in one POST /v1/batch.
	MaxBatchSize int `koanf:"max_batch_size" validate:"gte=1"`

	// BatchTimeoutMS bounds how long a batch waits for its results.
	BatchTimeoutMS int `koanf:"batch_timeout_ms" validate:"gte=1"`

	// RateLimitRPS and RateLimitBurst configure the API token bucket.
	// A zero RPS disables rate limiting.
	RateLimitRPS   float64 `koanf:"rate_limit_rps" validate:"gte=0"`
	RateLimitBurst int     `koanf:"rate_limit_burst" validate:"gte=0"`

	// ShutdownTimeoutMS bounds graceful HTTP shutdown.
	ShutdownTimeoutMS int `koanf:"shutdown_timeout_ms" validate:"gte=0"`
}

// New creates a Config with defaults. Context is accepted first to
// satisfy the project-wide convention and is currently unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:          "info",
		LogFormat:         "text",
		Addr:              ":9080",
		WorkerCount:       runtime.NumCPU(),
		QueueSize:         10_000,
		MaxBatchSize:      500,
		BatchTimeoutMS:    5_000,
		RateLimitRPS:      200,
		RateLimitBurst:    400,
		ShutdownTimeoutMS: 5_000,
	}
}
