package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/okian/kitcast/internal/scenarios"
)

// Default configuration constants.
const (
	defaultNumScenarios = 2000
	defaultBatchSize    = 50
	defaultWorkers      = 2 // multiplier for runtime.NumCPU()
	defaultTimeout      = 30 * time.Second
	defaultCheckTimeout = 10 * time.Minute
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		baseURL    = flag.String("url", "http://localhost:9080", "Base URL of the service")
		num        = flag.Int("scenarios", defaultNumScenarios, "Number of scenarios to generate")
		batchSize  = flag.Int("batch", defaultBatchSize, "Scenarios per /v1/batch request, 0 disables batches")
		workers    = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent requests")
		timeout    = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		seed       = flag.Uint64("seed", 0, "Generator seed (default: clock)")
		outputFile = flag.String("output", "", "Write violating scenarios to this JSON file")
		logFile    = flag.String("log", "", "Also append log output to this file")
		verbose    = flag.Bool("verbose", false, "Log every violation and failed request")
		help       = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		scenarios.ShowHelp()
		return 0
	}

	closer, err := scenarios.SetupLogging(*logFile, *verbose)
	if err != nil {
		_, _ = os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return 1
	}
	defer func() { _ = closer.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, defaultCheckTimeout)
	defer cancel()

	config := &scenarios.Config{
		BaseURL:      *baseURL,
		NumScenarios: *num,
		BatchSize:    *batchSize,
		Workers:      *workers,
		Timeout:      *timeout,
		Seed:         *seed,
		OutputFile:   *outputFile,
		LogFile:      *logFile,
		Verbose:      *verbose,
	}

	if _, err := scenarios.Run(ctx, config); err != nil {
		_, _ = os.Stderr.WriteString("Scenario check failed: " + err.Error() + "\n")
		return 1
	}
	return 0
}
