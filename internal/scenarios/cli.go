package scenarios

import (
	"fmt"
	"io"
	"os"

	"github.com/okian/kitcast/pkg/logger"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// SetupLogging initializes the global logger on stdout and, when logFile is
// set, appends to that file as well. The returned closer releases the file.
func SetupLogging(logFile string, verbose bool) (io.Closer, error) {
	level := "info"
	if verbose {
		level = "debug"
	}
	if err := logger.SetLevelString(level); err != nil {
		return nil, err
	}

	if logFile == "" {
		if err := logger.Init(); err != nil {
			return nil, fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nopCloser{}, nil
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}
	if err := logger.Init(logger.WithOutput(io.MultiWriter(os.Stdout, file))); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return file, nil
}

// ShowHelp prints usage information for the scenario checker.
func ShowHelp() {
	_, _ = os.Stdout.WriteString(`kitcast Scenario Check
======================

Generates random weather scenarios, posts them to a running kitcast server
concurrently and verifies every returned plan: zones are non-empty and free of
duplicates, skiing plans carry a helmet and goggles, and confidence is one of
high, medium or low. Exits non-zero when any check fails.

Usage:
  go run ./cmd/scenario-check [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -scenarios int
        Number of scenarios to generate (default 2000)
  -batch int
        Scenarios per /v1/batch request, 0 disables batches (default 50)
  -workers int
        Number of concurrent requests (default CPU cores * 2)
  -timeout duration
        HTTP request timeout (default 30s)
  -seed uint
        Generator seed for reproducible runs (default: clock)
  -output string
        Write violating scenarios to this JSON file
  -log string
        Also append log output to this file
  -verbose
        Log every violation and failed request
  -help
        Show this help message

Examples:
  # Check a local server with default settings
  go run ./cmd/scenario-check

  # Reproduce a run and keep the failures
  go run ./cmd/scenario-check -seed 42 -output violations.json
`)
}
