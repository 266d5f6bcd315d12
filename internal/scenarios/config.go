package scenarios

import (
	"encoding/json"
	"time"

	"github.com/okian/kitcast/internal/domain/gear"
)

// Config holds configuration for a scenario check run.
type Config struct {
	BaseURL      string        // Base URL of the service
	NumScenarios int           // Number of scenarios to generate
	BatchSize    int           // Scenarios per /v1/batch call, 0 disables batches
	Workers      int           // Number of concurrent requests
	Timeout      time.Duration // HTTP request timeout
	Seed         uint64        // Generator seed, 0 picks one from the clock
	OutputFile   string        // Output file for violating scenarios
	LogFile      string        // Log file for check output
	Verbose      bool          // Log every violation as it is found
}

// Scenario is one generated request body plus a local ID for reporting.
type Scenario struct {
	ID             string               `json:"-"`
	Sport          gear.Sport           `json:"sport"`
	Weather        gear.Observation     `json:"weather"`
	ComfortProfile *gear.ComfortProfile `json:"comfort_profile,omitempty"`
	Context        *gear.WearContext    `json:"context,omitempty"`
}

type batchBody struct {
	Scenarios []Scenario `json:"scenarios"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Violation records one broken invariant on one response.
type Violation struct {
	ScenarioID string          `json:"scenario_id"`
	Endpoint   string          `json:"endpoint"`
	Rule       string          `json:"rule"`
	Detail     string          `json:"detail"`
	Request    json.RawMessage `json:"request,omitempty"`
}

// Stats holds check statistics.
type Stats struct {
	ScenariosGenerated int
	RequestsSent       int
	PlansChecked       int
	RequestsFailed     int
	RateLimited        int
	Violations         []Violation
	StartTime          time.Time
	EndTime            time.Time
	Duration           time.Duration
}
