// Package model contains domain models passed between layers.
package model

import (
	"time"

	"github.com/okian/kitcast/internal/domain/gear"
)

// PlanRequest is one planning scenario as accepted by the service.
type PlanRequest struct {
	Sport     gear.Sport
	Weather   gear.Observation
	Profile   *gear.ComfortProfile
	Context   *gear.WearContext
	Overrides *gear.Overrides
}

// Job is a single scenario of a batch travelling through the queue.
// The worker that takes it writes exactly one Result to Reply.
type Job struct {
	ID         string
	BatchID    string
	Index      int
	Request    PlanRequest
	EnqueuedAt time.Time
	Reply      chan<- Result
}

// Result is the outcome of a Job.
type Result struct {
	JobID string
	Index int
	Plan  gear.WearPlan
}
