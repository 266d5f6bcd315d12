// Package types contains common types used across the application
package types

import "github.com/okian/kitcast/internal/domain/gear"

// BatchItem is one planned scenario of a batch
type BatchItem struct {
	JobID string        `json:"job_id"`
	Index int           `json:"index"`
	Plan  gear.WearPlan `json:"plan"`
}

// BatchResponse carries every plan of a batch in request order
type BatchResponse struct {
	BatchID string      `json:"batch_id"`
	Results []BatchItem `json:"results"`
}
