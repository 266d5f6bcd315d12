package service

import "errors"

// Sentinel errors returned by the service. The API maps them to status codes.
var (
	ErrNotStarted    = errors.New("service not started")
	ErrEmptyBatch    = errors.New("batch has no scenarios")
	ErrBatchTooLarge = errors.New("batch exceeds maximum size")
	ErrBackpressure  = errors.New("batch queue is full")
	ErrBatchTimeout  = errors.New("batch timed out")
	ErrInvalidSport  = errors.New("unsupported sport")
)
