package scenarios

import "time"

// Endpoints exercised by the checker.
const (
	EndpointWearPlan = "/v1/wear-plan"
	EndpointGear     = "/v1/gear"
	EndpointBatch    = "/v1/batch"
	EndpointHealth   = "/healthz"
)

// Generator ranges, in °F, mph, inches/hour and percent.
const (
	minTemperature   = -20.0
	temperatureRange = 120.0
	feelsLikeSpread  = 15.0
	maxWindSpeed     = 40.0
	maxGustExtra     = 25.0
	maxPrecipitation = 0.5
	percentRange     = 100.0
)

// Runner configuration constants.
const (
	retryAfterDefault   = time.Second
	maxRateLimitRetry   = 3
	directoryPermission = 0750
	logFilePermission   = 0600
)
