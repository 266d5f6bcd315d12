package config

import "errors"

var (
	// ErrInvalidConfig wraps a kitcast config that loaded but failed validation,
	// e.g. a negative rate_limit_rps or an unknown log_format.
	ErrInvalidConfig = errors.New("invalid kitcast config")
	// ErrLoadConfig wraps failures reading the .env, YAML or KITCAST_* layers.
	ErrLoadConfig = errors.New("load kitcast config")
)
