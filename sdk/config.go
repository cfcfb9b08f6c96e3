package sdk

import (
	"time"

	"go.uber.org/zap"
)

// ValidationMode mirrors mapper behavior on read-direction failures.
type ValidationMode string

const (
	// ValidationError rethrows the first per-field failure (default).
	ValidationError ValidationMode = "error"
	// ValidationWarning substitutes empty defaults and reports each failure
	// through OnWarning instead of failing the read.
	ValidationWarning ValidationMode = "warning"
)

// ServiceConfig holds configuration for a Service.
type ServiceConfig struct {
	// Token authenticates against the remote API.
	Token string
	// BaseURL overrides the remote endpoint, mainly for tests.
	BaseURL string
	// HTTPTimeout bounds each remote request. Zero means no timeout.
	HTTPTimeout time.Duration
	// SchemaCacheTTL bounds how long fetched base schemas are trusted.
	// Zero falls back to the 120 s default.
	SchemaCacheTTL time.Duration
	// ReadValidation selects the read-direction failure mode.
	ReadValidation ValidationMode
	// OnWarning receives per-field mapping failures in warning mode. Its
	// panics are swallowed and logged, never surfaced to the read caller.
	OnWarning func(error)
	// Logger defaults to a nop logger.
	Logger *zap.SugaredLogger
}
