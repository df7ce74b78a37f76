package engine

import (
	"errors"
	"log/slog"
	"time"

	"github.com/mpn-kit/mpn-go/pkg/classify"
	"github.com/mpn-kit/mpn-go/pkg/trace"
)

// ErrInvalidConfig is returned when a Config fails validation.
var ErrInvalidConfig = errors.New("invalid engine config")

// Config configures an Engine.
type Config struct {
	// Logger receives operational debug output. Nil disables it.
	Logger *slog.Logger

	// Tracer receives one event per engine call. Nil disables tracing.
	Tracer trace.Logger

	// Cache memoizes classifications by normalized part number.
	Cache bool

	// CacheTTL is how long a classification stays cached.
	CacheTTL time.Duration

	// CacheCleanup is how often expired entries are purged.
	CacheCleanup time.Duration

	// Workers bounds the parallelism of the batch helpers.
	Workers int
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		CacheTTL:     classify.DefaultCacheTTL,
		CacheCleanup: classify.DefaultCleanupInterval,
		Workers:      4,
	}
}

// Validate checks if the config is valid.
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return ErrInvalidConfig
	}
	if c.Cache && (c.CacheTTL < 0 || c.CacheCleanup < 0) {
		return ErrInvalidConfig
	}
	return nil
}
