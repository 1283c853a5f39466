// Package golden computes fair cross-timezone meeting times. It merges
// per-participant availability and chronotype sharpness into a 24-hour UTC
// timeline of scored candidate slots ("golden windows"), then ranks them.
//
// Every computation is a pure, synchronous function over the inputs: no I/O,
// no shared state, no process-wide caches. Concurrent calls are safe as long
// as the caller does not mutate a participant mid-call.
package golden

import (
	"io"
	"log/slog"
)

// defaultBoostFactor multiplies the quality score of all-available slots.
// Multiplicative (and capped at 100) so the boost shrinks as quality
// approaches the ceiling; combined with the allAvailable tie-break in the
// sort order, an all-available slot can never rank below a gapped slot of
// equal quality.
const defaultBoostFactor = 1.1

// Engine computes scored timelines for participant sets. The zero
// configuration is ready to use; options exist for logging and tuning.
type Engine struct {
	logger *slog.Logger
	boost  float64
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine's logger. The engine only logs at debug level;
// leaf computation stays silent.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithBoostFactor overrides the all-available golden-score boost. Values
// below 1 are ignored: a boost under 1 would penalize full availability and
// break ranking dominance.
func WithBoostFactor(factor float64) Option {
	return func(e *Engine) {
		if factor >= 1 {
			e.boost = factor
		}
	}
}

// New creates an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		boost:  defaultBoostFactor,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}
