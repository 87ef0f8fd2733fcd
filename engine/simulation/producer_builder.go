package simulation

import (
	"log/slog"
	"time"
)

type ProducerBuilderOption func(*producerImpl)

// WithInterval sets the time between simulation steps.
//
// Parameters:
//   - interval: step period, must be positive
//
// Returns:
//   - ProducerBuilderOption: a function that sets the step interval
func WithInterval(interval time.Duration) ProducerBuilderOption {
	return func(p *producerImpl) {
		p.interval = interval
	}
}

// WithLogger sets the logger the producer reports lifecycle events to.
func WithLogger(logger *slog.Logger) ProducerBuilderOption {
	return func(p *producerImpl) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// withClock replaces the wall clock, for tests.
func withClock(now func() time.Time) ProducerBuilderOption {
	return func(p *producerImpl) {
		p.now = now
	}
}
