// Package simulation runs the producer side of the viewer: a Stepper advances some simulation state and emits
// draw instructions, and a Producer drives it at a fixed cadence, handing every frame to the consumer through a
// handoff.Channel.
package simulation

import (
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/dust-bunny/engine/handoff"
	"github.com/Carmen-Shannon/dust-bunny/engine/instruction"
)

// Stepper advances a simulation by dt seconds and records what should be drawn for the new state.
type Stepper interface {
	// Step advances the simulation and appends the frame's draw instructions to b.
	// b is empty when Step is called.
	//
	// Parameters:
	//   - dt: elapsed wall-clock time since the previous step, in seconds (0 on the first step)
	//   - b: the builder collecting the frame's instructions
	Step(dt float32, b *instruction.Builder)
}

// Producer is the simulation loop. It owns its Stepper exclusively and shares nothing with the consumer
// except the channel it sends on.
type Producer interface {
	// Run steps the simulation once immediately, then once per interval, sending every frame to the channel.
	// Run blocks until the consumer closes the channel, which is the only way it ends.
	Run()

	// Steps returns how many frames have been produced. Safe to call from any goroutine.
	Steps() uint64

	// Interval returns the configured time between steps.
	Interval() time.Duration
}

type producerImpl struct {
	channel  *handoff.Channel
	stepper  Stepper
	interval time.Duration
	logger   *slog.Logger

	steps atomic.Uint64
	now   func() time.Time
}

var _ Producer = &producerImpl{}

// NewProducer creates a Producer that feeds ch with frames produced by stepper.
// The default interval is 100ms.
//
// Parameters:
//   - ch: the channel to send batches on
//   - stepper: the simulation to advance
//   - options: optional configuration
//
// Returns:
//   - Producer: the new producer, not yet running
func NewProducer(ch *handoff.Channel, stepper Stepper, options ...ProducerBuilderOption) Producer {
	p := &producerImpl{
		channel:  ch,
		stepper:  stepper,
		interval: 100 * time.Millisecond,
		logger:   slog.Default(),
		now:      time.Now,
	}

	for _, option := range options {
		option(p)
	}

	if p.interval <= 0 {
		panic("simulation: producer interval must be positive")
	}

	return p
}

func (p *producerImpl) Run() {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	builder := instruction.NewBuilder(0)
	last := p.now()
	var dt float32

	p.logger.Debug("producer started", "interval", p.interval)
	for {
		builder.Clear()
		p.stepper.Step(dt, builder)
		batch := builder.Batch()
		p.steps.Add(1)

		if err := p.channel.Send(batch); err != nil {
			if errors.Is(err, handoff.ErrClosed) {
				p.logger.Info("producer stopping, consumer closed the channel", "steps", p.steps.Load())
				return
			}
			p.logger.Error("producer send failed", "error", err)
			return
		}

		<-ticker.C
		now := p.now()
		dt = float32(now.Sub(last).Seconds())
		last = now
	}
}

func (p *producerImpl) Steps() uint64 {
	return p.steps.Load()
}

func (p *producerImpl) Interval() time.Duration {
	return p.interval
}
