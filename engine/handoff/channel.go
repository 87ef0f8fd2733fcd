package handoff

import (
	"errors"
	"sync"

	"github.com/Carmen-Shannon/dust-bunny/engine/instruction"
)

// ErrClosed is returned by Send once the consumer has closed its end of the channel.
// For the producer this is the normal shutdown signal, not a fault.
var ErrClosed = errors.New("handoff: channel closed by consumer")

// Channel hands instruction batches from a single producer goroutine to a single consumer goroutine.
//
// Capacity bounds how many batches can be in flight. With capacity 0 every Send is a rendezvous:
// the producer blocks until the consumer takes the batch with TryReceive. The consumer never blocks.
// Ownership of a batch moves with it; neither side keeps a reference after the hand-off.
type Channel struct {
	batches chan instruction.Batch

	done      chan struct{}
	closeOnce sync.Once
}

// New creates a Channel holding at most capacity in-flight batches.
// Negative capacities are treated as 0.
//
// Parameters:
//   - capacity: the number of batches that can be buffered without a waiting consumer
//
// Returns:
//   - *Channel: the new channel
func New(capacity int) *Channel {
	return &Channel{
		batches: make(chan instruction.Batch, max(capacity, 0)),
		done:    make(chan struct{}),
	}
}

// Send hands a batch to the consumer, blocking while the channel is full.
// Returns ErrClosed without delivering the batch if the consumer has closed the channel,
// including when the close happens while Send is blocked.
//
// Parameters:
//   - batch: the batch to hand over; the caller must not touch it afterwards
//
// Returns:
//   - error: nil on delivery, ErrClosed once the consumer is gone
func (c *Channel) Send(batch instruction.Batch) error {
	// A closed channel must never accept a batch, even when there is room.
	select {
	case <-c.done:
		return ErrClosed
	default:
	}

	select {
	case c.batches <- batch:
		return nil
	case <-c.done:
		return ErrClosed
	}
}

// TryReceive returns the next pending batch without blocking.
// The boolean is false when nothing new has been sent since the last successful receive.
//
// Returns:
//   - instruction.Batch: the received batch, or nil
//   - bool: true if a batch was received
func (c *Channel) TryReceive() (instruction.Batch, bool) {
	select {
	case b := <-c.batches:
		return b, true
	default:
		return nil, false
	}
}

// Close closes the consumer end. Blocked and future Sends return ErrClosed.
// Safe to call multiple times.
func (c *Channel) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
	})
}

// Closed reports whether the consumer end has been closed.
func (c *Channel) Closed() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

// Cap returns the configured capacity.
func (c *Channel) Cap() int {
	return cap(c.batches)
}
