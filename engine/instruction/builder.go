package instruction

import "github.com/Carmen-Shannon/dust-bunny/common"

// Builder accumulates the instructions of one simulation frame.
// A Builder is owned by a single goroutine; the Batch it hands out is an independent copy.
type Builder struct {
	instructions []Instruction
}

// NewBuilder returns an empty Builder with room for capacity instructions.
//
// Parameters:
//   - capacity: the initial capacity hint
//
// Returns:
//   - *Builder: the new builder
func NewBuilder(capacity int) *Builder {
	return &Builder{instructions: make([]Instruction, 0, max(capacity, 0))}
}

// DrawCircle appends a Circle instruction.
//
// Parameters:
//   - position: the world-space center
//   - radius: the world-space radius
func (b *Builder) DrawCircle(position common.Vector2, radius float32) {
	b.instructions = append(b.instructions, Circle{Position: position, Radius: radius})
}

// Len returns the number of instructions accumulated so far.
func (b *Builder) Len() int {
	return len(b.instructions)
}

// Clear drops all accumulated instructions, keeping the backing storage.
func (b *Builder) Clear() {
	clear(b.instructions)
	b.instructions = b.instructions[:0]
}

// Batch returns a copy of the accumulated instructions. The builder can be cleared and reused
// without affecting batches already handed out.
//
// Returns:
//   - Batch: the owned copy
func (b *Builder) Batch() Batch {
	out := make(Batch, len(b.instructions))
	copy(out, b.instructions)
	return out
}
