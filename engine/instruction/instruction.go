package instruction

import (
	"errors"

	"github.com/Carmen-Shannon/dust-bunny/common"
)

// ErrUnsupported is returned by a backend that receives an Instruction variant it cannot draw.
// Backends must surface it rather than skipping the primitive.
var ErrUnsupported = errors.New("instruction: unsupported render instruction")

// Instruction is a single drawable primitive, the wire format between the simulation producer and a renderer.
//
// The set of variants is closed: the only implementations live in this package, and each one dispatches
// to exactly one Painter method. Adding a variant means adding a Painter method, which breaks the build of
// every backend until it handles (or explicitly rejects) the new primitive.
type Instruction interface {
	// Paint dispatches the instruction to the matching Painter method.
	//
	// Parameters:
	//   - p: the painter receiving the primitive
	//
	// Returns:
	//   - error: whatever the painter returns
	Paint(p Painter) error

	// sealed prevents implementations outside this package.
	sealed()
}

// Painter is implemented by every renderer backend. It has one method per Instruction variant.
type Painter interface {
	// Circle draws a filled circle.
	//
	// Parameters:
	//   - c: the circle in world-space units
	//
	// Returns:
	//   - error: ErrUnsupported (possibly wrapped) if the painter cannot draw circles
	Circle(c Circle) error
}

// Circle is a filled circle at a world-space position with a world-space radius.
type Circle struct {
	Position common.Vector2
	Radius   float32
}

var _ Instruction = Circle{}

func (c Circle) Paint(p Painter) error {
	return p.Circle(c)
}

func (Circle) sealed() {}

// Batch is one simulation frame's worth of instructions. Order is paint order: later instructions draw on top.
type Batch []Instruction

// PaintAll dispatches every instruction of the batch, in order, to p.
// Stops at the first error and returns it.
//
// Parameters:
//   - p: the painter receiving the primitives
//
// Returns:
//   - error: the first painter error, or nil
func (b Batch) PaintAll(p Painter) error {
	for _, inst := range b {
		if err := inst.Paint(p); err != nil {
			return err
		}
	}
	return nil
}
