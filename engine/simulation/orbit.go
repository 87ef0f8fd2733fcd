package simulation

import (
	"github.com/Carmen-Shannon/dust-bunny/common"
	"github.com/Carmen-Shannon/dust-bunny/engine/instruction"
	"github.com/chewxy/math32"
)

// Orbit is a Stepper that moves a ring of evenly spaced circles around the world origin.
type Orbit struct {
	bodies       int
	orbitRadius  float32
	bodyRadius   float32
	angularSpeed float32

	angle float32
}

var _ Stepper = &Orbit{}

// NewOrbit creates an orbit of 5 bodies of radius 50 circling at distance 250, advancing 2 rad/s.
//
// Parameters:
//   - options: optional overrides
//
// Returns:
//   - *Orbit: the new stepper with its angle at 0
func NewOrbit(options ...OrbitBuilderOption) *Orbit {
	o := &Orbit{
		bodies:       5,
		orbitRadius:  250,
		bodyRadius:   50,
		angularSpeed: 2,
	}

	for _, option := range options {
		option(o)
	}

	if o.bodies < 0 {
		panic("simulation: orbit body count must not be negative")
	}

	return o
}

// Step advances the orbit angle by angularSpeed*dt and emits one circle per body.
func (o *Orbit) Step(dt float32, b *instruction.Builder) {
	o.angle = common.WrapAngle(o.angle + o.angularSpeed*dt)

	for _, pos := range o.Positions() {
		b.DrawCircle(pos, o.bodyRadius)
	}
}

// Positions returns the current body centres in world units.
func (o *Orbit) Positions() []common.Vector2 {
	out := make([]common.Vector2, o.bodies)
	if o.bodies == 0 {
		return out
	}

	spacing := 2 * math32.Pi / float32(o.bodies)
	for i := range out {
		a := o.angle + float32(i)*spacing
		out[i] = common.Vec2(math32.Cos(a)*o.orbitRadius, math32.Sin(a)*o.orbitRadius)
	}
	return out
}

// Angle returns the current orbit phase in [0, 2π).
func (o *Orbit) Angle() float32 {
	return o.angle
}

type OrbitBuilderOption func(*Orbit)

// WithBodies sets how many circles share the orbit.
func WithBodies(n int) OrbitBuilderOption {
	return func(o *Orbit) {
		o.bodies = n
	}
}

// WithOrbitRadius sets the distance of every body from the origin.
func WithOrbitRadius(r float32) OrbitBuilderOption {
	return func(o *Orbit) {
		o.orbitRadius = r
	}
}

// WithBodyRadius sets the radius of the circle drawn for each body.
func WithBodyRadius(r float32) OrbitBuilderOption {
	return func(o *Orbit) {
		o.bodyRadius = r
	}
}

// WithAngularSpeed sets the orbit speed in radians per second.
func WithAngularSpeed(speed float32) OrbitBuilderOption {
	return func(o *Orbit) {
		o.angularSpeed = speed
	}
}
