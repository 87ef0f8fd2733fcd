// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import (
	"fmt"

	"github.com/chewxy/math32"
)

// Vector2 is a 2-component float32 value used for world and screen coordinates alike.
// It has value semantics: every operation returns a new Vector2 and never mutates the receiver.
type Vector2 struct {
	X float32
	Y float32
}

// Vec2 is shorthand for constructing a Vector2.
//
// Parameters:
//   - x: the X component
//   - y: the Y component
//
// Returns:
//   - Vector2: the new vector
func Vec2(x, y float32) Vector2 {
	return Vector2{X: x, Y: y}
}

// Add returns the componentwise sum v + o.
func (v Vector2) Add(o Vector2) Vector2 {
	return Vector2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns the componentwise difference v - o.
func (v Vector2) Sub(o Vector2) Vector2 {
	return Vector2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Mul returns v scaled by s.
func (v Vector2) Mul(s float32) Vector2 {
	return Vector2{X: v.X * s, Y: v.Y * s}
}

// Div returns v divided by s. Dividing by zero yields non-finite components, as with plain float division.
func (v Vector2) Div(s float32) Vector2 {
	return Vector2{X: v.X / s, Y: v.Y / s}
}

// Neg returns -v.
func (v Vector2) Neg() Vector2 {
	return Vector2{X: -v.X, Y: -v.Y}
}

// FlipY returns v with its Y component negated.
// Used to move between screen space (Y grows downward) and world space (Y grows upward).
func (v Vector2) FlipY() Vector2 {
	return Vector2{X: v.X, Y: -v.Y}
}

// Len returns the Euclidean length of v.
func (v Vector2) Len() float32 {
	return math32.Hypot(v.X, v.Y)
}

// Round returns v with both components rounded to the nearest integer, halves away from zero.
func (v Vector2) Round() Vector2 {
	return Vector2{X: math32.Round(v.X), Y: math32.Round(v.Y)}
}

// IsFinite reports whether both components are neither NaN nor infinite.
func (v Vector2) IsFinite() bool {
	return !math32.IsNaN(v.X) && !math32.IsNaN(v.Y) && !math32.IsInf(v.X, 0) && !math32.IsInf(v.Y, 0)
}

// ApproxEqual reports whether v and o differ by at most tol in each component.
//
// Parameters:
//   - o: the vector to compare against
//   - tol: the absolute per-component tolerance
//
// Returns:
//   - bool: true if both components are within tol
func (v Vector2) ApproxEqual(o Vector2, tol float32) bool {
	return math32.Abs(v.X-o.X) <= tol && math32.Abs(v.Y-o.Y) <= tol
}

func (v Vector2) String() string {
	return fmt.Sprintf("(%g, %g)", v.X, v.Y)
}

// Color is a straight (non-premultiplied) RGBA colour with components in [0, 1].
// Both backends consume it: the software rasterizer converts it to 8-bit RGBA, the GPU backend
// uses it as the clear value and as the circle fill uniform.
type Color struct {
	R, G, B, A float32
}

// RGBA8 returns the colour as 8-bit components, clamping out-of-range values.
//
// Returns:
//   - [4]uint8: the R, G, B, A bytes
func (c Color) RGBA8() [4]uint8 {
	conv := func(f float32) uint8 {
		return uint8(math32.Round(math32.Min(math32.Max(f, 0), 1) * 255))
	}
	return [4]uint8{conv(c.R), conv(c.G), conv(c.B), conv(c.A)}
}
