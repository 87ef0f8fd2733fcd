package common

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
)

func TestCoalesce(t *testing.T) {
	assert.Equal(t, 3, Coalesce(0, 0, 3, 4))
	assert.Equal(t, "a", Coalesce("", "a"))
	assert.Equal(t, 0, Coalesce[int]())
}

func TestNextPowerOfTwo(t *testing.T) {
	tests := []struct{ in, out int }{
		{-5, 1}, {0, 1}, {1, 1}, {2, 2}, {3, 4}, {5, 8}, {64, 64}, {65, 128},
	}
	for _, test := range tests {
		assert.Equal(t, test.out, NextPowerOfTwo(test.in), "n=%d", test.in)
	}
}

func TestWrapAngle(t *testing.T) {
	assert.InDelta(t, 0, WrapAngle(0), 1e-6)
	assert.InDelta(t, 1, WrapAngle(1+2*math32.Pi), 1e-5)
	assert.InDelta(t, 2*math32.Pi-1, WrapAngle(-1), 1e-5)
}

func TestVector2Arithmetic(t *testing.T) {
	a := Vec2(1, 2)
	b := Vec2(3, -4)

	assert.Equal(t, Vec2(4, -2), a.Add(b))
	assert.Equal(t, Vec2(-2, 6), a.Sub(b))
	assert.Equal(t, Vec2(2, 4), a.Mul(2))
	assert.Equal(t, Vec2(0.5, 1), a.Div(2))
	assert.Equal(t, Vec2(-1, -2), a.Neg())
	assert.Equal(t, Vec2(1, -2), a.FlipY())
	assert.InDelta(t, 5, b.Len(), 1e-6)
	assert.Equal(t, Vec2(2, -3), Vec2(1.5, -2.6).Round())

	// value semantics: operands are untouched
	assert.Equal(t, Vec2(1, 2), a)
}

func TestVector2Finite(t *testing.T) {
	assert.True(t, Vec2(1, 2).IsFinite())
	assert.False(t, Vec2(1, 0).Div(0).IsFinite())
	assert.False(t, Vec2(math32.NaN(), 0).IsFinite())
}

func TestColorRGBA8(t *testing.T) {
	assert.Equal(t, [4]uint8{255, 0, 128, 255}, Color{R: 1, G: 0, B: 0.5, A: 1}.RGBA8())
	assert.Equal(t, [4]uint8{255, 0, 0, 0}, Color{R: 2, G: -1}.RGBA8())
}
