package simulation

import (
	"testing"

	"github.com/Carmen-Shannon/dust-bunny/common"
	"github.com/Carmen-Shannon/dust-bunny/engine/instruction"
	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrbitDefaults(t *testing.T) {
	o := NewOrbit()
	b := instruction.NewBuilder(0)

	o.Step(0, b)
	batch := b.Batch()

	require.Len(t, batch, 5)
	first, ok := batch[0].(instruction.Circle)
	require.True(t, ok)
	assert.True(t, first.Position.ApproxEqual(common.Vec2(250, 0), 1e-3))
	assert.Equal(t, float32(50), first.Radius)

	for _, in := range batch {
		c := in.(instruction.Circle)
		assert.InDelta(t, 250, c.Position.Len(), 1e-2)
	}
}

func TestOrbitAdvancesAndWraps(t *testing.T) {
	o := NewOrbit(WithAngularSpeed(math32.Pi), WithBodies(1))
	b := instruction.NewBuilder(0)

	o.Step(0.5, b)
	assert.InDelta(t, math32.Pi/2, o.Angle(), 1e-5)
	assert.True(t, o.Positions()[0].ApproxEqual(common.Vec2(0, 250), 1e-3))

	o.Step(2, b)
	assert.InDelta(t, math32.Pi/2, o.Angle(), 1e-4)
	assert.GreaterOrEqual(t, o.Angle(), float32(0))
	assert.Less(t, o.Angle(), 2*math32.Pi)
}

func TestOrbitWithNoBodies(t *testing.T) {
	o := NewOrbit(WithBodies(0))
	b := instruction.NewBuilder(0)
	o.Step(1, b)
	assert.Equal(t, 0, b.Len())
	assert.Panics(t, func() { NewOrbit(WithBodies(-1)) })
}

func TestOrbitCustomGeometry(t *testing.T) {
	o := NewOrbit(WithBodies(4), WithOrbitRadius(10), WithBodyRadius(2))
	pos := o.Positions()
	require.Len(t, pos, 4)
	assert.True(t, pos[1].ApproxEqual(common.Vec2(0, 10), 1e-4))
	assert.True(t, pos[2].ApproxEqual(common.Vec2(-10, 0), 1e-4))
}
