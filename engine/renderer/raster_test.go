package renderer

import (
	"testing"

	"github.com/Carmen-Shannon/dust-bunny/common"
	"github.com/Carmen-Shannon/dust-bunny/engine/camera"
	"github.com/Carmen-Shannon/dust-bunny/engine/instruction"
	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBands(t *testing.T) {
	assert.Nil(t, bands(0, 4))
	assert.Equal(t, [][2]int{{0, 10}}, bands(10, 1))
	assert.Equal(t, [][2]int{{0, 4}, {4, 7}, {7, 10}}, bands(10, 3))
	assert.Len(t, bands(3, 8), 3, "never more bands than rows")

	covered := 0
	for _, b := range bands(601, 7) {
		assert.Equal(t, covered, b[0])
		covered = b[1]
	}
	assert.Equal(t, 601, covered)
}

func TestDiscPainter(t *testing.T) {
	cam := camera.NewCamera(camera.WithViewport(800, 600), camera.WithScale(0.01))
	p := &discPainter{cam: cam}

	require.NoError(t, p.Circle(instruction.Circle{Position: common.Vec2(100, 0), Radius: 50}))
	require.Len(t, p.discs, 1)
	assert.Equal(t, disc{cx: 401, cy: 300, r: 1}, p.discs[0], "radius is floored at one pixel")

	assert.ErrorIs(t, p.Circle(instruction.Circle{Position: common.Vec2(math32.NaN(), 0), Radius: 1}), ErrInvalidInstruction)
	assert.ErrorIs(t, p.Circle(instruction.Circle{Radius: -1}), ErrInvalidInstruction)
	assert.ErrorIs(t, p.Circle(instruction.Circle{Radius: math32.Inf(1)}), ErrInvalidInstruction)
	assert.Len(t, p.discs, 1)
}

func TestRasterizeRowsClipsToBand(t *testing.T) {
	var c canvas
	c.resize(20, 20)
	white := [4]uint8{255, 255, 255, 255}

	c.rasterizeRows([]disc{{cx: 10, cy: 10, r: 5}}, 0, 8, white)

	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			set := c.pix[(y*20+x)*4] == 255
			if y >= 8 {
				assert.False(t, set, "pixel (%d,%d) outside the band", x, y)
				continue
			}
			dx, dy := x-10, y-10
			assert.Equal(t, dx*dx+dy*dy <= 25, set, "pixel (%d,%d)", x, y)
		}
	}
}

func TestRasterizeRowsOffCanvas(t *testing.T) {
	var c canvas
	c.resize(16, 16)
	white := [4]uint8{255, 255, 255, 255}

	assert.NotPanics(t, func() {
		c.rasterizeRows([]disc{
			{cx: -100, cy: -100, r: 10},
			{cx: maxRasterCoord, cy: 8, r: maxRasterRadius},
			{cx: 8, cy: 30, r: 3},
		}, 0, 16, white)
	})
	for _, v := range c.pix {
		assert.Zero(t, v)
	}
}
