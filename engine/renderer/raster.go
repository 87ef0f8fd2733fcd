package renderer

import (
	"fmt"

	"github.com/Carmen-Shannon/dust-bunny/engine/camera"
	"github.com/Carmen-Shannon/dust-bunny/engine/instruction"
	"github.com/chewxy/math32"
)

// Projected discs are clamped to these bounds so the integer arithmetic of the rasterizer cannot overflow.
// A disc centred further out than maxRasterCoord with a radius of at most maxRasterRadius never reaches the canvas.
const (
	maxRasterRadius = 1 << 24
	maxRasterCoord  = 1 << 26
)

// disc is a circle resolved to screen pixels.
type disc struct {
	cx, cy int
	r      int
}

// discPainter resolves instructions into screen-space discs without touching any pixel,
// so a batch that fails to resolve leaves the canvas untouched.
type discPainter struct {
	cam   camera.Camera
	discs []disc
}

var _ instruction.Painter = &discPainter{}

func (p *discPainter) Circle(c instruction.Circle) error {
	if !c.Position.IsFinite() || math32.IsNaN(c.Radius) || math32.IsInf(c.Radius, 0) || c.Radius < 0 {
		return fmt.Errorf("%w: circle at %s with radius %g", ErrInvalidInstruction, c.Position, c.Radius)
	}
	center := p.cam.WorldToScreen(c.Position).Round()
	if !center.IsFinite() {
		return fmt.Errorf("%w: circle at %s projects outside the float range", ErrInvalidInstruction, c.Position)
	}
	r := math32.Min(math32.Round(c.Radius*p.cam.Scale()), maxRasterRadius)
	p.discs = append(p.discs, disc{
		cx: int(math32.Min(math32.Max(center.X, -maxRasterCoord), maxRasterCoord)),
		cy: int(math32.Min(math32.Max(center.Y, -maxRasterCoord), maxRasterCoord)),
		r:  max(1, int(r)),
	})
	return nil
}

// canvas is a tightly packed RGBA8 image, row 0 at the top.
type canvas struct {
	width, height int
	pix           []uint8
}

func (c *canvas) resize(width, height int) {
	c.width, c.height = max(width, 0), max(height, 0)
	n := c.width * c.height * 4
	if cap(c.pix) < n {
		c.pix = make([]uint8, n)
	}
	c.pix = c.pix[:n]
}

// fillRows sets rows [y0, y1) to col.
func (c *canvas) fillRows(y0, y1 int, col [4]uint8) {
	row := c.pix[y0*c.width*4 : y1*c.width*4]
	for i := 0; i < len(row); i += 4 {
		copy(row[i:i+4], col[:])
	}
}

// rasterizeRows draws every disc, in order, clipped to rows [y0, y1). Writes never leave that row range,
// so disjoint ranges can be rasterized concurrently.
func (c *canvas) rasterizeRows(discs []disc, y0, y1 int, col [4]uint8) {
	for _, d := range discs {
		r2 := d.r * d.r
		dyMin, dyMax := max(-d.r, y0-d.cy), min(d.r, y1-1-d.cy)
		dxMin, dxMax := max(-d.r, -d.cx), min(d.r, c.width-1-d.cx)
		for dy := dyMin; dy <= dyMax; dy++ {
			rowStart := (d.cy + dy) * c.width * 4
			for dx := dxMin; dx <= dxMax; dx++ {
				if dx*dx+dy*dy > r2 {
					continue
				}
				i := rowStart + (d.cx+dx)*4
				copy(c.pix[i:i+4], col[:])
			}
		}
	}
}

// bands splits height rows into at most n contiguous [y0, y1) ranges of near-equal size.
func bands(height, n int) [][2]int {
	if height <= 0 {
		return nil
	}
	n = min(max(n, 1), height)
	out := make([][2]int, 0, n)
	step, rem := height/n, height%n
	y := 0
	for i := range n {
		h := step
		if i < rem {
			h++
		}
		out = append(out, [2]int{y, y + h})
		y += h
	}
	return out
}
