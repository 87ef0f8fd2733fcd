package instruction

import (
	"errors"
	"fmt"
	"testing"

	"github.com/Carmen-Shannon/dust-bunny/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPainter struct {
	circles []Circle
	failAt  int
}

func (p *recordingPainter) Circle(c Circle) error {
	if p.failAt > 0 && len(p.circles)+1 == p.failAt {
		return fmt.Errorf("circle %d: %w", p.failAt, ErrUnsupported)
	}
	p.circles = append(p.circles, c)
	return nil
}

func TestBatchPaintAllKeepsOrder(t *testing.T) {
	b := NewBuilder(3)
	b.DrawCircle(common.Vec2(0, 0), 1)
	b.DrawCircle(common.Vec2(1, 0), 2)
	b.DrawCircle(common.Vec2(2, 0), 3)

	p := &recordingPainter{}
	require.NoError(t, b.Batch().PaintAll(p))
	require.Len(t, p.circles, 3)
	for i, c := range p.circles {
		assert.Equal(t, float32(i+1), c.Radius)
		assert.Equal(t, float32(i), c.Position.X)
	}
}

func TestBatchPaintAllStopsOnError(t *testing.T) {
	b := NewBuilder(0)
	for i := range 4 {
		b.DrawCircle(common.Vec2(float32(i), 0), 1)
	}

	p := &recordingPainter{failAt: 2}
	err := b.Batch().PaintAll(p)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupported))
	assert.Len(t, p.circles, 1)
}

func TestBuilderBatchIsIndependentCopy(t *testing.T) {
	b := NewBuilder(1)
	b.DrawCircle(common.Vec2(5, 5), 10)
	batch := b.Batch()

	b.Clear()
	b.DrawCircle(common.Vec2(-1, -1), 1)

	require.Len(t, batch, 1)
	assert.Equal(t, Circle{Position: common.Vec2(5, 5), Radius: 10}, batch[0])
	assert.Equal(t, 1, b.Len())
}

func TestEmptyBatchPaintsNothing(t *testing.T) {
	p := &recordingPainter{}
	assert.NoError(t, Batch(nil).PaintAll(p))
	assert.Empty(t, p.circles)
}
