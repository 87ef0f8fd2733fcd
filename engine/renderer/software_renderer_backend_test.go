package renderer

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/Carmen-Shannon/dust-bunny/common"
	"github.com/Carmen-Shannon/dust-bunny/engine/camera"
	"github.com/Carmen-Shannon/dust-bunny/engine/instruction"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTarget struct {
	width, height int
	swaps         int
}

func (f *fakeTarget) Width() int                                 { return f.width }
func (f *fakeTarget) Height() int                                { return f.height }
func (f *fakeTarget) SurfaceDescriptor() *wgpu.SurfaceDescriptor { return nil }
func (f *fakeTarget) SwapBuffers()                               { f.swaps++ }

type fakePresenter struct {
	width, height int
	pixels        []uint8
	presents      int
	resizes       int
	released      bool
	presentErr    error
	resizeErr     error
}

func (p *fakePresenter) Present(pixels []uint8, width, height int) error {
	if p.presentErr != nil {
		return p.presentErr
	}
	p.pixels = append(p.pixels[:0], pixels...)
	p.width, p.height = width, height
	p.presents++
	return nil
}

func (p *fakePresenter) Resize(width, height int) error {
	p.resizes++
	return p.resizeErr
}

func (p *fakePresenter) Release() { p.released = true }

func (p *fakePresenter) lit(x, y int) bool {
	return p.pixels[(y*p.width+x)*4] == 255
}

var quietLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func newSoftwareRenderer(t *testing.T, w, h int, p *fakePresenter, opts ...RendererBuilderOption) Renderer {
	t.Helper()
	opts = append([]RendererBuilderOption{WithPresenter(p), WithLogger(quietLogger)}, opts...)
	r, err := NewRenderer(BackendTypeSoftware, &fakeTarget{width: w, height: h}, opts...)
	require.NoError(t, err)
	t.Cleanup(r.Release)
	return r
}

func TestSoftwareCircleIsSymmetric(t *testing.T) {
	for _, workers := range []int{1, 4} {
		p := &fakePresenter{}
		r := newSoftwareRenderer(t, 800, 600, p, WithRasterWorkers(workers))
		cam := camera.NewCamera(camera.WithViewport(800, 600))

		batch := instruction.Batch{instruction.Circle{Position: common.Vec2(0, 0), Radius: 50}}
		require.NoError(t, r.Render(batch, cam))
		require.Equal(t, 1, p.presents)

		center := cam.WorldToScreen(common.Vec2(0, 0))
		cx, cy := int(center.X), int(center.Y)
		require.True(t, p.lit(cx, cy))

		count := 0
		for y := 0; y < 600; y++ {
			for x := 0; x < 800; x++ {
				if !p.lit(x, y) {
					continue
				}
				count++
				dx, dy := x-cx, y-cy
				assert.LessOrEqual(t, max(dx, -dx), 51)
				assert.LessOrEqual(t, max(dy, -dy), 51)
				assert.True(t, p.lit(cx-dx, cy+dy), "mirror of (%d,%d) across x", x, y)
				assert.True(t, p.lit(cx+dx, cy-dy), "mirror of (%d,%d) across y", x, y)
			}
		}
		assert.Greater(t, count, 7000, "workers=%d", workers)
	}
}

func TestSoftwareClearsToBackground(t *testing.T) {
	p := &fakePresenter{}
	r := newSoftwareRenderer(t, 4, 4, p,
		WithBackground(common.Color{R: 1, G: 0, B: 0, A: 1}),
		WithForeground(common.Color{R: 0, G: 0, B: 1, A: 1}),
	)
	cam := camera.NewCamera(camera.WithViewport(4, 4))

	require.NoError(t, r.Render(nil, cam))
	for i := 0; i < len(p.pixels); i += 4 {
		assert.Equal(t, []uint8{255, 0, 0, 255}, p.pixels[i:i+4])
	}

	require.NoError(t, r.Render(instruction.Batch{instruction.Circle{Radius: 0}}, cam))
	assert.Equal(t, []uint8{0, 0, 255, 255}, p.pixels[(2*4+2)*4:(2*4+2)*4+4], "zero radius still covers one pixel")
}

func TestSoftwareInvalidInstructionLeavesCanvas(t *testing.T) {
	p := &fakePresenter{}
	r := newSoftwareRenderer(t, 16, 16, p)
	cam := camera.NewCamera(camera.WithViewport(16, 16))

	err := r.Render(instruction.Batch{
		instruction.Circle{Radius: 2},
		instruction.Circle{Radius: -1},
	}, cam)
	assert.ErrorIs(t, err, ErrInvalidInstruction)
	assert.Zero(t, p.presents)
	assert.Equal(t, FrameStats{Frames: 1, SkippedFrames: 1}, r.Stats())
}

func TestSoftwarePresenterErrors(t *testing.T) {
	p := &fakePresenter{presentErr: errors.New("context lost")}
	r := newSoftwareRenderer(t, 16, 16, p)
	cam := camera.NewCamera(camera.WithViewport(16, 16))

	err := r.Render(instruction.Batch{instruction.Circle{Radius: 2}}, cam)
	require.Error(t, err)
	assert.False(t, IsRecoverable(err))
	assert.Equal(t, uint64(1), r.Stats().SkippedFrames)
}

func TestSoftwareZeroSizeSkips(t *testing.T) {
	p := &fakePresenter{}
	r := newSoftwareRenderer(t, 16, 16, p)
	cam := camera.NewCamera(camera.WithViewport(16, 16))

	r.Resize(0, 0)
	require.NoError(t, r.Render(instruction.Batch{instruction.Circle{Radius: 2}}, cam))
	assert.Zero(t, p.presents)

	r.Resize(32, 8)
	require.NoError(t, r.Render(instruction.Batch{instruction.Circle{Radius: 2}}, cam))
	assert.Equal(t, 1, p.presents)
	assert.Equal(t, 32, p.width)
	assert.Equal(t, 8, p.height)
	assert.Len(t, p.pixels, 32*8*4)

	stats := r.Stats()
	assert.Equal(t, uint64(2), stats.Frames)
	assert.Equal(t, uint64(1), stats.Presents)
	assert.Equal(t, uint64(1), stats.DrawCalls)
	assert.Equal(t, uint64(1), stats.SkippedFrames)
}

func TestSoftwarePresenterResizeFailure(t *testing.T) {
	p := &fakePresenter{resizeErr: errors.New("no memory")}
	r := newSoftwareRenderer(t, 16, 16, p)

	require.NoError(t, r.Render(nil, camera.NewCamera()))
	assert.Zero(t, p.presents)
}

func TestSoftwareRelease(t *testing.T) {
	p := &fakePresenter{}
	r := newSoftwareRenderer(t, 16, 16, p)

	r.Release()
	r.Release()
	assert.True(t, p.released)
	assert.NoError(t, r.Render(nil, camera.NewCamera()))
	assert.Equal(t, FrameStats{}, r.Stats())
}

func TestNewRendererErrors(t *testing.T) {
	_, err := NewRenderer(BackendTypeSoftware, nil)
	assert.Error(t, err)

	_, err = NewRenderer(RendererBackendType(42), &fakeTarget{width: 1, height: 1}, WithLogger(quietLogger))
	assert.ErrorIs(t, err, ErrUnknownBackend)

	_, err = NewRenderer(BackendTypeWGPU, &fakeTarget{width: 1, height: 1}, WithLogger(quietLogger))
	assert.Error(t, err, "a target without a surface descriptor cannot host the GPU backend")
}
