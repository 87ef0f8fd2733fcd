package renderer

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/dust-bunny/engine/camera"
	"github.com/Carmen-Shannon/dust-bunny/engine/instruction"
)

// Presenter displays a finished RGBA8 canvas. Implementations must be used from the goroutine that owns the
// graphics context.
type Presenter interface {
	// Present displays the canvas. pixels is tightly packed RGBA8 with row 0 at the top.
	//
	// Parameters:
	//   - pixels: the canvas bytes, width*height*4 long
	//   - width: the canvas width in pixels
	//   - height: the canvas height in pixels
	//
	// Returns:
	//   - error: an error if the canvas could not be displayed
	Present(pixels []uint8, width, height int) error

	// Resize reallocates the presenter's resources for a new canvas size.
	//
	// Returns:
	//   - error: an error if the resources could not be allocated
	Resize(width, height int) error

	// Release frees the presenter's resources.
	Release()
}

type softwareRendererBackendImpl struct {
	logger    *slog.Logger
	presenter Presenter

	pool    worker.DynamicWorkerPool
	workers int

	canvas     canvas
	background [4]uint8
	foreground [4]uint8
	painter    discPainter

	// presentable is false while the presenter has no valid target for the current size.
	presentable bool
	stats       FrameStats
}

var _ RendererBackend = &softwareRendererBackendImpl{}

func newSoftwareRendererBackend(presenter Presenter, r *renderer) *softwareRendererBackendImpl {
	b := &softwareRendererBackendImpl{
		logger:     r.logger,
		presenter:  presenter,
		workers:    max(r.rasterWorkers, 1),
		background: r.background.RGBA8(),
		foreground: r.foreground.RGBA8(),
	}
	if b.workers > 1 {
		b.pool = worker.NewDynamicWorkerPool(b.workers, 256, 1*time.Second)
	}
	return b
}

func (b *softwareRendererBackendImpl) Render(batch instruction.Batch, cam camera.Camera) error {
	b.stats.Frames++

	b.painter.cam = cam
	b.painter.discs = b.painter.discs[:0]
	if err := batch.PaintAll(&b.painter); err != nil {
		b.stats.SkippedFrames++
		return err
	}

	if !b.presentable || b.canvas.width == 0 || b.canvas.height == 0 {
		b.stats.SkippedFrames++
		return nil
	}

	b.rasterize(b.painter.discs)
	b.stats.DrawCalls += uint64(len(b.painter.discs))

	if err := b.presenter.Present(b.canvas.pix, b.canvas.width, b.canvas.height); err != nil {
		b.stats.SkippedFrames++
		return fmt.Errorf("software renderer: present: %w", err)
	}
	b.stats.Presents++
	return nil
}

// rasterize clears the canvas and draws discs, one band of rows per task. Each band paints the full
// batch in order, so overlapping discs keep their paint order.
func (b *softwareRendererBackendImpl) rasterize(discs []disc) {
	rows := bands(b.canvas.height, b.workers)
	if b.pool == nil || len(rows) <= 1 {
		for _, band := range rows {
			b.canvas.fillRows(band[0], band[1], b.background)
			b.canvas.rasterizeRows(discs, band[0], band[1], b.foreground)
		}
		return
	}

	// pool.Wait() only returns once workers idle out, so a WaitGroup is the per-frame barrier.
	var wg sync.WaitGroup
	for id, band := range rows {
		wg.Add(1)
		y0, y1 := band[0], band[1]
		b.pool.SubmitTask(worker.Task{
			ID: id,
			Do: func() (any, error) {
				defer wg.Done()
				b.canvas.fillRows(y0, y1, b.background)
				b.canvas.rasterizeRows(discs, y0, y1, b.foreground)
				return nil, nil
			},
		})
	}
	wg.Wait()
}

func (b *softwareRendererBackendImpl) Resize(width, height int) {
	b.canvas.resize(width, height)
	if b.canvas.width == 0 || b.canvas.height == 0 {
		b.presentable = false
		return
	}
	if err := b.presenter.Resize(b.canvas.width, b.canvas.height); err != nil {
		b.logger.Error("software renderer: presenter resize failed", "width", width, "height", height, "error", err)
		b.presentable = false
		return
	}
	b.presentable = true
}

func (b *softwareRendererBackendImpl) Stats() FrameStats {
	return b.stats
}

func (b *softwareRendererBackendImpl) Release() {
	if b.presenter != nil {
		b.presenter.Release()
		b.presenter = nil
	}
	b.pool = nil
	b.presentable = false
}
