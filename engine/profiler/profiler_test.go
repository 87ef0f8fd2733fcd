package profiler

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/Carmen-Shannon/dust-bunny/engine/renderer"
	"github.com/stretchr/testify/assert"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func TestTickLogsOncePerInterval(t *testing.T) {
	var buf bytes.Buffer
	clock := &fakeClock{t: time.Unix(0, 0)}
	p := NewProfiler(
		WithUpdateInterval(time.Second),
		WithLogger(slog.New(slog.NewTextHandler(&buf, nil))),
		withClock(clock.now),
	)

	for range 29 {
		clock.t = clock.t.Add(time.Second / 60)
		assert.False(t, p.Tick(renderer.FrameStats{}))
	}
	assert.Empty(t, buf.String())

	clock.t = clock.t.Add(time.Second)
	assert.True(t, p.Tick(renderer.FrameStats{Frames: 30, DrawCalls: 28, Presents: 29, SkippedFrames: 1}))
	out := buf.String()
	assert.Contains(t, out, "msg=profiler")
	assert.Contains(t, out, "renders=30")
	assert.Contains(t, out, "draws=28")
	assert.Contains(t, out, "skipped=1")

	buf.Reset()
	clock.t = clock.t.Add(2 * time.Second)
	assert.True(t, p.Tick(renderer.FrameStats{Frames: 31, DrawCalls: 29, Presents: 30, SkippedFrames: 1}))
	assert.Contains(t, buf.String(), "renders=1", "counters are reported per interval")
	assert.Contains(t, buf.String(), "skipped=0")
}

func TestWithUpdateIntervalIgnoresNonPositive(t *testing.T) {
	p := NewProfiler(WithUpdateInterval(0))
	assert.Equal(t, time.Second, p.updateInterval)
}
