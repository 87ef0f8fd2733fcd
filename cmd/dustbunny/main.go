// Command dustbunny opens a window and draws an orbiting set of circles produced by a simulation
// goroutine. Drag with the pan button to move the view and use the wheel to zoom; Escape or Q quits.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/Carmen-Shannon/dust-bunny/common"
	"github.com/Carmen-Shannon/dust-bunny/config"
	"github.com/Carmen-Shannon/dust-bunny/engine"
	"github.com/Carmen-Shannon/dust-bunny/engine/camera"
	"github.com/Carmen-Shannon/dust-bunny/engine/handoff"
	"github.com/Carmen-Shannon/dust-bunny/engine/profiler"
	"github.com/Carmen-Shannon/dust-bunny/engine/renderer"
	"github.com/Carmen-Shannon/dust-bunny/engine/simulation"
	"github.com/Carmen-Shannon/dust-bunny/engine/window"
)

func init() {
	// GLFW, OpenGL and the WebGPU surface must all be driven from the main OS thread.
	runtime.LockOSThread()
}

func main() {
	if err := run(); err != nil {
		slog.Error("dustbunny failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to a YAML config file")
	backend := flag.String("backend", "", "renderer backend: wgpu or software")
	width := flag.Int("width", 0, "window width in pixels")
	height := flag.Int("height", 0, "window height in pixels")
	profile := flag.Bool("profile", false, "log frame and memory statistics every second")
	logLevel := flag.String("log-level", "", "log level: debug, info, warn or error")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	// Flags override the file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "backend":
			cfg.Renderer.Backend = *backend
		case "width":
			cfg.Window.Width = *width
		case "height":
			cfg.Window.Height = *height
		case "profile":
			cfg.Profiling = *profile
		case "log-level":
			cfg.LogLevel = *logLevel
		}
	})
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	level, _ := cfg.SlogLevel()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	return runViewer(cfg, logger)
}

func runViewer(cfg config.Config, logger *slog.Logger) error {
	backendType, _ := cfg.BackendType()
	presentMode, _ := cfg.PresentMode()
	panButton, _ := cfg.PanButton()

	api := window.GraphicsAPIWebGPU
	if backendType == renderer.BackendTypeSoftware {
		api = window.GraphicsAPIOpenGL
	}
	windowOptions := []window.WindowBuilderOption{
		window.WithTitle(common.Coalesce(cfg.Window.Title, "dust-bunny")),
		window.WithSize(cfg.Window.Width, cfg.Window.Height),
		window.WithMinSize(cfg.Window.MinWidth, cfg.Window.MinHeight),
		window.WithGraphicsAPI(api),
		window.WithVSync(presentMode == renderer.PresentModeVSync),
		window.WithPanButton(panButton),
		window.WithLogger(logger),
	}
	if cfg.Window.MaxWidth > 0 && cfg.Window.MaxHeight > 0 {
		windowOptions = append(windowOptions, window.WithMaxSize(cfg.Window.MaxWidth, cfg.Window.MaxHeight))
	}
	win, err := window.NewWindow(windowOptions...)
	if err != nil {
		return err
	}
	defer func() {
		if err := win.Close(); err != nil {
			logger.Warn("closing window", "error", err)
		}
	}()

	r, err := renderer.NewRenderer(backendType, win,
		renderer.WithPresentMode(presentMode),
		renderer.WithMSAA(cfg.MSAA()),
		renderer.WithForceFallbackAdapter(cfg.Renderer.ForceFallbackAdapter),
		renderer.WithBackground(cfg.Renderer.Background.Color),
		renderer.WithForeground(cfg.Renderer.Foreground.Color),
		renderer.WithRasterWorkers(cfg.Renderer.RasterWorkers),
		renderer.WithLogger(logger),
	)
	if err != nil {
		return err
	}
	// Runs before win.Close; the surface must go before its window.
	defer r.Release()

	cam := camera.NewCamera(
		camera.WithScale(cfg.Camera.Scale),
		camera.WithViewport(win.Width(), win.Height()),
		camera.WithZoomSensitivity(cfg.Camera.ZoomSensitivity),
		camera.WithMinScale(cfg.Camera.MinScale),
	)
	controller := camera.NewCameraController(cam,
		camera.WithPanSpeed(cfg.Camera.PanSpeed),
		camera.WithZoomSpeed(cfg.Camera.ZoomSpeed),
		camera.WithInvertScroll(cfg.Camera.InvertScroll),
	)

	ch := handoff.New(cfg.Channel.Capacity)
	producer := simulation.NewProducer(ch,
		simulation.NewOrbit(
			simulation.WithBodies(cfg.Simulation.Bodies),
			simulation.WithOrbitRadius(cfg.Simulation.OrbitRadius),
			simulation.WithBodyRadius(cfg.Simulation.BodyRadius),
			simulation.WithAngularSpeed(cfg.Simulation.AngularSpeed),
		),
		simulation.WithInterval(cfg.Simulation.Interval),
		simulation.WithLogger(logger),
	)

	eng, err := engine.NewEngine(
		engine.WithWindow(win),
		engine.WithRenderer(r),
		engine.WithCamera(cam),
		engine.WithController(controller),
		engine.WithChannel(ch),
		engine.WithProducer(producer),
		engine.WithProfiling(cfg.Profiling),
		engine.WithProfiler(profiler.NewProfiler(profiler.WithLogger(logger))),
		engine.WithRenderFrameLimit(cfg.FrameLimit),
		engine.WithLogger(logger),
	)
	if err != nil {
		return err
	}
	return eng.Run()
}
