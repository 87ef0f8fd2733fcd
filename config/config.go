// Package config holds the viewer's file-based configuration. Values not present in the file keep
// their defaults; command-line flags are applied on top by the executable.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/Carmen-Shannon/dust-bunny/engine/input"
	"github.com/Carmen-Shannon/dust-bunny/engine/renderer"
	"gopkg.in/yaml.v3"
)

// Config is the full viewer configuration.
type Config struct {
	Window     WindowConfig     `yaml:"window"`
	Renderer   RendererConfig   `yaml:"renderer"`
	Camera     CameraConfig     `yaml:"camera"`
	Simulation SimulationConfig `yaml:"simulation"`
	Channel    ChannelConfig    `yaml:"channel"`
	Profiling  bool             `yaml:"profiling"`
	// FrameLimit caps the main loop in frames per second; 0 leaves it uncapped.
	FrameLimit float64 `yaml:"frame_limit"`
	LogLevel   string  `yaml:"log_level"`
}

// WindowConfig sizes and titles the window. A zero min or max bound is left unconstrained.
type WindowConfig struct {
	Title     string `yaml:"title"`
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	MinWidth  int    `yaml:"min_width"`
	MinHeight int    `yaml:"min_height"`
	MaxWidth  int    `yaml:"max_width"`
	MaxHeight int    `yaml:"max_height"`
}

// RendererConfig selects and tunes the rendering backend.
type RendererConfig struct {
	// Backend is "wgpu" or "software".
	Backend string `yaml:"backend"`
	// PresentMode is "vsync" or "uncapped".
	PresentMode          string `yaml:"present_mode"`
	MSAA                 int    `yaml:"msaa"`
	ForceFallbackAdapter bool   `yaml:"force_fallback_adapter"`
	Background           Color  `yaml:"background"`
	Foreground           Color  `yaml:"foreground"`
	RasterWorkers        int    `yaml:"raster_workers"`
}

// CameraConfig sets the initial camera and how input drives it.
type CameraConfig struct {
	Scale           float32 `yaml:"scale"`
	ZoomSensitivity float32 `yaml:"zoom_sensitivity"`
	MinScale        float32 `yaml:"min_scale"`
	PanSpeed        float32 `yaml:"pan_speed"`
	ZoomSpeed       float32 `yaml:"zoom_speed"`
	InvertScroll    bool    `yaml:"invert_scroll"`
	// PanButton is "left", "right" or "middle".
	PanButton string `yaml:"pan_button"`
}

// SimulationConfig configures the orbit producer.
type SimulationConfig struct {
	Interval     time.Duration `yaml:"interval"`
	Bodies       int           `yaml:"bodies"`
	OrbitRadius  float32       `yaml:"orbit_radius"`
	BodyRadius   float32       `yaml:"body_radius"`
	AngularSpeed float32       `yaml:"angular_speed"`
}

// ChannelConfig sizes the producer to renderer handoff. Capacity 0 makes every send a rendezvous.
type ChannelConfig struct {
	Capacity int `yaml:"capacity"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:     "dust-bunny",
			Width:     1280,
			Height:    720,
			MinWidth:  320,
			MinHeight: 240,
		},
		Renderer: RendererConfig{
			Backend:       "wgpu",
			PresentMode:   "vsync",
			MSAA:          1,
			Background:    MustParseColor("black"),
			Foreground:    MustParseColor("white"),
			RasterWorkers: 4,
		},
		Camera: CameraConfig{
			Scale:           1,
			ZoomSensitivity: 0.1,
			MinScale:        0.01,
			PanSpeed:        1,
			ZoomSpeed:       1,
			PanButton:       "left",
		},
		Simulation: SimulationConfig{
			Interval:     100 * time.Millisecond,
			Bodies:       5,
			OrbitRadius:  250,
			BodyRadius:   50,
			AngularSpeed: 2,
		},
		LogLevel: "info",
	}
}

// Load reads a YAML configuration file over the defaults and validates the result.
// An empty path or a file that does not exist yields the defaults.
//
// Parameters:
//   - path: the file to read
//
// Returns:
//   - Config: the loaded configuration
//   - error: an error if the file cannot be read or parsed, or the result is invalid
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		slog.Warn("config file not found, using defaults", "path", path)
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	if err := cfg.decode(data); err != nil {
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := cfg.decode(data); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func (c *Config) decode(data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate reports every invalid field.
//
// Returns:
//   - error: the joined field errors, or nil
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Window.Width > 0 && c.Window.Height > 0, "window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	check(c.Window.MinWidth >= 0 && c.Window.MinHeight >= 0, "window min size must not be negative")
	check(c.Window.MaxWidth >= 0 && c.Window.MaxHeight >= 0, "window max size must not be negative")

	if _, err := c.BackendType(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.PresentMode(); err != nil {
		errs = append(errs, err)
	}
	check(c.Renderer.MSAA == 1 || c.Renderer.MSAA == 4, "renderer msaa must be 1 or 4, got %d", c.Renderer.MSAA)
	check(c.Renderer.RasterWorkers >= 1, "renderer raster_workers must be at least 1, got %d", c.Renderer.RasterWorkers)

	check(c.Camera.Scale > 0, "camera scale must be positive, got %g", c.Camera.Scale)
	check(c.Camera.MinScale > 0, "camera min_scale must be positive, got %g", c.Camera.MinScale)
	check(c.Camera.ZoomSensitivity > 0 && c.Camera.ZoomSensitivity < 1, "camera zoom_sensitivity must be in (0, 1), got %g", c.Camera.ZoomSensitivity)
	if _, err := c.PanButton(); err != nil {
		errs = append(errs, err)
	}

	check(c.Simulation.Interval > 0, "simulation interval must be positive, got %s", c.Simulation.Interval)
	check(c.Simulation.Bodies >= 0, "simulation bodies must not be negative, got %d", c.Simulation.Bodies)
	check(c.Simulation.BodyRadius >= 0, "simulation body_radius must not be negative, got %g", c.Simulation.BodyRadius)

	check(c.Channel.Capacity >= 0, "channel capacity must not be negative, got %d", c.Channel.Capacity)
	check(c.FrameLimit >= 0, "frame_limit must not be negative, got %g", c.FrameLimit)
	if _, err := c.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// BackendType resolves Renderer.Backend.
func (c Config) BackendType() (renderer.RendererBackendType, error) {
	return renderer.ParseBackendType(strings.ToLower(c.Renderer.Backend))
}

// PresentMode resolves Renderer.PresentMode.
func (c Config) PresentMode() (renderer.PresentMode, error) {
	return renderer.ParsePresentMode(strings.ToLower(c.Renderer.PresentMode))
}

// MSAA resolves Renderer.MSAA.
func (c Config) MSAA() renderer.MSAASampleCount {
	if c.Renderer.MSAA == int(renderer.MSAA4x) {
		return renderer.MSAA4x
	}
	return renderer.MSAAOff
}

// PanButton resolves Camera.PanButton.
func (c Config) PanButton() (input.MouseButton, error) {
	return input.ParseMouseButton(strings.ToLower(c.Camera.PanButton))
}

// SlogLevel resolves LogLevel ("debug", "info", "warn" or "error").
func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log_level: %w", err)
	}
	return level, nil
}
