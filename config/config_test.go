package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Carmen-Shannon/dust-bunny/common"
	"github.com/Carmen-Shannon/dust-bunny/engine/input"
	"github.com/Carmen-Shannon/dust-bunny/engine/renderer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	bt, err := cfg.BackendType()
	require.NoError(t, err)
	assert.Equal(t, renderer.BackendTypeWGPU, bt)
	assert.Equal(t, 0, cfg.Channel.Capacity)
	assert.Equal(t, 100*time.Millisecond, cfg.Simulation.Interval)
	assert.Equal(t, 5, cfg.Simulation.Bodies)
	assert.Equal(t, renderer.MSAAOff, cfg.MSAA())
}

func TestParseOverridesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
window:
  title: orbit
  width: 640
renderer:
  backend: software
  msaa: 4
  background: "#102030"
  foreground: SteelBlue
camera:
  pan_button: middle
simulation:
  interval: 250ms
  bodies: 8
channel:
  capacity: 2
log_level: debug
`))
	require.NoError(t, err)

	assert.Equal(t, "orbit", cfg.Window.Title)
	assert.Equal(t, 640, cfg.Window.Width)
	assert.Equal(t, 720, cfg.Window.Height, "unset fields keep their defaults")
	assert.Equal(t, 250*time.Millisecond, cfg.Simulation.Interval)
	assert.Equal(t, 8, cfg.Simulation.Bodies)
	assert.Equal(t, float32(250), cfg.Simulation.OrbitRadius)
	assert.Equal(t, 2, cfg.Channel.Capacity)
	assert.Equal(t, renderer.MSAA4x, cfg.MSAA())

	bt, err := cfg.BackendType()
	require.NoError(t, err)
	assert.Equal(t, renderer.BackendTypeSoftware, bt)

	button, err := cfg.PanButton()
	require.NoError(t, err)
	assert.Equal(t, input.MouseButtonMiddle, button)

	assert.Equal(t, [4]uint8{0x10, 0x20, 0x30, 0xff}, cfg.Renderer.Background.RGBA8())
	assert.Equal(t, [4]uint8{70, 130, 180, 255}, cfg.Renderer.Foreground.RGBA8())
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"unknown field", "windw:\n  width: 1\n", "windw"},
		{"bad backend", "renderer:\n  backend: vulkan\n", "unknown backend"},
		{"bad msaa", "renderer:\n  msaa: 2\n", "msaa"},
		{"bad colour", "renderer:\n  background: notacolour\n", "unknown name"},
		{"bad hex", "renderer:\n  background: \"#12345\"\n", "hex digits"},
		{"zero width", "window:\n  width: 0\n", "window size"},
		{"negative capacity", "channel:\n  capacity: -1\n", "capacity"},
		{"zero interval", "simulation:\n  interval: 0s\n", "interval"},
		{"bad duration", "simulation:\n  interval: soon\n", "time.Duration"},
		{"bad log level", "log_level: loud\n", "log_level"},
		{"bad pan button", "camera:\n  pan_button: thumb\n", "mouse button"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidateReportsEveryProblem(t *testing.T) {
	cfg := Default()
	cfg.Camera.Scale = 0
	cfg.Simulation.Bodies = -1

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "camera scale")
	assert.Contains(t, err.Error(), "simulation bodies")
}

func TestLoad(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	path := filepath.Join(t.TempDir(), "viewer.yaml")
	require.NoError(t, os.WriteFile(path, []byte("profiling: true\nframe_limit: 60\n"), 0o644))
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Profiling)
	assert.Equal(t, 60.0, cfg.FrameLimit)

	require.NoError(t, os.WriteFile(path, []byte("window: [1, 2]\n"), 0o644))
	_, err = Load(path)
	assert.ErrorContains(t, err, path)
}

func TestEmptyDocument(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestColorRoundTripsText(t *testing.T) {
	c := MustParseColor("#FF000080")
	assert.Equal(t, common.Color{R: 1, G: 0, B: 0, A: float32(0x80) / 255}, c.Color)

	out, err := yaml.Marshal(struct {
		C Color `yaml:"c"`
	}{MustParseColor("Gold")})
	require.NoError(t, err)
	assert.Equal(t, "c: gold\n", string(out))

	assert.Panics(t, func() { MustParseColor("nope") })
}
