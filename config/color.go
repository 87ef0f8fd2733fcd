package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Carmen-Shannon/dust-bunny/common"
	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

// Color is a colour written in YAML as a CSS colour name ("steelblue") or as "#rrggbb" / "#rrggbbaa".
type Color struct {
	common.Color
	text string
}

// ParseColor parses a CSS colour name or a hex colour.
//
// Parameters:
//   - s: the colour text
//
// Returns:
//   - Color: the parsed colour
//   - error: an error if s is neither a known name nor valid hex
func ParseColor(s string) (Color, error) {
	text := strings.TrimSpace(s)
	if strings.HasPrefix(text, "#") {
		c, err := parseHex(text[1:])
		if err != nil {
			return Color{}, fmt.Errorf("color %q: %w", s, err)
		}
		return Color{Color: c, text: text}, nil
	}
	named, ok := colornames.Map[strings.ToLower(text)]
	if !ok {
		return Color{}, fmt.Errorf("color %q: unknown name", s)
	}
	return Color{
		Color: common.Color{
			R: float32(named.R) / 255,
			G: float32(named.G) / 255,
			B: float32(named.B) / 255,
			A: float32(named.A) / 255,
		},
		text: strings.ToLower(text),
	}, nil
}

// MustParseColor is ParseColor for constants; it panics on error.
func MustParseColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

func parseHex(hex string) (common.Color, error) {
	if len(hex) != 6 && len(hex) != 8 {
		return common.Color{}, fmt.Errorf("want 6 or 8 hex digits, got %d", len(hex))
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return common.Color{}, err
	}
	if len(hex) == 6 {
		v = v<<8 | 0xff
	}
	channel := func(shift uint) float32 {
		return float32((v>>shift)&0xff) / 255
	}
	return common.Color{R: channel(24), G: channel(16), B: channel(8), A: channel(0)}, nil
}

func (c Color) String() string {
	return c.text
}

// UnmarshalYAML decodes a colour from a scalar node.
func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseColor(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*c = parsed
	return nil
}

// MarshalYAML encodes the colour as the text it was parsed from.
func (c Color) MarshalYAML() (any, error) {
	return c.text, nil
}
