package blueprint

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a straight (non-premultiplied) RGBA color with components in [0, 1].
type Color struct {
	R, G, B, A float64
}

// Palette used by the overlay. Values match the platform colors the overlay
// was originally designed against.
var (
	Clear     = Color{}
	Black     = Color{0, 0, 0, 1}
	White     = Color{1, 1, 1, 1}
	Red       = Color{1, 0, 0, 1}
	Green     = Color{0, 1, 0, 1}
	Blue      = Color{0, 0, 1, 1}
	Yellow    = Color{1, 1, 0, 1}
	Orange    = Color{1, 0.5, 0, 1}
	Purple    = Color{0.5, 0, 0.5, 1}
	Brown     = Color{0.6, 0.4, 0.2, 1}
	Cyan      = Color{0, 1, 1, 1}
	Magenta   = Color{1, 0, 1, 1}
	Gray      = Color{0.5, 0.5, 0.5, 1}
	LightGray = Color{2.0 / 3, 2.0 / 3, 2.0 / 3, 1}
	DarkGray  = Color{1.0 / 3, 1.0 / 3, 1.0 / 3, 1}
)

var namedColors = map[string]Color{
	"clear":     Clear,
	"black":     Black,
	"white":     White,
	"red":       Red,
	"green":     Green,
	"blue":      Blue,
	"yellow":    Yellow,
	"orange":    Orange,
	"purple":    Purple,
	"brown":     Brown,
	"cyan":      Cyan,
	"magenta":   Magenta,
	"gray":      Gray,
	"lightgray": LightGray,
	"darkgray":  DarkGray,
}

// RGBA returns a color with the given components.
func RGBA(r, g, b, a float64) Color { return Color{R: r, G: g, B: b, A: a} }

// WithAlpha returns c with its alpha replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// NRGBA converts c to an 8-bit straight-alpha color, clamping out-of-range
// components.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: to8(c.R), G: to8(c.G), B: to8(c.B), A: to8(c.A)}
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) { return c.NRGBA().RGBA() }

func to8(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}

// HighContrast returns an opaque color that stays readable on top of c. The
// hue is kept and the CIE lightness is pushed to the opposite end of the
// scale.
func (c Color) HighContrast() Color {
	h, chroma, l := colorful.Color{R: clamp01(c.R), G: clamp01(c.G), B: clamp01(c.B)}.Hcl()
	target := 0.95
	if l > 0.5 {
		target = 0.15
	}
	out := colorful.Hcl(h, chroma*0.5, target).Clamped()
	return Color{R: out.R, G: out.G, B: out.B, A: 1}
}

func clamp01(v float64) float64 { return math.Max(0, math.Min(1, v)) }

// Hex formats c as #rrggbb, or #rrggbbaa when not fully opaque.
func (c Color) Hex() string {
	n := c.NRGBA()
	if n.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", n.R, n.G, n.B, n.A)
}

// ParseColor parses a color name (see the package palette), #rgb, #rrggbb or
// #rrggbbaa.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if c, ok := namedColors[strings.ToLower(s)]; ok {
		return c, nil
	}
	alpha := 1.0
	if len(s) == 9 && strings.HasPrefix(s, "#") {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("invalid alpha in color %q: %w", s, err)
		}
		alpha = float64(a) / 255
		s = s[:7]
	}
	parsed, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return Color{R: parsed.R, G: parsed.G, B: parsed.B, A: alpha}, nil
}

// MarshalText implements encoding.TextMarshaler.
func (c Color) MarshalText() ([]byte, error) { return []byte(c.Hex()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
