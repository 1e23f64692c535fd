package canvas

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Background is the paper colour every surface starts with.
var Background = color.RGBA{R: 0xfe, G: 0xf9, B: 0xf3, A: 0xff}

// Swatch is one entry of the kids' palette.
type Swatch struct {
	Name  string
	Hex   string
	Color color.RGBA
}

// Palette is the fixed set of brush colours, red first.
var Palette = []Swatch{
	mustSwatch("Red", "#ef4444"),
	mustSwatch("Orange", "#f97316"),
	mustSwatch("Yellow", "#eab308"),
	mustSwatch("Green", "#22c55e"),
	mustSwatch("Blue", "#3b82f6"),
	mustSwatch("Purple", "#a855f7"),
	mustSwatch("Pink", "#ec4899"),
	mustSwatch("Black", "#1f2937"),
}

// ParseHex parses "#rrggbb" or "rrggbb" into an opaque colour.
func ParseHex(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return color.RGBA{}, fmt.Errorf("canvas: invalid colour %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("canvas: invalid colour %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

// Hex formats c as "#rrggbb".
func Hex(c color.Color) string {
	rgba := color.RGBAModel.Convert(c).(color.RGBA)
	return fmt.Sprintf("#%02x%02x%02x", rgba.R, rgba.G, rgba.B)
}

func mustSwatch(name, hex string) Swatch {
	c, err := ParseHex(hex)
	if err != nil {
		panic(err)
	}
	return Swatch{Name: name, Hex: hex, Color: c}
}
