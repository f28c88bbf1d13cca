package chart

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
	"gonum.org/v1/plot/vg/draw"
)

// Marker selects the glyph drawn at every present value.
type Marker string

const (
	MarkerCircle   Marker = "o"
	MarkerSquare   Marker = "s"
	MarkerTriangle Marker = "^"
	MarkerCross    Marker = "x"
	MarkerNone     Marker = "none"
)

// ParseMarker accepts the marker codes listed above; "" means circle.
func ParseMarker(s string) (Marker, error) {
	switch m := Marker(s); m {
	case "":
		return MarkerCircle, nil
	case MarkerCircle, MarkerSquare, MarkerTriangle, MarkerCross, MarkerNone:
		return m, nil
	}
	return "", fmt.Errorf("unknown marker %q", s)
}

func (m Marker) glyph() draw.GlyphDrawer {
	switch m {
	case MarkerSquare:
		return draw.BoxGlyph{}
	case MarkerTriangle:
		return draw.TriangleGlyph{}
	case MarkerCross:
		return draw.CrossGlyph{}
	case MarkerNone:
		return nil
	default:
		return draw.CircleGlyph{}
	}
}

// ParseColor resolves an SVG color name ("darkorange", "salmon") or a
// "#rrggbb" hex triplet.
func ParseColor(s string) (color.Color, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if c, ok := colornames.Map[name]; ok {
		return c, nil
	}
	if strings.HasPrefix(name, "#") && len(name) == 7 {
		v, err := strconv.ParseUint(name[1:], 16, 32)
		if err == nil {
			return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
		}
	}
	return nil, fmt.Errorf("unknown color %q", s)
}

// MustColor is ParseColor for literals known to be valid.
func MustColor(s string) color.Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}
