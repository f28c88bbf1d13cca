package chart

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot/vg"

	"github.com/roach88/popcharts/internal/indicator"
)

// Default chart size, matching a 10x6 inch figure.
const (
	DefaultWidth  = 10 * vg.Inch
	DefaultHeight = 6 * vg.Inch
)

// Line is one plotted series.
type Line struct {
	Label  string
	Color  color.Color
	Series indicator.Series
}

// Spec describes one chart.
type Spec struct {
	Title  string
	XLabel string
	YLabel string
	Years  []string // x axis categories, in display order
	Lines  []Line
	Marker Marker
}

// Result describes a written chart file.
type Result struct {
	Path   string
	Bytes  int64
	SHA256 string
}

// Renderer writes charts of a fixed size.
type Renderer struct {
	Width  vg.Length
	Height vg.Length
}

// NewRenderer returns a Renderer with the default size.
func NewRenderer() *Renderer {
	return &Renderer{Width: DefaultWidth, Height: DefaultHeight}
}

// Render draws spec on a fresh canvas and writes it to path.
func (r *Renderer) Render(spec Spec, path string) (*Result, error) {
	c := NewCanvas(r.Width, r.Height)
	defer c.Close()

	if err := c.Draw(spec); err != nil {
		return nil, &RenderError{Path: path, Op: "draw", Err: err}
	}
	return c.Save(path)
}

// RenderLineChart plots one line per series with the matching label and
// color and writes the chart to path using the default size.
func RenderLineChart(series []indicator.Series, labels []string, title, xLabel, yLabel string,
	colors []color.Color, marker Marker, path string) (*Result, error) {
	if len(labels) != len(series) || len(colors) != len(series) {
		return nil, &RenderError{
			Path: path,
			Op:   "draw",
			Err:  fmt.Errorf("%d series, %d labels, %d colors", len(series), len(labels), len(colors)),
		}
	}

	spec := Spec{Title: title, XLabel: xLabel, YLabel: yLabel, Marker: marker}
	for i, s := range series {
		if spec.Years == nil {
			spec.Years = s.Years
		}
		spec.Lines = append(spec.Lines, Line{Label: labels[i], Color: colors[i], Series: s})
	}
	return NewRenderer().Render(spec, path)
}
