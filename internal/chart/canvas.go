package chart

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"math"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/roach88/popcharts/internal/indicator"
)

const (
	lineWidth   = 1.5 // points
	glyphRadius = 3   // points
)

// Canvas holds the plot for exactly one chart. It must be closed after
// Save; a closed canvas rejects every call.
type Canvas struct {
	p      *plot.Plot
	width  vg.Length
	height vg.Length
}

// NewCanvas allocates an empty chart of the given size.
func NewCanvas(width, height vg.Length) *Canvas {
	return &Canvas{p: plot.New(), width: width, height: height}
}

// Draw lays out spec on the canvas.
func (c *Canvas) Draw(spec Spec) error {
	if c.p == nil {
		return ErrCanvasClosed
	}
	p := c.p

	p.Title.Text = spec.Title
	p.X.Label.Text = spec.XLabel
	p.Y.Label.Text = spec.YLabel
	p.Add(plotter.NewGrid())
	p.Legend.Top = true

	positions := make(map[string]float64, len(spec.Years))
	ticks := make([]plot.Tick, len(spec.Years))
	for i, y := range spec.Years {
		positions[y] = float64(i)
		ticks[i] = plot.Tick{Value: float64(i), Label: y}
	}
	p.X.Tick.Marker = plot.ConstantTicks(ticks)
	if len(spec.Years) > 0 {
		p.X.Min = -0.5
		p.X.Max = float64(len(spec.Years)) - 0.5
	}

	glyph := spec.Marker.glyph()
	for _, l := range spec.Lines {
		style := draw.LineStyle{Color: l.Color, Width: vg.Points(lineWidth)}
		segments, points := segment(l.Series, positions)

		for _, seg := range segments {
			if len(seg) < 2 {
				continue
			}
			ln, err := plotter.NewLine(seg)
			if err != nil {
				return fmt.Errorf("line %q: %w", l.Label, err)
			}
			ln.LineStyle = style
			p.Add(ln)
		}

		thumbs := []plot.Thumbnailer{&plotter.Line{LineStyle: style}}
		if glyph != nil {
			gs := draw.GlyphStyle{Color: l.Color, Radius: vg.Points(glyphRadius), Shape: glyph}
			if len(points) > 0 {
				sc, err := plotter.NewScatter(points)
				if err != nil {
					return fmt.Errorf("markers %q: %w", l.Label, err)
				}
				sc.GlyphStyle = gs
				p.Add(sc)
			}
			thumbs = append(thumbs, &plotter.Scatter{GlyphStyle: gs})
		}
		if l.Label != "" {
			p.Legend.Add(l.Label, thumbs...)
		}
	}
	return nil
}

// Save encodes the canvas as PNG and writes it to path, replacing any
// existing file. The file is closed before Save returns.
func (c *Canvas) Save(path string) (*Result, error) {
	if c.p == nil {
		return nil, ErrCanvasClosed
	}

	wt, err := c.p.WriterTo(c.width, c.height, "png")
	if err != nil {
		return nil, &RenderError{Path: path, Op: "encode", Err: err}
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, &RenderError{Path: path, Op: "create", Err: err}
	}

	h := sha256.New()
	n, err := wt.WriteTo(io.MultiWriter(f, h))
	if err != nil {
		f.Close()
		return nil, &RenderError{Path: path, Op: "write", Err: err}
	}
	if err := f.Close(); err != nil {
		return nil, &RenderError{Path: path, Op: "close", Err: err}
	}

	return &Result{Path: path, Bytes: n, SHA256: hex.EncodeToString(h.Sum(nil))}, nil
}

// Close releases the plot. Close is idempotent.
func (c *Canvas) Close() error {
	c.p = nil
	return nil
}

// segment splits s into runs of consecutive present values and collects
// every present point. Years not on the axis are ignored.
func segment(s indicator.Series, positions map[string]float64) ([]plotter.XYs, plotter.XYs) {
	var (
		segments []plotter.XYs
		current  plotter.XYs
		points   plotter.XYs
	)
	flush := func() {
		if len(current) > 0 {
			segments = append(segments, current)
			current = nil
		}
	}
	for i, year := range s.Years {
		x, ok := positions[year]
		if !ok || i >= len(s.Values) || math.IsNaN(s.Values[i]) || math.IsInf(s.Values[i], 0) {
			flush()
			continue
		}
		pt := plotter.XY{X: x, Y: s.Values[i]}
		current = append(current, pt)
		points = append(points, pt)
	}
	flush()
	return segments, points
}
