// Package chart draws the screen-time/productivity scatter plot.
package chart

import (
	"bytes"
	"fmt"
	"image/color"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Theme selects the plot palette.
type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// ParseTheme accepts light or dark, case-insensitively.
func ParseTheme(s string) (Theme, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "light", "":
		return Light, nil
	case "dark":
		return Dark, nil
	}
	return "", fmt.Errorf("unsupported theme %q (use light or dark)", s)
}

// Palette holds the colours a theme paints with.
type Palette struct {
	Background color.Color
	Foreground color.Color
	Grid       color.Color
	Point      color.Color
}

// Palette returns the colours for t. Dark mirrors the dashboard's #0e1117 page.
func (t Theme) Palette() Palette {
	if t == Dark {
		return Palette{
			Background: color.RGBA{R: 0x0e, G: 0x11, B: 0x17, A: 0xff},
			Foreground: color.White,
			Grid:       color.RGBA{R: 0x3a, G: 0x3f, B: 0x4b, A: 0xff},
			Point:      color.RGBA{R: 0x83, G: 0xc9, B: 0xff, A: 0xff},
		}
	}
	return Palette{
		Background: color.White,
		Foreground: color.Black,
		Grid:       color.RGBA{R: 0xe6, G: 0xe6, B: 0xe6, A: 0xff},
		Point:      color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff},
	}
}

// Options configures Scatter.
type Options struct {
	Title  string
	XLabel string
	YLabel string
	Theme  Theme
	// Width and Height default to 16cm x 10cm.
	Width  vg.Length
	Height vg.Length
	// Format is svg (default) or png.
	Format string
}

// Scatter renders xs against ys and returns the encoded image.
func Scatter(xs, ys []float64, opt Options) ([]byte, error) {
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("scatter: %d x values vs %d y values", len(xs), len(ys))
	}
	if opt.Width <= 0 {
		opt.Width = 16 * vg.Centimeter
	}
	if opt.Height <= 0 {
		opt.Height = 10 * vg.Centimeter
	}
	format := strings.ToLower(opt.Format)
	if format == "" {
		format = "svg"
	}
	if format != "svg" && format != "png" {
		return nil, fmt.Errorf("scatter: unsupported format %q", opt.Format)
	}
	pal := opt.Theme.Palette()

	p := plot.New()
	p.Title.Text = opt.Title
	p.X.Label.Text = opt.XLabel
	p.Y.Label.Text = opt.YLabel
	p.BackgroundColor = pal.Background
	p.Title.TextStyle.Color = pal.Foreground
	for _, ax := range []*plot.Axis{&p.X, &p.Y} {
		ax.Label.TextStyle.Color = pal.Foreground
		ax.Tick.Label.Color = pal.Foreground
		ax.Tick.LineStyle.Color = pal.Foreground
		ax.LineStyle.Color = pal.Foreground
	}

	grid := plotter.NewGrid()
	grid.Vertical.Color = pal.Grid
	grid.Horizontal.Color = pal.Grid
	p.Add(grid)

	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i].X, pts[i].Y = xs[i], ys[i]
	}
	s, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, fmt.Errorf("scatter: %w", err)
	}
	s.GlyphStyle.Color = pal.Point
	s.GlyphStyle.Radius = vg.Points(3)
	s.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(s)

	wt, err := p.WriterTo(opt.Width, opt.Height, format)
	if err != nil {
		return nil, fmt.Errorf("scatter: %w", err)
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("scatter: write %s: %w", format, err)
	}
	return buf.Bytes(), nil
}
