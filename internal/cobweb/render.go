// ============================================================================
// puntofijo - Iteración de punto fijo
// ============================================================================
//
// Package:     cobweb
// Description: Renders the cobweb diagram with gonum/plot
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package cobweb

import (
	"fmt"
	"image/color"
	"io"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	mdwerror "github.com/msto63/puntofijo/foundation/core/error"
	"github.com/msto63/puntofijo/internal/iteration"
	"github.com/msto63/puntofijo/internal/numeric"
)

// Supported image formats
var Formats = []string{"png", "svg", "pdf", "eps", "jpg", "tiff"}

var (
	curveColor    = color.RGBA{R: 99, G: 102, B: 241, A: 255}
	identityColor = color.RGBA{R: 107, G: 114, B: 128, A: 255}
	pathColor     = color.RGBA{R: 239, G: 68, B: 68, A: 255}
	startColor    = color.RGBA{R: 16, G: 185, B: 129, A: 255}
	finalColor    = color.RGBA{R: 239, G: 68, B: 68, A: 255}
)

// Options controls the rendered image
type Options struct {
	Width   vg.Length
	Height  vg.Length
	Samples int
	Title   string
}

// DefaultOptions returns a 16 x 16 cm image with 200 curve samples
func DefaultOptions() Options {
	return Options{
		Width:   16 * vg.Centimeter,
		Height:  16 * vg.Centimeter,
		Samples: 200,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Width <= 0 {
		o.Width = d.Width
	}
	if o.Height <= 0 {
		o.Height = d.Height
	}
	if o.Samples <= 0 {
		o.Samples = d.Samples
	}
	return o
}

// New builds the diagram for an outcome. g must be the function the
// outcome was computed with; see iteration.Compile.
func New(out iteration.Outcome, g numeric.Func, opts Options) (*plot.Plot, error) {
	if len(out.Iterations) == 0 {
		return nil, mdwerror.New("no iterations to plot").
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("cobweb.New")
	}
	opts = opts.withDefaults()

	xs := out.Xs()
	r := ComputeRange(xs)

	p := plot.New()
	p.Title.Text = opts.Title
	if p.Title.Text == "" {
		p.Title.Text = "Diagrama de telaraña"
		if out.Expression != "" {
			p.Title.Text += ": g(x) = " + out.Expression
		}
	}
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	p.X.Min, p.X.Max = r.Min, r.Max
	p.Y.Min, p.Y.Max = r.Min, r.Max
	p.Add(plotter.NewGrid())

	identity, err := plotter.NewLine(plotter.XYs{{X: r.Min, Y: r.Min}, {X: r.Max, Y: r.Max}})
	if err != nil {
		return nil, renderError(err)
	}
	identity.LineStyle.Color = identityColor
	identity.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
	p.Add(identity)
	p.Legend.Add("y = x", identity)

	for i, segment := range SampleCurve(g, r, opts.Samples) {
		curve, err := plotter.NewLine(segment)
		if err != nil {
			return nil, renderError(err)
		}
		curve.LineStyle.Color = curveColor
		curve.LineStyle.Width = vg.Points(2)
		p.Add(curve)
		if i == 0 {
			p.Legend.Add("y = g(x)", curve)
		}
	}

	path := Path(xs)
	if len(path) > 1 {
		web, err := plotter.NewLine(path)
		if err != nil {
			return nil, renderError(err)
		}
		web.LineStyle.Color = pathColor
		web.LineStyle.Width = vg.Points(1)
		p.Add(web)
		p.Legend.Add("iteraciones", web)
	}

	last := xs[len(xs)-1]
	if err := addMarker(p, xs[0], startColor, "x₀"); err != nil {
		return nil, err
	}
	if err := addMarker(p, last, finalColor, "xₙ"); err != nil {
		return nil, err
	}

	p.Legend.Top = true
	p.Legend.Left = true
	return p, nil
}

// WriteTo renders the diagram in the given format to w
func WriteTo(w io.Writer, format string, out iteration.Outcome, g numeric.Func, opts Options) error {
	opts = opts.withDefaults()

	p, err := New(out, g, opts)
	if err != nil {
		return err
	}

	wt, err := p.WriterTo(opts.Width, opts.Height, strings.ToLower(format))
	if err != nil {
		return renderError(err).WithDetail("format", format)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return renderError(err)
	}
	return nil
}

// Save renders the diagram to a file; the extension selects the format
func Save(path string, out iteration.Outcome, g numeric.Func, opts Options) error {
	opts = opts.withDefaults()

	if _, err := FormatFromPath(path); err != nil {
		return err
	}

	p, err := New(out, g, opts)
	if err != nil {
		return err
	}
	if err := p.Save(opts.Width, opts.Height, path); err != nil {
		return renderError(err).WithDetail("path", path)
	}
	return nil
}

// FormatFromPath returns the image format implied by the file extension
func FormatFromPath(path string) (string, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if ext == "jpeg" {
		ext = "jpg"
	}
	if ext == "tif" {
		ext = "tiff"
	}
	for _, f := range Formats {
		if f == ext {
			return ext, nil
		}
	}
	return "", mdwerror.New(fmt.Sprintf("formato de imagen no soportado %q", filepath.Ext(path))).
		WithCode(mdwerror.CodeInvalidFormat).
		WithOperation("cobweb.FormatFromPath").
		WithDetail("path", path)
}

func addMarker(p *plot.Plot, x float64, c color.Color, label string) error {
	s, err := plotter.NewScatter(plotter.XYs{{X: x, Y: x}})
	if err != nil {
		return renderError(err)
	}
	s.GlyphStyle.Color = c
	s.GlyphStyle.Radius = vg.Points(4)
	s.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(s)
	p.Legend.Add(label, s)
	return nil
}

func renderError(err error) *mdwerror.Error {
	return mdwerror.Wrap(err, "cobweb rendering failed").
		WithCode(mdwerror.CodeRenderFailed).
		WithOperation("cobweb.Render")
}
