// ============================================================================
// puntofijo - Iteración de punto fijo
// ============================================================================
//
// Package:     cobweb
// Description: Geometry of the cobweb diagram: axis range, staircase path
//              and sampled curve segments
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

// Package cobweb draws the cobweb diagram of a fixed-point iteration: the
// curve y = g(x), the identity y = x and the staircase between them.
package cobweb

import (
	"math"

	"gonum.org/v1/plot/plotter"

	"github.com/msto63/puntofijo/internal/numeric"
)

// PaddingFraction is the share of the iterate span added on each side
const PaddingFraction = 0.2

// MinSpan is the smallest axis span
const MinSpan = 1.0

// Range is the square window shared by both axes
type Range struct {
	Min float64
	Max float64
}

// Span returns Max - Min
func (r Range) Span() float64 { return r.Max - r.Min }

// Contains reports whether v lies inside the range
func (r Range) Contains(v float64) bool { return v >= r.Min && v <= r.Max }

// ComputeRange derives the window from the finite iterates: their span
// padded by PaddingFraction on both sides, widened to at least MinSpan.
func ComputeRange(xs []float64) Range {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			continue
		}
		lo = math.Min(lo, x)
		hi = math.Max(hi, x)
	}
	if math.IsInf(lo, 1) {
		return Range{Min: -MinSpan / 2, Max: MinSpan / 2}
	}

	padding := (hi - lo) * PaddingFraction
	r := Range{Min: lo - padding, Max: hi + padding}
	if r.Span() < MinSpan {
		r.Max = r.Min + MinSpan
	}
	return r
}

// Path returns the staircase (x0,x0) → (x0,x1) → (x1,x1) → (x1,x2) → …
// Non-finite iterates end the path.
func Path(xs []float64) plotter.XYs {
	if len(xs) == 0 {
		return nil
	}

	pts := make(plotter.XYs, 0, 2*len(xs))
	pts = append(pts, plotter.XY{X: xs[0], Y: xs[0]})
	for i := 0; i+1 < len(xs); i++ {
		cur, next := xs[i], xs[i+1]
		if math.IsNaN(next) || math.IsInf(next, 0) {
			break
		}
		pts = append(pts,
			plotter.XY{X: cur, Y: next},
			plotter.XY{X: next, Y: next},
		)
	}
	return pts
}

// SampleCurve evaluates g at n+1 evenly spaced points of r and splits the
// curve wherever g fails or leaves the window vertically
func SampleCurve(g numeric.Func, r Range, n int) []plotter.XYs {
	if n < 1 {
		n = 1
	}

	var segments []plotter.XYs
	var current plotter.XYs

	flush := func() {
		if len(current) > 1 {
			segments = append(segments, current)
		}
		current = nil
	}

	for i := 0; i <= n; i++ {
		x := r.Min + r.Span()*float64(i)/float64(n)
		y, err := g(x)
		if err != nil || math.IsNaN(y) || math.IsInf(y, 0) || !r.Contains(y) {
			flush()
			continue
		}
		current = append(current, plotter.XY{X: x, Y: y})
	}
	flush()

	return segments
}
