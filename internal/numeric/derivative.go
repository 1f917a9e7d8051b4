// ============================================================================
// puntofijo - Iteración de punto fijo
// ============================================================================
//
// Package:     numeric
// Description: Central-difference derivative, Aitken acceleration and
//              significant-figure rounding used by the iteration engine
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

// Package numeric contains the pure numerical helpers of the solver.
package numeric

import (
	"math"

	"gonum.org/v1/gonum/diff/fd"
)

// DefaultStep is the step h of the central difference
const DefaultStep = 1e-5

// Func is a scalar function that may fail to evaluate
type Func func(x float64) (float64, error)

// Derivative estimates g'(x) as (g(x+h) - g(x-h)) / (2h). A non-positive h
// selects DefaultStep. Any evaluation error yields NaN; the estimate is a
// diagnostic and never fails the caller.
func Derivative(g Func, x, h float64) float64 {
	if g == nil {
		return math.NaN()
	}
	if h <= 0 {
		h = DefaultStep
	}

	failed := false
	f := func(x float64) float64 {
		y, err := g(x)
		if err != nil {
			failed = true
			return math.NaN()
		}
		return y
	}

	d := fd.Derivative(f, x, &fd.Settings{
		Formula: fd.Central,
		Step:    h,
	})
	if failed {
		return math.NaN()
	}
	return d
}
