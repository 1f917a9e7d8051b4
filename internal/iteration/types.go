// ============================================================================
// puntofijo - Iteración de punto fijo
// ============================================================================
//
// Package:     iteration
// Description: Options, per-step records and outcome of a fixed-point run
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package iteration

import (
	"github.com/msto63/puntofijo/internal/angle"
)

// StopCriterion selects the quantity compared against the tolerance
type StopCriterion string

const (
	// StopDelta compares the step |x(n+1) - x(n)|
	StopDelta StopCriterion = "delta"
	// StopResidual compares the residual |g(x(n)) - x(n)|
	StopResidual StopCriterion = "residual"
)

// ErrorType selects absolute or relative errors
type ErrorType string

const (
	ErrorAbsolute ErrorType = "absolute"
	ErrorRelative ErrorType = "relative"
)

// Kind classifies how a run terminated
type Kind string

const (
	KindConverged     Kind = "converged"
	KindConfig        Kind = "config"
	KindSyntax        Kind = "syntax"
	KindEvaluation    Kind = "evaluation"
	KindDivergence    Kind = "divergence"
	KindOscillation   Kind = "oscillation"
	KindMaxIterations Kind = "max_iterations"
)

// Criterion labels reported in Outcome.ConvergenceCriterion for failures
const (
	CriterionSyntax        = "Error de sintaxis"
	CriterionEvaluation    = "Error de evaluación"
	CriterionDivergence    = "Divergencia detectada"
	CriterionOscillation   = "Oscilación detectada"
	CriterionMaxIterations = "Máximo de iteraciones"
)

// Limits and thresholds of the engine
const (
	MaxExpressionLength       = 1000
	DefaultSignificantFigures = 6
	DivergenceThreshold       = 1e10
	RelativeFloor             = 1e-10

	// Oscillation heuristic: after more than OscillationMinStep steps, the
	// last OscillationWindow iterates oscillate when their range exceeds
	// OscillationRange and their mean gap exceeds OscillationFactor·tol.
	OscillationMinStep = 5
	OscillationWindow  = 5
	OscillationRange   = 1.0
	OscillationFactor  = 10.0
)

// Options configures one run
type Options struct {
	G                  string
	X0                 float64
	Tolerance          float64
	MaxIterations      int
	StopCriterion      StopCriterion // empty means delta
	ErrorType          ErrorType     // empty means absolute
	UseAcceleration    bool
	SignificantFigures int        // 0 means DefaultSignificantFigures
	AngleUnit          angle.Unit // mandatory
}

// Record is one row of the iteration table. Error is NaN for step 0.
// AitkenValue is nil unless acceleration is enabled and two earlier
// records exist.
type Record struct {
	N           int
	Xn          float64
	Gxn         float64
	Error       float64
	AitkenValue *float64
}

// Outcome is the result of a run. Every failure mode is reported here;
// Run never returns an error.
type Outcome struct {
	Success              bool
	Iterations           []Record
	FinalValue           float64
	FinalError           float64
	Message              string
	ConvergenceCriterion string
	DerivativeWarning    string   // empty when |g'(x0)| <= 1 or unknown
	DerivativeValue      *float64 // nil when the run stopped before setup
	AngleUnit            angle.Unit
	Kind                 Kind

	// Expression is g after the angle-unit transform, as compiled
	Expression string
}

// Last returns the final record, or false when there is none
func (o Outcome) Last() (Record, bool) {
	if len(o.Iterations) == 0 {
		return Record{}, false
	}
	return o.Iterations[len(o.Iterations)-1], true
}

// Steps returns the number of loop passes, excluding record 0
func (o Outcome) Steps() int {
	if len(o.Iterations) == 0 {
		return 0
	}
	return len(o.Iterations) - 1
}

// Xs returns the ordered xn sequence
func (o Outcome) Xs() []float64 {
	xs := make([]float64, len(o.Iterations))
	for i, r := range o.Iterations {
		xs[i] = r.Xn
	}
	return xs
}
