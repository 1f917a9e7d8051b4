// ============================================================================
// puntofijo - Iteración de punto fijo
// ============================================================================
//
// Package:     iteration
// Description: Fixed-point iteration engine with dual convergence criteria,
//              divergence and oscillation detection and Aitken acceleration
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

// Package iteration runs x(n+1) = g(x(n)) for a textual g and reports the
// full history together with the reason the run stopped.
package iteration

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/google/uuid"

	mdwlog "github.com/msto63/puntofijo/foundation/core/log"
	"github.com/msto63/puntofijo/foundation/mathexpr"
	"github.com/msto63/puntofijo/internal/angle"
	"github.com/msto63/puntofijo/internal/numeric"
	"github.com/msto63/puntofijo/pkg/core/cache"
)

// Engine runs fixed-point iterations. It holds no per-run state and is
// safe for concurrent use.
type Engine struct {
	logger   *mdwlog.Logger
	programs *cache.Cache[Program]
}

// EngineOption configures an Engine
type EngineOption func(*Engine)

// WithProgramCache reuses compiled expressions across runs
func WithProgramCache(c *cache.Cache[Program]) EngineOption {
	return func(e *Engine) {
		e.programs = c
	}
}

// NewProgramCache returns a cache suitable for WithProgramCache
func NewProgramCache(cfg cache.Config) *cache.Cache[Program] {
	return cache.New[Program](cfg)
}

// NewEngine creates an engine that logs through logger. A nil logger
// uses the foundation default.
func NewEngine(logger *mdwlog.Logger, opts ...EngineOption) *Engine {
	if logger == nil {
		logger = mdwlog.GetDefault()
	}
	e := &Engine{logger: logger.WithField("component", "iteration")}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Program is a compiled g together with its transformed source
type Program struct {
	Func       numeric.Func
	Expression string
}

func (e *Engine) compile(g string, unit angle.Unit) (numeric.Func, string, error) {
	if e.programs == nil {
		return Compile(g, unit)
	}

	var transformed string
	c, err := e.programs.GetOrSet(string(unit)+"\x00"+g, func() (Program, error) {
		fn, t, err := Compile(g, unit)
		transformed = t
		return Program{Func: fn, Expression: t}, err
	})
	if err != nil {
		return nil, transformed, err
	}
	return c.Func, c.Expression, nil
}

// Run executes a fixed-point iteration with a default engine
func Run(opts Options) Outcome {
	return NewEngine(nil).Run(opts)
}

// Compile applies the angle-unit transform to g and compiles the result
// into a function of x with pi bound. Every evaluation that does not
// produce a finite number is an error.
func Compile(g string, unit angle.Unit) (numeric.Func, string, error) {
	transformed := angle.Transform(g, unit)

	prog, err := mathexpr.Compile(transformed, mathexpr.WithVariables("x", "pi"))
	if err != nil {
		return nil, transformed, err
	}

	f := func(x float64) (float64, error) {
		y, err := prog.Eval(map[string]float64{"x": x, "pi": math.Pi})
		if err != nil {
			return 0, err
		}
		if math.IsNaN(y) || math.IsInf(y, 0) {
			return 0, &NonFiniteError{X: x, Value: y}
		}
		return y, nil
	}
	return f, transformed, nil
}

// NonFiniteError reports that g(x) evaluated to NaN or ±Inf
type NonFiniteError struct {
	X     float64
	Value float64
}

func (e *NonFiniteError) Error() string {
	return fmt.Sprintf("La función g(x) produjo un valor inválido: %v (x = %v)", e.Value, e.X)
}

// Run executes the iteration described by opts
func (e *Engine) Run(opts Options) Outcome {
	logger := e.logger.WithRunID(uuid.NewString())
	timer := logger.StartTimer("fixed-point run").WithLevel(mdwlog.LevelDebug)
	defer timer.Stop()

	opts, err := opts.normalized()
	if err != nil {
		logger.Debug("options rejected", mdwlog.Fields{"error": err.Error()})
		return configFailure(opts.AngleUnit, err)
	}

	logger.Debug("fixed-point run started", mdwlog.Fields{
		"g":              opts.G,
		"x0":             opts.X0,
		"tolerance":      opts.Tolerance,
		"max_iterations": opts.MaxIterations,
		"stop_criterion": string(opts.StopCriterion),
		"error_type":     string(opts.ErrorType),
		"aitken":         opts.UseAcceleration,
		"unit":           string(opts.AngleUnit),
	})

	g, transformed, err := e.compile(opts.G, opts.AngleUnit)
	if err != nil {
		logger.Debug("expression rejected", mdwlog.Fields{"expression": transformed, "error": err.Error()})
		return syntaxFailure(opts.AngleUnit, transformed, err)
	}

	r := &runner{opts: opts, g: g, logger: logger}
	out := r.run()
	out.Expression = transformed

	logger.Debug("fixed-point run finished", mdwlog.Fields{
		"success":     out.Success,
		"kind":        string(out.Kind),
		"iterations":  len(out.Iterations),
		"final_value": out.FinalValue,
		"final_error": out.FinalError,
	})
	return out
}

// runner carries the state of a single run
type runner struct {
	opts   Options
	g      numeric.Func
	logger *mdwlog.Logger

	iterations        []Record
	derivativeValue   *float64
	derivativeWarning string
}

func (r *runner) run() Outcome {
	x := r.opts.X0
	gx, err := r.g(x)
	if err != nil {
		return r.evaluationFailure(err)
	}

	gPrime := numeric.Derivative(r.g, x, numeric.DefaultStep)
	r.derivativeValue = &gPrime
	if !math.IsNaN(gPrime) && !math.IsInf(gPrime, 0) && math.Abs(gPrime) > 1 {
		r.derivativeWarning = fmt.Sprintf("⚠️ El método podría no converger porque |g'(x₀)| = %.4f > 1", math.Abs(gPrime))
	}

	r.iterations = append(r.iterations, Record{N: 0, Xn: x, Gxn: gx, Error: math.NaN()})

	var stepErr float64
	for n := 1; n <= r.opts.MaxIterations; n++ {
		xPrev := x
		xNext := gx

		// The value computed in the previous pass becomes the new iterate.
		x = xNext
		gx, err = r.g(x)
		if err != nil {
			return r.evaluationFailure(err)
		}

		stepErr = r.stepError(xPrev, x, gx)

		rec := Record{N: n, Xn: x, Gxn: gx, Error: stepErr}
		if r.opts.UseAcceleration && len(r.iterations) >= 2 {
			xn := r.iterations[len(r.iterations)-2].Xn
			xn1 := r.iterations[len(r.iterations)-1].Xn
			a := numeric.Aitken(xn, xn1, x)
			rec.AitkenValue = &a
		}
		r.iterations = append(r.iterations, rec)

		r.logger.Trace("iteration step", mdwlog.Fields{
			"n": n, "xn": x, "gxn": gx, "error": stepErr,
		})

		if r.converged(stepErr, x, xPrev) {
			return r.outcome(true, KindConverged, x, stepErr,
				fmt.Sprintf("✅ Converge en %d iteraciones", n),
				r.convergenceLabel(stepErr))
		}

		if math.Abs(x) > DivergenceThreshold {
			return r.outcome(false, KindDivergence, x, stepErr,
				"❌ El método diverge: los valores crecen sin límite",
				CriterionDivergence)
		}

		if n > OscillationMinStep && r.oscillating() {
			return r.outcome(false, KindOscillation, x, stepErr,
				"❌ El método oscila sin converger",
				CriterionOscillation)
		}
	}

	last := r.iterations[len(r.iterations)-1]
	return r.outcome(false, KindMaxIterations, x, last.Error,
		fmt.Sprintf("⚠️ Límite de %d iteraciones alcanzado sin convergencia", r.opts.MaxIterations),
		CriterionMaxIterations)
}

// stepError computes the error of a pass. With the delta criterion it is
// the step between consecutive iterates; with the residual criterion it is
// |g(x) - x| at the new iterate. Relative errors divide by |x| unless it is
// below RelativeFloor.
func (r *runner) stepError(xPrev, x, gx float64) float64 {
	var diff float64
	if r.opts.StopCriterion == StopResidual {
		diff = math.Abs(gx - x)
	} else {
		diff = math.Abs(x - xPrev)
	}

	if r.opts.ErrorType == ErrorRelative && math.Abs(x) > RelativeFloor {
		return diff / math.Abs(x)
	}
	return diff
}

// converged applies the tolerance test and, for absolute errors, requires
// x and xPrev to agree at the configured number of significant figures
func (r *runner) converged(stepErr, x, xPrev float64) bool {
	if !(stepErr < r.opts.Tolerance) {
		return false
	}
	if r.opts.ErrorType == ErrorRelative {
		return true
	}
	return numeric.StableAt(x, xPrev, r.opts.SignificantFigures)
}

// oscillating inspects the last OscillationWindow iterates. Only windows
// that change direction count; monotonic growth is left to the divergence
// check and the iteration budget.
func (r *runner) oscillating() bool {
	window := r.iterations[len(r.iterations)-OscillationWindow:]

	turns := false
	for i := 2; i < len(window); i++ {
		before := window[i-1].Xn - window[i-2].Xn
		after := window[i].Xn - window[i-1].Xn
		if before*after < 0 {
			turns = true
			break
		}
	}
	if !turns {
		return false
	}

	lo, hi := window[0].Xn, window[0].Xn
	var gaps float64
	for i := 1; i < len(window); i++ {
		v := window[i].Xn
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
		gaps += math.Abs(v - window[i-1].Xn)
	}
	avg := gaps / float64(len(window)-1)

	return hi-lo > OscillationRange && avg > r.opts.Tolerance*OscillationFactor
}

func (r *runner) convergenceLabel(stepErr float64) string {
	tol := strconv.FormatFloat(r.opts.Tolerance, 'g', -1, 64)

	measure := "|xₙ₊₁ - xₙ|"
	if r.opts.StopCriterion == StopResidual {
		measure = "|g(xₙ) - xₙ|"
	}

	if r.opts.ErrorType == ErrorRelative {
		return fmt.Sprintf("%s / |xₙ₊₁| = %.2e < %s", measure, stepErr, tol)
	}
	return fmt.Sprintf("%s = %.2e < %s y %d cifras estables", measure, stepErr, tol, r.opts.SignificantFigures)
}

func (r *runner) outcome(success bool, kind Kind, x, finalErr float64, message, criterion string) Outcome {
	return Outcome{
		Success:              success,
		Iterations:           r.iterations,
		FinalValue:           x,
		FinalError:           finalErr,
		Message:              message,
		ConvergenceCriterion: criterion,
		DerivativeWarning:    r.derivativeWarning,
		DerivativeValue:      r.derivativeValue,
		AngleUnit:            r.opts.AngleUnit,
		Kind:                 kind,
	}
}

// evaluationFailure keeps the records accumulated so far
func (r *runner) evaluationFailure(err error) Outcome {
	r.logger.Debug("evaluation failed", mdwlog.Fields{"error": err.Error(), "records": len(r.iterations)})

	iterations := r.iterations
	if iterations == nil {
		iterations = []Record{}
	}
	return Outcome{
		Success:              false,
		Iterations:           iterations,
		FinalValue:           math.NaN(),
		FinalError:           math.NaN(),
		Message:              "❌ Error al evaluar g(x): " + err.Error(),
		ConvergenceCriterion: CriterionEvaluation,
		DerivativeWarning:    r.derivativeWarning,
		DerivativeValue:      r.derivativeValue,
		AngleUnit:            r.opts.AngleUnit,
		Kind:                 KindEvaluation,
	}
}

func configFailure(unit angle.Unit, err error) Outcome {
	if !unit.Valid() {
		unit = angle.Radians
	}
	return Outcome{
		Success:              false,
		Iterations:           []Record{},
		FinalValue:           math.NaN(),
		FinalError:           math.NaN(),
		Message:              "❌ Configuración inválida: " + err.Error(),
		ConvergenceCriterion: CriterionSyntax,
		AngleUnit:            unit,
		Kind:                 KindConfig,
	}
}

func syntaxFailure(unit angle.Unit, transformed string, err error) Outcome {
	detail := err.Error()
	var syn *mathexpr.SyntaxError
	if errors.As(err, &syn) {
		detail = syn.Message
	}
	return Outcome{
		Success:              false,
		Iterations:           []Record{},
		FinalValue:           math.NaN(),
		FinalError:           math.NaN(),
		Message:              "❌ La función g(x) ingresada no es válida: " + detail,
		ConvergenceCriterion: CriterionSyntax,
		AngleUnit:            unit,
		Kind:                 KindSyntax,
		Expression:           transformed,
	}
}
