// ============================================================================
// puntofijo - Iteración de punto fijo
// ============================================================================
//
// Package:     explain
// Description: Step-by-step narrative of a fixed-point run
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

// Package explain turns an iteration outcome into a sequence of numbered
// steps: the method itself, one step per iterate and a closing summary.
package explain

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/msto63/puntofijo/internal/angle"
	"github.com/msto63/puntofijo/internal/iteration"
	"github.com/msto63/puntofijo/internal/numeric"
	"github.com/msto63/puntofijo/internal/report"
)

// Step is one page of the explanation
type Step struct {
	Number      int
	Title       string
	Content     []string
	Explanation string
	Highlight   bool
}

// Input describes the run being explained. F is the original equation
// f(x) = 0; when empty it is taken as x - g(x).
type Input struct {
	Options iteration.Options
	Outcome iteration.Outcome
	F       string
	Format  report.FormatOptions
}

// Explanation holds the three parts of the narrative
type Explanation struct {
	Method     []Step
	Iterations []Step
	Summary    Step
}

// Steps returns all steps in reading order, numbered consecutively
func (e Explanation) Steps() []Step {
	steps := make([]Step, 0, len(e.Method)+len(e.Iterations)+1)
	steps = append(steps, e.Method...)
	steps = append(steps, e.Iterations...)
	steps = append(steps, e.Summary)
	for i := range steps {
		steps[i].Number = i + 1
	}
	return steps
}

// Text renders the explanation as plain text
func (e Explanation) Text() string {
	var b strings.Builder
	for i, s := range e.Steps() {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(s.Text())
	}
	return b.String()
}

// Text renders a single step
func (s Step) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d. %s\n", s.Number, s.Title)
	for _, line := range s.Content {
		fmt.Fprintf(&b, "   %s\n", line)
	}
	if s.Explanation != "" {
		fmt.Fprintf(&b, "   → %s\n", s.Explanation)
	}
	return b.String()
}

// Explain builds the narrative for a run
func Explain(in Input) Explanation {
	e := &explainer{in: in, opts: normalize(in.Options)}
	return Explanation{
		Method:     e.method(),
		Iterations: e.iterations(),
		Summary:    e.summary(),
	}
}

type explainer struct {
	in   Input
	opts iteration.Options
}

// normalize fills the defaults the engine applies so the narrative states
// the criterion that was really used
func normalize(o iteration.Options) iteration.Options {
	if o.StopCriterion == "" {
		o.StopCriterion = iteration.StopDelta
	}
	if o.ErrorType == "" {
		o.ErrorType = iteration.ErrorAbsolute
	}
	if o.SignificantFigures == 0 {
		o.SignificantFigures = iteration.DefaultSignificantFigures
	}
	return o
}

func (e *explainer) num(v float64) string {
	return report.FormatNumber(v, e.in.Format)
}

func (e *explainer) g() string {
	return strings.TrimSpace(e.opts.G)
}

func (e *explainer) f() string {
	if f := strings.TrimSpace(e.in.F); f != "" {
		return f
	}
	return "x - (" + e.g() + ")"
}

func (e *explainer) method() []Step {
	steps := []Step{
		{
			Title:       "Función original",
			Content:     []string{"f(x) = " + e.f() + " = 0"},
			Explanation: "Se parte de la ecuación f(x) = 0; se busca el valor de x que satisface la igualdad.",
		},
		{
			Title:       "Transformación f(x) → g(x)",
			Content:     []string{"f(x) = 0  →  x = g(x)", "g(x) = " + e.g()},
			Explanation: "Se despeja x para obtener una expresión equivalente de la forma x = g(x).",
		},
	}

	if e.opts.AngleUnit == angle.Degrees && e.in.Outcome.Expression != "" {
		steps = append(steps, Step{
			Title: "Conversión de unidades angulares",
			Content: []string{
				"g(x) = " + e.in.Outcome.Expression,
				fmt.Sprintf("x₀ = %s%s ≈ %s %s",
					e.num(e.opts.X0), angle.Degrees.Symbol(),
					e.num(angle.ConvertForDisplay(e.opts.X0, angle.Degrees, angle.Radians)), angle.Radians.Symbol()),
			},
			Explanation: "Los argumentos trigonométricos se interpretan en grados y se convierten a radianes antes de evaluar.",
		})
	}

	steps = append(steps, e.derivativeStep(), Step{
		Title:       "Iteración del método",
		Content:     []string{"xₙ₊₁ = g(xₙ)", "x₀ = " + e.num(e.opts.X0)},
		Explanation: "A partir del valor inicial x₀ se aplica g(x) de forma iterativa.",
	}, e.criterionStep())

	return steps
}

func (e *explainer) derivativeStep() Step {
	s := Step{
		Title:   "Condición de convergencia",
		Content: []string{"|g'(x)| < 1 en un entorno del punto fijo"},
	}

	d := e.in.Outcome.DerivativeValue
	if d == nil || math.IsNaN(*d) || math.IsInf(*d, 0) {
		s.Explanation = "No fue posible estimar g'(x₀)."
		return s
	}

	s.Content = append(s.Content, fmt.Sprintf("g'(x₀) ≈ %s (diferencia central, h = %g)", e.num(*d), numeric.DefaultStep))
	if math.Abs(*d) > 1 {
		s.Explanation = fmt.Sprintf("|g'(x₀)| = %.4f > 1: el método podría no converger desde este valor inicial.", math.Abs(*d))
		s.Highlight = true
	} else {
		s.Explanation = fmt.Sprintf("|g'(x₀)| = %.4f ≤ 1: la condición se cumple en x₀.", math.Abs(*d))
	}
	return s
}

func (e *explainer) measure() string {
	m := "|xₙ - xₙ₋₁|"
	if e.opts.StopCriterion == iteration.StopResidual {
		m = "|g(xₙ) - xₙ|"
	}
	if e.opts.ErrorType == iteration.ErrorRelative {
		m += " / |xₙ|"
	}
	return m
}

func (e *explainer) tolerance() string {
	return strconv.FormatFloat(e.opts.Tolerance, 'g', -1, 64)
}

func (e *explainer) criterionStep() Step {
	content := []string{e.measure() + " < ε", "ε = " + e.tolerance()}
	explanation := "El proceso se detiene cuando el error es menor que la tolerancia."
	if e.opts.ErrorType == iteration.ErrorAbsolute {
		content = append(content, fmt.Sprintf("xₙ y xₙ₋₁ coinciden en %d cifras significativas", e.opts.SignificantFigures))
		explanation = "Con error absoluto se exige además que el valor sea estable en las cifras significativas indicadas."
	}
	return Step{Title: "Criterio de parada", Content: content, Explanation: explanation}
}

func (e *explainer) iterations() []Step {
	records := e.in.Outcome.Iterations
	steps := make([]Step, 0, len(records))

	for i, rec := range records {
		if i == 0 {
			steps = append(steps, Step{
				Title: "Valor inicial",
				Content: []string{
					"x₀ = " + e.num(rec.Xn),
					"g(x₀) = " + e.num(rec.Gxn),
				},
				Explanation: "g(x₀) será el siguiente valor de la sucesión.",
			})
			continue
		}

		prev := records[i-1]
		content := []string{
			fmt.Sprintf("x%s = g(x%s) = %s", subscript(rec.N), subscript(prev.N), e.num(rec.Xn)),
			fmt.Sprintf("g(x%s) = %s", subscript(rec.N), e.num(rec.Gxn)),
			fmt.Sprintf("error = %s = %s", e.measure(), report.FormatError(rec.Error)),
		}
		if rec.AitkenValue != nil {
			content = append(content, "Aitken Δ²: x̂ = "+e.num(*rec.AitkenValue))
		}

		steps = append(steps, Step{
			Title:       fmt.Sprintf("Iteración %d", rec.N),
			Content:     content,
			Explanation: e.decision(rec, prev, i == len(records)-1),
			Highlight:   i == len(records)-1,
		})
	}

	return steps
}

// decision states why the run stopped at rec or carried on
func (e *explainer) decision(rec, prev iteration.Record, last bool) string {
	out := e.in.Outcome
	below := rec.Error < e.opts.Tolerance

	if last {
		switch out.Kind {
		case iteration.KindConverged:
			return fmt.Sprintf("El error es menor que ε = %s: el proceso se detiene.", e.tolerance())
		case iteration.KindDivergence:
			return "|xₙ| supera el umbral de divergencia: el proceso se detiene."
		case iteration.KindOscillation:
			return "Los últimos valores oscilan sin acercarse: el proceso se detiene."
		case iteration.KindMaxIterations:
			return "Se alcanzó el máximo de iteraciones sin cumplir el criterio de parada."
		}
	}

	if below && e.opts.ErrorType == iteration.ErrorAbsolute && !numeric.StableAt(rec.Xn, prev.Xn, e.opts.SignificantFigures) {
		return fmt.Sprintf("El error es menor que ε, pero el valor aún no es estable en %d cifras significativas: se continúa.", e.opts.SignificantFigures)
	}
	return fmt.Sprintf("El error no es menor que ε = %s: se continúa iterando.", e.tolerance())
}

func (e *explainer) summary() Step {
	out := e.in.Outcome
	s := Step{
		Title:     "Resultado",
		Content:   []string{out.Message},
		Highlight: out.Success,
	}

	if out.ConvergenceCriterion != "" {
		s.Content = append(s.Content, "Criterio: "+out.ConvergenceCriterion)
	}
	if len(out.Iterations) > 0 {
		s.Content = append(s.Content,
			"x* ≈ "+report.FormatWithUnit(out.FinalValue, out.AngleUnit, e.in.Format),
			"Error final: "+report.FormatError(out.FinalError),
			fmt.Sprintf("Iteraciones: %d", out.Steps()),
		)
	}
	if out.DerivativeWarning != "" {
		s.Content = append(s.Content, out.DerivativeWarning)
	}

	switch out.Kind {
	case iteration.KindConverged:
		s.Explanation = "x* es una aproximación del punto fijo de g y, por tanto, de la raíz de f."
	case iteration.KindDivergence, iteration.KindOscillation, iteration.KindMaxIterations:
		s.Explanation = "Pruebe otro valor inicial u otra forma de despejar x = g(x)."
	case iteration.KindSyntax, iteration.KindConfig:
		s.Explanation = "Corrija la expresión o los parámetros antes de iterar."
	case iteration.KindEvaluation:
		s.Explanation = "g(x) no pudo evaluarse en alguno de los valores de la sucesión."
	}
	return s
}

var subscriptDigits = []rune("₀₁₂₃₄₅₆₇₈₉")

// subscript writes n with Unicode subscript digits
func subscript(n int) string {
	if n < 0 {
		return "₋" + subscript(-n)
	}
	var b strings.Builder
	for _, r := range strconv.Itoa(n) {
		b.WriteRune(subscriptDigits[r-'0'])
	}
	return b.String()
}
