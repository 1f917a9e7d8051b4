package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"gonum.org/v1/plot/vg"

	"github.com/msto63/puntofijo/internal/angle"
	"github.com/msto63/puntofijo/internal/cobweb"
	"github.com/msto63/puntofijo/internal/iteration"
	"github.com/msto63/puntofijo/internal/report"
)

// iterationFlags are the run parameters shared by run, plot and step.
// Unchanged flags fall back to the [defaults] section of the config.
type iterationFlags struct {
	g             string
	x0            float64
	x0Unit        string
	tolerance     float64
	maxIterations int
	criterion     string
	errorType     string
	aitken        bool
	sigFigs       int
	unit          string

	precision string
	decimals  int
}

func (f *iterationFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&f.g, "g", "g", "", "Función de iteración g(x)")
	fs.Float64Var(&f.x0, "x0", 0, "Valor inicial x₀")
	fs.StringVar(&f.x0Unit, "x0-unit", "", "Unidad de x₀ si difiere de --unit (radians|degrees)")
	fs.Float64Var(&f.tolerance, "tol", 0, "Tolerancia (default de la configuración: 1e-6)")
	fs.IntVar(&f.maxIterations, "max-iter", 0, "Máximo de iteraciones (default: 100)")
	fs.StringVar(&f.criterion, "criterion", "", "Criterio de parada: delta|residual")
	fs.StringVar(&f.errorType, "error", "", "Tipo de error: absolute|relative")
	fs.BoolVar(&f.aitken, "aitken", false, "Aceleración de Aitken Δ²")
	fs.IntVar(&f.sigFigs, "sig", 0, "Cifras significativas para la estabilidad (default: 6)")
	fs.StringVar(&f.unit, "unit", "", "Unidad angular: radians|degrees")
	fs.StringVar(&f.precision, "precision", "", "Formato numérico: decimals|significant")
	fs.IntVar(&f.decimals, "decimals", 0, "Decimales o cifras mostradas")

	_ = cmd.MarkFlagRequired("g")
	_ = cmd.MarkFlagRequired("x0")
}

// options resolves the engine options from flags and config
func (f *iterationFlags) options(cmd *cobra.Command) (iteration.Options, error) {
	d := appConfig.Defaults
	fs := cmd.Flags()

	opts := iteration.Options{
		G:                  f.g,
		X0:                 f.x0,
		Tolerance:          d.Tolerance,
		MaxIterations:      d.MaxIterations,
		UseAcceleration:    d.UseAcceleration,
		SignificantFigures: d.SignificantFigures,
	}

	if fs.Changed("tol") {
		opts.Tolerance = f.tolerance
	}
	if fs.Changed("max-iter") {
		opts.MaxIterations = f.maxIterations
	}
	if fs.Changed("aitken") {
		opts.UseAcceleration = f.aitken
	}
	if fs.Changed("sig") {
		opts.SignificantFigures = f.sigFigs
	}

	criterion := d.StopCriterion
	if f.criterion != "" {
		criterion = f.criterion
	}
	var err error
	if opts.StopCriterion, err = iteration.ParseStopCriterion(criterion); err != nil {
		return opts, err
	}

	errorType := d.ErrorType
	if f.errorType != "" {
		errorType = f.errorType
	}
	if opts.ErrorType, err = iteration.ParseErrorType(errorType); err != nil {
		return opts, err
	}

	unit := d.AngleUnit
	if f.unit != "" {
		unit = f.unit
	}
	if opts.AngleUnit, err = angle.ParseUnit(unit); err != nil {
		return opts, err
	}

	if f.x0Unit != "" {
		input, err := angle.ParseUnit(f.x0Unit)
		if err != nil {
			return opts, fmt.Errorf("--x0-unit: %w", err)
		}
		opts.X0 = angle.ConvertInitialValue(f.x0, opts.AngleUnit, input)
	}

	if err := opts.Validate(); err != nil {
		var verr *iteration.ValidationError
		if errors.As(err, &verr) {
			return opts, verr.Structured()
		}
		return opts, err
	}
	return opts, nil
}

// formatOptions resolves number formatting from flags and config
func (f *iterationFlags) formatOptions() (report.FormatOptions, error) {
	return resolveFormat(f.precision, f.decimals)
}

func resolveFormat(precision string, digits int) (report.FormatOptions, error) {
	d := appConfig.Display

	mode := d.PrecisionMode
	if precision != "" {
		mode = precision
	}
	pm, err := report.ParsePrecisionMode(mode)
	if err != nil {
		return report.FormatOptions{}, err
	}

	opts := report.FormatOptions{
		Mode:               pm,
		Decimals:           d.Decimals,
		SignificantFigures: d.SignificantFigures,
	}
	if digits > 0 {
		opts.Decimals = digits
		opts.SignificantFigures = digits
	}
	return opts, nil
}

// plotOptions returns the cobweb options of the [plot] section
func plotOptions() cobweb.Options {
	p := appConfig.Plot
	return cobweb.Options{
		Width:   centimeters(p.WidthCM),
		Height:  centimeters(p.HeightCM),
		Samples: p.Samples,
	}
}

func centimeters(v float64) vg.Length {
	return vg.Length(v) * vg.Centimeter
}

// engine returns an engine logging through the application logger
func engine() *iteration.Engine {
	return iteration.NewEngine(appLogger)
}
