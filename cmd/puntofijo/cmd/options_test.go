package cmd

import (
	"errors"
	"math"
	"testing"

	"github.com/spf13/cobra"

	mdwerror "github.com/msto63/puntofijo/foundation/core/error"
	"github.com/msto63/puntofijo/internal/angle"
	"github.com/msto63/puntofijo/internal/iteration"
	"github.com/msto63/puntofijo/internal/report"
	"github.com/msto63/puntofijo/pkg/core/config"
)

func parseIterationFlags(t *testing.T, args ...string) (iteration.Options, error) {
	t.Helper()
	appConfig = config.Default()

	var f iterationFlags
	c := &cobra.Command{Use: "test"}
	f.register(c)
	if err := c.ParseFlags(args); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	return f.options(c)
}

func TestIterationFlags_Defaults(t *testing.T) {
	opts, err := parseIterationFlags(t, "--g", "cos(x)", "--x0", "0.5")
	if err != nil {
		t.Fatal(err)
	}

	if opts.G != "cos(x)" || opts.X0 != 0.5 {
		t.Errorf("g/x0 = %q/%v", opts.G, opts.X0)
	}
	if opts.Tolerance != 1e-6 || opts.MaxIterations != 100 || opts.SignificantFigures != 6 {
		t.Errorf("config defaults not applied: %+v", opts)
	}
	if opts.StopCriterion != iteration.StopDelta || opts.ErrorType != iteration.ErrorAbsolute {
		t.Errorf("criterion = %s/%s", opts.StopCriterion, opts.ErrorType)
	}
	if opts.AngleUnit != angle.Radians {
		t.Errorf("unit = %s", opts.AngleUnit)
	}
}

func TestIterationFlags_Overrides(t *testing.T) {
	opts, err := parseIterationFlags(t,
		"--g", "sin(x)", "--x0", "90", "--x0-unit", "degrees",
		"--tol", "1e-3", "--max-iter", "7", "--criterion", "residual",
		"--error", "relative", "--aitken", "--sig", "4",
	)
	if err != nil {
		t.Fatal(err)
	}

	if math.Abs(opts.X0-math.Pi/2) > 1e-12 {
		t.Errorf("x0 = %v, want π/2", opts.X0)
	}
	if opts.Tolerance != 1e-3 || opts.MaxIterations != 7 || opts.SignificantFigures != 4 || !opts.UseAcceleration {
		t.Errorf("overrides not applied: %+v", opts)
	}
	if opts.StopCriterion != iteration.StopResidual || opts.ErrorType != iteration.ErrorRelative {
		t.Errorf("criterion = %s/%s", opts.StopCriterion, opts.ErrorType)
	}
}

func TestIterationFlags_Invalid(t *testing.T) {
	for _, args := range [][]string{
		{"--g", "x", "--x0", "1", "--criterion", "step"},
		{"--g", "x", "--x0", "1", "--error", "percent"},
		{"--g", "x", "--x0", "1", "--unit", "gradians"},
		{"--g", "x", "--x0", "1", "--x0-unit", "turns"},
	} {
		if _, err := parseIterationFlags(t, args...); err == nil {
			t.Errorf("%v: expected an error", args)
		}
	}
}

func TestIterationFlags_ValidationErrorsAreStructured(t *testing.T) {
	tests := []struct {
		args  []string
		field string
	}{
		{[]string{"--g", "x", "--x0", "1", "--tol=-1"}, "tolerance"},
		{[]string{"--g", "x", "--x0", "1", "--max-iter", "0"}, "max_iterations"},
		{[]string{"--g", "", "--x0", "1"}, "g"},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			_, err := parseIterationFlags(t, tt.args...)
			if !mdwerror.HasCode(err, mdwerror.CodeValidationFailed) {
				t.Fatalf("error = %v, want VALIDATION_FAILED", err)
			}
			var structured *mdwerror.Error
			if !errors.As(err, &structured) {
				t.Fatal("expected a foundation error")
			}
			if structured.Details()["field"] != tt.field {
				t.Errorf("field = %v, want %s", structured.Details()["field"], tt.field)
			}
			if structured.Operation() != "iteration.Validate" {
				t.Errorf("operation = %q", structured.Operation())
			}
		})
	}
}

func TestResolveFormat(t *testing.T) {
	appConfig = config.Default()

	opts, err := resolveFormat("", 0)
	if err != nil || opts.Mode != report.PrecisionDecimals || opts.Decimals != 6 {
		t.Errorf("default format = %+v, %v", opts, err)
	}

	opts, err = resolveFormat("significant", 4)
	if err != nil || opts.Mode != report.PrecisionSignificant || opts.SignificantFigures != 4 {
		t.Errorf("override format = %+v, %v", opts, err)
	}

	if _, err := resolveFormat("fixed", 0); err == nil {
		t.Error("expected an error for an unknown precision mode")
	}
}

func TestConfigOptions(t *testing.T) {
	appConfig = config.Default()
	appConfig.Defaults.AngleUnit = "degrees"

	opts, err := configOptions()
	if err != nil {
		t.Fatal(err)
	}
	if opts.AngleUnit != angle.Degrees || opts.MaxIterations != 100 {
		t.Errorf("config options = %+v", opts)
	}
}
