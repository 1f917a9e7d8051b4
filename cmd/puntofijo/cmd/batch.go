package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/msto63/puntofijo/internal/angle"
	"github.com/msto63/puntofijo/internal/batch"
	"github.com/msto63/puntofijo/internal/iteration"
	"github.com/msto63/puntofijo/internal/report"
)

var (
	batchOutput           string
	batchTimeout          time.Duration
	batchPrecision        string
	batchDecimals         int
	batchFailOnDivergence bool
)

var batchCmd = &cobra.Command{
	Use:   "batch <problemas.yaml>",
	Short: "Ejecuta un conjunto de problemas",
	Long: `Ejecuta cada problema de un archivo YAML y muestra un resumen.

Formato del archivo:
  name: Ejercicios
  defaults:
    tolerance: 1e-6
    max_iterations: 100
  problems:
    - name: coseno
      g: cos(x)
      x0: 0.5
    - name: seno en grados
      g: sin(x) + 30
      x0: 30
      angle_unit: degrees

Ejemplos:
  puntofijo batch problemas.yaml
  puntofijo batch --output json problemas.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVarP(&batchOutput, "output", "o", "table", "Formato de salida: table|json|yaml|csv")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 0, "Tiempo máximo del lote (default de la configuración)")
	batchCmd.Flags().StringVar(&batchPrecision, "precision", "", "Formato numérico: decimals|significant")
	batchCmd.Flags().IntVar(&batchDecimals, "decimals", 0, "Decimales o cifras mostradas")
	batchCmd.Flags().BoolVar(&batchFailOnDivergence, "fail-on-divergence", false, "Código de salida 1 si algún problema no converge")
}

func runBatch(cmd *cobra.Command, args []string) error {
	format, err := report.ParseFormat(batchOutput)
	if err != nil {
		return err
	}
	fmtOpts, err := resolveFormat(batchPrecision, batchDecimals)
	if err != nil {
		return err
	}

	set, err := batch.Load(args[0])
	if err != nil {
		return err
	}

	base, err := configOptions()
	if err != nil {
		return err
	}

	timeout := appConfig.Batch.Timeout.Duration
	if batchTimeout > 0 {
		timeout = batchTimeout
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runner := batch.NewRunner(
		batch.WithEngine(engine()),
		batch.WithLogger(appLogger),
		batch.WithBaseOptions(base),
		batch.WithTimeout(timeout),
	)

	rep, runErr := runner.Run(ctx, set)
	if err := batch.Write(os.Stdout, format, rep, fmtOpts); err != nil {
		return err
	}
	if runErr != nil {
		return fmt.Errorf("lote interrumpido: %w", runErr)
	}

	if _, failed, _ := rep.Counts(); batchFailOnDivergence && failed > 0 {
		return fmt.Errorf("%d problema(s) no convergen", failed)
	}
	return nil
}

// configOptions returns the [defaults] section as engine options
func configOptions() (iteration.Options, error) {
	d := appConfig.Defaults
	opts := iteration.Options{
		Tolerance:          d.Tolerance,
		MaxIterations:      d.MaxIterations,
		UseAcceleration:    d.UseAcceleration,
		SignificantFigures: d.SignificantFigures,
	}

	var err error
	if opts.StopCriterion, err = iteration.ParseStopCriterion(d.StopCriterion); err != nil {
		return opts, err
	}
	if opts.ErrorType, err = iteration.ParseErrorType(d.ErrorType); err != nil {
		return opts, err
	}
	if opts.AngleUnit, err = angle.ParseUnit(d.AngleUnit); err != nil {
		return opts, err
	}
	return opts, nil
}
