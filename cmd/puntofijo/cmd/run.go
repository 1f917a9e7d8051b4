package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/msto63/puntofijo/internal/cobweb"
	"github.com/msto63/puntofijo/internal/explain"
	"github.com/msto63/puntofijo/internal/iteration"
	"github.com/msto63/puntofijo/internal/report"
)

var (
	runFlags            iterationFlags
	runOutput           string
	runPlotFile         string
	runExplain          bool
	runFailOnDivergence bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Ejecuta una iteración de punto fijo",
	Long: `Ejecuta x(n+1) = g(x(n)) desde x₀ y muestra la tabla de iteraciones.

Un método que no converge no es un error: se muestra su resultado.
Con --fail-on-divergence el comando termina con código 1 en ese caso.

Ejemplos:
  puntofijo run --g "cos(x)" --x0 0.5
  puntofijo run --g "(x + 2/x)/2" --x0 1 --criterion residual --error relative
  puntofijo run --g "sin(x) + 30" --x0 30 --unit degrees --aitken
  puntofijo run --g "exp(-x)" --x0 1 --output json
  puntofijo run --g "cos(x)" --x0 0.5 --plot cobweb.png`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runFlags.register(runCmd)
	runCmd.Flags().StringVarP(&runOutput, "output", "o", "table", "Formato de salida: table|json|yaml|csv")
	runCmd.Flags().StringVar(&runPlotFile, "plot", "", "Guarda además el diagrama de telaraña (png, svg, pdf...)")
	runCmd.Flags().BoolVar(&runExplain, "explain", false, "Añade la explicación paso a paso (solo formato table)")
	runCmd.Flags().BoolVar(&runFailOnDivergence, "fail-on-divergence", false, "Código de salida 1 si el método no converge")
}

func runRun(cmd *cobra.Command, args []string) error {
	opts, err := runFlags.options(cmd)
	if err != nil {
		return err
	}
	fmtOpts, err := runFlags.formatOptions()
	if err != nil {
		return err
	}
	format, err := report.ParseFormat(runOutput)
	if err != nil {
		return err
	}

	out := engine().Run(opts)

	if err := report.Write(os.Stdout, format, out, fmtOpts); err != nil {
		return err
	}

	if runExplain && format == report.FormatTable {
		e := explain.Explain(explain.Input{Options: opts, Outcome: out, Format: fmtOpts})
		fmt.Println()
		fmt.Print(e.Text())
	}

	if runPlotFile != "" {
		if err := savePlot(runPlotFile, opts, out); err != nil {
			printError("diagrama no generado", err)
		} else if format == report.FormatTable {
			fmt.Printf("\nDiagrama guardado en %s\n", runPlotFile)
		}
	}

	if runFailOnDivergence && !out.Success {
		return fmt.Errorf("el método no converge: %s", out.Message)
	}
	return nil
}

// savePlot recompiles g and renders the cobweb of out to path
func savePlot(path string, opts iteration.Options, out iteration.Outcome) error {
	g, _, err := iteration.Compile(opts.G, opts.AngleUnit)
	if err != nil {
		return err
	}
	return cobweb.Save(path, out, g, plotOptions())
}
