package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/msto63/puntofijo/internal/cobweb"
	"github.com/msto63/puntofijo/internal/iteration"
)

var (
	plotFlags   iterationFlags
	plotOut     string
	plotWidth   float64
	plotHeight  float64
	plotSamples int
)

var plotCmd = &cobra.Command{
	Use:   "plot",
	Short: "Dibuja el diagrama de telaraña",
	Long: `Ejecuta la iteración y dibuja la curva y = g(x), la recta y = x y el
recorrido de los iterados entre ambas.

El formato se deduce de la extensión: png, svg, pdf, eps, jpg o tiff.

Ejemplos:
  puntofijo plot --g "cos(x)" --x0 0.5 --out cobweb.png
  puntofijo plot --g "3.2*x*(1-x)" --x0 0.3 --max-iter 40 --out ciclo.svg`,
	Args: cobra.NoArgs,
	RunE: runPlot,
}

func init() {
	rootCmd.AddCommand(plotCmd)

	plotFlags.register(plotCmd)
	plotCmd.Flags().StringVar(&plotOut, "out", "", "Archivo de salida (default: cobweb.<formato de la configuración>)")
	plotCmd.Flags().Float64Var(&plotWidth, "width", 0, "Ancho en cm")
	plotCmd.Flags().Float64Var(&plotHeight, "height", 0, "Alto en cm")
	plotCmd.Flags().IntVar(&plotSamples, "samples", 0, "Puntos de muestreo de g")
}

func runPlot(cmd *cobra.Command, args []string) error {
	opts, err := plotFlags.options(cmd)
	if err != nil {
		return err
	}

	path := plotOut
	if path == "" {
		path = "cobweb." + appConfig.Plot.Format
	}
	if !filepath.IsAbs(path) && appConfig.Plot.OutputDir != "" {
		path = filepath.Join(appConfig.Plot.OutputDir, path)
	}

	out := engine().Run(opts)
	if len(out.Iterations) == 0 {
		return fmt.Errorf("sin iteraciones que dibujar: %s", out.Message)
	}

	g, _, err := iteration.Compile(opts.G, opts.AngleUnit)
	if err != nil {
		return err
	}

	po := plotOptions()
	if plotWidth > 0 {
		po.Width = centimeters(plotWidth)
	}
	if plotHeight > 0 {
		po.Height = centimeters(plotHeight)
	}
	if plotSamples > 0 {
		po.Samples = plotSamples
	}

	if err := cobweb.Save(path, out, g, po); err != nil {
		return err
	}

	fmt.Printf("%s\nDiagrama guardado en %s\n", out.Message, path)
	return nil
}
