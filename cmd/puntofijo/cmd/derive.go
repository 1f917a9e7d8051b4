package cmd

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/msto63/puntofijo/internal/angle"
	"github.com/msto63/puntofijo/internal/iteration"
	"github.com/msto63/puntofijo/internal/numeric"
	"github.com/msto63/puntofijo/internal/report"
)

var (
	deriveG         string
	deriveX         float64
	deriveH         float64
	deriveUnit      string
	derivePrecision string
	deriveDecimals  int
)

var deriveCmd = &cobra.Command{
	Use:   "derive",
	Short: "Estima g'(x) por diferencias centrales",
	Long: `Estima la derivada de g en x con la fórmula de diferencias centrales
(g(x+h) - g(x-h)) / 2h e indica si |g'(x)| < 1.

Ejemplos:
  puntofijo derive --g "cos(x)" --x 0.5
  puntofijo derive --g "exp(-x)" --x 1 --h 1e-6`,
	Args: cobra.NoArgs,
	RunE: runDerive,
}

func init() {
	rootCmd.AddCommand(deriveCmd)

	deriveCmd.Flags().StringVarP(&deriveG, "g", "g", "", "Función g(x)")
	deriveCmd.Flags().Float64Var(&deriveX, "x", 0, "Punto de evaluación")
	deriveCmd.Flags().Float64Var(&deriveH, "h", numeric.DefaultStep, "Paso de la diferencia central")
	deriveCmd.Flags().StringVar(&deriveUnit, "unit", "", "Unidad angular: radians|degrees")
	deriveCmd.Flags().StringVar(&derivePrecision, "precision", "", "Formato numérico: decimals|significant")
	deriveCmd.Flags().IntVar(&deriveDecimals, "decimals", 0, "Decimales o cifras mostradas")

	_ = deriveCmd.MarkFlagRequired("g")
	_ = deriveCmd.MarkFlagRequired("x")
}

func runDerive(cmd *cobra.Command, args []string) error {
	unitName := appConfig.Defaults.AngleUnit
	if deriveUnit != "" {
		unitName = deriveUnit
	}
	unit, err := angle.ParseUnit(unitName)
	if err != nil {
		return err
	}
	fmtOpts, err := resolveFormat(derivePrecision, deriveDecimals)
	if err != nil {
		return err
	}

	g, _, err := iteration.Compile(deriveG, unit)
	if err != nil {
		return fmt.Errorf("expresión inválida: %w", err)
	}

	d := numeric.Derivative(g, deriveX, deriveH)
	if math.IsNaN(d) {
		return fmt.Errorf("g no puede evaluarse alrededor de x = %v", deriveX)
	}

	fmt.Printf("g'(%s) ≈ %s\n", report.FormatNumber(deriveX, fmtOpts), report.FormatNumber(d, fmtOpts))
	if math.Abs(d) < 1 {
		fmt.Println(report.SuccessStyle.Render("|g'(x)| < 1: condición de convergencia local satisfecha"))
	} else {
		fmt.Println(report.WarningStyle.Render(fmt.Sprintf("|g'(x)| = %.4f ≥ 1: el método podría no converger", math.Abs(d))))
	}
	return nil
}
